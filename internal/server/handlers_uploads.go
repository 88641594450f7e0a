package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
)

const maxUploadMemory = 32 << 20 // form parse buffer; file bytes are discarded anyway

type uploadResponse struct {
	AssetID string        `json:"asset_id"`
	Status  string        `json:"status"`
	Note    string        `json:"note,omitempty"`
	Asset   *models.Asset `json:"asset,omitempty"`
}

type uploadStatusResponse struct {
	AssetID      string           `json:"asset_id"`
	Status       models.JobStatus `json:"status"`
	TranscriptID *string          `json:"transcript_id"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Message      string           `json:"message,omitempty"`
}

// handleUpload registers an uploaded file's metadata as an Asset and kicks
// off simulated transcription. The file bytes themselves are discarded.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	size := header.Size
	assetID := s.store.IDs.Next("asset")
	asset := &models.Asset{
		ID:          assetID,
		Filename:    header.Filename,
		ContentType: contentType,
		AssetType:   models.AssetTypeFromContentType(contentType),
		SizeBytes:   &size,
		URL:         "/mock/storage/" + assetID + "/" + header.Filename,
		CreatedAt:   time.Now().UTC(),
		OwnerID:     r.FormValue("owner_id"),
	}
	s.store.Assets.Put(assetID, asset)
	s.logger.Debug("asset registered",
		zap.String("asset_id", assetID),
		zap.String("filename", asset.Filename),
		zap.String("asset_type", string(asset.AssetType)))

	if _, err := s.simulator.Start(assetID); err != nil {
		s.respondErr(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, uploadResponse{
		AssetID: assetID,
		Status:  "queued",
		Note:    "Transcription job queued (simulated).",
		Asset:   asset,
	})
}

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": s.store.Assets.List()})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "assetID")
	asset, ok := s.store.Assets.Get(id)
	if !ok {
		s.respondErr(w, apperr.NotFound("Asset", id))
		return
	}
	s.respondJSON(w, http.StatusOK, asset)
}

// handleUploadStatus reports the transcription progress for an asset. Before
// the transcript exists (deferred mode) the status is pending with no
// transcript id.
func (s *Server) handleUploadStatus(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	asset, ok := s.store.Assets.Get(assetID)
	if !ok {
		s.respondErr(w, apperr.NotFound("Asset", assetID))
		return
	}

	resp := uploadStatusResponse{AssetID: assetID}
	if t := s.store.TranscriptForAsset(assetID); t != nil {
		resp.Status = t.Status
		resp.TranscriptID = &t.ID
		resp.UpdatedAt = t.UpdatedAt
	} else {
		resp.Status = models.StatusPending
		resp.UpdatedAt = asset.CreatedAt
	}
	resp.Message = statusMessage(resp.Status)
	s.respondJSON(w, http.StatusOK, resp)
}

func statusMessage(status models.JobStatus) string {
	if status == models.StatusPending || status == models.StatusProcessing {
		return "Processing"
	}
	return "Done"
}
