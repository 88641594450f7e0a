package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

type transcriptCreateRequest struct {
	AssetID  string `json:"asset_id" validate:"required"`
	Language string `json:"language,omitempty"`
	Text     string `json:"text,omitempty"`
}

type segmentAppendRequest struct {
	Start   float64 `json:"start" validate:"gte=0"`
	End     float64 `json:"end" validate:"gtefield=Start"`
	Text    string  `json:"text" validate:"required"`
	Speaker string  `json:"speaker,omitempty"`
}

func (s *Server) handleCreateTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptCreateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	t, err := s.transcripts.Create(transcript.CreateInput{
		AssetID:  req.AssetID,
		Language: req.Language,
		Text:     req.Text,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]*models.Transcript{"transcript": t})
}

func (s *Server) handleListTranscripts(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": s.transcripts.List()})
}

func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	t, err := s.transcripts.Get(chi.URLParam(r, "transcriptID"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTranscript(w http.ResponseWriter, r *http.Request) {
	var patch models.TranscriptPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	if patch.Status != nil && !validJobStatus(*patch.Status) {
		s.respondErr(w, apperr.Validation("unknown status value"))
		return
	}
	t, err := s.transcripts.Update(chi.URLParam(r, "transcriptID"), &patch)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func (s *Server) handleTranscriptVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.transcripts.Versions(chi.URLParam(r, "transcriptID"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(versions),
		"versions": versions,
	})
}

func (s *Server) handleTranscriptAudit(w http.ResponseWriter, r *http.Request) {
	entries, err := s.transcripts.Audit(chi.URLParam(r, "transcriptID"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": entries})
}

func (s *Server) handleAppendSegment(w http.ResponseWriter, r *http.Request) {
	var req segmentAppendRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	t, err := s.transcripts.AppendSegment(chi.URLParam(r, "transcriptID"), models.TranscriptSegment{
		Start:   req.Start,
		End:     req.End,
		Text:    req.Text,
		Speaker: req.Speaker,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, t)
}

func validJobStatus(status models.JobStatus) bool {
	switch status {
	case models.StatusPending, models.StatusProcessing, models.StatusCompleted, models.StatusFailed, models.StatusCanceled:
		return true
	}
	return false
}
