package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quotedeck/quotedeck/internal/export"
	"github.com/quotedeck/quotedeck/internal/models"
)

type exportCreateRequest struct {
	QuoteIDs []string            `json:"quote_ids"`
	Format   models.ExportFormat `json:"format" validate:"required"`
	Title    *string             `json:"title,omitempty"`
	Author   *string             `json:"author,omitempty"`
}

type exportResponse struct {
	Export *models.ExportJob `json:"export"`
	Note   string            `json:"note,omitempty"`
}

// handleCreateExport creates an export job and generates the formatted
// output synchronously. Unknown format strings render as plain text rather
// than being rejected.
func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	var req exportCreateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	job, err := s.exports.CreateJob(req.QuoteIDs, req.Format, req.Title, req.Author)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, exportResponse{
		Export: job,
		Note:   "Output generated in-memory. Retrieve via GET /api/exports/" + job.ID + "?download=1",
	})
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": s.exports.List()})
}

// handleGetExport returns job metadata, or the raw generated output with its
// recorded MIME type when download=1.
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "exportID")
	job, err := s.exports.Get(id)
	if err != nil {
		s.respondErr(w, err)
		return
	}

	if r.URL.Query().Get("download") == "1" {
		out, err := s.exports.Output(id)
		if err != nil {
			s.respondErr(w, err)
			return
		}
		w.Header().Set("Content-Type", out.Mime)
		w.Header().Set("Content-Disposition", `attachment; filename="`+id+"."+export.FileExtension(job.Format)+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out.Content))
		return
	}

	s.respondJSON(w, http.StatusOK, job)
}
