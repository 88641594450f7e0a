package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/quote"
)

type quoteCreateRequest struct {
	TranscriptID string   `json:"transcript_id" validate:"required"`
	Text         string   `json:"text" validate:"required"`
	Start        *float64 `json:"start,omitempty"`
	End          *float64 `json:"end,omitempty"`
	Confidence   *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
	Tags         []string `json:"tags,omitempty"`
}

type quoteExtractRequest struct {
	AssetID       string `json:"asset_id,omitempty"`
	TranscriptID  string `json:"transcript_id,omitempty"`
	Text          string `json:"text,omitempty"`
	MaxCandidates int    `json:"max_candidates,omitempty" validate:"omitempty,gte=1"`
	MinLength     int    `json:"min_length,omitempty" validate:"omitempty,gte=1"`
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteCreateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	q, err := s.quotes.Create(quote.CreateInput{
		TranscriptID: req.TranscriptID,
		Text:         req.Text,
		Start:        req.Start,
		End:          req.End,
		Confidence:   req.Confidence,
		Tags:         req.Tags,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]*models.Quote{"quote": q})
}

func (s *Server) handleExtractQuotes(w http.ResponseWriter, r *http.Request) {
	var req quoteExtractRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	items, err := s.quotes.Extract(quote.ExtractInput{
		AssetID:       req.AssetID,
		TranscriptID:  req.TranscriptID,
		Text:          req.Text,
		MaxCandidates: req.MaxCandidates,
		MinLength:     req.MinLength,
	})
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]interface{}{"items": items})
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	filter := quote.Filter{
		AssetID: r.URL.Query().Get("assetId"),
		Status:  r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("minConfidence"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil || min < 0 || min > 1 {
			s.respondErr(w, apperr.Validation("minConfidence must be a number between 0 and 1"))
			return
		}
		filter.MinConfidence = &min
	}

	items, err := s.quotes.List(filter)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Get(chi.URLParam(r, "quoteID"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, q)
}

func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	var patch models.QuotePatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	q, err := s.quotes.Update(chi.URLParam(r, "quoteID"), &patch)
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.quotes.Delete(chi.URLParam(r, "quoteID")); err != nil {
		s.respondErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
