// Package quote manages quote creation, review, filtering, and mock
// extraction from transcript text.
package quote

import (
	"time"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

// CreateInput holds the fields for creating a quote.
type CreateInput struct {
	TranscriptID string
	Text         string
	Start        *float64
	End          *float64
	Confidence   *float64
	Tags         []string
}

// Service owns quote mutations and queries.
type Service struct {
	store       *store.Store
	transcripts *transcript.Service
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a quote service. The transcript service is needed for
// the extract path, which may create a linking transcript on the fly.
func NewService(st *store.Store, transcripts *transcript.Service, logger *zap.Logger) *Service {
	return &Service{store: st, transcripts: transcripts, logger: logger, now: time.Now}
}

// Create stores a new quote. The owning transcript must exist and the
// timing window, when both ends are given, must not be inverted.
func (s *Service) Create(in CreateInput) (*models.Quote, error) {
	if _, ok := s.store.Transcripts.Get(in.TranscriptID); !ok {
		return nil, apperr.NotFound("Transcript", in.TranscriptID)
	}
	if !validTiming(in.Start, in.End) {
		return nil, apperr.Validation("quote start must not exceed end")
	}
	ts := s.now().UTC()
	q := &models.Quote{
		ID:           s.store.IDs.Next("quote"),
		TranscriptID: in.TranscriptID,
		Text:         in.Text,
		Start:        in.Start,
		End:          in.End,
		Confidence:   in.Confidence,
		Tags:         append([]string{}, in.Tags...),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	s.store.Quotes.Put(q.ID, q)
	s.logger.Debug("quote created", zap.String("quote_id", q.ID), zap.String("transcript_id", q.TranscriptID))
	return q.Clone(), nil
}

// Get returns a quote by id.
func (s *Service) Get(id string) (*models.Quote, error) {
	q, ok := s.store.Quotes.Get(id)
	if !ok {
		return nil, apperr.NotFound("Quote", id)
	}
	return q, nil
}

// Update applies a partial update and bumps updated_at.
func (s *Service) Update(id string, patch *models.QuotePatch) (*models.Quote, error) {
	q, ok := s.store.Quotes.Get(id)
	if !ok {
		return nil, apperr.NotFound("Quote", id)
	}
	patch.Apply(q)
	if !validTiming(q.Start, q.End) {
		return nil, apperr.Validation("quote start must not exceed end")
	}
	ts := s.now().UTC()
	if !ts.After(q.UpdatedAt) {
		ts = q.UpdatedAt.Add(time.Nanosecond)
	}
	q.UpdatedAt = ts
	s.store.Quotes.Put(id, q)
	return q.Clone(), nil
}

// validTiming reports whether a quote's timing window is usable. A missing
// end (or start) is fine; an inverted window is not.
func validTiming(start, end *float64) bool {
	return start == nil || end == nil || *start <= *end
}

// Delete removes a quote. Hard delete, no tombstone; the id is never reused.
func (s *Service) Delete(id string) error {
	if !s.store.Quotes.Delete(id) {
		return apperr.NotFound("Quote", id)
	}
	return nil
}
