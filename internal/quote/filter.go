package quote

import (
	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
)

// Approval filter values.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
)

// Filter restricts a quote listing. Filters are conjunctive and applied in
// declaration order: asset join, approval state, minimum confidence.
type Filter struct {
	AssetID       string
	Status        string
	MinConfidence *float64
}

// List returns all quotes matching the filter.
func (s *Service) List(f Filter) ([]*models.Quote, error) {
	if f.Status != "" && f.Status != StatusApproved && f.Status != StatusPending {
		return nil, apperr.Validation("status must be 'approved' or 'pending'")
	}

	items := s.store.Quotes.List()

	if f.AssetID != "" {
		transcriptIDs := make(map[string]bool)
		for _, t := range s.store.Transcripts.List() {
			if t.AssetID == f.AssetID {
				transcriptIDs[t.ID] = true
			}
		}
		items = keep(items, func(q *models.Quote) bool { return transcriptIDs[q.TranscriptID] })
	}

	if f.Status != "" {
		wantApproved := f.Status == StatusApproved
		items = keep(items, func(q *models.Quote) bool { return q.Approved == wantApproved })
	}

	if f.MinConfidence != nil {
		// Quotes without a confidence score are excluded when this filter is active.
		min := *f.MinConfidence
		items = keep(items, func(q *models.Quote) bool { return q.Confidence != nil && *q.Confidence >= min })
	}

	return items, nil
}

func keep(items []*models.Quote, pred func(*models.Quote) bool) []*models.Quote {
	out := items[:0]
	for _, q := range items {
		if pred(q) {
			out = append(out, q)
		}
	}
	return out
}
