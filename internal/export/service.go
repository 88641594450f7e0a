package export

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
)

// Output is a rendered export blob with its MIME type, addressable by job id.
type Output struct {
	Mime    string
	Content string
}

// Service creates and tracks export jobs. Rendering happens synchronously at
// creation; generated outputs are kept in memory keyed by job id.
type Service struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	outputs map[string]Output
}

// NewService creates an export service backed by the given store.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:   st,
		logger:  logger,
		now:     time.Now,
		outputs: make(map[string]Output),
	}
}

// CreateJob validates the referenced quotes in declaration order, renders the
// output, and records a completed job. A rendering failure is still recorded:
// the job transitions to failed with the error message attached, so callers
// can always fetch the job and see why it failed.
func (s *Service) CreateJob(quoteIDs []string, format models.ExportFormat, title, author *string) (*models.ExportJob, error) {
	quotes := make([]*models.Quote, 0, len(quoteIDs))
	for _, id := range quoteIDs {
		q, ok := s.store.Quotes.Get(id)
		if !ok {
			return nil, apperr.NotFound("Quote", id)
		}
		quotes = append(quotes, q)
	}

	if !format.Valid() {
		s.logger.Debug("unknown export format, rendering as plain text", zap.String("format", string(format)))
	}

	ts := s.now().UTC()
	job := &models.ExportJob{
		ID:        s.store.IDs.Next("export"),
		QuoteIDs:  append([]string{}, quoteIDs...),
		Format:    format,
		Status:    models.StatusProcessing,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	mime, content, err := Render(format, quotes, title, author)
	if err != nil {
		job.Status = models.StatusFailed
		job.ErrorMessage = err.Error()
		job.UpdatedAt = s.now().UTC()
		s.store.Exports.Put(job.ID, job)
		s.logger.Error("export generation failed", zap.String("export_id", job.ID), zap.Error(err))
		return nil, apperr.Internal("Failed to generate export", err)
	}

	s.mu.Lock()
	s.outputs[job.ID] = Output{Mime: mime, Content: content}
	s.mu.Unlock()

	job.Status = models.StatusCompleted
	job.ResultURL = "/api/exports/" + job.ID
	job.UpdatedAt = s.now().UTC()
	s.store.Exports.Put(job.ID, job)

	s.logger.Debug("export generated",
		zap.String("export_id", job.ID),
		zap.String("format", string(format)),
		zap.Int("quotes", len(quotes)))
	return job.Clone(), nil
}

// Get returns an export job by id.
func (s *Service) Get(id string) (*models.ExportJob, error) {
	job, ok := s.store.Exports.Get(id)
	if !ok {
		return nil, apperr.NotFound("Export job", id)
	}
	return job, nil
}

// List returns all export jobs.
func (s *Service) List() []*models.ExportJob {
	return s.store.Exports.List()
}

// Output returns the generated content for a job.
func (s *Service) Output(id string) (Output, error) {
	if _, ok := s.store.Exports.Get(id); !ok {
		return Output{}, apperr.NotFound("Export job", id)
	}
	s.mu.RLock()
	out, ok := s.outputs[id]
	s.mu.RUnlock()
	if !ok {
		return Output{}, apperr.NotFound("Export output", "")
	}
	return out, nil
}
