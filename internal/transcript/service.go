// Package transcript manages transcript lifecycle: creation, partial
// updates, segment appends, and the per-transcript version history and
// audit trail that every mutation feeds.
package transcript

import (
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
)

// Audit actions.
const (
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionAppendSegment = "append_segment"
)

// FieldChange records one field's value before and after a mutation.
type FieldChange struct {
	Before any `json:"before"`
	After  any `json:"after"`
}

// AuditEntry is one append-only record of a transcript mutation.
type AuditEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes"`
}

// CreateInput holds the fields for creating a transcript.
type CreateInput struct {
	AssetID  string
	Language string
	Text     string
}

// Service owns transcript mutations. Every create, update, and segment
// append snapshots the post-mutation transcript into the version history and
// appends an audit record.
type Service struct {
	store  *store.Store
	logger *zap.Logger

	mu       sync.RWMutex
	versions map[string][]*models.Transcript
	audit    map[string][]AuditEntry

	now func() time.Time
}

// NewService creates a transcript service backed by the given store.
func NewService(st *store.Store, logger *zap.Logger) *Service {
	return &Service{
		store:    st,
		logger:   logger,
		versions: make(map[string][]*models.Transcript),
		audit:    make(map[string][]AuditEntry),
		now:      time.Now,
	}
}

// Create registers a transcript for an existing asset. When text is supplied
// the transcript starts completed, otherwise pending.
func (s *Service) Create(in CreateInput) (*models.Transcript, error) {
	if _, ok := s.store.Assets.Get(in.AssetID); !ok {
		return nil, apperr.NotFound("Asset", in.AssetID)
	}
	status := models.StatusPending
	if in.Text != "" {
		status = models.StatusCompleted
	}
	return s.CreateWithStatus(in, status)
}

// CreateWithStatus registers a transcript with an explicit initial status.
// Used by the transcription simulator, which controls status itself.
func (s *Service) CreateWithStatus(in CreateInput, status models.JobStatus) (*models.Transcript, error) {
	if _, ok := s.store.Assets.Get(in.AssetID); !ok {
		return nil, apperr.NotFound("Asset", in.AssetID)
	}
	ts := s.now().UTC()
	t := &models.Transcript{
		ID:        s.store.IDs.Next("transcript"),
		AssetID:   in.AssetID,
		Language:  in.Language,
		Text:      in.Text,
		Segments:  []models.TranscriptSegment{},
		Status:    status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	s.store.Transcripts.Put(t.ID, t)

	s.mu.Lock()
	s.versions[t.ID] = []*models.Transcript{t.Clone()}
	s.audit[t.ID] = []AuditEntry{{
		Timestamp: ts,
		Action:    ActionCreate,
		Changes:   snapshotChanges(t),
	}}
	s.mu.Unlock()

	s.logger.Debug("transcript created",
		zap.String("transcript_id", t.ID),
		zap.String("asset_id", t.AssetID),
		zap.String("status", string(t.Status)))
	return t.Clone(), nil
}

// Get returns a transcript by id.
func (s *Service) Get(id string) (*models.Transcript, error) {
	t, ok := s.store.Transcripts.Get(id)
	if !ok {
		return nil, apperr.NotFound("Transcript", id)
	}
	return t, nil
}

// List returns all transcripts.
func (s *Service) List() []*models.Transcript {
	return s.store.Transcripts.List()
}

// Update applies a partial update, bumps updated_at, and records a version
// snapshot and a field-level audit diff.
func (s *Service) Update(id string, patch *models.TranscriptPatch) (*models.Transcript, error) {
	t, ok := s.store.Transcripts.Get(id)
	if !ok {
		return nil, apperr.NotFound("Transcript", id)
	}

	before := t.Clone()
	patch.Apply(t)
	t.UpdatedAt = s.bump(before.UpdatedAt)
	s.store.Transcripts.Put(id, t)

	s.record(id, AuditEntry{
		Timestamp: t.UpdatedAt,
		Action:    ActionUpdate,
		Changes:   diffChanges(before, t),
	}, t)
	return t.Clone(), nil
}

// AppendSegment appends an immutable segment to the transcript.
func (s *Service) AppendSegment(id string, seg models.TranscriptSegment) (*models.Transcript, error) {
	if seg.Start > seg.End {
		return nil, apperr.Validation("segment start must not exceed end")
	}
	t, ok := s.store.Transcripts.Get(id)
	if !ok {
		return nil, apperr.NotFound("Transcript", id)
	}

	t.Segments = append(t.Segments, seg)
	t.UpdatedAt = s.bump(t.UpdatedAt)
	s.store.Transcripts.Put(id, t)

	s.record(id, AuditEntry{
		Timestamp: t.UpdatedAt,
		Action:    ActionAppendSegment,
		Changes:   map[string]any{"segments": "appended"},
	}, t)
	return t.Clone(), nil
}

// Versions returns the version history. A created transcript always has at
// least one version; an unknown id is NotFound.
func (s *Service) Versions(id string) ([]*models.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	versions, ok := s.versions[id]
	if !ok {
		return nil, apperr.NotFound("Transcript", id)
	}
	out := make([]*models.Transcript, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.Clone())
	}
	return out, nil
}

// Audit returns the audit log for a transcript.
func (s *Service) Audit(id string) ([]AuditEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries, ok := s.audit[id]
	if !ok {
		return nil, apperr.NotFound("Transcript", id)
	}
	return append([]AuditEntry(nil), entries...), nil
}

// record appends a version snapshot and an audit entry under the lock.
func (s *Service) record(id string, entry AuditEntry, t *models.Transcript) {
	s.mu.Lock()
	s.versions[id] = append(s.versions[id], t.Clone())
	s.audit[id] = append(s.audit[id], entry)
	s.mu.Unlock()
}

// bump returns the current time, nudged forward when the clock has not
// advanced past prev so updated_at strictly increases on every mutation.
func (s *Service) bump(prev time.Time) time.Time {
	ts := s.now().UTC()
	if !ts.After(prev) {
		ts = prev.Add(time.Nanosecond)
	}
	return ts
}

// snapshotChanges dumps a whole transcript for the create audit entry.
func snapshotChanges(t *models.Transcript) map[string]any {
	return map[string]any{
		"id":         t.ID,
		"asset_id":   t.AssetID,
		"language":   t.Language,
		"text":       t.Text,
		"segments":   append([]models.TranscriptSegment(nil), t.Segments...),
		"status":     t.Status,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

// diffChanges maps each field whose value differed (deep equality) to its
// before/after pair. updated_at always appears since every mutation bumps it.
func diffChanges(before, after *models.Transcript) map[string]any {
	changes := make(map[string]any)
	if before.Language != after.Language {
		changes["language"] = FieldChange{Before: before.Language, After: after.Language}
	}
	if before.Text != after.Text {
		changes["text"] = FieldChange{Before: before.Text, After: after.Text}
	}
	if before.Status != after.Status {
		changes["status"] = FieldChange{Before: before.Status, After: after.Status}
	}
	if !reflect.DeepEqual(before.Segments, after.Segments) {
		changes["segments"] = FieldChange{Before: before.Segments, After: after.Segments}
	}
	if !before.UpdatedAt.Equal(after.UpdatedAt) {
		changes["updated_at"] = FieldChange{Before: before.UpdatedAt, After: after.UpdatedAt}
	}
	return changes
}
