// Package store provides volatile in-memory tables for all entity kinds.
//
// All state lives for the process lifetime only; a restart resets everything.
// That is a deliberate property of the system, not an omission.
package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/quotedeck/quotedeck/internal/models"
)

// Cloner is implemented by entities that can deep-copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// Table is a mutex-guarded map of id -> entity. Entities are stored and
// returned as deep copies so callers never share mutable state with the table.
type Table[T Cloner[T]] struct {
	mu    sync.RWMutex
	items map[string]T
}

// NewTable returns an empty table.
func NewTable[T Cloner[T]]() *Table[T] {
	return &Table[T]{items: make(map[string]T)}
}

// Get returns a copy of the entity with the given id.
func (t *Table[T]) Get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	item, ok := t.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return item.Clone(), true
}

// Put stores a copy of the entity under the given id, replacing any existing one.
func (t *Table[T]) Put(id string, item T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[id] = item.Clone()
}

// Delete removes the entity with the given id. Returns false when absent.
func (t *Table[T]) Delete(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	return true
}

// List returns copies of all entities, ordered by id for stable output.
// Ids issued by Sequence sort by their numeric suffix, so insertion order is
// preserved past nine entities ("kind_2" before "kind_10").
func (t *Table[T]) List() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]string, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return lessID(ids[i], ids[j]) })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.items[id].Clone())
	}
	return out
}

// lessID orders "{kind}_{n}" ids by kind then numeric n; anything else falls
// back to plain string comparison.
func lessID(a, b string) bool {
	ka, na, okA := splitID(a)
	kb, nb, okB := splitID(b)
	if okA && okB && ka == kb {
		return na < nb
	}
	return a < b
}

func splitID(id string) (kind string, n int, ok bool) {
	i := strings.LastIndex(id, "_")
	if i < 0 {
		return "", 0, false
	}
	v, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, false
	}
	return id[:i], v, true
}

// Len returns the number of stored entities.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.items)
}

// Sequence issues monotonically increasing per-kind ids of the form "{kind}_{n}",
// n starting at 1. Ids are never reused, even after deletes.
type Sequence struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{counters: make(map[string]int)}
}

// Next returns the next id for the given kind.
func (s *Sequence) Next(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[kind]++
	return fmt.Sprintf("%s_%d", kind, s.counters[kind])
}

// Store bundles the per-kind tables and the shared id sequence.
type Store struct {
	Users       *Table[*models.User]
	Assets      *Table[*models.Asset]
	Transcripts *Table[*models.Transcript]
	Quotes      *Table[*models.Quote]
	Exports     *Table[*models.ExportJob]
	IDs         *Sequence
}

// New returns an empty store.
func New() *Store {
	return &Store{
		Users:       NewTable[*models.User](),
		Assets:      NewTable[*models.Asset](),
		Transcripts: NewTable[*models.Transcript](),
		Quotes:      NewTable[*models.Quote](),
		Exports:     NewTable[*models.ExportJob](),
		IDs:         NewSequence(),
	}
}

// TranscriptForAsset returns the first transcript (by id order) belonging to
// the given asset, or nil when none exists yet.
func (s *Store) TranscriptForAsset(assetID string) *models.Transcript {
	for _, t := range s.Transcripts.List() {
		if t.AssetID == assetID {
			return t
		}
	}
	return nil
}
