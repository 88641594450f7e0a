package transcript

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
)

func newService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	st.Assets.Put("asset_1", &models.Asset{ID: "asset_1", Filename: "talk.mp3", AssetType: models.AssetAudio})
	return NewService(st, zap.NewNop()), st
}

func TestCreate(t *testing.T) {
	svc, st := newService(t)

	tr, err := svc.Create(CreateInput{AssetID: "asset_1", Language: "en"})
	require.NoError(t, err)
	assert.Equal(t, "transcript_1", tr.ID)
	assert.Equal(t, models.StatusPending, tr.Status)
	assert.NotNil(t, tr.Segments)

	withText, err := svc.Create(CreateInput{AssetID: "asset_1", Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, withText.Status)

	_, ok := st.Transcripts.Get("transcript_1")
	assert.True(t, ok)
}

func TestCreate_unknownAsset(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Create(CreateInput{AssetID: "asset_404"})
	require.Error(t, err)
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestUpdate_versionsAndAudit(t *testing.T) {
	svc, _ := newService(t)
	tr, err := svc.Create(CreateInput{AssetID: "asset_1"})
	require.NoError(t, err)

	const n = 4
	for i := 1; i <= n; i++ {
		text := fmt.Sprintf("revision %d", i)
		_, err := svc.Update(tr.ID, &models.TranscriptPatch{Text: &text})
		require.NoError(t, err)
	}

	versions, err := svc.Versions(tr.ID)
	require.NoError(t, err)
	require.Len(t, versions, n+1)
	assert.Equal(t, "", versions[0].Text)
	assert.Equal(t, "revision 4", versions[n].Text)

	audit, err := svc.Audit(tr.ID)
	require.NoError(t, err)
	require.Len(t, audit, n+1)
	assert.Equal(t, ActionCreate, audit[0].Action)
	for i := 1; i <= n; i++ {
		entry := audit[i]
		assert.Equal(t, ActionUpdate, entry.Action)
		change, ok := entry.Changes["text"].(FieldChange)
		require.True(t, ok, "update entry %d should diff text", i)
		assert.Equal(t, fmt.Sprintf("revision %d", i), change.After)
	}
}

func TestUpdate_diffOnlyChangedFields(t *testing.T) {
	svc, _ := newService(t)
	tr, err := svc.Create(CreateInput{AssetID: "asset_1", Language: "en", Text: "same"})
	require.NoError(t, err)

	status := models.StatusCanceled
	_, err = svc.Update(tr.ID, &models.TranscriptPatch{Status: &status})
	require.NoError(t, err)

	audit, err := svc.Audit(tr.ID)
	require.NoError(t, err)
	changes := audit[len(audit)-1].Changes
	assert.Contains(t, changes, "status")
	assert.Contains(t, changes, "updated_at")
	assert.NotContains(t, changes, "text")
	assert.NotContains(t, changes, "language")
}

func TestUpdate_updatedAtStrictlyIncreases(t *testing.T) {
	svc, _ := newService(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tr, err := svc.Create(CreateInput{AssetID: "asset_1"})
	require.NoError(t, err)

	text := "a"
	upd1, err := svc.Update(tr.ID, &models.TranscriptPatch{Text: &text})
	require.NoError(t, err)
	upd2, err := svc.Update(tr.ID, &models.TranscriptPatch{Text: &text})
	require.NoError(t, err)

	assert.True(t, upd1.UpdatedAt.After(tr.UpdatedAt), "first update must advance updated_at")
	assert.True(t, upd2.UpdatedAt.After(upd1.UpdatedAt), "second update must advance updated_at even with a frozen clock")
}

func TestAppendSegment(t *testing.T) {
	svc, _ := newService(t)
	tr, err := svc.Create(CreateInput{AssetID: "asset_1"})
	require.NoError(t, err)

	updated, err := svc.AppendSegment(tr.ID, models.TranscriptSegment{Start: 0, End: 2.5, Text: "hello", Speaker: "A"})
	require.NoError(t, err)
	require.Len(t, updated.Segments, 1)

	audit, err := svc.Audit(tr.ID)
	require.NoError(t, err)
	last := audit[len(audit)-1]
	assert.Equal(t, ActionAppendSegment, last.Action)
	assert.Equal(t, "appended", last.Changes["segments"])

	versions, err := svc.Versions(tr.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 2)
}

func TestAppendSegment_invalidTiming(t *testing.T) {
	svc, _ := newService(t)
	tr, err := svc.Create(CreateInput{AssetID: "asset_1"})
	require.NoError(t, err)

	_, err = svc.AppendSegment(tr.ID, models.TranscriptSegment{Start: 5, End: 1, Text: "backwards"})
	require.Error(t, err)
	assert.Equal(t, 400, apperr.HTTPStatus(err))
}

func TestVersionsAndAudit_unknownID(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Versions("transcript_404")
	assert.Equal(t, 404, apperr.HTTPStatus(err))
	_, err = svc.Audit("transcript_404")
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestVersionSnapshotsAreIsolated(t *testing.T) {
	svc, _ := newService(t)
	tr, err := svc.Create(CreateInput{AssetID: "asset_1", Text: "v1"})
	require.NoError(t, err)

	text := "v2"
	_, err = svc.Update(tr.ID, &models.TranscriptPatch{Text: &text})
	require.NoError(t, err)

	versions, err := svc.Versions(tr.ID)
	require.NoError(t, err)
	versions[0].Text = "mutated"

	again, err := svc.Versions(tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1", again[0].Text)
}
