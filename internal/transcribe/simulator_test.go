package transcribe

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/config"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

func newSimulator(t *testing.T, mode string, delayMS int) (*Simulator, *store.Store) {
	t.Helper()
	st := store.New()
	st.Assets.Put("asset_1", &models.Asset{ID: "asset_1", Filename: "talk.mp3"})
	svc := transcript.NewService(st, zap.NewNop())
	cfg := config.TranscriptionConfig{Mode: mode, DelayMS: delayMS}
	return NewSimulator(cfg, st, svc, zap.NewNop()), st
}

func TestStart_inline(t *testing.T) {
	sim, st := newSimulator(t, config.ModeInline, 0)

	tr, err := sim.Start("asset_1")
	if err != nil {
		t.Fatal(err)
	}
	if tr == nil {
		t.Fatal("inline mode should return the transcript")
	}
	if tr.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", tr.Status)
	}
	if tr.Text != "Simulated transcript for asset asset_1." {
		t.Errorf("text = %q", tr.Text)
	}

	stored, ok := st.Transcripts.Get(tr.ID)
	if !ok || stored.Status != models.StatusCompleted {
		t.Error("completed transcript should be stored")
	}

	select {
	case id := <-sim.Done():
		if id != tr.ID {
			t.Errorf("done signal = %q, want %q", id, tr.ID)
		}
	default:
		t.Error("inline completion should signal done")
	}
}

func TestStart_deferred(t *testing.T) {
	sim, st := newSimulator(t, config.ModeDeferred, 10)

	tr, err := sim.Start("asset_1")
	if err != nil {
		t.Fatal(err)
	}
	if tr != nil {
		t.Fatal("deferred mode should not return a transcript")
	}
	if st.TranscriptForAsset("asset_1") != nil {
		t.Error("deferred mode should create nothing at upload time")
	}

	select {
	case id := <-sim.Done():
		stored, ok := st.Transcripts.Get(id)
		if !ok {
			t.Fatal("signaled transcript missing from store")
		}
		if stored.Status != models.StatusCompleted || stored.Text == "" {
			t.Errorf("transcript = %+v", stored)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deferred completion never signaled")
	}
}

func TestComplete_idempotent(t *testing.T) {
	sim, st := newSimulator(t, config.ModeInline, 0)

	tr, err := sim.Start("asset_1")
	if err != nil {
		t.Fatal(err)
	}
	<-sim.Done()

	before, _ := st.Transcripts.Get(tr.ID)
	again, err := sim.Complete(tr.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !again.UpdatedAt.Equal(before.UpdatedAt) {
		t.Error("completing an already-completed transcript must not rewrite it")
	}

	select {
	case <-sim.Done():
		t.Error("idempotent completion should not signal again")
	default:
	}
}

func TestComplete_missingTranscript(t *testing.T) {
	sim, _ := newSimulator(t, config.ModeInline, 0)
	tr, err := sim.Complete("transcript_404")
	if err != nil {
		t.Fatal(err)
	}
	if tr != nil {
		t.Error("missing transcript should be swallowed, not invented")
	}
}

func TestStart_unknownAssetInline(t *testing.T) {
	sim, _ := newSimulator(t, config.ModeInline, 0)
	if _, err := sim.Start("asset_404"); err == nil {
		t.Fatal("inline start should surface unknown asset")
	}
}
