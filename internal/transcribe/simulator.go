// Package transcribe simulates the transcription pipeline. No real ASR is
// involved: completion writes placeholder text after either zero delay
// (inline mode) or a fixed short delay on a background goroutine (deferred
// mode).
package transcribe

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/config"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

// Simulator drives fake transcription jobs for uploaded assets.
type Simulator struct {
	cfg         config.TranscriptionConfig
	store       *store.Store
	transcripts *transcript.Service
	logger      *zap.Logger

	// done receives the transcript id after each completion, so callers
	// (tests, mostly) can synchronize without sleeping.
	done chan string
}

// NewSimulator creates a simulator using the configured mode and delay.
func NewSimulator(cfg config.TranscriptionConfig, st *store.Store, transcripts *transcript.Service, logger *zap.Logger) *Simulator {
	return &Simulator{
		cfg:         cfg,
		store:       st,
		transcripts: transcripts,
		logger:      logger,
		done:        make(chan string, 64),
	}
}

// Done exposes the completion signal. One transcript id is sent per
// completed job; the channel is buffered and sends never block.
func (s *Simulator) Done() <-chan string {
	return s.done
}

// Start kicks off simulated transcription for an asset.
//
// Inline mode creates the transcript in processing state and completes it
// before returning; the returned transcript is the completed record.
// Deferred mode returns nil immediately and creates the completed transcript
// after the configured delay.
func (s *Simulator) Start(assetID string) (*models.Transcript, error) {
	switch s.cfg.Mode {
	case config.ModeDeferred:
		go func() {
			time.Sleep(s.cfg.Delay())
			t, err := s.transcripts.CreateWithStatus(
				transcript.CreateInput{AssetID: assetID, Text: placeholderText(assetID)},
				models.StatusCompleted,
			)
			if err != nil {
				s.logger.Warn("deferred transcription failed", zap.String("asset_id", assetID), zap.Error(err))
				return
			}
			s.signal(t.ID)
		}()
		return nil, nil
	default:
		t, err := s.transcripts.CreateWithStatus(
			transcript.CreateInput{AssetID: assetID},
			models.StatusProcessing,
		)
		if err != nil {
			return nil, err
		}
		return s.Complete(t.ID)
	}
}

// Complete marks a transcript completed with placeholder text. Idempotent:
// an already-completed transcript is returned unchanged.
func (s *Simulator) Complete(transcriptID string) (*models.Transcript, error) {
	t, ok := s.store.Transcripts.Get(transcriptID)
	if !ok {
		s.logger.Warn("transcription target vanished", zap.String("transcript_id", transcriptID))
		return nil, nil
	}
	if t.Status == models.StatusCompleted {
		return t, nil
	}

	text := placeholderText(t.AssetID)
	status := models.StatusCompleted
	updated, err := s.transcripts.Update(transcriptID, &models.TranscriptPatch{Text: &text, Status: &status})
	if err != nil {
		return nil, err
	}
	s.signal(updated.ID)
	return updated, nil
}

func (s *Simulator) signal(transcriptID string) {
	select {
	case s.done <- transcriptID:
	default:
	}
}

func placeholderText(assetID string) string {
	return fmt.Sprintf("Simulated transcript for asset %s.", assetID)
}
