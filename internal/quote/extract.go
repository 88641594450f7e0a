package quote

import (
	"strings"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

const (
	defaultMaxCandidates = 5
	defaultMinLength     = 20
)

// ExtractInput selects the source text for mock extraction. Text takes
// precedence over TranscriptID, which takes precedence over AssetID.
type ExtractInput struct {
	AssetID       string
	TranscriptID  string
	Text          string
	MaxCandidates int
	MinLength     int
}

// Extract generates mock quote candidates from transcript text and stores
// them. Sentences shorter than MinLength are skipped; at most MaxCandidates
// quotes are created, with synthesized sequential 5-second windows and a
// deterministic confidence ramp.
func (s *Service) Extract(in ExtractInput) ([]*models.Quote, error) {
	if in.MaxCandidates == 0 {
		in.MaxCandidates = defaultMaxCandidates
	}
	if in.MinLength == 0 {
		in.MinLength = defaultMinLength
	}

	sourceText, transcriptID, err := s.resolveSource(in)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, 0)
	for _, sentence := range splitSentences(sourceText) {
		trimmed := strings.TrimSpace(sentence)
		if len([]rune(trimmed)) >= in.MinLength {
			candidates = append(candidates, trimmed)
		}
	}
	if len(candidates) > in.MaxCandidates {
		candidates = candidates[:in.MaxCandidates]
	}

	ts := s.now().UTC()
	created := make([]*models.Quote, 0, len(candidates))
	for i, sentence := range candidates {
		start := float64(i * 5)
		end := start + 5
		conf := clamp(0.5+0.1*float64(i%5), 0.5, 0.99)
		q := &models.Quote{
			ID:           s.store.IDs.Next("quote"),
			TranscriptID: transcriptID,
			Text:         sentence,
			Start:        &start,
			End:          &end,
			Confidence:   &conf,
			Tags:         []string{},
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		s.store.Quotes.Put(q.ID, q)
		created = append(created, q.Clone())
	}
	return created, nil
}

// resolveSource picks the source text and the transcript the extracted
// quotes will link to.
func (s *Service) resolveSource(in ExtractInput) (text string, transcriptID string, err error) {
	if in.Text != "" {
		ref, err := s.resolveLinkForText(in)
		if err != nil {
			return "", "", err
		}
		return in.Text, ref, nil
	}
	if in.TranscriptID != "" {
		t, ok := s.store.Transcripts.Get(in.TranscriptID)
		if !ok {
			return "", "", apperr.NotFound("Transcript", in.TranscriptID)
		}
		return t.Text, t.ID, nil
	}
	if in.AssetID != "" {
		t := s.store.TranscriptForAsset(in.AssetID)
		if t == nil {
			return "", "", apperr.NotFound("Transcript", "")
		}
		return t.Text, t.ID, nil
	}
	return "", "", apperr.Validation("provide one of: text, transcript_id, or asset_id")
}

// resolveLinkForText finds or creates the transcript that quotes extracted
// from raw text attach to. Without any reference, quotes link to a sentinel
// id that intentionally resolves to nothing.
func (s *Service) resolveLinkForText(in ExtractInput) (string, error) {
	if in.TranscriptID != "" {
		if _, ok := s.store.Transcripts.Get(in.TranscriptID); !ok {
			return "", apperr.NotFound("Transcript", in.TranscriptID)
		}
		return in.TranscriptID, nil
	}
	if in.AssetID != "" {
		if t := s.store.TranscriptForAsset(in.AssetID); t != nil {
			return t.ID, nil
		}
		t, err := s.transcripts.CreateWithStatus(
			transcript.CreateInput{AssetID: in.AssetID, Text: in.Text},
			models.StatusCompleted,
		)
		if err != nil {
			return "", err
		}
		return t.ID, nil
	}
	return "transcript_0", nil
}

// splitSentences breaks text on sentence-ending punctuation after
// collapsing runs of whitespace.
func splitSentences(text string) []string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}
	var sentences []string
	var current strings.Builder
	for _, r := range normalized {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
