package quote

import (
	"testing"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
	"github.com/quotedeck/quotedeck/internal/transcript"
)

// seedQuotes builds a store with two assets, one transcript each, and three
// quotes: approved w/ high confidence, pending w/ low confidence, and a
// pending one without confidence on the second asset.
func seedQuotes(t *testing.T) *Service {
	t.Helper()
	st := store.New()
	st.Assets.Put("asset_1", &models.Asset{ID: "asset_1", Filename: "a.mp3"})
	st.Assets.Put("asset_2", &models.Asset{ID: "asset_2", Filename: "b.mp4"})
	st.Transcripts.Put("transcript_1", &models.Transcript{ID: "transcript_1", AssetID: "asset_1"})
	st.Transcripts.Put("transcript_2", &models.Transcript{ID: "transcript_2", AssetID: "asset_2"})

	high, low := 0.9, 0.3
	st.Quotes.Put("quote_1", &models.Quote{ID: "quote_1", TranscriptID: "transcript_1", Text: "approved", Approved: true, Confidence: &high})
	st.Quotes.Put("quote_2", &models.Quote{ID: "quote_2", TranscriptID: "transcript_1", Text: "pending", Confidence: &low})
	st.Quotes.Put("quote_3", &models.Quote{ID: "quote_3", TranscriptID: "transcript_2", Text: "no confidence"})

	logger := zap.NewNop()
	return NewService(st, transcript.NewService(st, logger), logger)
}

func ids(quotes []*models.Quote) []string {
	out := make([]string, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, q.ID)
	}
	return out
}

func TestList_noFilter(t *testing.T) {
	svc := seedQuotes(t)
	items, err := svc.List(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Errorf("got %d quotes, want 3", len(items))
	}
}

func TestList_byAsset(t *testing.T) {
	svc := seedQuotes(t)
	items, err := svc.List(Filter{AssetID: "asset_1"})
	if err != nil {
		t.Fatal(err)
	}
	got := ids(items)
	if len(got) != 2 || got[0] != "quote_1" || got[1] != "quote_2" {
		t.Errorf("asset_1 quotes = %v", got)
	}
}

func TestList_byStatus(t *testing.T) {
	svc := seedQuotes(t)

	approved, err := svc.List(Filter{Status: StatusApproved})
	if err != nil {
		t.Fatal(err)
	}
	if len(approved) != 1 || approved[0].ID != "quote_1" {
		t.Errorf("approved = %v", ids(approved))
	}

	pending, err := svc.List(Filter{Status: StatusPending})
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Errorf("pending = %v", ids(pending))
	}
}

func TestList_invalidStatus(t *testing.T) {
	svc := seedQuotes(t)
	_, err := svc.List(Filter{Status: "rejected"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if apperr.HTTPStatus(err) != 400 {
		t.Errorf("status = %d, want 400", apperr.HTTPStatus(err))
	}
}

func TestList_minConfidenceExcludesNull(t *testing.T) {
	svc := seedQuotes(t)
	min := 0.2
	items, err := svc.List(Filter{MinConfidence: &min})
	if err != nil {
		t.Fatal(err)
	}
	// quote_3 has no confidence and must be excluded even at a low threshold.
	got := ids(items)
	if len(got) != 2 || got[0] != "quote_1" || got[1] != "quote_2" {
		t.Errorf("quotes = %v", got)
	}
}

func TestList_conjunctive(t *testing.T) {
	svc := seedQuotes(t)
	min := 0.5
	items, err := svc.List(Filter{AssetID: "asset_1", Status: StatusApproved, MinConfidence: &min})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "quote_1" {
		t.Errorf("quotes = %v", ids(items))
	}
}

func TestList_idempotent(t *testing.T) {
	svc := seedQuotes(t)
	f := Filter{Status: StatusPending}
	first, err := svc.List(f)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.List(f)
	if err != nil {
		t.Fatal(err)
	}
	a, b := ids(first), ids(second)
	if len(a) != len(b) {
		t.Fatalf("filter not idempotent: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("filter not idempotent: %v vs %v", a, b)
		}
	}
}
