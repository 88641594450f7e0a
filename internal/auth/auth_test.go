package auth

import (
	"testing"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/store"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"BEARER demo@example.com", "demo@example.com"},
		{"", ""},
		{"Bearer", ""},
		{"Basic abc123", ""},
		{"Bearer a b", ""},
	}
	for _, tt := range tests {
		if got := ParseBearer(tt.header); got != tt.want {
			t.Errorf("ParseBearer(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestCurrentUser_emailToken(t *testing.T) {
	r := NewResolver(store.New(), zap.NewNop())
	user, err := r.CurrentUser("Bearer demo@example.org")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != "demo@example.org" || user.Email != "demo@example.org" || user.Name != "demo" {
		t.Errorf("user = %+v", user)
	}
}

func TestCurrentUser_opaqueToken(t *testing.T) {
	r := NewResolver(store.New(), zap.NewNop())
	user, err := r.CurrentUser("Bearer user_1")
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "user_1@example.com" || user.Name != "user_1" {
		t.Errorf("user = %+v", user)
	}
}

func TestCurrentUser_reusesExisting(t *testing.T) {
	st := store.New()
	r := NewResolver(st, zap.NewNop())
	first, err := r.CurrentUser("Bearer alice")
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.CurrentUser("Bearer alice")
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Error("same token should resolve to the same user")
	}
	if st.Users.Len() != 1 {
		t.Errorf("users stored = %d, want 1", st.Users.Len())
	}
}

func TestCurrentUser_missingHeader(t *testing.T) {
	r := NewResolver(store.New(), zap.NewNop())
	_, err := r.CurrentUser("")
	if apperr.HTTPStatus(err) != 401 {
		t.Fatalf("expected 401, got %v", err)
	}
}
