package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("Quote", "quote_9"), http.StatusNotFound},
		{"validation", Validation("status must be 'approved' or 'pending'"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("missing token"), http.StatusUnauthorized},
		{"internal", Internal("export failed", errors.New("boom")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("context: %w", NotFound("Asset", "asset_1")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	if got := Message(NotFound("Quote", "quote_9")); got != "Quote not found: quote_9" {
		t.Errorf("message = %q", got)
	}
	if got := Message(NotFound("Transcript", "")); got != "Transcript not found" {
		t.Errorf("message = %q", got)
	}
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("message = %q", got)
	}
}

func TestInternalWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Internal("export failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Internal should wrap its cause")
	}
}
