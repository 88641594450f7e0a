package server

import (
	"net/http"
	"time"
)

// handleServiceStatus reports service identity and in-memory resource counts.
func (s *Server) handleServiceStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service":     "QuoteDeck",
		"server_time": time.Now().UTC().Format(time.RFC3339),
		"counts": map[string]int{
			"users":       s.store.Users.Len(),
			"assets":      s.store.Assets.Len(),
			"transcripts": s.store.Transcripts.Len(),
			"quotes":      s.store.Quotes.Len(),
			"exports":     s.store.Exports.Len(),
		},
		"notes": []string{
			"All stores are in-memory; data resets on restart.",
		},
	})
}
