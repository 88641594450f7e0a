package server

import (
	"net/http"

	"github.com/quotedeck/quotedeck/internal/auth"
	"github.com/quotedeck/quotedeck/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// handleLogin accepts any email/password pair and returns a mock bearer
// token equal to the email. The user is created on first authenticated use,
// not here.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, loginResponse{
		AccessToken: req.Email,
		TokenType:   "bearer",
		User:        auth.Synthesize(req.Email),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.resolver.CurrentUser(r.Header.Get("Authorization"))
	if err != nil {
		s.respondErr(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]*models.User{"user": user})
}
