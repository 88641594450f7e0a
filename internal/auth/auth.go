// Package auth provides mock bearer-token authentication. Tokens are never
// verified; the token string itself identifies (and on first use creates)
// the user.
package auth

import (
	"strings"

	"go.uber.org/zap"

	"github.com/quotedeck/quotedeck/internal/apperr"
	"github.com/quotedeck/quotedeck/internal/models"
	"github.com/quotedeck/quotedeck/internal/store"
)

// Resolver maps bearer tokens to users.
type Resolver struct {
	store  *store.Store
	logger *zap.Logger
}

// NewResolver creates a token resolver backed by the given store.
func NewResolver(st *store.Store, logger *zap.Logger) *Resolver {
	return &Resolver{store: st, logger: logger}
}

// ParseBearer extracts the token from an Authorization header of the form
// "Bearer <token>". Returns "" when the header is missing or malformed.
func ParseBearer(authorization string) string {
	parts := strings.Fields(authorization)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// CurrentUser resolves the user for an Authorization header value, creating
// a placeholder user on first use. Tokens containing "@" are treated as
// emails; anything else gets an example.com address synthesized.
func (r *Resolver) CurrentUser(authorization string) (*models.User, error) {
	token := ParseBearer(authorization)
	if token == "" {
		return nil, apperr.Unauthorized("Missing or invalid Authorization header")
	}

	if existing, ok := r.store.Users.Get(token); ok {
		return existing, nil
	}

	user := Synthesize(token)
	r.store.Users.Put(user.ID, user)
	r.logger.Debug("user created from token", zap.String("user_id", user.ID))
	return user.Clone(), nil
}

// Synthesize builds a user shape from a raw token string without storing it.
func Synthesize(token string) *models.User {
	email := token
	name := token
	if strings.Contains(token, "@") {
		name = strings.SplitN(token, "@", 2)[0]
	} else {
		email = token + "@example.com"
	}
	return &models.User{ID: token, Email: email, Name: name}
}
