package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service implements the console's single-operator login. Tokens live in
// process memory and expire with the process.
//
// When no admin credentials are configured, any non-empty pair is accepted,
// which is the stand-in login behavior the console started with.
type Service struct {
	mu       sync.RWMutex
	username string
	password string
	tokens   map[string]string
}

// NewService returns a Service checking logins against the given credentials.
// Empty credentials disable the check.
func NewService(username, password string) *Service {
	return &Service{
		username: username,
		password: password,
		tokens:   make(map[string]string),
	}
}

// Login verifies the credentials and issues a bearer token.
func (s *Service) Login(_ context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	if s.username != "" && (username != s.username || password != s.password) {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = username
	s.mu.Unlock()

	return token, nil
}

// Validate reports whether the token belongs to a logged-in operator and
// returns their username.
func (s *Service) Validate(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.tokens[token]
	return username, ok
}

// Logout revokes a token. Revoking an unknown token is a no-op.
func (s *Service) Logout(_ context.Context, token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
