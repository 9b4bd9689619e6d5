// Package session holds the bearer token for the current RMOS session.
//
// The token is kept in memory and mirrored to a JSON file so a session
// survives restarts, the terminal analog of the browser's localStorage.
// Absence of a token means unauthenticated.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store is the process-wide session state holder. All methods are safe for
// concurrent use; the HTTP client reads the token while the CLI goroutine
// may be logging in or out.
type Store struct {
	mu    sync.Mutex
	token string
	file  string
}

type sessionFile struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"saved_at"`
}

// NewStore creates a session store persisting to the given file. If the file
// already holds a token that has not expired, the session is restored.
func NewStore(file string) *Store {
	s := &Store{file: file}
	s.restore()
	return s
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Active reports whether a token is present.
func (s *Store) Active() bool {
	return s.Token() != ""
}

// Set stores the token and persists it. A persist failure does not fail the
// login; it only costs the user a re-login next run.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return s.persist(token)
}

// Clear drops the token and removes the persisted copy. It reports whether a
// token was actually present; clearing an empty session is a no-op, which
// keeps 401 handling idempotent across concurrent requests.
func (s *Store) Clear() bool {
	s.mu.Lock()
	cleared := s.token != ""
	s.token = ""
	s.mu.Unlock()
	if cleared && s.file != "" {
		_ = os.Remove(s.file)
	}
	return cleared
}

// ExpiresAt peeks at the token's registered expiry claim without verifying
// the signature (the server owns validation; the claim is only used to avoid
// presenting a token that is already dead). The second result is false when
// the token is absent, opaque, or carries no expiry.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	return peekExpiry(token)
}

func peekExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) restore() {
	if s.file == "" {
		return
	}
	data, err := os.ReadFile(s.file)
	if err != nil {
		return
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil || sf.Token == "" {
		return
	}
	if exp, ok := peekExpiry(sf.Token); ok && time.Now().After(exp) {
		_ = os.Remove(s.file)
		return
	}
	s.mu.Lock()
	s.token = sf.Token
	s.mu.Unlock()
}

func (s *Store) persist(token string) error {
	if s.file == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.file), 0o700); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	data, err := json.Marshal(sessionFile{Token: token, SavedAt: time.Now()})
	if err != nil {
		return err
	}
	return os.WriteFile(s.file, data, 0o600)
}
