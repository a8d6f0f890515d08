package session

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/DanielPopoola/shelter-fetch/internal/core/ports"
)

// TokenKey is the storage key the bearer credential lives under.
const TokenKey = "access_token"

var _ ports.CredentialSource = (*TokenStore)(nil)

// TokenStore owns the bearer credential of the current session. Storage
// failures are logged and treated as an absent credential: the backend then
// decides what an anonymous caller may see.
type TokenStore struct {
	mu      sync.Mutex
	storage ports.Storage
	logger  *slog.Logger
}

func NewTokenStore(storage ports.Storage, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenStore{storage: storage, logger: logger}
}

func (s *TokenStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked()
}

func (s *TokenStore) getLocked() (string, bool) {
	token, ok, err := s.storage.Get(TokenKey)
	if err != nil {
		s.logger.Warn("failed to read credential", "error", err)
		return "", false
	}
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

func (s *TokenStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Set(TokenKey, strings.TrimSpace(token))
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ClearIf clears the credential if it is still token and reports whether it
// did.
func (s *TokenStore) ClearIf(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.getLocked()
	if !ok || current != strings.TrimSpace(token) {
		return false
	}
	s.clearLocked()
	return true
}

func (s *TokenStore) clearLocked() {
	if err := s.storage.Delete(TokenKey); err != nil {
		s.logger.Warn("failed to clear credential", "error", err)
	}
}
