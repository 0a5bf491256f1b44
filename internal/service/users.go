package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"btc_wallet/internal/domain"
	"btc_wallet/internal/repository"
)

// UserService registers and authenticates users.
type UserService struct {
	store  repository.Storage
	newKey func() (string, error)
}

// UserOption customizes a UserService.
type UserOption func(*UserService)

// WithKeyGenerator replaces the random API key source.
func WithKeyGenerator(gen func() (string, error)) UserOption {
	return func(s *UserService) { s.newKey = gen }
}

// NewUserService returns a service registering users in store.
func NewUserService(store repository.Storage, opts ...UserOption) *UserService {
	s := &UserService{store: store, newKey: newAPIKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user with a fresh id and API key. A key collision is a
// conflict the caller may retry.
func (s *UserService) Register(ctx context.Context) (domain.User, error) {
	apiKey, err := s.newKey()
	if err != nil {
		return domain.User{}, err
	}
	user := domain.User{ID: uuid.NewString(), APIKey: apiKey}

	users, err := s.store.Users().ReadAll(ctx)
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if u.APIKey == apiKey {
			return domain.User{}, domain.Conflict("API key collision; retry")
		}
	}

	err = s.store.Atomic(ctx, func(tx repository.Storage) error {
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate resolves an API key to its user.
func (s *UserService) Authenticate(ctx context.Context, apiKey string) (domain.User, error) {
	if apiKey == "" {
		return domain.User{}, domain.NotFound("User not found")
	}
	return s.store.Users().ReadByAPIKey(ctx, apiKey)
}

// newAPIKey returns 32 random bytes, base64url encoded without padding.
func newAPIKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
