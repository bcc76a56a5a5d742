package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
	"github.com/shopfront/storefront/pkg/token"
)

// AuthService implements storefront registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	events ports.AuthEventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	events ports.AuthEventPublisher,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// Register creates an account. No token is issued; the client logs in
// separately.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.EndUser, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrConflict
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, &domain.EndUser{
		Name:         name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		// A concurrent registration can win the unique index after our lookup.
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("register: insert: %w", err)
	}

	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventRegistered,
		Email:      created.Email,
		AccountID:  created.ID,
		RemoteIP:   in.RemoteIP,
		OccurredAt: s.now().UTC(),
	})
	return created, nil
}

// Login checks credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.loginFailed(in, 0, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.loginFailed(in, user.ID, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	signed, expiresAt, err := s.tokens.Issue(token.Claims{
		AccountID: user.ID,
		Email:     user.Email,
		Name:      user.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventLoginSucceeded,
		Email:      user.Email,
		AccountID:  user.ID,
		RemoteIP:   in.RemoteIP,
		OccurredAt: s.now().UTC(),
	})
	return &ports.LoginResult{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}

// Profile returns the account behind a verified token.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.EndUser, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

func (s *AuthService) loginFailed(in ports.LoginInput, accountID int64, reason string) {
	s.log.Info().
		Str("email", in.Email).
		Str("remote_ip", in.RemoteIP).
		Str("reason", reason).
		Msg("login rejected")

	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventLoginFailed,
		Email:      in.Email,
		AccountID:  accountID,
		RemoteIP:   in.RemoteIP,
		OccurredAt: s.now().UTC(),
	})
}
