package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
	"github.com/shopfront/storefront/pkg/token"
)

// AdminAuthService implements admin-panel login. The resulting token is
// delivered as a cookie by the transport layer.
type AdminAuthService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	events ports.AuthEventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewAdminAuthService(
	repo ports.AdminRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	events ports.AuthEventPublisher,
	log zerolog.Logger,
) *AdminAuthService {
	return &AdminAuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

func (s *AdminAuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.AdminLoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}

	admin, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.rejected(in, 0, "unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("admin login: lookup: %w", err)
	}

	if !s.hasher.Verify(in.Password, admin.PasswordHash) {
		s.rejected(in, admin.ID, "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	role := admin.Role
	if role == "" {
		role = domain.RoleAdmin
	}

	signed, expiresAt, err := s.tokens.Issue(token.Claims{
		AccountID: admin.ID,
		Email:     admin.Email,
		Role:      role,
	})
	if err != nil {
		return nil, fmt.Errorf("admin login: %w", err)
	}

	s.log.Info().Int64("admin_id", admin.ID).Str("role", role).Msg("admin login succeeded")
	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventAdminLoginSucceeded,
		Email:      admin.Email,
		AccountID:  admin.ID,
		RemoteIP:   in.RemoteIP,
		OccurredAt: s.now().UTC(),
	})
	return &ports.AdminLoginResult{Token: signed, ExpiresAt: expiresAt, Admin: admin}, nil
}

func (s *AdminAuthService) rejected(in ports.LoginInput, accountID int64, reason string) {
	s.log.Warn().
		Str("email", in.Email).
		Str("remote_ip", in.RemoteIP).
		Str("reason", reason).
		Msg("admin login rejected")

	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventAdminLoginFailed,
		Email:      in.Email,
		AccountID:  accountID,
		RemoteIP:   in.RemoteIP,
		OccurredAt: s.now().UTC(),
	})
}
