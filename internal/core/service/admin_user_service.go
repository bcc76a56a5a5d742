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
)

// AdminUserService manages administrator accounts from the admin panel.
type AdminUserService struct {
	repo   ports.AdminRepository
	hasher ports.PasswordHasher
	events ports.AuthEventPublisher
	log    zerolog.Logger
	now    func() time.Time
}

func NewAdminUserService(
	repo ports.AdminRepository,
	hasher ports.PasswordHasher,
	events ports.AuthEventPublisher,
	log zerolog.Logger,
) *AdminUserService {
	return &AdminUserService{repo: repo, hasher: hasher, events: events, log: log, now: time.Now}
}

// Create adds an administrator. Only a superadmin may create another
// superadmin.
func (s *AdminUserService) Create(ctx context.Context, in ports.CreateAdminInput) (*domain.Administrator, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := in.Permissions.Validate(); err != nil {
		return nil, err
	}
	if err := authorizeRole(in.Actor, role); err != nil {
		return nil, err
	}
	return s.create(ctx, in, role)
}

func (s *AdminUserService) create(ctx context.Context, in ports.CreateAdminInput, role string) (*domain.Administrator, error) {
	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrConflict
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("create admin: lookup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	created, err := s.repo.Create(ctx, &domain.Administrator{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Permissions:  nonNilPermissions(in.Permissions),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrConflict
		}
		return nil, fmt.Errorf("create admin: insert: %w", err)
	}

	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventAdminCreated,
		Email:      created.Email,
		AccountID:  created.ID,
		ActorID:    in.Actor.ID,
		OccurredAt: s.now().UTC(),
	})
	return created, nil
}

func (s *AdminUserService) List(ctx context.Context) ([]domain.Administrator, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (s *AdminUserService) Get(ctx context.Context, id int64) (*domain.Administrator, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}

func (s *AdminUserService) Update(ctx context.Context, in ports.UpdateAdminInput) (*domain.Administrator, error) {
	if in.Email == "" {
		return nil, domain.ErrMissingFields
	}
	role, err := normalizeRole(in.Role)
	if err != nil {
		return nil, err
	}
	if err := in.Permissions.Validate(); err != nil {
		return nil, err
	}

	if err := authorizeRole(in.Actor, role); err != nil {
		return nil, err
	}

	admin, err := s.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := authorizeRole(in.Actor, admin.Role); err != nil {
		return nil, err
	}

	admin.Name = strings.TrimSpace(in.Name)
	admin.Email = in.Email
	admin.Role = role
	admin.Permissions = nonNilPermissions(in.Permissions)
	admin.Phone = strings.TrimSpace(in.Phone)
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		admin.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update admin: %w", err)
	}
	return admin, nil
}

// Delete removes the administrator together with the end-user account that
// shares its id.
func (s *AdminUserService) Delete(ctx context.Context, id int64, actor ports.Actor) error {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeRole(actor, admin.Role); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete admin: %w", err)
	}

	s.log.Info().Int64("admin_id", id).Int64("actor_id", actor.ID).Msg("admin deleted")
	s.events.Publish(domain.AuthEvent{
		Type:       domain.EventAdminDeleted,
		Email:      admin.Email,
		AccountID:  id,
		ActorID:    actor.ID,
		OccurredAt: s.now().UTC(),
	})
	return nil
}

// SeedBootstrapAdmin creates the first administrator when none exist. It is
// a no-op when email or password is empty or the table already has rows.
func (s *AdminUserService) SeedBootstrapAdmin(ctx context.Context, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("seed admin: count: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	all := make(domain.Permissions, len(domain.Capabilities))
	for _, c := range domain.Capabilities {
		all[c] = true
	}

	_, err = s.create(ctx, ports.CreateAdminInput{
		Name:        "Administrator",
		Email:       email,
		Password:    password,
		Permissions: all,
	}, domain.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}

func normalizeRole(role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return domain.RoleAdmin, nil
	}
	if !domain.IsValidRole(role) {
		return "", fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	return role, nil
}

// authorizeRole rejects a change that grants or touches the superadmin role
// unless the actor is a superadmin.
func authorizeRole(actor ports.Actor, role string) error {
	if role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return fmt.Errorf("%w: only a superadmin may manage superadmin accounts", domain.ErrForbidden)
	}
	return nil
}

func nonNilPermissions(p domain.Permissions) domain.Permissions {
	if p == nil {
		return domain.Permissions{}
	}
	return p
}
