package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/pkg/password"
)

var nopLogger = zerolog.Nop()

func testHasher() *password.Hasher {
	return password.NewHasherWithCost(bcrypt.MinCost)
}

// recordingPublisher collects audit events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (p *recordingPublisher) Publish(e domain.AuthEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []domain.AuthEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type stubUserRepo struct {
	users  map[int64]*domain.EndUser
	nextID int64

	// createErr, when set, is returned by Create after the lookup passed.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.EndUser)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.EndUser, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.EndUser, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.EndUser) (*domain.EndUser, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	clone := *user
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

type stubAdminRepo struct {
	admins map[int64]*domain.Administrator
	nextID int64

	// deleted records ids removed through Delete.
	deleted []int64
}

func newStubAdminRepo() *stubAdminRepo {
	return &stubAdminRepo{admins: make(map[int64]*domain.Administrator)}
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Administrator, error) {
	for _, a := range r.admins {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubAdminRepo) FindByID(_ context.Context, id int64) (*domain.Administrator, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) List(_ context.Context) ([]domain.Administrator, error) {
	out := make([]domain.Administrator, 0, len(r.admins))
	for _, a := range r.admins {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.admins)), nil
}

func (r *stubAdminRepo) Create(_ context.Context, admin *domain.Administrator) (*domain.Administrator, error) {
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return nil, domain.ErrConflict
		}
	}
	r.nextID++
	clone := *admin
	clone.ID = r.nextID
	r.admins[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAdminRepo) Update(_ context.Context, admin *domain.Administrator) error {
	if _, ok := r.admins[admin.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, a := range r.admins {
		if id != admin.ID && a.Email == admin.Email {
			return domain.ErrConflict
		}
	}
	clone := *admin
	r.admins[admin.ID] = &clone
	return nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.admins[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.admins, id)
	r.deleted = append(r.deleted, id)
	return nil
}
