package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

type stubAdminUserService struct {
	createFn func(ctx context.Context, in ports.CreateAdminInput) (*domain.Administrator, error)
	updateFn func(ctx context.Context, in ports.UpdateAdminInput) (*domain.Administrator, error)
	deleteFn func(ctx context.Context, id int64, actor ports.Actor) error
	admins   []domain.Administrator
}

func (s *stubAdminUserService) Create(ctx context.Context, in ports.CreateAdminInput) (*domain.Administrator, error) {
	return s.createFn(ctx, in)
}

func (s *stubAdminUserService) List(context.Context) ([]domain.Administrator, error) {
	return s.admins, nil
}

func (s *stubAdminUserService) Get(_ context.Context, id int64) (*domain.Administrator, error) {
	for i := range s.admins {
		if s.admins[i].ID == id {
			return &s.admins[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubAdminUserService) Update(ctx context.Context, in ports.UpdateAdminInput) (*domain.Administrator, error) {
	return s.updateFn(ctx, in)
}

func (s *stubAdminUserService) Delete(ctx context.Context, id int64, actor ports.Actor) error {
	return s.deleteFn(ctx, id, actor)
}

func TestAdminUserHandler_Create_AcceptsPermissionList(t *testing.T) {
	stub := &stubAdminUserService{
		createFn: func(_ context.Context, in ports.CreateAdminInput) (*domain.Administrator, error) {
			if in.Actor.ID != 1 || in.Actor.Role != domain.RoleSuperAdmin {
				t.Fatalf("expected actor from identity, got %+v", in.Actor)
			}
			if !in.Permissions.Has(domain.CapAddProduct) || !in.Permissions.Has(domain.CapCreateCoupon) {
				t.Fatalf("unexpected permissions: %v", in.Permissions)
			}
			return &domain.Administrator{ID: 5, Email: in.Email, Role: domain.RoleAdmin, Permissions: in.Permissions, Phone: in.Phone}, nil
		},
	}
	h := NewAdminUserHandler(stub)

	body := `{"name":"Ed","email":"ed@example.com","password":"pw","permissions":["addProduct","createCoupon"],"phone":"+91 555"}`
	rec := serve(newTestEcho(), h.Create, jsonRequest(http.MethodPost, "/api/admin/users", body), withIdentity(1, domain.RoleSuperAdmin))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp adminResponse
	decode(t, rec, &resp)
	if resp.ID != 5 || len(resp.Permissions) != 2 || resp.Phone != "+91 555" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAdminUserHandler_Create_Rejections(t *testing.T) {
	stub := &stubAdminUserService{
		createFn: func(context.Context, ports.CreateAdminInput) (*domain.Administrator, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAdminUserHandler(stub)

	for _, body := range []string{
		`{"email":"ed@example.com"}`,
		`{"email":"ed@example.com","password":"pw","role":"owner"}`,
		`{"email":"ed@example.com","password":"pw","permissions":"addProduct"}`,
		`{"password":"pw"}`,
	} {
		rec := serve(newTestEcho(), h.Create, jsonRequest(http.MethodPost, "/api/admin/users", body), withIdentity(1, domain.RoleAdmin))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAdminUserHandler_Update_ObjectPermissions(t *testing.T) {
	stub := &stubAdminUserService{
		updateFn: func(_ context.Context, in ports.UpdateAdminInput) (*domain.Administrator, error) {
			if in.ID != 3 || in.Password != "" || in.Actor.ID != 4 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if !in.Permissions.Has(domain.CapDeleteProduct) || in.Permissions.Has(domain.CapAddProduct) {
				t.Fatalf("unexpected permissions: %v", in.Permissions)
			}
			return &domain.Administrator{ID: in.ID, Email: in.Email, Permissions: in.Permissions}, nil
		},
	}
	h := NewAdminUserHandler(stub)

	body := `{"email":"ed@example.com","permissions":{"deleteProduct":true,"addProduct":false}}`
	rec := serve(newTestEcho(), h.Update, jsonRequest(http.MethodPut, "/api/admin/users/3", body), func(c echo.Context) {
		withIdentity(4, domain.RoleAdmin)(c)
		withID("3")(c)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminUserHandler_GetAndDelete(t *testing.T) {
	var deleted, actor int64
	stub := &stubAdminUserService{
		admins: []domain.Administrator{{ID: 2, Email: "two@example.com", Role: domain.RoleEditor}},
		deleteFn: func(_ context.Context, id int64, by ports.Actor) error {
			if id != 2 {
				return domain.ErrNotFound
			}
			deleted, actor = id, by.ID
			return nil
		},
	}
	h := NewAdminUserHandler(stub)
	e := newTestEcho()

	if rec := serve(e, h.Get, jsonRequest(http.MethodGet, "/api/admin/users/2", ""), withID("2")); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := serve(e, h.Get, jsonRequest(http.MethodGet, "/api/admin/users/7", ""), withID("7")); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec := serve(e, h.Get, jsonRequest(http.MethodGet, "/api/admin/users/abc", ""), withID("abc")); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad id, got %d", rec.Code)
	}

	prep := func(id string) func(c echo.Context) {
		return func(c echo.Context) {
			withIdentity(9, domain.RoleSuperAdmin)(c)
			withID(id)(c)
		}
	}
	if rec := serve(e, h.Delete, jsonRequest(http.MethodDelete, "/api/admin/users/2", ""), prep("2")); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deleted != 2 || actor != 9 {
		t.Fatalf("unexpected delete call: id=%d actor=%d", deleted, actor)
	}
	if rec := serve(e, h.Delete, jsonRequest(http.MethodDelete, "/api/admin/users/8", ""), prep("8")); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminUserHandler_List(t *testing.T) {
	stub := &stubAdminUserService{admins: []domain.Administrator{
		{ID: 2, Email: "b@example.com", PasswordHash: "secret-hash"},
		{ID: 1, Email: "a@example.com"},
	}}
	h := NewAdminUserHandler(stub)

	rec := serve(newTestEcho(), h.List, jsonRequest(http.MethodGet, "/api/admin/users", ""), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []map[string]any
	decode(t, rec, &resp)
	if len(resp) != 2 || resp[0]["id"] != float64(2) {
		t.Fatalf("unexpected list: %+v", resp)
	}
	for _, a := range resp {
		if _, leaked := a["password_hash"]; leaked {
			t.Fatalf("password hash leaked: %+v", a)
		}
	}
}
