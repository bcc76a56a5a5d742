package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// AdminUserHandler manages administrator accounts. Routes sit behind
// AdminGate and RequireRole.
type AdminUserHandler struct {
	service ports.AdminUserService
}

func NewAdminUserHandler(service ports.AdminUserService) *AdminUserHandler {
	return &AdminUserHandler{service: service}
}

// List handles GET /api/admin/users.
//
// @Summary      List administrators
// @Tags         admin-users
// @Produce      json
// @Success      200  {array}   adminResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminUserHandler) List(c echo.Context) error {
	admins, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminResponse, 0, len(admins))
	for i := range admins {
		out = append(out, toAdminResponse(&admins[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/admin/users/:id.
//
// @Summary      Get an administrator
// @Tags         admin-users
// @Produce      json
// @Param        id   path      int  true  "Administrator id"
// @Success      200  {object}  adminResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [get]
func (h *AdminUserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	admin, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminResponse(admin))
}

// Create handles POST /api/admin/users.
//
// @Summary      Create an administrator
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        body  body      adminRequest  true  "Administrator"
// @Success      201   {object}  adminResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/users [post]
func (h *AdminUserHandler) Create(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req adminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return domain.ErrMissingFields
	}
	perms, err := decodeRequestPermissions(req.Permissions)
	if err != nil {
		return err
	}

	admin, err := h.service.Create(c.Request().Context(), ports.CreateAdminInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: perms,
		Phone:       req.Phone,
		Actor:       actorOf(claims),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAdminResponse(admin))
}

// Update handles PUT /api/admin/users/:id. An empty password keeps the
// current one.
//
// @Summary      Update an administrator
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Administrator id"
// @Param        body  body      adminRequest  true  "Administrator"
// @Success      200   {object}  adminResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminUserHandler) Update(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req adminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	perms, err := decodeRequestPermissions(req.Permissions)
	if err != nil {
		return err
	}

	admin, err := h.service.Update(c.Request().Context(), ports.UpdateAdminInput{
		ID:          id,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: perms,
		Phone:       req.Phone,
		Actor:       actorOf(claims),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminResponse(admin))
}

// Delete handles DELETE /api/admin/users/:id. The customer account sharing
// the id is removed too.
//
// @Summary      Delete an administrator
// @Tags         admin-users
// @Produce      json
// @Param        id   path      int  true  "Administrator id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminUserHandler) Delete(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, actorOf(claims)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Administrator deleted"})
}
