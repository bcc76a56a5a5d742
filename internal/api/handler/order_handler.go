package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/api/metrics"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// OrderHandler handles checkout bookkeeping for signed-in customers.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create handles POST /api/orders/create-order.
//
// @Summary      Open a pending order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Shipping details and amount in major units"
// @Success      201   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/orders/create-order [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.Create(c.Request().Context(), ports.CreateOrderInput{
		UserID:  claims.AccountID,
		Address: toShippingAddress(req),
		Note:    req.Note,
		Amount:  req.Amount,
	})
	if err != nil {
		return err
	}

	metrics.OrdersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Capture handles POST /api/orders/capture-order. Replaying the same
// (reference, payment id) returns the order unchanged.
//
// @Summary      Record the payment result of an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      captureOrderRequest  true  "Payment result"
// @Success      200   {object}  orderResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/orders/capture-order [post]
func (h *OrderHandler) Capture(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req captureOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.Capture(c.Request().Context(), ports.CaptureOrderInput{
		UserID:    claims.AccountID,
		Reference: req.Reference,
		PaymentID: req.PaymentID,
		Status:    domain.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderSettled) {
			metrics.OrdersCapturedTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.OrdersCapturedTotal.WithLabelValues(string(order.PaymentStatus)).Inc()
	return c.JSON(http.StatusOK, toOrderResponse(order))
}

// ListMine handles GET /api/orders.
//
// @Summary      The caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	claims, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListForUser(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}

// ListAll handles GET /api/admin/orders.
//
// @Summary      Every order, for the admin panel
// @Tags         orders
// @Produce      json
// @Success      200  {array}  orderResponse
// @Router       /api/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponses(orders))
}
