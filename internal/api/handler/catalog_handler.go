package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopfront/storefront/internal/core/ports"
)

// CatalogHandler serves categories, attributes and products for both the
// storefront and the admin panel.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// --- Categories ---

// CreateCategory handles POST /api/admin/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  categoryResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.Request().Context(), ports.CreateCategoryInput{
		Name:     req.Name,
		DataItem: req.DataItem,
		Icon:     req.Icon,
		Sale:     req.Sale,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// ListCategories handles GET /api/admin/categories.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  categoryResponse
// @Router       /api/admin/categories [get]
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.service.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// ListPublicCategories handles GET /api/categories/public.
//
// @Summary      Storefront categories with product counts
// @Tags         categories
// @Produce      json
// @Success      200  {array}   publicCategoryResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/categories/public [get]
func (h *CatalogHandler) ListPublicCategories(c echo.Context) error {
	summaries, err := h.service.ListPublicCategories(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]publicCategoryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toPublicCategory(s))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteCategory handles DELETE /api/admin/categories/:id.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Category deleted successfully"})
}

// --- Attributes ---

// CreateAttribute handles POST /api/admin/attributes.
//
// @Summary      Create a category attribute
// @Tags         attributes
// @Accept       json
// @Produce      json
// @Param        body  body      attributeRequest  true  "Attribute"
// @Success      201   {object}  attributeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/attributes [post]
func (h *CatalogHandler) CreateAttribute(c echo.Context) error {
	var req attributeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	attr, err := h.service.CreateAttribute(c.Request().Context(), ports.CreateAttributeInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Value:      req.Value,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAttributeResponse(attr))
}

// ListAttributes handles GET /api/admin/attributes.
//
// @Summary      List attributes with their category name
// @Tags         attributes
// @Produce      json
// @Success      200  {array}  attributeResponse
// @Router       /api/admin/attributes [get]
func (h *CatalogHandler) ListAttributes(c echo.Context) error {
	attrs, err := h.service.ListAttributes(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]attributeResponse, 0, len(attrs))
	for i := range attrs {
		out = append(out, toAttributeResponse(&attrs[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// DeleteAttribute handles DELETE /api/admin/attributes/:id.
//
// @Summary      Delete an attribute
// @Tags         attributes
// @Produce      json
// @Param        id   path      int  true  "Attribute id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/attributes/{id} [delete]
func (h *CatalogHandler) DeleteAttribute(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAttribute(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Attribute deleted successfully"})
}

// --- Products ---

// ListProducts handles GET /api/products.
//
// @Summary      Storefront product listing
// @Tags         products
// @Produce      json
// @Success      200  {array}  storefrontProductResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]storefrontProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toStorefrontProduct(&products[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// GetProduct handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  storefrontProductResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStorefrontProduct(product))
}

// ListAdminProducts handles GET /api/admin/products.
//
// @Summary      Product listing for the admin panel
// @Tags         products
// @Produce      json
// @Success      200  {array}  adminProductResponse
// @Router       /api/admin/products [get]
func (h *CatalogHandler) ListAdminProducts(c echo.Context) error {
	products, err := h.service.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toAdminProduct(&products[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateProduct handles POST /api/admin/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  adminProductResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/admin/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.service.CreateProduct(c.Request().Context(), toProduct(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAdminProduct(product))
}

// UpdateProduct handles PUT /api/admin/products/:id. The body replaces every
// mutable field.
//
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  adminProductResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := toProduct(req)
	in.ID = id
	product, err := h.service.UpdateProduct(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAdminProduct(product))
}

// DeleteProduct handles DELETE /api/admin/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}
