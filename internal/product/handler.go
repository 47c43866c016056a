package product

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vybewear/vybe-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	// fixed paths before the :id parameter to avoid route collisions
	app.Get("/api/products/featured", h.getFeatured)
	app.Get("/api/products/limited", h.getLimited)
	app.Get("/api/products/search", h.search)
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id<[0-9]+>", h.getProduct)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/api/products", h.createProduct)
	app.Put("/api/products/:id<[0-9]+>", h.updateProduct)
	app.Delete("/api/products/:id<[0-9]+>", h.deleteProduct)
}

func parseListQuery(c *fiber.Ctx) ListQuery {
	q := ListQuery{
		Category:   c.Query("category"),
		Collection: c.Query("collection"),
		Sort:       c.Query("sort"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", DefaultPageSize),
	}
	if v := c.Query("minPrice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.MinPrice = &n
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.MaxPrice = &n
		}
	}
	return q
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	page, err := h.service.List(parseListQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch products"})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(page.Products),
		"total":    page.Total,
		"page":     page.Page,
		"pages":    page.Pages,
		"products": page.Products,
	})
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}
	return c.JSON(fiber.Map{"success": true, "product": p})
}

func (h *Handler) getFeatured(c *fiber.Ctx) error {
	products, err := h.service.Featured()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch featured products"})
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

func (h *Handler) getLimited(c *fiber.Ctx) error {
	products, err := h.service.Limited()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch limited products"})
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

func (h *Handler) search(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Query("q"))
	if err == ErrQueryTooShort {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Search failed"})
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "products": products})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
	}

	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if ves := p.Validate(); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": ves})
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to create product"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Product created", "product": created})
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}

	patch := new(Patch)
	if err := c.BodyParser(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	updated, err := h.service.Update(id, *patch)
	var ves ValidationError
	if errors.As(err, &ves) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Validation failed", "errors": ves})
	}
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update product"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product updated", "product": updated})
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if !user.IsAdminFromCtx(c) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}
	if err := h.service.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}
