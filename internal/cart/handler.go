package cart

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vybewear/vybe-backend/internal/product"
	"github.com/vybewear/vybe-backend/internal/user"
)

type Handler struct {
	service        *Service
	productService product.ServiceInterface
}

func NewHandler(service *Service, ps product.ServiceInterface) *Handler {
	return &Handler{service: service, productService: ps}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart/add", h.addToCart)
	app.Put("/api/cart/update/:itemId", h.updateItem)
	app.Delete("/api/cart/remove/:itemId", h.removeItem)
	app.Delete("/api/cart/clear", h.clearCart)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	crt, err := h.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch cart"})
	}
	return c.JSON(fiber.Map{"success": true, "cart": crt.View()})
}

type addRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}
	if payload.ProductID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid productId"})
	}

	p, err := h.productService.GetByID(payload.ProductID)
	if err != nil || !p.IsActive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	}

	crt, err := h.service.Add(userID, p, payload.Quantity, payload.Size, payload.Color)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to add item to cart"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Item added to cart", "cart": crt.View()})
}

type updateRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	payload := new(updateRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
	}

	crt, err := h.service.SetQuantity(userID, c.Params("itemId"), payload.Quantity)
	if err == ErrItemNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Item not found in cart"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update cart"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Cart updated", "cart": crt.View()})
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	crt, err := h.service.Remove(userID, c.Params("itemId"))
	if err == ErrItemNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Item not found in cart"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to remove item"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Item removed from cart", "cart": crt.View()})
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	if err := h.service.Clear(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to clear cart"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Cart cleared"})
}
