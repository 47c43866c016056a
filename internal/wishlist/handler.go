package wishlist

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/vybewear/vybe-backend/internal/product"
	"github.com/vybewear/vybe-backend/internal/user"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/wishlist", h.getWishlist)
	app.Post("/api/wishlist/:productId<[0-9]+>", h.toggleWishlist)
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}

	products, err := h.service.Products(userID)
	if errors.Is(err, ErrUserNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to fetch wishlist"})
	}
	return c.JSON(fiber.Map{"success": true, "count": len(products), "wishlist": products})
}

func (h *Handler) toggleWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
	}
	productID, err := strconv.Atoi(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "invalid product id"})
	}

	added, err := h.service.Toggle(userID, productID)
	switch {
	case err == nil:
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
	case errors.Is(err, ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update wishlist"})
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "added": added})
}
