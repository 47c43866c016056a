package product

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeApp(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role := c.Get("X-Role"); role != "" {
			claims := jwt.MapClaims{"user_id": float64(1), "role": role}
			c.Locals("user", &jwt.Token{Claims: claims})
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	return app
}

func testHandler() *Handler {
	collection := "limited"
	badge := "limited"
	seed := []Product{
		{ID: 1, Name: "Oversized Tee", Price: 800, Category: "shirts", IsActive: true, IsFeatured: true},
		{ID: 2, Name: "Puffer Jacket", Price: 4500, Category: "jackets", Collection: &collection,
			Badge: &badge, IsActive: true, IsLimited: true},
		{ID: 3, Name: "Retired Cap", Price: 300, Category: "caps", IsActive: false},
	}
	return NewHandler(NewService(NewInMemoryRepository(seed)))
}

func TestProductRoutes_Public(t *testing.T) {
	app := makeApp(testHandler())

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for list, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"total":2`) {
		t.Fatalf("expected 2 active products, got %s", string(b))
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products/2", nil))
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for detail, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), "Puffer Jacket") {
		t.Fatalf("expected puffer jacket, got %s", string(b2))
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/api/products/999", nil))
	if res3.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown product, got %d", res3.StatusCode)
	}

	// featured and limited shelves stay ahead of the :id route
	res4, _ := app.Test(httptest.NewRequest("GET", "/api/products/featured", nil))
	if res4.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for featured, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), "Oversized Tee") || strings.Contains(string(b4), "Puffer Jacket") {
		t.Fatalf("unexpected featured shelf: %s", string(b4))
	}

	res5, _ := app.Test(httptest.NewRequest("GET", "/api/products/limited", nil))
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), "Puffer Jacket") {
		t.Fatalf("expected puffer on the limited shelf, got %s", string(b5))
	}
}

func TestProductRoutes_Search(t *testing.T) {
	app := makeApp(testHandler())

	res, _ := app.Test(httptest.NewRequest("GET", "/api/products/search?q=x", nil))
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for a 1-char query, got %d", res.StatusCode)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products/search?q=puffer", nil))
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for search, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"count":1`) {
		t.Fatalf("expected one hit for puffer, got %s", string(b2))
	}
}

func TestProductRoutes_PartialUpdate(t *testing.T) {
	app := makeApp(testHandler())

	req := httptest.NewRequest("PUT", "/api/products/2", strings.NewReader(`{"price":4200}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Role", "admin")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin update, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"price":4200`) || !strings.Contains(string(b), `"isActive":true`) {
		t.Fatalf("expected patched price with the product still active, got %s", string(b))
	}
	if !strings.Contains(string(b), `"badge":"limited"`) {
		t.Fatalf("expected badge preserved through the update, got %s", string(b))
	}

	// the product did not vanish from the catalog
	res2, _ := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"total":2`) {
		t.Fatalf("expected both active products listed after the update, got %s", string(b2))
	}
}

func TestProductRoutes_AdminGate(t *testing.T) {
	app := makeApp(testHandler())
	body := `{"name":"New Cap","price":500,"category":"caps"}`

	// no token at all
	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", res.StatusCode)
	}

	// customer token
	req2 := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-Role", "customer")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer, got %d", res2.StatusCode)
	}

	// admin token
	req3 := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-Role", "admin")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 for admin create, got %d", res3.StatusCode)
	}

	// validation failures surface per-field errors
	req4 := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"","price":-5,"category":"weird"}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-Role", "admin")
	res4, _ := app.Test(req4)
	if res4.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for invalid product, got %d", res4.StatusCode)
	}
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), "errors") {
		t.Fatalf("expected field errors in response, got %s", string(b4))
	}

	// delete is a soft delete: detail stays readable, list shrinks
	req5 := httptest.NewRequest("DELETE", "/api/products/1", nil)
	req5.Header.Set("X-Role", "admin")
	res5, _ := app.Test(req5)
	if res5.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin delete, got %d", res5.StatusCode)
	}
	res6, _ := app.Test(httptest.NewRequest("GET", "/api/products", nil))
	b6, _ := io.ReadAll(res6.Body)
	if strings.Contains(string(b6), "Oversized Tee") {
		t.Fatalf("expected deleted product out of the list, got %s", string(b6))
	}
}
