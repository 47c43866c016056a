package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"

	"github.com/vybewear/vybe-backend/internal/cache"
	"github.com/vybewear/vybe-backend/internal/cart"
	"github.com/vybewear/vybe-backend/internal/config"
	"github.com/vybewear/vybe-backend/internal/database"
	"github.com/vybewear/vybe-backend/internal/order"
	"github.com/vybewear/vybe-backend/internal/pricing"
	"github.com/vybewear/vybe-backend/internal/product"
	"github.com/vybewear/vybe-backend/internal/user"
	"github.com/vybewear/vybe-backend/internal/wishlist"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional: without REDIS_ADDR the product reads go straight
	// to Postgres.
	var productRepo product.Repository = product.NewPostgresRepository(db)
	if cfg.RedisAddr != "" {
		rdb, err := cache.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("warning: redis unavailable, serving uncached: %v", err)
		} else {
			productRepo = cache.NewCachedProductRepository(productRepo, rdb)
		}
	}

	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService, cfg.JWTSecret, cfg.JWTTTL)

	cartService := cart.NewService(cart.NewPostgresRepository(db))
	cartHandler := cart.NewHandler(cartService, productService)

	priceCfg := pricing.Config{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}
	orderService := order.NewService(order.NewPostgresRepository(db), cartService, productService, priceCfg)
	orderHandler := order.NewHandler(orderService)

	wishlistService := wishlist.NewService(wishlist.NewPostgresRepository(db), productService)
	wishlistHandler := wishlist.NewHandler(wishlistService)

	app := fiber.New()
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,http://localhost:5173",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
	}))
	app.Use(requestLog)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "message": "VYBE API is running"})
	})

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	// browsers carry the token in an httpOnly cookie; lift it into the
	// Authorization header so the JWT middleware sees one source
	app.Use(func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			if token := c.Cookies("token"); token != "" {
				c.Request().Header.Set("Authorization", "Bearer "+token)
			}
		}
		return c.Next()
	})
	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Not authorized, please login"})
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Route not found"})
	})

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func requestLog(c *fiber.Ctx) error {
	err := c.Next()
	log.Printf("%s %s -> %d", c.Method(), c.OriginalURL(), c.Response().StatusCode())
	return err
}
