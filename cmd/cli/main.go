package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vybewear/vybe-backend/internal/database"
	"github.com/vybewear/vybe-backend/internal/product"
	"github.com/vybewear/vybe-backend/internal/user"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	name := addAdminCmd.String("name", "", "Display name for the admin")
	email := addAdminCmd.String("email", "", "Email for the admin")
	password := addAdminCmd.String("password", "", "Password for the admin")

	seedCmd := flag.NewFlagSet("seed-products", flag.ExitOnError)

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' or 'seed-products' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *name == "" || *email == "" || *password == "" {
			fmt.Println("name, email and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*name, *email, *password)
	case "seed-products":
		seedCmd.Parse(os.Args[2:])
		seedProducts()
	default:
		fmt.Println("expected 'add-admin' or 'seed-products' subcommand")
		os.Exit(1)
	}
}

func openDatabase() *sql.DB {
	_ = godotenv.Load()
	db, err := database.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// ensure tables exist when running the cli before the server
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createAdmin(name, email, password string) {
	db := openDatabase()
	defer db.Close()

	service := user.NewService(user.NewPostgresRepository(db))
	created, err := service.Register(user.User{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     user.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	fmt.Printf("Admin '%s' (%s) created successfully.\n", created.Name, created.Email)
}

func seedProducts() {
	db := openDatabase()
	defer db.Close()

	service := product.NewService(product.NewPostgresRepository(db))
	seed := []product.Product{
		{
			Name:        "Oversized Graphic Tee",
			Description: "Heavyweight cotton tee with a washed-out back print.",
			Price:       79900,
			Category:    "shirts",
			Collection:  strPtr("canvas"),
			Images:      []product.Image{{URL: "/images/products/oversized-graphic-tee.jpg", Alt: "Oversized Graphic Tee"}},
			Sizes:       stock(map[string]int{"S": 20, "M": 35, "L": 30, "XL": 15}),
			Colors:      []product.Color{{Name: "Washed Black", Hex: "#1c1c1c"}, {Name: "Bone", Hex: "#e8e4da"}},
			Tags:        []string{"graphic", "oversized", "cotton"},
			IsFeatured:  true,
		},
		{
			Name:        "Cargo Parachute Pants",
			Description: "Relaxed-fit nylon cargos with adjustable ankle toggles.",
			Price:       189900,
			Category:    "pants",
			Collection:  strPtr("edge"),
			Images:      []product.Image{{URL: "/images/products/cargo-parachute-pants.jpg", Alt: "Cargo Parachute Pants"}},
			Sizes:       stock(map[string]int{"S": 10, "M": 25, "L": 20, "XL": 8}),
			Colors:      []product.Color{{Name: "Olive", Hex: "#4b5320"}},
			Tags:        []string{"cargo", "nylon"},
		},
		{
			Name:         "VYBE Puffer Jacket",
			Description:  "Limited drop quilted puffer with embroidered chest logo.",
			Price:        449900,
			Category:     "jackets",
			Collection:   strPtr("limited"),
			Images:       []product.Image{{URL: "/images/products/vybe-puffer.jpg", Alt: "VYBE Puffer Jacket"}},
			Sizes:        stock(map[string]int{"M": 5, "L": 5, "XL": 2}),
			Colors:       []product.Color{{Name: "Midnight", Hex: "#101828"}},
			Tags:         []string{"puffer", "limited"},
			Badge:        strPtr("limited"),
			IsLimited:    true,
			LimitedStock: intPtr(12),
			IsFeatured:   true,
		},
	}

	created := 0
	for _, p := range seed {
		if _, err := service.Create(p); err != nil {
			log.Printf("Failed to seed %q: %v", p.Name, err)
			continue
		}
		created++
	}
	fmt.Printf("Seeded %d products.\n", created)
}

func stock(bySize map[string]int) []product.SizeStock {
	out := make([]product.SizeStock, 0, len(bySize))
	for _, size := range product.AllowedSizes {
		if qty, ok := bySize[size]; ok {
			out = append(out, product.SizeStock{Size: size, Stock: qty})
		}
	}
	return out
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
