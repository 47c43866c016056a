package cart

import (
	"testing"

	"github.com/vybewear/vybe-backend/internal/product"
)

func tee(id, price int) product.Product {
	return product.Product{
		ID:       id,
		Name:     "Oversized Tee",
		Price:    price,
		Category: "shirts",
		Images:   []product.Image{{URL: "/img/tee.jpg"}},
		IsActive: true,
	}
}

func TestAdd_MergesSameTriple(t *testing.T) {
	service := NewService(NewInMemoryRepository())

	c, err := service.Add(7, tee(1, 500), 2, "M", "black")
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(c.Items))
	}

	c, err = service.Add(7, tee(1, 500), 1, "M", "black")
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(c.Items) != 1 {
		t.Fatalf("expected same triple to merge into 1 line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3 after merge, got %d", c.Items[0].Quantity)
	}

	// a different size is a separate line
	c, err = service.Add(7, tee(1, 500), 1, "L", "black")
	if err != nil {
		t.Fatalf("third add: %v", err)
	}
	if len(c.Items) != 2 {
		t.Fatalf("expected a new line for a different size, got %d lines", len(c.Items))
	}
	if c.Items[0].ID == c.Items[1].ID {
		t.Fatalf("expected distinct line ids")
	}
}

func TestAdd_ClampsQuantityAndSnapshotsPrice(t *testing.T) {
	service := NewService(NewInMemoryRepository())

	c, err := service.Add(7, tee(1, 500), 0, "M", "black")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", c.Items[0].Quantity)
	}
	if c.Items[0].Price != 500 || c.Items[0].Name != "Oversized Tee" || c.Items[0].Image != "/img/tee.jpg" {
		t.Fatalf("expected price/name/image snapshot, got %+v", c.Items[0])
	}
}

func TestSetQuantity(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	c, _ := service.Add(7, tee(1, 500), 2, "M", "black")
	itemID := c.Items[0].ID

	c, err := service.SetQuantity(7, itemID, 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if c.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", c.Items[0].Quantity)
	}

	// zero removes the line entirely
	c, err = service.SetQuantity(7, itemID, 0)
	if err != nil {
		t.Fatalf("set quantity to zero: %v", err)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected line removed at quantity 0, got %d lines", len(c.Items))
	}

	if _, err := service.SetQuantity(7, "missing", 1); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveAndClear(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	c, _ := service.Add(7, tee(1, 500), 1, "M", "black")
	service.Add(7, tee(2, 700), 1, "L", "white")

	c, err := service.Remove(7, c.Items[0].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.Items) != 1 || c.Items[0].ProductID != 2 {
		t.Fatalf("expected only product 2 left, got %+v", c.Items)
	}

	if _, err := service.Remove(7, "missing"); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	if err := service.Clear(7); err != nil {
		t.Fatalf("clear: %v", err)
	}
	c, _ = service.Get(7)
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d lines", len(c.Items))
	}
}

func TestTotals(t *testing.T) {
	service := NewService(NewInMemoryRepository())
	service.Add(7, tee(1, 500), 2, "M", "black")
	service.Add(7, tee(2, 1000), 1, "L", "white")

	c, _ := service.Get(7)
	if got := c.TotalItems(); got != 3 {
		t.Fatalf("expected 3 total items, got %d", got)
	}
	if got := c.TotalPrice(); got != 2000 {
		t.Fatalf("expected total 2000, got %d", got)
	}
}
