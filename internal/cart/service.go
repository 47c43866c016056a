package cart

import (
	"github.com/google/uuid"
	"github.com/vybewear/vybe-backend/internal/product"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(userID int) (Cart, error) {
	return s.repo.Get(userID)
}

// Add puts qty units of (product, size, color) in the cart. An existing
// line with the same triple has its quantity incremented; otherwise a new
// line is appended with the product's current price, name and first image
// captured.
func (s *Service) Add(userID int, p product.Product, qty int, size, color string) (Cart, error) {
	if qty < 1 {
		qty = 1
	}

	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range c.Items {
		it := &c.Items[i]
		if it.ProductID == p.ID && it.Size == size && it.Color == color {
			it.Quantity += qty
			found = true
			break
		}
	}
	if !found {
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0].URL
		}
		c.Items = append(c.Items, Item{
			ID:        uuid.NewString(),
			ProductID: p.ID,
			Name:      p.Name,
			Image:     image,
			Size:      size,
			Color:     color,
			Quantity:  qty,
			Price:     p.Price,
		})
	}

	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// SetQuantity replaces a line's quantity. Zero or negative removes the
// line; a quantity of zero is never stored.
func (s *Service) SetQuantity(userID int, itemID string, qty int) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	idx := -1
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Cart{}, ErrItemNotFound
	}

	if qty <= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	} else {
		c.Items[idx].Quantity = qty
	}

	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Remove(userID int, itemID string) (Cart, error) {
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	kept := c.Items[:0]
	removed := false
	for _, it := range c.Items {
		if it.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return Cart{}, ErrItemNotFound
	}
	c.Items = kept

	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *Service) Clear(userID int) error {
	return s.repo.Save(userID, Cart{Items: []Item{}})
}
