package wishlist

import "github.com/vybewear/vybe-backend/internal/product"

type Service struct {
	repo     Repository
	products product.ServiceInterface
}

func NewService(repo Repository, products product.ServiceInterface) *Service {
	return &Service{repo: repo, products: products}
}

func (s *Service) Toggle(userID, productID int) (bool, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		return false, err
	}
	return s.repo.Toggle(userID, productID)
}

// Products resolves the wishlist to full product records, dropping entries
// that have since been soft-deleted.
func (s *Service) Products(userID int) ([]product.Product, error) {
	ids, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}

	out := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(id)
		if err != nil || !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
