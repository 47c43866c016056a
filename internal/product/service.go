package product

import (
	"errors"
	"unicode/utf8"
)

// ErrQueryTooShort gates text search: the query must be at least 2 characters.
var ErrQueryTooShort = errors.New("search query must be at least 2 characters")

// ServiceInterface lets sibling packages (cart, order, wishlist) depend on
// product lookups without importing the concrete service.
type ServiceInterface interface {
	GetByID(id int) (Product, error)
	IncrementSold(id int, by int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(q ListQuery) (Page, error) {
	return s.repo.List(q)
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Featured() ([]Product, error) {
	return s.repo.Featured(FeaturedLimit)
}

func (s *Service) Limited() ([]Product, error) {
	return s.repo.Limited(FeaturedLimit)
}

func (s *Service) Search(query string) ([]Product, error) {
	if utf8.RuneCountInString(query) < 2 {
		return nil, ErrQueryTooShort
	}
	return s.repo.Search(query, SearchLimit)
}

func (s *Service) Create(p Product) (Product, error) {
	p.IsActive = true
	p.SoldCount = 0
	return s.repo.Create(p)
}

// Update overlays the patch on the stored product and persists the result,
// so fields the caller omits keep their stored values. A merged document
// that fails validation is rejected with a ValidationError.
func (s *Service) Update(id int, patch Patch) (Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return Product{}, err
	}
	merged := patch.ApplyTo(existing)
	if ves := merged.Validate(); len(ves) > 0 {
		return Product{}, ValidationError(ves)
	}
	return s.repo.Update(id, merged)
}

// Delete soft-deletes: the product is marked inactive, never removed.
func (s *Service) Delete(id int) error {
	return s.repo.Deactivate(id)
}

func (s *Service) IncrementSold(id int, by int) error {
	return s.repo.IncrementSold(id, by)
}
