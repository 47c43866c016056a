package product

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("product not found")

const (
	// DefaultPageSize and MaxPageSize bound catalog pagination.
	DefaultPageSize = 10
	MaxPageSize     = 50
	// FeaturedLimit caps the featured/limited shelves.
	FeaturedLimit = 8
	// SearchLimit caps text-search results; search is never paginated.
	SearchLimit = 20
)

// ListQuery is the catalog filter set. Only active products are ever
// returned; that filter is implicit and always on.
type ListQuery struct {
	Category   string
	Collection string
	MinPrice   *int
	MaxPrice   *int
	// Sort is a whitelisted field name with an optional leading '-' for
	// descending order. Empty means newest first.
	Sort  string
	Page  int
	Limit int
}

// sortFields whitelists the sortable fields.
var sortFields = map[string]bool{
	"price":     true,
	"createdAt": true,
	"soldCount": true,
	"rating":    true,
	"name":      true,
}

// Normalize clamps pagination to page ≥1 and 1..MaxPageSize items, and
// drops unknown sort keys.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Sort != "" && !sortFields[strings.TrimPrefix(q.Sort, "-")] {
		q.Sort = ""
	}
	q.Category = strings.ToLower(q.Category)
	q.Collection = strings.ToLower(q.Collection)
	return q
}

// Page is one page of catalog results plus the overall match count.
type Page struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

type Repository interface {
	List(q ListQuery) (Page, error)
	GetByID(id int) (Product, error)
	Featured(limit int) ([]Product, error)
	Limited(limit int) ([]Product, error)
	Search(query string, limit int) ([]Product, error)
	Create(p Product) (Product, error)
	Update(id int, p Product) (Product, error)
	// Deactivate soft-deletes: the row stays, IsActive flips to false.
	Deactivate(id int) error
	IncrementSold(id int, by int) error
}

// InMemoryRepository implements the full catalog semantics in memory. It is
// used by tests and by the seeding CLI's dry-run mode.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) matches(p Product, q ListQuery) bool {
	if !p.IsActive {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Collection != "" && (p.Collection == nil || *p.Collection != q.Collection) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func sortProducts(out []Product, key string) {
	desc := strings.HasPrefix(key, "-")
	field := strings.TrimPrefix(key, "-")
	if key == "" {
		// newest first; in-memory order approximates creation order
		field, desc = "createdAt", true
	}

	less := func(a, b Product) bool {
		switch field {
		case "price":
			return a.Price < b.Price
		case "soldCount":
			return a.SoldCount < b.SoldCount
		case "rating":
			return a.Rating.Average < b.Rating.Average
		case "name":
			return a.Name < b.Name
		default: // createdAt
			if a.CreatedAt != b.CreatedAt {
				return a.CreatedAt < b.CreatedAt
			}
			return a.ID < b.ID
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
}

func (r *InMemoryRepository) List(q ListQuery) (Page, error) {
	q = q.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Product, 0)
	for _, p := range r.storage {
		if r.matches(p, q) {
			matched = append(matched, p)
		}
	}
	sortProducts(matched, q.Sort)

	total := len(matched)
	pages := (total + q.Limit - 1) / q.Limit
	start := (q.Page - 1) * q.Limit
	if start > total {
		start = total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}

	return Page{Products: matched[start:end], Total: total, Page: q.Page, Pages: pages}, nil
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Featured(limit int) ([]Product, error) {
	return r.flagged(func(p Product) bool { return p.IsFeatured }, limit), nil
}

func (r *InMemoryRepository) Limited(limit int) ([]Product, error) {
	return r.flagged(func(p Product) bool { return p.IsLimited }, limit), nil
}

func (r *InMemoryRepository) flagged(pick func(Product) bool, limit int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0, limit)
	for _, p := range r.storage {
		if p.IsActive && pick(p) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func (r *InMemoryRepository) Search(query string, limit int) ([]Product, error) {
	needle := strings.ToLower(query)
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0)
	for _, p := range r.storage {
		if !p.IsActive {
			continue
		}
		hay := strings.ToLower(p.Name + " " + p.Description + " " + strings.Join(p.Tags, " "))
		if strings.Contains(hay, needle) {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			p.ID = id
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Deactivate(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].IsActive = false
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) IncrementSold(id int, by int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].SoldCount += by
			return nil
		}
	}
	return ErrNotFound
}
