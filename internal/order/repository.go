package order

import (
	"fmt"
	"sync"
	"time"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50

	// orderNumberPrefix heads every generated order number.
	orderNumberPrefix = "VYBE"
)

// ListQuery filters and paginates order listings. UserID 0 means all users
// (admin view); Status "" means any status.
type ListQuery struct {
	UserID int
	Status Status
	Page   int
	Limit  int
}

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
	return q
}

type Page struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Pages  int     `json:"pages"`
}

// Repository persists orders. Create assigns the ID and a unique order
// number; the number's uniqueness must hold under concurrent creation.
type Repository interface {
	Create(o Order) (Order, error)
	GetByID(id int) (Order, error)
	List(q ListQuery) (Page, error)
	// Update persists the mutable fields: status, tracking, payment,
	// cancellation and delivery metadata.
	Update(o Order) (Order, error)
}

// formatOrderNumber combines the creation timestamp with a sequence value,
// e.g. VYBE17560000000000042. The sequence guarantees uniqueness; the
// timestamp keeps numbers roughly sortable and human-recognizable.
func formatOrderNumber(now time.Time, seq int64) string {
	return fmt.Sprintf("%s%d%04d", orderNumberPrefix, now.UnixMilli(), seq%10000)
}

// InMemoryRepository backs service and handler tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
	seq    int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	r.seq++
	o.OrderNumber = formatOrderNumber(time.Now(), r.seq)
	now := time.Now().UTC().Format(time.RFC3339)
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(q ListQuery) (Page, error) {
	q = q.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Order, 0)
	// newest first
	for i := len(r.orders) - 1; i >= 0; i-- {
		o := r.orders[i]
		if q.UserID != 0 && o.UserID != q.UserID {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		matched = append(matched, o)
	}

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
	return Page{Orders: matched[start:end], Total: total, Page: q.Page, Pages: pages}, nil
}

func (r *InMemoryRepository) Update(o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			o.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
