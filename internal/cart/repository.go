package cart

import "sync"

// Repository persists one cart per user. Get never fails for a missing
// cart; it returns an empty one, mirroring the lazily-created cart row.
type Repository interface {
	Get(userID int) (Cart, error)
	Save(userID int, c Cart) error
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[int]Cart
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[int]Cart)}
}

func (r *InMemoryRepository) Get(userID int) (Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := r.carts[userID]
	out := Cart{Items: make([]Item, len(c.Items))}
	copy(out.Items, c.Items)
	return out, nil
}

func (r *InMemoryRepository) Save(userID int, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := Cart{Items: make([]Item, len(c.Items))}
	copy(stored.Items, c.Items)
	r.carts[userID] = stored
	return nil
}
