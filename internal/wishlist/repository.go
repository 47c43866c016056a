package wishlist

import (
	"errors"
	"sync"
)

var ErrUserNotFound = errors.New("user not found")

// Repository stores wishlisted product ids per user.
type Repository interface {
	// Toggle adds the product if absent and removes it if present,
	// reporting whether it ended up added.
	Toggle(userID, productID int) (bool, error)
	List(userID int) ([]int, error)
}

type InMemoryRepository struct {
	mu    sync.RWMutex
	lists map[int][]int
}

func NewInMemoryRepository(seed map[int][]int) *InMemoryRepository {
	if seed == nil {
		seed = make(map[int][]int)
	}
	return &InMemoryRepository{lists: seed}
}

func (r *InMemoryRepository) Toggle(userID, productID int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids, ok := r.lists[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	for i, id := range ids {
		if id == productID {
			r.lists[userID] = append(ids[:i], ids[i+1:]...)
			return false, nil
		}
	}
	r.lists[userID] = append(ids, productID)
	return true, nil
}

func (r *InMemoryRepository) List(userID int) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids, ok := r.lists[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, nil
}
