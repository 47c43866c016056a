package cartstore

import (
	"encoding/json"
	"errors"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/vybewear/vybe-backend/internal/cart"
)

// GuestStore keeps the cart in a JSON file so it survives restarts for
// users who have not signed in. The file is read once and rewritten on
// every mutation.
type GuestStore struct {
	mu     sync.Mutex
	path   string
	loaded bool
	items  []cart.Item
}

func NewGuestStore(path string) *GuestStore {
	return &GuestStore{path: path}
}

func (s *GuestStore) load() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.items = nil
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}

	var stored cart.Cart
	if err := json.Unmarshal(data, &stored); err != nil {
		// a corrupt file starts the guest over with an empty cart
		s.items = nil
		s.loaded = true
		return nil
	}
	s.items = stored.Items
	s.loaded = true
	return nil
}

func (s *GuestStore) save() error {
	data, err := json.MarshalIndent(cart.Cart{Items: s.items}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *GuestStore) Items() ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return nil, err
	}
	out := make([]cart.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *GuestStore) Totals() (cart.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return cart.View{}, err
	}
	return cart.Cart{Items: s.items}.View(), nil
}

func (s *GuestStore) Add(item cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i, it := range s.items {
		if it.ProductID == item.ProductID && it.Size == item.Size && it.Color == item.Color {
			s.items[i].Quantity += item.Quantity
			return s.save()
		}
	}
	item.ID = uuid.NewString()
	s.items = append(s.items, item)
	return s.save()
}

func (s *GuestStore) SetQuantity(itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(); err != nil {
		return err
	}

	for i, it := range s.items {
		if it.ID != itemID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		return s.save()
	}
	return cart.ErrItemNotFound
}

func (s *GuestStore) Remove(itemID string) error {
	return s.SetQuantity(itemID, 0)
}

func (s *GuestStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = true
	return s.save()
}

// Discard deletes the backing file, used when the guest signs in and
// the server-side cart takes over.
func (s *GuestStore) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = true
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
