package cartstore

import "sync"

// Session picks the active cart store. Guests get the file-backed
// store; signing in discards the guest cart and switches to the
// account cart on the server, and signing out starts a fresh guest
// cart.
type Session struct {
	mu        sync.Mutex
	baseURL   string
	guestPath string
	active    Store
}

func NewSession(baseURL, guestPath string) *Session {
	return &Session{
		baseURL:   baseURL,
		guestPath: guestPath,
		active:    NewGuestStore(guestPath),
	}
}

func (s *Session) Store() Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Login drops the guest cart and switches to the server-side cart for
// the authenticated user. The guest cart is not merged; the account
// cart wins.
func (s *Session) Login(token string) (Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if guest, ok := s.active.(*GuestStore); ok {
		if err := guest.Discard(); err != nil {
			return nil, err
		}
	}
	s.active = NewRemoteStore(s.baseURL, token)
	return s.active, nil
}

// Logout switches back to an empty guest cart.
func (s *Session) Logout() Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = NewGuestStore(s.guestPath)
	return s.active
}
