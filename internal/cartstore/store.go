// Package cartstore is the client-side cart: a file-backed store for
// guests and a REST-backed store for signed-in users, with a session
// that switches between them on login and logout.
package cartstore

import (
	"github.com/vybewear/vybe-backend/internal/cart"
)

// Store is the cart surface shared by the guest and remote variants.
// Item identity follows the server's rule: the (product, size, color)
// triple merges into one line, and a quantity of zero or less removes
// the line.
type Store interface {
	Items() ([]cart.Item, error)
	Totals() (cart.View, error)
	Add(item cart.Item) error
	SetQuantity(itemID string, quantity int) error
	Remove(itemID string) error
	Clear() error
}
