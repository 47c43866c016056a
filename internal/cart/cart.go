package cart

import "errors"

var (
	ErrNotFound     = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
)

// Item is one cart line. Identity is the (product, size, color) triple:
// adding the same triple again increments Quantity instead of creating a
// second line. Price is the unit price captured when the line was first
// added.
type Item struct {
	ID        string `json:"id"`
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
}

// Cart is the ordered line-item list for one user. Totals are always
// derived from the items, never stored.
type Cart struct {
	Items []Item `json:"items"`
}

func (c Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c Cart) TotalPrice() int {
	total := 0
	for _, it := range c.Items {
		total += it.Price * it.Quantity
	}
	return total
}

// View is the wire shape of a cart: items plus the derived totals.
type View struct {
	Items      []Item `json:"items"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int    `json:"totalPrice"`
}

func (c Cart) View() View {
	items := c.Items
	if items == nil {
		items = []Item{}
	}
	return View{Items: items, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}
