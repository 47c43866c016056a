package pricing

import "math"

// Config holds the storefront pricing policy. All money values are integer
// minor currency units.
type Config struct {
	// FreeShippingThreshold is the subtotal at or above which shipping is free.
	FreeShippingThreshold int
	// ShippingFee is the flat fee charged below the threshold.
	ShippingFee int
	// TaxRate is the flat tax fraction applied to the subtotal, e.g. 0.18.
	TaxRate float64
}

// Default matches the published policy: free shipping at 999, flat fee 99,
// 18% tax.
func Default() Config {
	return Config{
		FreeShippingThreshold: 999,
		ShippingFee:           99,
		TaxRate:               0.18,
	}
}

// Quote is the derived price breakdown for a cart subtotal.
type Quote struct {
	Subtotal int `json:"subtotal"`
	Shipping int `json:"shipping"`
	Tax      int `json:"tax"`
	Total    int `json:"total"`
}

// Calculate derives shipping, tax and grand total from a non-negative
// subtotal. Tax rounds to the nearest unit, half-up. The same function is
// used for the pre-checkout estimate and for order creation, so the two can
// only ever differ if the cart itself changed in between.
func (c Config) Calculate(subtotal int) Quote {
	shipping := c.ShippingFee
	if subtotal >= c.FreeShippingThreshold {
		shipping = 0
	}

	tax := int(math.Floor(float64(subtotal)*c.TaxRate + 0.5))

	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
