package product

import "math"

// Product is a catalog entry. Price and ComparePrice are integer minor
// currency units. Soft-deleted products stay in the table with
// IsActive=false so historical orders keep a valid reference.
type Product struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        int         `json:"price"`
	ComparePrice *int        `json:"comparePrice,omitempty"`
	Category     string      `json:"category"`
	Collection   *string     `json:"collection,omitempty"`
	Images       []Image     `json:"images"`
	Sizes        []SizeStock `json:"sizes"`
	Colors       []Color     `json:"colors"`
	Tags         []string    `json:"tags"`
	Badge        *string     `json:"badge,omitempty"`
	Rating       Rating      `json:"rating"`
	IsLimited    bool        `json:"isLimited"`
	LimitedStock *int        `json:"limitedStock,omitempty"`
	IsFeatured   bool        `json:"isFeatured"`
	IsActive     bool        `json:"isActive"`
	SoldCount    int         `json:"soldCount"`
	CreatedAt    string      `json:"createdAt,omitempty"`
	UpdatedAt    string      `json:"updatedAt,omitempty"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hexCode,omitempty"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Allowed enum values. Category is required; collection, size and badge are
// optional but must come from these sets when present.
var (
	AllowedCategories  = []string{"jackets", "shirts", "pants", "caps", "accessories", "shoes", "hoodies"}
	AllowedCollections = []string{"edge", "canvas", "energy", "limited", "classics"}
	AllowedSizes       = []string{"XS", "S", "M", "L", "XL", "XXL"}
	AllowedBadges      = []string{"new", "bestseller", "limited", "sale", "soldout"}
)

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// TotalStock sums stock across all sizes.
func (p Product) TotalStock() int {
	total := 0
	for _, s := range p.Sizes {
		total += s.Stock
	}
	return total
}

// DiscountPercent is the rounded percentage off the compare-at price, or 0
// when there is no meaningful discount.
func (p Product) DiscountPercent() int {
	if p.ComparePrice == nil || *p.ComparePrice <= p.Price || *p.ComparePrice == 0 {
		return 0
	}
	cp := float64(*p.ComparePrice)
	return int(math.Round((cp - float64(p.Price)) / cp * 100))
}

// Validate checks construction-time preconditions and returns every
// violation keyed by field, in the shape handlers return to the client.
func (p Product) Validate() map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "name is required"
	} else if len(p.Name) > 100 {
		errs["name"] = "name cannot exceed 100 characters"
	}
	if len(p.Description) > 2000 {
		errs["description"] = "description cannot exceed 2000 characters"
	}
	if p.Price < 0 {
		errs["price"] = "price cannot be negative"
	}
	if p.ComparePrice != nil && *p.ComparePrice < 0 {
		errs["comparePrice"] = "compare price cannot be negative"
	}
	if !contains(AllowedCategories, p.Category) {
		errs["category"] = "invalid category"
	}
	if p.Collection != nil && !contains(AllowedCollections, *p.Collection) {
		errs["collection"] = "invalid collection"
	}
	if p.Badge != nil && !contains(AllowedBadges, *p.Badge) {
		errs["badge"] = "invalid badge"
	}
	for _, s := range p.Sizes {
		if !contains(AllowedSizes, s.Size) {
			errs["sizes"] = "invalid size " + s.Size
		}
		if s.Stock < 0 {
			errs["sizes"] = "stock cannot be negative"
		}
	}
	if p.LimitedStock != nil && *p.LimitedStock < 0 {
		errs["limitedStock"] = "limited stock cannot be negative"
	}
	if p.Rating.Average < 0 || p.Rating.Average > 5 {
		errs["rating"] = "rating average must be between 0 and 5"
	}
	return errs
}

// ValidationError carries Validate's per-field messages across the service
// boundary so handlers can echo them to the client.
type ValidationError map[string]string

func (v ValidationError) Error() string { return "product validation failed" }

// Patch is a partial product update. Nil fields are left untouched, so an
// admin can send only the fields being changed without resetting the rest.
// Rating and the sales counter are not patchable.
type Patch struct {
	Name         *string      `json:"name"`
	Description  *string      `json:"description"`
	Price        *int         `json:"price"`
	ComparePrice *int         `json:"comparePrice"`
	Category     *string      `json:"category"`
	Collection   *string      `json:"collection"`
	Images       []Image      `json:"images"`
	Sizes        []SizeStock  `json:"sizes"`
	Colors       []Color      `json:"colors"`
	Tags         []string     `json:"tags"`
	Badge        *string      `json:"badge"`
	IsLimited    *bool        `json:"isLimited"`
	LimitedStock *int         `json:"limitedStock"`
	IsFeatured   *bool        `json:"isFeatured"`
	IsActive     *bool        `json:"isActive"`
}

// ApplyTo overlays the patch on an existing product and returns the result.
func (patch Patch) ApplyTo(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ComparePrice != nil {
		p.ComparePrice = patch.ComparePrice
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Collection != nil {
		p.Collection = patch.Collection
	}
	if patch.Images != nil {
		p.Images = patch.Images
	}
	if patch.Sizes != nil {
		p.Sizes = patch.Sizes
	}
	if patch.Colors != nil {
		p.Colors = patch.Colors
	}
	if patch.Tags != nil {
		p.Tags = patch.Tags
	}
	if patch.Badge != nil {
		p.Badge = patch.Badge
	}
	if patch.IsLimited != nil {
		p.IsLimited = *patch.IsLimited
	}
	if patch.LimitedStock != nil {
		p.LimitedStock = patch.LimitedStock
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
	return p
}
