package models

import (
	"time"
)

// Cart holds an ordered sequence of line items. At most one line item exists
// per product reference; repeated additions bump the quantity instead.
type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"products"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem pairs a product reference with a quantity. The reference is weak:
// it is checked by the caller at insertion time and never revalidated, so
// Product may be nil on reads when the product has since been deleted.
type LineItem struct {
	ProductID string   `json:"product" validate:"required"`
	Quantity  int      `json:"quantity" validate:"required,gte=1"`
	Product   *Product `json:"product_detail,omitempty"`
}

// FindItem returns the index of the line item referencing productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
