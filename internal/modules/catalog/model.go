package catalog

import (
	"time"

	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// Category is the product category as embedded in a product.
type Category struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Product is a sellable item as listed by the upstream catalog.
type Product struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	ItemNumber    string       `json:"itemNumber"`
	PacketSize    string       `json:"packetSize"`
	Category      *Category    `json:"categoryId,omitempty"`
	Quantity      int          `json:"quantity"`
	PurchasePrice money.Amount `json:"purchasePrice"`
	SalesPrice    money.Amount `json:"salesPrice"`
	IsDeleted     bool         `json:"isDeleted,omitempty"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     time.Time    `json:"updatedAt,omitempty"`
}

// CategoryID returns the id of the product's category, or "".
func (p *Product) CategoryID() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.ID
}
