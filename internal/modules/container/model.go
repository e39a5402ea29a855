package container

import (
	"time"

	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// Status is the shipping state of a container.
type Status string

const (
	StatusPending   Status = "pending"
	StatusOnTheWay  Status = "onTheWay"
	StatusDelivered Status = "delivered"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOnTheWay, StatusDelivered:
		return true
	}
	return false
}

// Product is one product line shipped in a container.
type Product struct {
	ID                  string       `json:"_id,omitempty"`
	Category            string       `json:"category"`
	ItemNumber          string       `json:"itemNumber"`
	PacketSize          string       `json:"packetSize"`
	Quantity            int          `json:"quantity"`
	PerCaseCost         money.Amount `json:"perCaseCost"`
	PerCaseShippingCost string       `json:"perCaseShippingCost,omitempty"`
	PurchasePrice       money.Amount `json:"purchasePrice"`
	SalesPrice          money.Amount `json:"salesPrice"`
}

// Container is an incoming shipment whose products feed the inventory.
type Container struct {
	ID                string       `json:"_id"`
	ContainerNumber   string       `json:"containerNumber"`
	ContainerName     string       `json:"containerName"`
	ContainerStatus   Status       `json:"containerStatus"`
	DeliveryDate      string       `json:"deliveryDate"`
	ShippingCost      money.Amount `json:"shippingCost"`
	ContainerProducts []Product    `json:"containerProducts"`
	IsDeleted         bool         `json:"isDeleted,omitempty"`
	CreatedAt         time.Time    `json:"createdAt,omitempty"`
	UpdatedAt         time.Time    `json:"updatedAt,omitempty"`
}

// ContainerRequest is the add/edit container form.
type ContainerRequest struct {
	ContainerNumber   string       `json:"containerNumber"`
	ContainerName     string       `json:"containerName"`
	ContainerStatus   Status       `json:"containerStatus"`
	DeliveryDate      string       `json:"deliveryDate"`
	ShippingCost      money.Amount `json:"shippingCost"`
	ContainerProducts []Product    `json:"containerProducts"`
}
