package customer

import (
	"time"

	"github.com/georgemunganga/printa-dashboard/internal/modules/order"
)

// ShippingStatus is the service tier of a customer.
type ShippingStatus string

const (
	ShippingSilver   ShippingStatus = "SILVER"
	ShippingGold     ShippingStatus = "GOLD"
	ShippingPlatinum ShippingStatus = "PLATINUM"
)

// Valid reports whether s is a known tier.
func (s ShippingStatus) Valid() bool {
	switch s {
	case ShippingSilver, ShippingGold, ShippingPlatinum:
		return true
	}
	return false
}

// Defaults of a new customer form.
const (
	DefaultTermDays   = "30"
	DefaultSalesTaxID = "Not provided"
)

// Payload is a customer as sent to the API. Phones are digits only.
type Payload struct {
	StoreName            string         `json:"storeName"`
	StorePhone           string         `json:"storePhone"`
	StorePersonEmail     string         `json:"storePersonEmail"`
	StorePersonName      string         `json:"storePersonName"`
	StorePersonPhone     string         `json:"storePersonPhone"`
	BillingAddress       string         `json:"billingAddress"`
	BillingCity          string         `json:"billingCity"`
	BillingState         string         `json:"billingState"`
	BillingZipcode       string         `json:"billingZipcode"`
	ShippingAddress      string         `json:"shippingAddress"`
	ShippingCity         string         `json:"shippingCity"`
	ShippingState        string         `json:"shippingState"`
	ShippingZipcode      string         `json:"shippingZipcode"`
	SalesTaxID           string         `json:"salesTaxId"`
	AcceptedDeliveryDays DeliveryDays   `json:"acceptedDeliveryDays"`
	BankACHAccountInfo   string         `json:"bankACHAccountInfo"`
	CreditApplication    string         `json:"creditApplication"`
	OwnerLegalFrontImage string         `json:"ownerLegalFrontImage"`
	OwnerLegalBackImage  string         `json:"ownerLegalBackImage"`
	VoidedCheckImage     string         `json:"voidedCheckImage"`
	Miscellaneous        string         `json:"miscellaneous"`
	TermDays             int            `json:"termDays"`
	ShippingStatus       ShippingStatus `json:"shippingStatus"`
	Note                 string         `json:"note"`
}

// Customer is a store buying from the business.
type Customer struct {
	ID string `json:"_id"`
	Payload
	IsCustomerSourceProspect bool           `json:"isCustomerSourceProspect"`
	IsDeleted                bool           `json:"isDeleted"`
	CustomerOrders           []*order.Order `json:"customerOrders,omitempty"`
	CreatedAt                time.Time      `json:"createdAt,omitempty"`
	UpdatedAt                time.Time      `json:"updatedAt,omitempty"`
}

// OpenOrders returns the customer's orders that still carry a balance.
func (c *Customer) OpenOrders() []*order.Order {
	var open []*order.Order
	for _, o := range c.CustomerOrders {
		if o.HasOpenBalance() {
			open = append(open, o)
		}
	}
	return open
}
