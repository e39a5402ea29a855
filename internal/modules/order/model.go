package order

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentPaid        PaymentStatus = "paid"
	PaymentNotPaid     PaymentStatus = "notPaid"
	PaymentPartialPaid PaymentStatus = "partiallyPaid"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// StoreRef is the customer an order belongs to. The API sends it either as
// a bare id or as the populated customer.
type StoreRef struct {
	ID        string `json:"_id"`
	StoreName string `json:"storeName,omitempty"`
}

func (r *StoreRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		return json.Unmarshal(data, &r.ID)
	}
	type plain StoreRef
	return json.Unmarshal(data, (*plain)(r))
}

// ProductRef is the product of a line item, as an id or populated.
type ProductRef struct {
	ID      string
	Product *catalog.Product
}

func (r *ProductRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		r.Product = nil
		return json.Unmarshal(data, &r.ID)
	}
	p := &catalog.Product{}
	if err := json.Unmarshal(data, p); err != nil {
		return err
	}
	r.ID, r.Product = p.ID, p
	return nil
}

func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Product != nil {
		return json.Marshal(r.Product)
	}
	return json.Marshal(r.ID)
}

// LineItem is one product line of an order.
type LineItem struct {
	Product  ProductRef   `json:"productId"`
	Quantity int          `json:"quantity"`
	Discount money.Amount `json:"discount"`
}

// Order is a sales order placed for a customer store.
type Order struct {
	ID                    string        `json:"_id"`
	InvoiceNumber         string        `json:"invoiceNumber"`
	PONumber              string        `json:"PONumber"`
	Store                 *StoreRef     `json:"storeId,omitempty"`
	Date                  string        `json:"date"`
	PaymentDueDate        string        `json:"paymentDueDate"`
	ShippingDate          string        `json:"shippingDate,omitempty"`
	OrderAmount           money.Amount  `json:"orderAmount"`
	ShippingCharge        money.Amount  `json:"shippingCharge"`
	DiscountGiven         money.Amount  `json:"discountGiven"`
	OpenBalance           money.Amount  `json:"openBalance"`
	ProfitAmount          money.Amount  `json:"profitAmount"`
	ProfitPercentage      float64       `json:"profitPercentage"`
	PaymentAmountReceived money.Amount  `json:"paymentAmountReceived"`
	OrderStatus           Status        `json:"orderStatus"`
	PaymentStatus         PaymentStatus `json:"paymentStatus"`
	SalesPerson           string        `json:"salesPerson,omitempty"`
	Products              []LineItem    `json:"products"`
	CreatedAt             time.Time     `json:"createdAt,omitempty"`
	UpdatedAt             time.Time     `json:"updatedAt,omitempty"`
}

// HasOpenBalance reports whether the order still awaits payment.
func (o *Order) HasOpenBalance() bool { return o.OpenBalance.Positive() }

// LineRequest is a product line as sent to the API.
type LineRequest struct {
	ProductID string       `json:"productId"`
	Quantity  int          `json:"quantity"`
	Discount  money.Amount `json:"discount"`
}

// OrderRequest is the new-order form.
type OrderRequest struct {
	StoreID        string        `json:"storeId"`
	Date           string        `json:"date"`
	InvoiceNumber  string        `json:"invoiceNumber,omitempty"`
	PONumber       string        `json:"PONumber,omitempty"`
	PaymentDueDate string        `json:"paymentDueDate,omitempty"`
	ShippingCharge *money.Amount `json:"shippingCharge,omitempty"`
	SalesPerson    string        `json:"salesPerson,omitempty"`
	Products       []LineRequest `json:"products"`
}

// UpdateRequest is a partial order edit. Nil and empty fields are not sent.
type UpdateRequest struct {
	Date                  string        `json:"date,omitempty"`
	InvoiceNumber         string        `json:"invoiceNumber,omitempty"`
	PONumber              string        `json:"PONumber,omitempty"`
	StoreID               string        `json:"storeId,omitempty"`
	PaymentDueDate        string        `json:"paymentDueDate,omitempty"`
	ShippingCharge        *money.Amount `json:"shippingCharge,omitempty"`
	PaymentAmountReceived *money.Amount `json:"paymentAmountReceived,omitempty"`
	PaymentStatus         PaymentStatus `json:"paymentStatus,omitempty"`
	SalesPerson           string        `json:"salesPerson,omitempty"`
	Products              []LineRequest `json:"products,omitempty"`
}

// LineInput is the extra line item form: raw user input.
type LineInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Discount  string `json:"discount"`
}

// ListFilter narrows the order list. Zero fields are omitted from the query.
type ListFilter struct {
	StoreID       string        `url:"storeId,omitempty"`
	PaymentStatus PaymentStatus `url:"paymentStatus,omitempty"`
	OrderStatus   Status        `url:"orderStatus,omitempty"`
	SearchTerm    string        `url:"searchTerm,omitempty"`
	From          string        `url:"startDate,omitempty"`
	To            string        `url:"endDate,omitempty"`
	Page          int           `url:"page,omitempty"`
	Limit         int           `url:"limit,omitempty"`
}

// Document is a PDF rendered by the API for an order.
type Document struct {
	Filename string
	Content  []byte
}
