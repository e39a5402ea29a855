package payment

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/georgemunganga/printa-dashboard/internal/modules/order"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// Method is how a payment was received.
type Method string

const (
	MethodCheck    Method = "check"
	MethodCash     Method = "cash"
	MethodCard     Method = "cc"
	MethodDonation Method = "donation"
)

func (m Method) Valid() bool {
	switch m {
	case MethodCheck, MethodCash, MethodCard, MethodDonation:
		return true
	}
	return false
}

// NoCheck fills the check fields of payments not made by check.
const NoCheck = "noCheck"

// Form is the record-payment form as typed by the user. CheckImage holds
// the URL of an uploaded image.
type Form struct {
	StoreID     string `json:"storeId"`
	ForOrderID  string `json:"forOrderId"`
	Amount      string `json:"amount"`
	Method      Method `json:"method"`
	Date        string `json:"date"`
	CheckNumber string `json:"checkNumber"`
	CheckImage  string `json:"checkImage"`
}

// Request is a payment as sent to the API.
type Request struct {
	StoreID     string       `json:"storeId"`
	ForOrderID  string       `json:"forOrderId"`
	Amount      money.Amount `json:"amount"`
	CheckNumber string       `json:"checkNumber"`
	Date        string       `json:"date"`
	Method      Method       `json:"method"`
	CheckImage  string       `json:"checkImage"`
}

// OrderRef is the order a payment applies to, as an id or populated.
type OrderRef struct {
	ID    string
	Order *order.Order
}

func (r *OrderRef) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(data, []byte(`"`)) {
		r.Order = nil
		return json.Unmarshal(data, &r.ID)
	}
	o := &order.Order{}
	if err := json.Unmarshal(data, o); err != nil {
		return err
	}
	r.ID, r.Order = o.ID, o
	return nil
}

func (r OrderRef) MarshalJSON() ([]byte, error) {
	if r.Order != nil {
		return json.Marshal(r.Order)
	}
	return json.Marshal(r.ID)
}

// Payment is a recorded payment.
type Payment struct {
	ID          string         `json:"_id"`
	Store       order.StoreRef `json:"storeId"`
	ForOrder    OrderRef       `json:"forOrderId"`
	Amount      money.Amount   `json:"amount"`
	Method      Method         `json:"method"`
	Date        string         `json:"date"`
	CheckNumber string         `json:"checkNumber,omitempty"`
	CheckImage  string         `json:"checkImage,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
}

// History is a customer's payments and their total.
type History struct {
	Payments []*Payment   `json:"payments"`
	Total    money.Amount `json:"total"`
}
