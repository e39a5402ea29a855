package prospect

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/juju/errors"

	"github.com/georgemunganga/printa-dashboard/internal/modules/user"
	"github.com/georgemunganga/printa-dashboard/internal/money"
)

// Status is the pipeline stage of a prospect. Any stage may follow any other.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusRejected  Status = "rejected"
	StatusConverted Status = "converted"
)

// Statuses lists the stages in pipeline order.
var Statuses = []Status{StatusNew, StatusContacted, StatusQualified, StatusRejected, StatusConverted}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Medium is how a follow-up activity took place.
type Medium string

const (
	MediumCall     Medium = "call"
	MediumEmail    Medium = "email"
	MediumMeeting  Medium = "meeting"
	MediumWhatsApp Medium = "whatsapp"
)

func (m Medium) Valid() bool {
	switch m {
	case MediumCall, MediumEmail, MediumMeeting, MediumWhatsApp:
		return true
	}
	return false
}

// FollowUpActivity is one contact made with a prospect.
type FollowUpActivity struct {
	Activity       string `json:"activity"`
	ActivityDate   string `json:"activityDate"`
	ActivityMedium Medium `json:"activityMedium"`
}

// QuotedItem is a product quoted to a prospect at a given price.
type QuotedItem struct {
	ProductObjID string       `json:"productObjId"`
	ItemNumber   string       `json:"itemNumber"`
	ItemName     string       `json:"itemName"`
	Price        money.Amount `json:"price"`
	PacketSize   string       `json:"packetSize"`
}

// SalesPersonRef is the assigned salesperson as the API returns it: null,
// a bare id, or the populated user.
type SalesPersonRef struct {
	ID   string
	User *user.SalesUser
}

// Assigned reports whether a salesperson is set.
func (r SalesPersonRef) Assigned() bool { return r.ID != "" }

func (r *SalesPersonRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = SalesPersonRef{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return errors.Trace(err)
		}
		*r = SalesPersonRef{ID: id}
		return nil
	}
	u := &user.SalesUser{}
	if err := json.Unmarshal(data, u); err != nil {
		return errors.Annotate(err, "decoding assigned sales person")
	}
	*r = SalesPersonRef{ID: u.ID, User: u}
	return nil
}

func (r SalesPersonRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.User != nil:
		return json.Marshal(r.User)
	case r.ID != "":
		return json.Marshal(r.ID)
	}
	return []byte("null"), nil
}

// Contact holds the store and shipping details shared by the form, the
// payload and the stored prospect.
type Contact struct {
	StoreName             string `json:"storeName"`
	StorePhone            string `json:"storePhone"`
	StorePersonEmail      string `json:"storePersonEmail"`
	StorePersonName       string `json:"storePersonName"`
	StorePersonPhone      string `json:"storePersonPhone"`
	SalesTaxID            string `json:"salesTaxId,omitempty"`
	ShippingAddress       string `json:"shippingAddress"`
	ShippingState         string `json:"shippingState"`
	ShippingZipcode       string `json:"shippingZipcode"`
	ShippingCity          string `json:"shippingCity"`
	MiscellaneousDocImage string `json:"miscellaneousDocImage,omitempty"`
	LeadSource            string `json:"leadSource"`
	Note                  string `json:"note,omitempty"`
	CompetitorStatement   string `json:"competitorStatement"`
}

// Payload is a prospect as sent to the API. Phones are digits only and the
// salesperson is always an id.
type Payload struct {
	Contact
	Status              Status             `json:"status"`
	AssignedSalesPerson string             `json:"assignedSalesPerson,omitempty"`
	FollowUpActivities  []FollowUpActivity `json:"followUpActivities"`
	QuotedList          []QuotedItem       `json:"quotedList"`
}

// Prospect is a store being courted by the sales team.
type Prospect struct {
	ID string `json:"_id"`
	Contact
	Status              Status             `json:"status"`
	AssignedSalesPerson SalesPersonRef     `json:"assignedSalesPerson"`
	FollowUpActivities  []FollowUpActivity `json:"followUpActivities"`
	QuotedList          []QuotedItem       `json:"quotedList"`
	IsDeleted           bool               `json:"isDeleted,omitempty"`
	CreatedAt           time.Time          `json:"createdAt,omitempty"`
	UpdatedAt           time.Time          `json:"updatedAt,omitempty"`
}

// Page is one page of the prospect listing.
type Page struct {
	Prospects  []*Prospect `json:"prospects"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Total      int         `json:"total"`
}
