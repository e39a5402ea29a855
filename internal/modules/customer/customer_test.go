package customer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/rest/resttest"
)

func filledDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft()
	for name, value := range map[string]string{
		"storeName":        "Acme",
		"storePhone":       "1234567890",
		"storePersonName":  "Jane Roe",
		"storePersonPhone": "(555) 010-9999",
		"storePersonEmail": "jane@acme.com",
		"billingAddress":   "1 Main St",
		"billingCity":      "Springfield",
		"billingState":     "IL",
		"billingZipcode":   "62701",
		"shippingAddress":  "2 Dock Rd",
		"shippingCity":     "Springfield",
		"shippingState":    "IL",
		"shippingZipcode":  "62702",
	} {
		require.NoError(t, d.Change(name, value))
	}
	require.NoError(t, d.ToggleDeliveryDay("monday"))
	return d
}

func TestAddCustomerPayload(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodPost, "/customer", map[string]string{"_id": "c1"})
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	c, err := svc.CreateCustomer(context.Background(), filledDraft(t))
	require.NoError(t, err)
	assert.Equal(t, "c1", c.ID)

	calls := srv.Calls(http.MethodPost, "/customer")
	require.Len(t, calls, 1)
	var body map[string]any
	calls[0].Decode(t, &body)
	assert.Equal(t, "Acme", body["storeName"])
	assert.Equal(t, "1234567890", body["storePhone"])
	assert.Equal(t, "5550109999", body["storePersonPhone"])
	assert.Equal(t, 30.0, body["termDays"])
	assert.Equal(t, []any{"monday"}, body["acceptedDeliveryDays"])
	assert.Equal(t, DefaultSalesTaxID, body["salesTaxId"])
	assert.Equal(t, "SILVER", body["shippingStatus"])
}

func TestAddCustomerMissingBillingCity(t *testing.T) {
	srv := resttest.NewServer(t)
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	d := filledDraft(t)
	require.NoError(t, d.Change("billingCity", ""))
	_, err := svc.CreateCustomer(context.Background(), d)

	require.Error(t, err)
	assert.Equal(t, form.FieldErrors{"billingCity": form.MsgRequired}, d.Errors)
	assert.Equal(t, 0, srv.Total())
}

func TestValidateReportsEveryField(t *testing.T) {
	d := NewDraft()
	d.Form.TermDays = "0"
	require.NoError(t, d.Change("storePhone", "12345"))
	require.NoError(t, d.Change("storePersonEmail", "not-an-email"))
	require.NoError(t, d.Change("billingZipcode", "123"))

	_, err := d.Submit()
	require.Error(t, err)
	assert.Equal(t, form.MsgPhone, d.Errors["storePhone"])
	assert.Equal(t, form.MsgEmail, d.Errors["storePersonEmail"])
	assert.Equal(t, form.MsgZip, d.Errors["billingZipcode"])
	assert.Equal(t, form.MsgRequired, d.Errors["shippingZipcode"])
	assert.Equal(t, form.MsgTermDays, d.Errors["termDays"])
	assert.Equal(t, form.MsgDeliveryDays, d.Errors["acceptDeliveryDays"])
	assert.Len(t, d.Errors, 15)
}

func TestEditDraftDefaultsShippingStatus(t *testing.T) {
	payload, err := filledDraft(t).Submit()
	require.NoError(t, err)
	payload.ShippingStatus = ""

	d := EditDraft(&Customer{ID: "c1", Payload: *payload})
	assert.Equal(t, ShippingSilver, d.Form.ShippingStatus)
	assert.Empty(t, d.Validate())
}

func TestChangeNormalizesAndClearsError(t *testing.T) {
	d := NewDraft()
	d.Submit()
	require.True(t, d.Errors.Has("storePhone"))

	require.NoError(t, d.Change("storePhone", "555-01"))
	assert.Equal(t, "(555)01", d.Form.StorePhone)
	assert.False(t, d.Errors.Has("storePhone"))
	assert.True(t, d.Errors.Has("storeName"))

	require.NoError(t, d.Change("billingZipcode", "62a70199"))
	assert.Equal(t, "62701", d.Form.BillingZipcode)

	assert.Error(t, d.Change("nickname", "x"))
}

func TestSameAsBillingAddress(t *testing.T) {
	d := filledDraft(t)
	d.Errors.Add("shippingCity", "stale")
	d.SetSameAsBilling(true)
	assert.Equal(t, "1 Main St", d.Form.ShippingAddress)
	assert.Equal(t, "62701", d.Form.ShippingZipcode)
	assert.False(t, d.Errors.Has("shippingCity"))

	// Billing edits made afterwards still reach the payload.
	require.NoError(t, d.Change("billingAddress", "9 Elm St"))
	p, err := d.Submit()
	require.NoError(t, err)
	assert.Equal(t, "9 Elm St", p.ShippingAddress)
}

func TestDeliveryDaysCalendarOrder(t *testing.T) {
	var dd DeliveryDays
	for _, day := range []string{"Friday", "monday", "WEDNESDAY", "sunday"} {
		require.NoError(t, dd.Toggle(day))
	}
	require.NoError(t, dd.Toggle("wednesday"))
	assert.Equal(t, []string{"monday", "friday", "sunday"}, dd.Days())
	assert.True(t, dd.Has("Monday"))
	assert.Error(t, dd.Toggle("someday"))

	raw, err := json.Marshal(DeliveryDays{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	var back DeliveryDays
	require.NoError(t, json.Unmarshal([]byte(`["sunday","monday"]`), &back))
	assert.Equal(t, []string{"monday", "sunday"}, back.Days())
}

func TestServerFieldErrorsMergeIntoDraft(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.Reply(http.MethodPost, "/customer", http.StatusBadRequest,
		`{"success":false,"message":"Validation Error","errorSources":[{"path":"storePersonEmail","message":"Email already in use"}]}`)
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	d := filledDraft(t)
	_, err := svc.CreateCustomer(context.Background(), d)
	require.Error(t, err)
	assert.Equal(t, form.KindServerValidation, form.Classify(err).Kind)
	assert.Equal(t, "Email already in use", d.Errors["storePersonEmail"])
}

func TestOpenOrders(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodGet, "/customer/c1", map[string]any{
		"_id":            "c1",
		"storeName":      "Acme",
		"customerOrders": []map[string]any{{"_id": "o1", "openBalance": 0}, {"_id": "o2", "openBalance": 12.5}},
	})
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	orders, err := svc.OpenOrders(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)
}

func TestListCustomersSearchAndSort(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodGet, "/customer", []map[string]any{
		{"_id": "1", "storeName": "Zed Market"},
		{"_id": "2", "storeName": "acme deli"},
		{"_id": "3", "storeName": "Acme Foods", "isDeleted": true},
	})
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	all, err := svc.ListCustomers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2", all[0].ID)

	found, err := svc.ListCustomers(context.Background(), "ACME")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, srv.Count(http.MethodGet, "/customer"))
}

func TestHandlerCreateCustomerValidation(t *testing.T) {
	srv := resttest.NewServer(t)
	router := chi.NewRouter()
	NewHandler(NewService(NewRESTRepository(srv.Client(t, nil)))).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader(`{"storeName":"Acme","acceptDeliveryDays":["monday"]}`)))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var f form.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, form.MsgRequired, f.Fields["billingCity"])
	assert.NotContains(t, f.Fields, "storeName")
	assert.NotContains(t, f.Fields, "termDays")
	assert.Equal(t, 0, srv.Total())
}
