package order

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/rest/resttest"
)

const orderJSON = `{"success":true,"data":{
	"_id":"o1","PONumber":"PO-7","storeId":{"_id":"s1","storeName":"Corner Deli"},
	"orderAmount":120.5,"openBalance":20,
	"products":[{"productId":{"_id":"p1","name":"Paper Cup 8oz","salesPrice":12.5},"quantity":4,"discount":1.5}]
}}`

func newTestService(t *testing.T) (Service, *resttest.Server) {
	srv := resttest.NewServer(t)
	client := srv.Client(t, nil)
	products := catalog.NewService(catalog.NewRESTRepository(client))
	return NewService(NewRESTRepository(client), products), srv
}

func TestGetOrderDecodesPopulatedRefs(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Reply(http.MethodGet, "/order/o1", http.StatusOK, orderJSON)

	o, err := svc.GetOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, "s1", o.Store.ID)
	assert.Equal(t, "Corner Deli", o.Store.StoreName)
	require.Len(t, o.Products, 1)
	assert.Equal(t, "p1", o.Products[0].Product.ID)
	assert.Equal(t, "Paper Cup 8oz", o.Products[0].Product.Product.Name)
	assert.True(t, o.HasOpenBalance())
}

func TestListOrdersEncodesFilter(t *testing.T) {
	svc, srv := newTestService(t)
	srv.ReplyData(http.MethodGet, "/order", []any{})

	_, err := svc.ListOrders(context.Background(), ListFilter{StoreID: "s1", PaymentStatus: PaymentNotPaid, Page: 2})
	require.NoError(t, err)

	calls := srv.Calls(http.MethodGet, "/order")
	require.Len(t, calls, 1)
	q, err := url.ParseQuery(calls[0].Query)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"storeId": {"s1"}, "paymentStatus": {"notPaid"}, "page": {"2"}}, q)

	// A different filter is a different cache entry.
	_, err = svc.ListOrders(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "", srv.Calls(http.MethodGet, "/order")[1].Query)
}

func TestAddShippingCharge(t *testing.T) {
	svc, srv := newTestService(t)
	srv.ReplyData(http.MethodPatch, "/order/o1", map[string]string{"_id": "o1"})

	for _, bad := range []string{"", "abc", "-5", "1.234"} {
		_, err := svc.AddShippingCharge(context.Background(), "o1", bad)
		f := form.Classify(err)
		assert.Equal(t, form.KindValidation, f.Kind, "input %q", bad)
		assert.Equal(t, msgShippingCharge, f.Fields["shippingCharge"])
	}
	assert.Equal(t, 0, srv.Total())

	_, err := svc.AddShippingCharge(context.Background(), "o1", "15.50")
	require.NoError(t, err)
	assert.JSONEq(t, `{"shippingCharge":15.5}`, string(srv.Calls(http.MethodPatch, "/order/o1")[0].Body))
}

func TestAddLineItemAppendsToExistingProducts(t *testing.T) {
	svc, srv := newTestService(t)
	srv.Reply(http.MethodGet, "/order/o1", http.StatusOK, orderJSON)
	srv.ReplyData(http.MethodGet, "/product", []map[string]any{{"_id": "p1"}, {"_id": "p2"}})
	srv.ReplyData(http.MethodPatch, "/order/o1", map[string]string{"_id": "o1"})

	_, err := svc.AddLineItem(context.Background(), "o1", LineInput{ProductID: "p2", Quantity: 3, Discount: "2"})
	require.NoError(t, err)

	var body struct {
		Products []map[string]any `json:"products"`
	}
	srv.Calls(http.MethodPatch, "/order/o1")[0].Decode(t, &body)
	assert.Equal(t, []map[string]any{
		{"productId": "p1", "quantity": 4.0, "discount": 1.5},
		{"productId": "p2", "quantity": 3.0, "discount": 2.0},
	}, body.Products)
}

func TestAddLineItemValidation(t *testing.T) {
	svc, srv := newTestService(t)
	srv.ReplyData(http.MethodGet, "/product", []map[string]any{{"_id": "p1"}})

	_, err := svc.AddLineItem(context.Background(), "o1", LineInput{ProductID: "p1", Quantity: 0, Discount: "x"})
	assert.Equal(t, form.FieldErrors{"quantity": form.MsgPositiveInt, "discount": msgDiscount}, form.Classify(err).Fields)

	_, err = svc.AddLineItem(context.Background(), "o1", LineInput{ProductID: "ghost", Quantity: 1})
	assert.Contains(t, form.Classify(err).Fields, "productId")
	assert.Equal(t, 0, srv.Count(http.MethodPatch, "/order/o1"))
}

func TestCreateOrderRequiresProducts(t *testing.T) {
	svc, srv := newTestService(t)
	_, err := svc.CreateOrder(context.Background(), OrderRequest{StoreID: "s1", Date: "2024-05-01"})
	assert.Equal(t, form.FieldErrors{"products": msgNoProducts}, form.Classify(err).Fields)
	assert.Equal(t, 0, srv.Total())
}

func TestHandlerInvoicePDF(t *testing.T) {
	svc, srv := newTestService(t)
	srv.HandleFunc(http.MethodGet, "/order/orderInvoice/o1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	})
	router := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/o1/invoice.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), "invoice-o1.pdf"))

	// PDFs are never cached.
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/orders/o1/invoice.pdf", nil))
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/order/orderInvoice/o1"))
}
