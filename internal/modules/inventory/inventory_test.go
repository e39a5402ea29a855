package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/catalog"
	"github.com/georgemunganga/printa-dashboard/internal/money"
	"github.com/georgemunganga/printa-dashboard/internal/rest/resttest"
)

func validRequest() ItemRequest {
	return ItemRequest{
		Name:          "Paper Cup 8oz",
		ItemNumber:    "PC-8",
		PacketSize:    "50",
		CategoryID:    "cups",
		Quantity:      10,
		PurchasePrice: money.New(7),
		SalesPrice:    money.New(12.5),
	}
}

func TestCreateItemValidation(t *testing.T) {
	srv := resttest.NewServer(t)
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	req := validRequest()
	req.Name = ""
	req.ItemNumber = "  "
	req.SalesPrice = money.New(-1)
	req.Quantity = -3
	_, err := svc.CreateItem(context.Background(), req)

	f := form.Classify(err)
	require.Equal(t, form.KindValidation, f.Kind)
	assert.Equal(t, form.FieldErrors{
		"name":       form.MsgRequired,
		"itemNumber": form.MsgRequired,
		"salesPrice": msgNegative,
		"quantity":   msgNegative,
	}, f.Fields)
	assert.Equal(t, 0, srv.Total())
}

func TestCreateItemInvalidatesCatalog(t *testing.T) {
	srv := resttest.NewServer(t)
	client := srv.Client(t, nil)
	svc := NewService(NewRESTRepository(client))
	products := catalog.NewService(catalog.NewRESTRepository(client))
	ctx := context.Background()

	srv.ReplyData(http.MethodGet, "/product", []map[string]any{})
	_, err := products.ListProducts(ctx)
	require.NoError(t, err)
	_, err = svc.ListItems(ctx)
	require.NoError(t, err)

	srv.ReplyData(http.MethodPost, "/product", map[string]any{"_id": "p9", "name": "Paper Cup 8oz"})
	item, err := svc.CreateItem(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, "p9", item.ID)

	var body map[string]any
	srv.Calls(http.MethodPost, "/product")[0].Decode(t, &body)
	assert.Equal(t, "PC-8", body["itemNumber"])
	assert.Equal(t, 12.5, body["salesPrice"])

	_, err = products.ListProducts(ctx)
	require.NoError(t, err)
	_, err = svc.ListItems(ctx)
	require.NoError(t, err)
	// One read each for catalog and inventory before, and again after.
	assert.Equal(t, 4, srv.Count(http.MethodGet, "/product"))
}

func TestUpdateItemOmitsItemNumber(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodPatch, "/product/p1", map[string]any{"_id": "p1"})
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	item := &Item{Product: catalog.Product{ID: "p1", Name: "Cup", ItemNumber: "PC-8", PacketSize: "50", Category: &catalog.Category{ID: "cups"}}}
	_, err := svc.UpdateItem(context.Background(), "p1", RequestFrom(item))
	require.NoError(t, err)

	var body map[string]any
	srv.Calls(http.MethodPatch, "/product/p1")[0].Decode(t, &body)
	assert.NotContains(t, body, "itemNumber")
	assert.Equal(t, "cups", body["categoryId"])
}

func TestHandlerPacketSizes(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodGet, "/product/packet-sizes", []string{"50", "100"})
	router := chi.NewRouter()
	NewHandler(NewService(NewRESTRepository(srv.Client(t, nil)))).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inventory/packet-sizes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["50","100"]`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/inventory", strings.NewReader(`{"name":""}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
