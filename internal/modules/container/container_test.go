package container

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/modules/inventory"
	"github.com/georgemunganga/printa-dashboard/internal/rest/resttest"
)

func TestCreateContainerValidation(t *testing.T) {
	srv := resttest.NewServer(t)
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	_, err := svc.CreateContainer(context.Background(), ContainerRequest{
		ContainerName:     "Spring batch",
		ContainerStatus:   "lost",
		ContainerProducts: []Product{{ItemNumber: "PC-8", Quantity: 0}, {Quantity: 4}},
	})
	f := form.Classify(err)
	require.Equal(t, form.KindValidation, f.Kind)
	assert.Equal(t, form.FieldErrors{
		"containerNumber":                form.MsgRequired,
		"containerStatus":                "Unknown container status.",
		"containerProducts.0.quantity":   form.MsgPositiveInt,
		"containerProducts.1.itemNumber": form.MsgRequired,
	}, f.Fields)
	assert.Equal(t, 0, srv.Total())
}

func TestCreateContainerDefaultsToPending(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodPost, "/container", map[string]any{"_id": "c1", "containerStatus": "pending"})
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	c, err := svc.CreateContainer(context.Background(), ContainerRequest{ContainerNumber: "MSKU1", ContainerName: "Spring batch"})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, c.ContainerStatus)

	var body ContainerRequest
	srv.Calls(http.MethodPost, "/container")[0].Decode(t, &body)
	assert.Equal(t, StatusPending, body.ContainerStatus)
}

func TestImportInvalidatesInventory(t *testing.T) {
	srv := resttest.NewServer(t)
	client := srv.Client(t, nil)
	svc := NewService(NewRESTRepository(client))
	items := inventory.NewService(inventory.NewRESTRepository(client))
	ctx := context.Background()

	srv.ReplyData(http.MethodGet, "/product", []any{})
	_, err := items.ListItems(ctx)
	require.NoError(t, err)

	var gotFile, gotName string
	srv.HandleFunc(http.MethodPost, "/container/xl", func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err == nil {
			var buf bytes.Buffer
			buf.ReadFrom(f)
			gotFile, gotName = buf.String(), hdr.Filename
		}
		w.Write([]byte(`{"success":true,"data":[{"_id":"c1"},{"_id":"c2"}]}`))
	})

	containers, err := svc.ImportExcel(ctx, "batch.XLSX", strings.NewReader("sheet"))
	require.NoError(t, err)
	assert.Len(t, containers, 2)
	assert.Equal(t, "sheet", gotFile)
	assert.Equal(t, "batch.XLSX", gotName)

	_, err = items.ListItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/product"))
}

func TestImportRejectsNonExcel(t *testing.T) {
	srv := resttest.NewServer(t)
	svc := NewService(NewRESTRepository(srv.Client(t, nil)))

	_, err := svc.ImportExcel(context.Background(), "batch.csv", strings.NewReader("a,b"))
	assert.Equal(t, form.KindValidation, form.Classify(err).Kind)
	assert.Equal(t, 0, srv.Total())
}

func TestHandlerImport(t *testing.T) {
	srv := resttest.NewServer(t)
	srv.ReplyData(http.MethodPost, "/container/xl", []map[string]string{{"_id": "c1"}})
	router := chi.NewRouter()
	NewHandler(NewService(NewRESTRepository(srv.Client(t, nil)))).RegisterRoutes(router)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "batch.xlsx")
	require.NoError(t, err)
	part.Write([]byte("sheet"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/containers/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/container/xl"))
}
