package payment

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

const maxCheckImageBytes = 16 << 20

// Handler exposes payment HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/payments", func(r chi.Router) {
		// Record a payment, as JSON or multipart with a "checkImage" file
		r.Post("/", h.record)
		// Payment history of a customer, with its total
		r.Get("/customer/{customerId}", h.history)
		// Orders of a customer that still carry a balance
		r.Get("/customer/{customerId}/open-orders", h.openOrders)
	})
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var f Form
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		url, ok := h.readMultipart(w, r, &f)
		if !ok {
			return
		}
		if url != "" {
			f.CheckImage = url
		}
	} else if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.RecordPayment(r.Context(), r.Header.Get("Idempotency-Key"), f)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

// readMultipart fills f from the form fields and uploads the check image,
// if one is attached. It writes the response itself when it fails.
func (h *Handler) readMultipart(w http.ResponseWriter, r *http.Request, f *Form) (string, bool) {
	if err := r.ParseMultipartForm(maxCheckImageBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	*f = Form{
		StoreID:     r.FormValue("storeId"),
		ForOrderID:  r.FormValue("forOrderId"),
		Amount:      r.FormValue("amount"),
		Method:      Method(r.FormValue("method")),
		Date:        r.FormValue("date"),
		CheckNumber: r.FormValue("checkNumber"),
	}
	file, hdr, err := r.FormFile("checkImage")
	if err == http.ErrMissingFile {
		return "", true
	} else if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", false
	}
	defer file.Close()

	url, err := h.service.UploadCheckImage(r.Context(), hdr.Filename, file)
	if err != nil {
		fail(w, err)
		return "", false
	}
	return url, true
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	hist, err := h.service.History(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, hist)
}

func (h *Handler) openOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.OpenOrders(r.Context(), chi.URLParam(r, "customerId"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func fail(w http.ResponseWriter, err error) {
	f := form.Classify(err)
	if f.Kind == form.KindUnexpected {
		logger.Errorf("%v", err)
	}
	respond(w, f.HTTPStatus(), f)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
