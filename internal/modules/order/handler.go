package order

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                             // GET    /api/v1/orders?storeId=&paymentStatus=&orderStatus=&q=&page=&limit=
		r.Post("/", h.createOrder)                           // POST   /api/v1/orders
		r.Get("/{id}", h.getOrder)                           // GET    /api/v1/orders/{id}
		r.Patch("/{id}", h.updateOrder)                      // PATCH  /api/v1/orders/{id}
		r.Delete("/{id}", h.deleteOrder)                     // DELETE /api/v1/orders/{id}
		r.Post("/{id}/shipping-charge", h.addShippingCharge) // POST   /api/v1/orders/{id}/shipping-charge
		r.Post("/{id}/products", h.addLineItem)              // POST   /api/v1/orders/{id}/products
		r.Get("/{id}/invoice.pdf", h.invoice)                // GET    /api/v1/orders/{id}/invoice.pdf
		r.Get("/{id}/delivery-sheet.pdf", h.deliverySheet)   // GET    /api/v1/orders/{id}/delivery-sheet.pdf
		r.Get("/{id}/ship-to-address.pdf", h.shipToAddress)  // GET    /api/v1/orders/{id}/ship-to-address.pdf
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		StoreID:       q.Get("storeId"),
		PaymentStatus: PaymentStatus(q.Get("paymentStatus")),
		OrderStatus:   Status(q.Get("orderStatus")),
		SearchTerm:    q.Get("q"),
		From:          q.Get("from"),
		To:            q.Get("to"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "order deleted"})
}

func (h *Handler) addShippingCharge(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.AddShippingCharge(r.Context(), chi.URLParam(r, "id"), body.Amount)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) addLineItem(w http.ResponseWriter, r *http.Request) {
	var in LineInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.AddLineItem(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) invoice(w http.ResponseWriter, r *http.Request) {
	h.pdf(w, r, h.service.Invoice)
}

func (h *Handler) deliverySheet(w http.ResponseWriter, r *http.Request) {
	h.pdf(w, r, h.service.DeliverySheet)
}

func (h *Handler) shipToAddress(w http.ResponseWriter, r *http.Request) {
	h.pdf(w, r, h.service.ShipToAddress)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request, download func(ctx context.Context, id string) (*Document, error)) {
	doc, err := download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Content)
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
