package customer

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Handler exposes customer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.listCustomers)              // GET    /api/v1/customers?q=
		r.Post("/", h.createCustomer)            // POST   /api/v1/customers
		r.Get("/{id}", h.getCustomer)            // GET    /api/v1/customers/{id}
		r.Get("/{id}/open-orders", h.openOrders) // GET    /api/v1/customers/{id}/open-orders
		r.Patch("/{id}", h.updateCustomer)       // PATCH  /api/v1/customers/{id}
		r.Delete("/{id}", h.deleteCustomer)      // DELETE /api/v1/customers/{id}
	})
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) openOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.OpenOrders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	d := NewDraft()
	if err := json.NewDecoder(r.Body).Decode(&d.Form); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.CreateCustomer(r.Context(), DraftOf(d.Form))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var f Form
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), DraftOf(f))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "customer deleted"})
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
