package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

var logger = loggo.GetLogger("printa.catalog")

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts) // ?q=...
		r.Get("/by-category/{category}", h.listByCategory)
		r.Get("/{id}", h.getProduct)
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) listByCategory(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Lookup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, p)
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
