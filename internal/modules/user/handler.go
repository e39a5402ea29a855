package user

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juju/loggo/v2"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

var logger = loggo.GetLogger("printa.user")

type Handler struct {
	service  Service
	sessions session.Store
}

func NewHandler(service Service, sessions session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/api/v1/users", h.listSalesUsers)
	router.Post("/api/v1/users", h.createSalesUser)
}

func (h *Handler) listSalesUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListSalesUsers(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func (h *Handler) createSalesUser(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, err := h.sessions.Load()
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.service.CreateSalesUser(r.Context(), sess, req.Email, req.Password); err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"status": "sales user created"})
}

func fail(w http.ResponseWriter, err error) {
	f := form.Classify(err)
	if f.Kind == form.KindUnexpected {
		logger.Errorf("%v", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.HTTPStatus())
	json.NewEncoder(w).Encode(f)
}
