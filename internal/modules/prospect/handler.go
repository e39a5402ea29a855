package prospect

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
	"github.com/georgemunganga/printa-dashboard/internal/session"
)

// Handler exposes prospect HTTP endpoints. Role-gated operations read the
// caller's role from the session store.
type Handler struct {
	service  Service
	sessions session.Store
}

func NewHandler(service Service, sessions session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/prospects", func(r chi.Router) {
		r.Get("/", h.listProspects)                      // GET    /api/v1/prospects?q=&page=
		r.Post("/", h.createProspect)                    // POST   /api/v1/prospects
		r.Get("/quote/{productId}", h.quote)             // GET    /api/v1/prospects/quote/{productId}
		r.Get("/{id}", h.getProspect)                    // GET    /api/v1/prospects/{id}
		r.Patch("/{id}", h.updateProspect)               // PATCH  /api/v1/prospects/{id}
		r.Delete("/{id}", h.deleteProspect)              // DELETE /api/v1/prospects/{id}
		r.Put("/{id}/sales-person", h.assignSalesPerson) // PUT    /api/v1/prospects/{id}/sales-person
		r.Post("/{id}/convert", h.convertProspect)       // POST   /api/v1/prospects/{id}/convert
		r.Post("/{id}/email", h.sendEmail)               // POST   /api/v1/prospects/{id}/email
	})
}

type prospectRequest struct {
	Form
	FollowUpActivities []FollowUpActivity `json:"followUpActivities"`
	QuotedList         []QuotedItem       `json:"quotedList"`
}

func (h *Handler) listProspects(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	result, err := h.service.ListProspects(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) getProspect(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProspect(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Quote(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, q)
}

func (h *Handler) createProspect(w http.ResponseWriter, r *http.Request) {
	var req prospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sess, err := h.sessions.Load()
	if err != nil {
		fail(w, err)
		return
	}
	d := DraftOf(sess, req.Form, req.QuotedList, req.FollowUpActivities)
	p, err := h.service.CreateProspect(r.Context(), sess, d)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) updateProspect(w http.ResponseWriter, r *http.Request) {
	var req prospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sess, err := h.sessions.Load()
	if err != nil {
		fail(w, err)
		return
	}
	d := DraftOf(sess, req.Form, req.QuotedList, req.FollowUpActivities)
	p, err := h.service.UpdateProspect(r.Context(), sess, chi.URLParam(r, "id"), d)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProspect(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProspect(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "prospect deleted"})
}

func (h *Handler) assignSalesPerson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssignedSalesPerson string `json:"assignedSalesPerson"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	sess, err := h.sessions.Load()
	if err != nil {
		fail(w, err)
		return
	}
	if err := h.service.AssignSalesPerson(r.Context(), sess, chi.URLParam(r, "id"), req.AssignedSalesPerson); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "sales person assigned"})
}

func (h *Handler) convertProspect(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ConvertProspect(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "prospect converted"})
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	if err := h.service.SendEmail(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusAccepted, map[string]string{"status": "email sent"})
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
