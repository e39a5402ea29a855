package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", h.login)                    // POST /api/v1/auth/login
		r.Post("/logout", h.logout)                  // POST /api/v1/auth/logout
		r.Post("/forgot-password", h.forgotPassword) // POST /api/v1/auth/forgot-password
		r.Post("/reset-password", h.resetPassword)   // POST /api/v1/auth/reset-password
		r.Get("/session", h.session)                 // GET  /api/v1/auth/session
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, res)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "code sent"})
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.ResetPassword(r.Context(), req); err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "password reset"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Session()
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"authenticated": sess.Authenticated(),
		"role":          sess.Role,
	})
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
