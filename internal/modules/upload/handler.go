package upload

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

const maxUploadBytes = 32 << 20

// Handler exposes upload HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/uploads", func(r chi.Router) {
		r.Post("/", h.upload) // POST /api/v1/uploads (multipart field "file")
	})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, hdr, err := r.FormFile("file")
	if err != nil {
		fail(w, form.Invalid("file", form.MsgRequired))
		return
	}
	defer f.Close()

	file, err := h.service.Upload(r.Context(), hdr.Filename, f)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, file)
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
