package container

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

const maxImportBytes = 16 << 20

// Handler exposes container HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/containers", func(r chi.Router) {
		r.Get("/", h.listContainers)
		r.Post("/", h.createContainer)
		r.Post("/import", h.importExcel) // multipart field "file"
		r.Get("/{id}", h.getContainer)
		r.Patch("/{id}", h.updateContainer)
		r.Delete("/{id}", h.deleteContainer)
	})
}

func (h *Handler) listContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := h.service.ListContainers(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, containers)
}

func (h *Handler) getContainer(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetContainer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) createContainer(w http.ResponseWriter, r *http.Request) {
	var req ContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.CreateContainer(r.Context(), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) updateContainer(w http.ResponseWriter, r *http.Request) {
	var req ContainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	c, err := h.service.UpdateContainer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) deleteContainer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteContainer(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	f, hdr, err := r.FormFile(importField)
	if err != nil {
		fail(w, form.Invalid(importField, form.MsgRequired))
		return
	}
	defer f.Close()

	containers, err := h.service.ImportExcel(r.Context(), hdr.Filename, f)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusCreated, containers)
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
