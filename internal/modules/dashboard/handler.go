package dashboard

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/printa-dashboard/internal/form"
)

// Handler exposes dashboard HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/overview", h.overview)                // GET /api/v1/dashboard/overview
		r.Get("/overview/stream", h.streamOverview)   // GET /api/v1/dashboard/overview/stream (text/event-stream)
		r.Get("/sales-overview", h.salesOverview)     // GET /api/v1/dashboard/sales-overview
		r.Get("/chart", h.chart)                      // GET /api/v1/dashboard/chart
		r.Get("/product-segments", h.productSegments) // GET /api/v1/dashboard/product-segments?limit=
	})
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Overview(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

// streamOverview sends the overview as a server-sent event, then again each
// time it is refetched, until the client goes away.
func (h *Handler) streamOverview(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respond(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	// Holds only the latest overview; a slow client skips intermediate ones.
	updates := make(chan *Overview, 1)
	stop := h.service.WatchOverview(func(o *Overview, err error) {
		if err != nil {
			logger.Warningf("refreshing overview: %v", err)
			return
		}
		for {
			select {
			case updates <- o:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case o := <-updates:
			data, err := json.Marshal(o)
			if err != nil {
				logger.Errorf("encoding overview: %v", err)
				return
			}
			fmt.Fprintf(w, "event: overview\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *Handler) salesOverview(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.SalesOverview(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, points)
}

func (h *Handler) chart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.Chart(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, points)
}

func (h *Handler) productSegments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	segments, err := h.service.TopSegments(r.Context(), limit)
	if err != nil {
		fail(w, err)
		return
	}
	respond(w, http.StatusOK, segments)
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
