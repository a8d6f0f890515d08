package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/shelter-fetch/internal/core/domain"
	"github.com/DanielPopoola/shelter-fetch/internal/render"
)

// Handlers serves page data. Each request runs in its own render pass.
type Handlers struct {
	renderer *render.Renderer
	logger   *slog.Logger
}

func NewHandlers(renderer *render.Renderer, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{renderer: renderer, logger: logger}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /pages/home", h.Home)
	mux.HandleFunc("GET /pages/news", h.NewsList)
	mux.HandleFunc("GET /pages/news/{id}", h.NewsDetail)
	mux.HandleFunc("GET /pages/dogs", h.DogList)
	mux.HandleFunc("GET /pages/dogs/{id}", h.DogDetail)
}

// Healthz reports liveness
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string  "Service is up"
// @Router       /healthz [get]
func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.InvalidRequestError{Reason: "invalid id " + strconv.Quote(raw)}
	}
	return id, nil
}
