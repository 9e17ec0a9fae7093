package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pbf-price-service/internal/config"
	"pbf-price-service/internal/middleware"
	plHandler "pbf-price-service/internal/pricelist/handler"
	"pbf-price-service/server/http/handlers"
)

func NewRouter(cfg config.Config, logger zerolog.Logger, h *plHandler.Handler) *chi.Mux {
	r := chi.NewRouter()

	// order matters: recover -> requestID -> logging -> cors -> limit
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))

	r.Get("/health", handlers.Health)

	r.Post("/process", h.Process)
	r.Get("/sessions/{id}", h.Get)
	r.Delete("/sessions/{id}", h.Delete)
	r.Get("/sessions/{id}/deals", h.Deals)
	r.Get("/sessions/{id}/export/csv", h.ExportCSV)
	r.Get("/sessions/{id}/export/xlsx", h.ExportXLSX)

	return r
}
