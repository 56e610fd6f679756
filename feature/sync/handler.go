package sync

import (
	"errors"

	"ck-services/core/feed"
	"ck-services/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the reconciliation trigger over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/run", h.HandleRun)
}

// HandleRun triggers a reconciliation run and returns the run report.
// A run already in flight yields 409; a source failure yields 502 with the
// failure kind and no report.
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunOnce(c.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrRunActive):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "a sync run is already active",
			})
		case errors.Is(err, feed.ErrSourceTimeout):
			return sourceFailure(c, l, "source_timeout", err)
		case errors.Is(err, feed.ErrSourceFormat):
			return sourceFailure(c, l, "source_format_invalid", err)
		case errors.Is(err, feed.ErrSourceUnavailable):
			return sourceFailure(c, l, "source_unavailable", err)
		}

		l.Error("Sync run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

func sourceFailure(c *fiber.Ctx, l *zap.Logger, kind string, err error) error {
	l.Error("Sync run aborted by source failure",
		zap.String("kind", kind),
		zap.Error(err),
	)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": err.Error(),
		"kind":  kind,
	})
}
