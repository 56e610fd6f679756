package catalog

import (
	"errors"

	"ck-services/core/logger"
	"ck-services/feature/catalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/offices")
	group.Get("/", h.HandleListOffices)
	group.Post("/", h.HandleCreatePage)
	group.Get("/:state/:office/sitemap", h.HandleGetSitemap)
	group.Get("/:state/:office/areas/:area/services", h.HandleListAreaServices)
	group.Get("/:state/:office/areas/:area/services/:service/page", h.HandleGetPage)
	group.Get("/:state/areas/:area/services/:service/page", h.HandleGetPageAcrossOffices)
}

// HandleGetPage returns the page record for a full hierarchical key.
func (h *Handler) HandleGetPage(c *fiber.Ctx) error {
	key, err := ParseFullKey(c.Params("state"), c.Params("office"), c.Params("area"), c.Params("service"))
	if err != nil {
		return h.respondError(c, err)
	}

	record, err := h.service.GetPage(c.Context(), key)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(record)
}

// HandleGetPageAcrossOffices resolves a partial key with the office segment
// omitted. More than one matching office yields 409 with the candidate list.
func (h *Handler) HandleGetPageAcrossOffices(c *fiber.Ctx) error {
	record, err := h.service.GetServiceAcrossOffices(c.Context(),
		c.Params("state"), c.Params("area"), c.Params("service"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(record)
}

// HandleListAreaServices lists the services an office offers in an area.
func (h *Handler) HandleListAreaServices(c *fiber.Ctx) error {
	records, err := h.service.GetServicesForArea(c.Context(),
		c.Params("state"), c.Params("office"), c.Params("area"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(records)
}

// HandleGetSitemap returns the (area, service) pairs of one office.
func (h *Handler) HandleGetSitemap(c *fiber.Ctx) error {
	pairs, err := h.service.GetOfficeSitemap(c.Context(), c.Params("state"), c.Params("office"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(pairs)
}

// HandleListOffices returns every state-office token in the catalog.
func (h *Handler) HandleListOffices(c *fiber.Ctx) error {
	tokens, err := h.service.ListAllOfficeTokens(c.Context())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{"offices": tokens})
}

// HandleCreatePage creates a single page record from a JSON body.
func (h *Handler) HandleCreatePage(c *fiber.Ctx) error {
	var record models.PageRecord
	if err := c.BodyParser(&record); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	record.ID = 0

	if err := h.service.CreatePage(c.Context(), &record); err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      record.ID,
		"message": "Page created successfully",
	})
}

// respondError maps the catalog error taxonomy onto stable status codes.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	var ambiguous *AmbiguousKeyError
	switch {
	case errors.Is(err, models.ErrInvalidKeyFormat):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Page not found",
		})
	case errors.As(err, &ambiguous):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "ambiguous key: multiple offices match",
			"offices": ambiguous.OfficeTokens,
		})
	case errors.Is(err, ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Page already exists",
		})
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Error("Catalog request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
