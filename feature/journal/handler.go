package journal

import (
	"component-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the journal.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the journal routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/journal", h.HandleList)
}

// HandleList returns recent loader events.
// @Summary List Loader Events
// @Description Returns the most recent loader events, newest first.
// @Tags journal
// @Produce json
// @Param kind query string false "Event kind (library_loaded, library_unloaded, load_failed, instance_created, instance_destroyed)"
// @Param library query string false "Library short name"
// @Param instance query string false "Instance name"
// @Param limit query int false "Maximum number of events (default 100)"
// @Success 200 {array} LoaderEvent
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /journal [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	q := Query{
		Kind:     c.Query("kind"),
		Library:  c.Query("library"),
		Instance: c.Query("instance"),
		Limit:    c.QueryInt("limit", DefaultLimit),
	}
	events, err := h.service.Recent(c.Context(), q)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Journal query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if events == nil {
		events = []LoaderEvent{}
	}
	return c.JSON(events)
}
