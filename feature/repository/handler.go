package repository

import (
	"errors"

	"component-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FetchRequest is the body of POST /repository/fetch.
type FetchRequest struct {
	Name string `json:"name"`
}

// PublishRequest is the body of POST /repository/publish.
type PublishRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Handler handles HTTP requests for the package repository.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the repository routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/repository")
	group.Get("/packages", h.HandleList)
	group.Post("/fetch", h.HandleFetch)
	group.Post("/sync", h.HandleSync)
	group.Post("/publish", h.HandlePublish)
}

// HandleList lists published libraries.
// @Summary List Published Libraries
// @Description Lists the object keys of every library in the repository bucket.
// @Tags repository
// @Produce json
// @Success 200 {object} map[string][]string "Object keys"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /repository/packages [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.service.List(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Repository list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(fiber.Map{"packages": keys})
}

// HandleFetch downloads a package into the cache directory.
// @Summary Fetch Package
// @Description Downloads a package into the local cache directory and imports it.
// @Tags repository
// @Accept json
// @Produce json
// @Param request body FetchRequest true "Package name"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Package not published"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /repository/fetch [post]
func (h *Handler) HandleFetch(c *fiber.Ctx) error {
	var req FetchRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	l := logger.WithRayID(h.service.logger, c)

	local, err := h.service.Fetch(c.Context(), req.Name)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrPackageNotPublished) {
			status = fiber.StatusNotFound
		}
		l.Error("Package fetch failed", zap.String("package", req.Name), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "fetched", "package": req.Name, "path": local})
}

// HandleSync mirrors the repository into the cache directory.
// @Summary Sync Repository
// @Description Downloads every published library into the local cache directory.
// @Tags repository
// @Produce json
// @Success 200 {object} SyncReport
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /repository/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	report, err := h.service.Sync(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Repository sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandlePublish uploads a local library.
// @Summary Publish Package
// @Description Uploads a library file from the server's filesystem under a package name.
// @Tags repository
// @Accept json
// @Produce json
// @Param request body PublishRequest true "Local path and package name"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /repository/publish [post]
func (h *Handler) HandlePublish(c *fiber.Ctx) error {
	var req PublishRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path and name are required"})
	}
	key, err := h.service.Publish(c.Context(), req.Path, req.Name)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Package publish failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "published", "object": key})
}
