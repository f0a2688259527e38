package integrity

import (
	"component-loader/core/logger"
	"component-loader/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.JournalReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/searchpath", h.HandleSearchPathCheck)
	group.Get("/libraries", h.HandleLibrariesCheck)
	group.Get("/repository", h.HandleRepositoryCheck)
	group.Get("/journal", h.HandleJournalCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (SearchPath, Libraries, Repository, Journal). Probing libraries opens every library file.
// @Tags integrity
// @Accept json
// @Produce json
// @Param path query string false "Path list prepended to the default search path"
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	pathList := c.Query("path")
	report := make(map[string]interface{})

	report["searchpath"] = h.service.CheckSearchPath(pathList)
	report["libraries"] = h.service.CheckLibraries(pathList)

	if repo, err := h.service.CheckRepository(c.Context()); err != nil {
		report["repository"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["repository"] = repo
	}

	if journal, err := h.service.CheckJournal(); err != nil {
		report["journal"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["journal"] = journal
	}

	return c.JSON(report)
}

// HandleSearchPathCheck checks and optionally fixes the search path.
// @Summary Check Search Path
// @Description Checks that every directory of the effective search path exists. Optionally creates missing directories.
// @Tags integrity
// @Accept json
// @Produce json
// @Param path query string false "Path list prepended to the default search path"
// @Param fix query boolean false "Create missing directories"
// @Success 200 {object} checks.SearchPathReport "Search Path Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/searchpath [get]
func (h *Handler) HandleSearchPathCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report := h.service.CheckSearchPath(c.Query("path"))
	if len(report.Missing) > 0 {
		l.Warn("Missing search path directories detected", zap.Strings("missing", report.Missing))

		if fix {
			l.Info("Attempting to create missing directories")
			if err := h.service.FixSearchPath(report.Missing); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create directories",
					"details": err.Error(),
					"missing": report.Missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  report.Missing,
			})
		}
	}

	return c.JSON(report)
}

// HandleLibrariesCheck probes every library file.
// @Summary Probe Libraries
// @Description Probes every library file of the effective search path for a component protocol without registering anything.
// @Tags integrity
// @Accept json
// @Produce json
// @Param path query string false "Path list prepended to the default search path"
// @Success 200 {object} checks.LibrariesReport "Libraries Report"
// @Router /integrity/libraries [get]
func (h *Handler) HandleLibrariesCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	report := h.service.CheckLibraries(c.Query("path"))
	l.Info("Library probe completed",
		zap.Int("valid", report.Valid),
		zap.Int("invalid", report.Invalid))
	return c.JSON(report)
}

// HandleRepositoryCheck checks and optionally fixes the repository bucket.
// @Summary Check Repository
// @Description Checks that the package repository bucket exists and counts published libraries. Optionally creates the bucket.
// @Tags integrity
// @Accept json
// @Produce json
// @Param fix query boolean false "Create the missing bucket"
// @Success 200 {object} checks.RepositoryReport "Repository Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/repository [get]
func (h *Handler) HandleRepositoryCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckRepository(c.Context())
	if err != nil {
		l.Error("Repository check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.BucketExists && fix {
		l.Info("Attempting to create missing bucket")
		if err := h.service.FixRepository(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status": "fixed",
			"bucket": report.Bucket,
		})
	}

	return c.JSON(report)
}

// HandleJournalCheck checks the journal schema.
// @Summary Check Journal Schema
// @Description Checks that the loader_events table has every column the journal writes.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.JournalReport "Journal Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/journal [get]
func (h *Handler) HandleJournalCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting journal schema check")

	report, err := h.service.CheckJournal()
	if err != nil {
		l.Error("Journal schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
