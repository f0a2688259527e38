package components

import (
	"errors"
	"net/url"

	"component-loader/core/loader"
	"component-loader/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CreateRequest is the body of POST /components/instances.
type CreateRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// PathRequest is the body of the import and library load endpoints.
type PathRequest struct {
	Path string `json:"path"`
}

// PackageRequest is the body of POST /components/packages.
type PackageRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ImportReport summarizes a directory scan.
type ImportReport struct {
	Loaded  []string `json:"loaded"`
	Skipped []string `json:"skipped"`
}

// NewImportReport converts a scan result for JSON output.
func NewImportReport(res *loader.ImportResult) ImportReport {
	report := ImportReport{Loaded: res.Loaded, Skipped: make([]string, 0, len(res.Failures))}
	if report.Loaded == nil {
		report.Loaded = []string{}
	}
	for _, err := range res.Failures {
		report.Skipped = append(report.Skipped, err.Error())
	}
	return report
}

// Handler handles HTTP requests for components.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the components routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/components")
	group.Get("/types", h.HandleListTypes)
	group.Get("/libraries", h.HandleListLibraries)
	group.Post("/libraries", h.HandleLoadLibrary)
	group.Delete("/libraries/:name", h.HandleUnloadLibrary)
	group.Get("/instances", h.HandleListInstances)
	group.Post("/instances", h.HandleCreateInstance)
	group.Delete("/instances/:name", h.HandleDestroyInstance)
	group.Post("/import", h.HandleImport)
	group.Post("/packages", h.HandleImportPackage)
}

// HandleListTypes lists registered component types.
// @Summary List Component Types
// @Description Lists every component type name known to the factory registry.
// @Tags components
// @Produce json
// @Success 200 {object} map[string][]string "Type names"
// @Router /components/types [get]
func (h *Handler) HandleListTypes(c *fiber.Ctx) error {
	types := h.service.Types()
	if types == nil {
		types = []string{}
	}
	return c.JSON(fiber.Map{"types": types})
}

// HandleListLibraries lists loaded libraries.
// @Summary List Libraries
// @Description Lists loaded component libraries in load order.
// @Tags components
// @Produce json
// @Success 200 {array} loader.Library
// @Router /components/libraries [get]
func (h *Handler) HandleListLibraries(c *fiber.Ctx) error {
	libs := h.service.Libraries()
	if libs == nil {
		libs = []loader.Library{}
	}
	return c.JSON(libs)
}

// HandleLoadLibrary loads or reloads one library file.
// @Summary Load Library
// @Description Loads the library at the given path, replacing a library with the same short name when none of its types has live instances.
// @Tags components
// @Accept json
// @Produce json
// @Param request body PathRequest true "Library path"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Library in use"
// @Failure 422 {object} map[string]string "Malformed library"
// @Router /components/libraries [post]
func (h *Handler) HandleLoadLibrary(c *fiber.Ctx) error {
	var req PathRequest
	if err := c.BodyParser(&req); err != nil || req.Path == "" {
		return badRequest(c, "path is required")
	}
	if err := h.service.Reload(req.Path); err != nil {
		return h.fail(c, "Library load failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "loaded", "path": req.Path})
}

// HandleUnloadLibrary unloads a library by short name.
// @Summary Unload Library
// @Description Unloads a library when none of its component types has live instances.
// @Tags components
// @Produce json
// @Param name path string true "Library short name (e.g. 'widget')"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Library in use"
// @Router /components/libraries/{name} [delete]
func (h *Handler) HandleUnloadLibrary(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.Unload(name); err != nil {
		return h.fail(c, "Library unload failed", err)
	}
	return c.JSON(fiber.Map{"status": "unloaded", "library": name})
}

// HandleListInstances lists live component instances.
// @Summary List Instances
// @Description Lists live component instances sorted by name.
// @Tags components
// @Produce json
// @Success 200 {array} loader.Instance
// @Router /components/instances [get]
func (h *Handler) HandleListInstances(c *fiber.Ctx) error {
	instances := h.service.Instances()
	if instances == nil {
		instances = []loader.Instance{}
	}
	return c.JSON(instances)
}

// HandleCreateInstance creates a component.
// @Summary Create Instance
// @Description Creates a named component of a registered type.
// @Tags components
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Instance name and type"
// @Success 201 {object} loader.Instance
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown type"
// @Failure 409 {object} map[string]string "Duplicate instance"
// @Failure 422 {object} map[string]string "Constructor failed"
// @Router /components/instances [post]
func (h *Handler) HandleCreateInstance(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.Type == "" {
		return badRequest(c, "name and type are required")
	}
	inst, err := h.service.Create(req.Name, req.Type)
	if err != nil {
		return h.fail(c, "Instance creation failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(inst)
}

// HandleDestroyInstance destroys a component.
// @Summary Destroy Instance
// @Description Destroys a live component instance by name.
// @Tags components
// @Produce json
// @Param name path string true "Instance name"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /components/instances/{name} [delete]
func (h *Handler) HandleDestroyInstance(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	if err := h.service.Destroy(name); err != nil {
		return h.fail(c, "Instance destruction failed", err)
	}
	return c.JSON(fiber.Map{"status": "destroyed", "instance": name})
}

// HandleImport scans a path list for libraries.
// @Summary Import Libraries
// @Description Loads every library found in the path list and the default search path. Files that fail to load are reported as skipped.
// @Tags components
// @Accept json
// @Produce json
// @Param request body PathRequest false "Path list (';' or platform separated)"
// @Success 200 {object} ImportReport
// @Router /components/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	var req PathRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, err.Error())
		}
	}
	l := logger.WithRayID(h.service.logger, c)
	res := h.service.Import(req.Path)
	l.Info("Import finished", zap.Int("loaded", len(res.Loaded)), zap.Int("skipped", len(res.Failures)))
	return c.JSON(NewImportReport(res))
}

// HandleImportPackage imports a package by name.
// @Summary Import Package
// @Description Resolves a package name against the search path and loads the first candidate that loads.
// @Tags components
// @Accept json
// @Produce json
// @Param request body PackageRequest true "Package name and optional path list"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Package not found"
// @Router /components/packages [post]
func (h *Handler) HandleImportPackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return badRequest(c, "name is required")
	}
	if err := h.service.ImportPackage(req.Name, req.Path); err != nil {
		return h.fail(c, "Package import failed", err)
	}
	return c.JSON(fiber.Map{"status": "imported", "package": req.Name})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := StatusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// StatusFor maps loader errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInstanceNotFound),
		errors.Is(err, loader.ErrUnknownType),
		errors.Is(err, loader.ErrLibraryNotFound),
		errors.Is(err, loader.ErrPackageNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, loader.ErrDuplicateInstance),
		errors.Is(err, loader.ErrUnsafeUnload),
		errors.Is(err, loader.ErrUnsafeReload):
		return fiber.StatusConflict
	case errors.Is(err, loader.ErrMalformedLibrary),
		errors.Is(err, loader.ErrConstructor),
		errors.Is(err, loader.ErrLibraryOpen):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, loader.ErrForeignInstance):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
