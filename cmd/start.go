package cmd

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"component-loader/core/deployment"
	"component-loader/core/loader"
	"component-loader/core/logger"
	"component-loader/core/middleware/auth"
	"component-loader/core/middleware/rayid"
	"component-loader/core/server"
	"component-loader/core/watcher"
	"component-loader/feature/components"
	"component-loader/feature/integrity"
	"component-loader/feature/journal"
	"component-loader/feature/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "component-loader/docs/swagger"
)

// @title Component Loader API
// @version 1.0
// @description API for loading component libraries and managing component instances.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var (
	startImport string
	startDeploy string
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the component loader server",
	Long:  `Starts the HTTP server, imports the configured libraries and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		compSvc := components.NewService(rt.loader, logg)

		var repoSvc *repository.Service
		if rt.store != nil {
			repoSvc = repository.NewService(rt.store, rt.cfg.Repository, logg,
				repository.WithCodec(rt.loader.Codec(), rt.loader.Target()),
				repository.WithImporter(compSvc.ImportPackage))
		}

		// Initial import and deployment
		if cmd.Flags().Changed("import") || rt.cfg.Loader.Path != "" {
			res := compSvc.Import(startImport)
			logg.Info("Initial import finished", zap.Int("loaded", len(res.Loaded)), zap.Int("skipped", len(res.Failures)))
		}

		var applied *deployment.Applied
		if startDeploy != "" {
			d, err := deployment.Load(startDeploy)
			if err != nil {
				logg.Fatal("Failed to read deployment", zap.Error(err))
			}
			if err := compSvc.Do(func(l *loader.Loader) error {
				var applyErr error
				applied, applyErr = d.Apply(l, logg)
				return applyErr
			}); err != nil {
				logg.Fatal("Failed to apply deployment", zap.Error(err))
			}
		}

		// Hot reload
		if rt.cfg.Loader.Watch {
			w, err := watcher.New(func(path string) {
				if err := compSvc.Reload(path); err != nil {
					logg.Warn("Hot reload refused", zap.String("path", path), zap.Error(err))
				}
			},
				watcher.WithFilter(func(path string) bool { return rt.loader.Codec().HasSuffix(filepath.Base(path)) }),
				watcher.WithLogger(logg),
			)
			if err != nil {
				logg.Fatal("Failed to create watcher", zap.Error(err))
			}
			defer w.Close()
			for _, dir := range rt.loader.SearchPath(startImport) {
				w.Add(dir, filepath.Join(dir, rt.loader.Target()))
			}
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line carries it
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		if rt.cfg.Server.Metrics {
			app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rt.registry, promhttp.HandlerOpts{})))
		}

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		mgr := server.NewManager(logg)
		mgr.Register(components.NewFeature(compSvc))
		mgr.Register(repository.NewFeature(repoSvc, repoSvc != nil))
		mgr.Register(journal.NewFeature(rt.db, logg))
		mgr.Register(integrity.NewFeature(integrity.NewService(rt.loader, rt.store, rt.cfg.Repository, rt.db, logg)))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()

		if applied != nil {
			if err := compSvc.Do(func(l *loader.Loader) error { return applied.Teardown(l) }); err != nil {
				logg.Warn("Deployment teardown incomplete", zap.Error(err))
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().StringVar(&startImport, "import", "", "Path list to import at startup, searched before the default path")
	startCmd.Flags().StringVar(&startDeploy, "deploy", "", "Deployment file to apply at startup")
}
