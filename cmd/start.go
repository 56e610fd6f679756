package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"ck-services/core/config"
	"ck-services/core/database"
	"ck-services/core/loader"
	"ck-services/core/logger"
	"ck-services/core/middleware/auth"
	"ck-services/core/middleware/rayid"

	"ck-services/feature/catalog"
	"ck-services/feature/sync"
	"ck-services/feature/users"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog API server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database. The catalog cannot serve without it.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))

		// 4. Build the feed source for the sync trigger
		source, err := newFeedSource(cfg)
		if err != nil {
			logg.Fatal("Failed to create feed source", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(catalog.NewFeature(db, logg))
		mgr.Register(sync.NewFeature(db, source, logg))

		// Middleware Registration
		// 1. RayID (must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
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

		// 3. Health check stays public, registered before auth
		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"status":  "healthy",
				"message": "Office Services API is running",
			})
		})

		// 4. Basic auth over the users table protects everything else
		app.Use(auth.New(auth.Config{Verifier: users.NewStore(db)}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
