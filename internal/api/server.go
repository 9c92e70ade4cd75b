package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"nzeb-model/internal/api/handlers"
	"nzeb-model/internal/api/middleware"
	"nzeb-model/internal/api/models"
	"nzeb-model/internal/config"
	"nzeb-model/internal/data"
	"nzeb-model/internal/simulation"
	"nzeb-model/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Deps are the collaborators the router wires into handlers. Presets and Runs
// may be nil.
type Deps struct {
	Config  *config.Config
	Engine  *simulation.Engine
	Presets *data.PresetCache
	Runs    *store.Store
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	engine := d.Engine
	if engine == nil {
		engine = simulation.New()
	}

	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.Metrics())

	simulateHandler := handlers.NewSimulateHandler(engine, d.Presets, d.Runs, cfg.Defaults.InitialSOC)
	batteryHandler := handlers.NewBatteryHandler(d.Presets)
	scenarioHandler := handlers.NewScenarioHandler()
	runHandler := handlers.NewRunHandler(d.Runs)
	wsHandler := handlers.NewWSHandler(simulateHandler, originMatcher(cfg.CORS.AllowedOrigins))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws", wsHandler.Serve)

	// Route kept from the original service
	router.POST("/api/nzeb_model", simulateHandler.Simulate)

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Simulate)

		api.GET("/batteries", batteryHandler.ListBatteries)
		api.GET("/scenarios", scenarioHandler.ListScenarios)

		api.GET("/runs", runHandler.ListRuns)
		api.GET("/runs/:id", runHandler.GetRun)
	}

	serveStatic(router, cfg.Server.StaticDir)
	return router
}

// serveStatic serves a built frontend from dir (if it exists), falling back to
// index.html for non-API routes.
func serveStatic(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if _, err := os.Stat(dir); err != nil {
		log.Debug().Str("dir", dir).Msg("static directory not found, skipping static file serving")
		router.NoRoute(notFound)
		return
	}

	router.Static("/assets", filepath.Join(dir, "assets"))
	router.StaticFile("/favicon.ico", filepath.Join(dir, "favicon.ico"))
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			notFound(c)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
	log.Info().Str("dir", dir).Msg("serving static files")
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, models.NewErrorResponse(handlers.CodeNotFound, "Not found"))
}

// originMatcher mirrors the CORS origin list for websocket upgrades.
func originMatcher(allowed []string) func(string) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return nil
		}
		set[strings.ToLower(o)] = struct{}{}
	}
	return func(origin string) bool {
		_, ok := set[strings.ToLower(origin)]
		return ok
	}
}
