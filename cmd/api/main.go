package main

import (
	"fmt"
	"os"
	"time"

	"nzeb-model/internal/api"
	"nzeb-model/internal/config"
	"nzeb-model/internal/data"
	"nzeb-model/internal/logging"
	"nzeb-model/internal/simulation"
	"nzeb-model/internal/store"
	"nzeb-model/internal/strategy"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "", "Path to YAML config (optional)")
	port := pflag.StringP("port", "p", "", "Listen port (overrides config and API_PORT)")
	logLevel := pflag.String("log-level", "info", "Log level: debug, info, warn, error")
	presetTTL := pflag.Duration("preset-ttl", time.Minute, "How long battery preset listings are cached (0 disables)")
	pflag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	logging.Setup(cfg.IsProduction(), *logLevel)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if wd, err := os.Getwd(); err == nil {
		log.Info().Str("working_directory", wd).Str("battery_dir", cfg.BatteryDir).Msg("starting")
	}

	var runs *store.Store
	if cfg.Storage.DatabasePath != "" {
		runs, err = store.New(cfg.Storage.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Storage.DatabasePath).Msg("open run history")
		}
		defer runs.Close()
		log.Info().Str("path", cfg.Storage.DatabasePath).Msg("run history enabled")
	} else {
		log.Info().Msg("run history disabled")
	}

	var presets *data.PresetCache
	if cfg.BatteryDir != "" {
		presets = data.NewPresetCache(cfg.BatteryDir, *presetTTL)
	}

	// Validate has already rejected unknown strategies.
	strat, _ := strategy.ByName(cfg.Defaults.Strategy)
	router := api.NewRouter(api.Deps{
		Config:  cfg,
		Engine:  simulation.NewWithStrategy(strat),
		Presets: presets,
		Runs:    runs,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
