package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/api"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
	"github.com/ericogr/monster-battle/internal/realtime"
	"github.com/ericogr/monster-battle/internal/service"
	"github.com/ericogr/monster-battle/internal/version"
)

func main() {
	// Configuration path may be provided via BATTLE_CONFIG or defaults to
	// ./battle_config.json in the current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	d := loadDexOrExit(cfg.DexPath)
	repo := createRepositoryOrExit(cfg)

	hub := realtime.NewHub()
	opts := []service.Option{service.WithObservers(hub)}
	if seed := seedFromEnv(); seed != 0 {
		opts = append(opts, service.WithSeed(seed))
	}
	battles := service.New(repo, d, cfg, opts...)
	startExpirySweeper(battles, 5*time.Second)

	router := gin.Default()
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})
	api.NewBattleHandler(battles, repo, d, cfg, hub).Register(router)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr, "version": version.Version})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
