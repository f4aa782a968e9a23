package main

import (
	"os"
	"strconv"

	"github.com/ericogr/monster-battle/internal/config"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/dex"
	"github.com/ericogr/monster-battle/internal/logging"
	"github.com/ericogr/monster-battle/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid battle configuration", err, logging.Fields{constants.LogFieldConfigPath: path, constants.LogFieldHint: constants.ConfigHint})
	}
	return cfg
}

func loadDexOrExit(path string) *dex.Dex {
	d, err := dex.Load(path)
	if err != nil {
		logging.Fatal("Failed to load species data", err, logging.Fields{constants.LogFieldDexPath: path})
	}
	return d
}

func createRepositoryOrExit(cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenAndMigrate(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{constants.LogFieldDriver: cfg.DatabaseDriver})
	}
	return storage.NewRepository(db)
}

// seedFromEnv reads BATTLE_SEED; zero means unseeded.
func seedFromEnv() uint64 {
	s := os.Getenv(constants.EnvSeed)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		logging.Error("ignoring invalid seed", err, logging.Fields{constants.LogFieldKey: constants.EnvSeed})
		return 0
	}
	return n
}
