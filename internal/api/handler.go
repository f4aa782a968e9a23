package api

import (
	"github.com/ericogr/monster-battle/internal/config"
	"github.com/ericogr/monster-battle/internal/dex"
	"github.com/ericogr/monster-battle/internal/realtime"
	"github.com/ericogr/monster-battle/internal/service"
	"github.com/ericogr/monster-battle/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	battles *service.Battles
	repo    storage.Repository
	dex     *dex.Dex
	cfg     *config.LoadedConfig
	hub     *realtime.Hub
}

// NewBattleHandler wires the handlers to the battle service, the read side
// of the repository, the data tables and the event hub.
func NewBattleHandler(battles *service.Battles, repo storage.Repository, d *dex.Dex, cfg *config.LoadedConfig, hub *realtime.Hub) *BattleHandler {
	return &BattleHandler{battles: battles, repo: repo, dex: d, cfg: cfg, hub: hub}
}
