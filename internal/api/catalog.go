package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/game"
	"github.com/ericogr/monster-battle/internal/keys"
)

// ListSpecies returns the species table.
func (h *BattleHandler) ListSpecies(c *gin.Context) {
	c.Header(constants.CacheControlHeader, "public, max-age=300")
	c.JSON(http.StatusOK, h.dex.AllSpecies())
}

// ListMoves returns the move table.
func (h *BattleHandler) ListMoves(c *gin.Context) {
	c.Header(constants.CacheControlHeader, "public, max-age=300")
	c.JSON(http.StatusOK, h.dex.AllMoves())
}

// ListItems returns the item table.
func (h *BattleHandler) ListItems(c *gin.Context) {
	c.Header(constants.CacheControlHeader, "public, max-age=300")
	c.JSON(http.StatusOK, h.dex.AllItems())
}

type areaView struct {
	Name         string         `json:"name"`
	DisplayName  string         `json:"display_name"`
	Weather      game.Weather   `json:"weather"`
	WeatherTurns int            `json:"weather_turns"`
	Pool         []areaPoolView `json:"pool"`
}

type areaPoolView struct {
	Species  string  `json:"species"`
	MinLevel int     `json:"min_level"`
	MaxLevel int     `json:"max_level"`
	Chance   float64 `json:"chance"`
}

// ListAreas returns the wild areas with the encounter chance of each species.
func (h *BattleHandler) ListAreas(c *gin.Context) {
	areas := h.cfg.Areas()
	out := make([]areaView, 0, len(areas))
	for _, a := range areas {
		v := areaView{Name: a.Name, DisplayName: keys.DisplayName(a.Name), Weather: a.Weather, WeatherTurns: a.WeatherTurns}
		total := float64(a.TotalWeight())
		for _, p := range a.Pool {
			v.Pool = append(v.Pool, areaPoolView{Species: p.SpeciesID, MinLevel: p.MinLevel, MaxLevel: p.MaxLevel, Chance: float64(p.Weight) / total})
		}
		out = append(out, v)
	}
	c.JSON(http.StatusOK, out)
}

// ListLeaderboard returns the top trainers by best win streak, limited to
// top 10 by default.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	trainers, err := h.repo.GetTopTrainers(limitParam(c, 10))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	// the leaderboard never exposes parties or inventories
	for i := range trainers {
		trainers[i].Party = nil
		trainers[i].Inventory = nil
	}
	out, err := MarshalIntoSnakeKeys(trainers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchLeaderboard})
		return
	}
	c.JSON(http.StatusOK, out)
}
