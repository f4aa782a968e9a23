package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/battle"
	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
	"github.com/ericogr/monster-battle/internal/service"
)

type WildEncounterRequest struct {
	Area string `json:"area"`
}

type ChallengeRequest struct {
	Tier         string   `json:"tier"`
	Species      string   `json:"species"`
	Level        int      `json:"level"`
	Moves        []string `json:"moves"`
	Weather      string   `json:"weather"`
	WeatherTurns int      `json:"weather_turns"`
}

// StartWildEncounter starts an encounter against a creature drawn from an
// area's pool.
func (h *BattleHandler) StartWildEncounter(c *gin.Context) {
	var req WildEncounterRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Area == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.battles.StartWildEncounter(trainerID(c), req.Area)
	if err != nil {
		logStartFailure(err, trainerID(c))
		writeServiceError(c, err, constants.ErrFailedStartEncounter)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// StartChallenge starts a trainer, arena, gym or boss encounter.
func (h *BattleHandler) StartChallenge(c *gin.Context) {
	var req ChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	snap, err := h.battles.StartChallenge(service.ChallengeRequest{
		TrainerID:    trainerID(c),
		Tier:         req.Tier,
		SpeciesID:    req.Species,
		Level:        req.Level,
		Moves:        req.Moves,
		Weather:      req.Weather,
		WeatherTurns: req.WeatherTurns,
	})
	if err != nil {
		logStartFailure(err, trainerID(c))
		writeServiceError(c, err, constants.ErrFailedStartEncounter)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

func logStartFailure(err error, trainer string) {
	// client errors are answered, not logged
	for _, known := range []error{
		service.ErrTrainerNotFound, service.ErrUnknownArea, service.ErrUnknownSpecies,
		service.ErrInvalidTier, service.ErrInvalidLevel, service.ErrEncounterInProgress,
		service.ErrNoUsablePartyMember,
	} {
		if errors.Is(err, known) {
			return
		}
	}
	logging.Error("failed to start encounter", err, logging.Fields{constants.LogFieldTrainerID: trainer})
}

// GetEncounter returns the current snapshot of an encounter.
func (h *BattleHandler) GetEncounter(c *gin.Context) {
	snap, err := h.battles.Snapshot(c.Param("encounterID"), trainerID(c))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchEncounter)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SubmitAction applies one player action. A rejected action is answered
// with 422 and the reason; the encounter is unchanged.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req battle.Action
	if err := c.ShouldBindJSON(&req); err != nil || req.Kind == "" {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.battles.SubmitAction(c.Param("encounterID"), trainerID(c), req)
	writeStep(c, res, err)
}

// AnimationDone releases an encounter waiting for the client's animation.
func (h *BattleHandler) AnimationDone(c *gin.Context) {
	res, err := h.battles.AnimationDone(c.Param("encounterID"), trainerID(c))
	writeStep(c, res, err)
}

// Forfeit abandons the encounter.
func (h *BattleHandler) Forfeit(c *gin.Context) {
	res, err := h.battles.Forfeit(c.Param("encounterID"), trainerID(c))
	writeStep(c, res, err)
}

func writeStep(c *gin.Context, res battle.StepResult, err error) {
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedSubmitAction)
		return
	}
	if !res.Accepted {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// StreamEvents upgrades to a websocket that receives every event of the
// encounter from now on.
func (h *BattleHandler) StreamEvents(c *gin.Context) {
	id := c.Param("encounterID")
	if _, err := h.battles.Snapshot(id, trainerID(c)); err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchEncounter)
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, id); err != nil {
		logging.Error(constants.ErrWebsocketUpgradeFailure, err, logging.Fields{constants.LogFieldEncounterID: id})
	}
}
