package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/logging"
	"github.com/ericogr/monster-battle/internal/service"
)

type CreateTrainerRequest struct {
	Name    string `json:"name"`
	Starter string `json:"starter"`
}

// CreateTrainer registers a trainer with a starter creature.
func (h *BattleHandler) CreateTrainer(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	t, err := h.battles.RegisterTrainer(req.Name, req.Starter)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidTrainerName) && !errors.Is(err, service.ErrUnknownSpecies) {
			logging.Error("failed to create trainer", err, logging.Fields{constants.LogFieldName: req.Name})
		}
		writeServiceError(c, err, constants.ErrFailedCreateTrainer)
		return
	}
	out, err := MarshalIntoSnakeKeys(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateTrainer})
		return
	}
	c.JSON(http.StatusCreated, out)
}

// GetTrainer returns a trainer profile with party and inventory.
func (h *BattleHandler) GetTrainer(c *gin.Context) {
	t, err := h.battles.Trainer(c.Param("trainerID"))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchTrainer)
		return
	}
	out, err := MarshalIntoSnakeKeys(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchTrainer})
		return
	}
	c.JSON(http.StatusOK, out)
}

// RestParty heals the trainer's travelling party between encounters.
func (h *BattleHandler) RestParty(c *gin.Context) {
	t, err := h.battles.RestParty(c.Param("trainerID"))
	if err != nil {
		if !errors.Is(err, service.ErrTrainerNotFound) && !errors.Is(err, service.ErrEncounterInProgress) {
			logging.Error("failed to rest party", err, logging.Fields{constants.LogFieldTrainerID: c.Param("trainerID")})
		}
		writeServiceError(c, err, constants.ErrFailedRestParty)
		return
	}
	out, err := MarshalIntoSnakeKeys(t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedRestParty})
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListTrainerRecords returns the most recent battle records of a trainer.
func (h *BattleHandler) ListTrainerRecords(c *gin.Context) {
	records, err := h.repo.ListBattleRecords(c.Param("trainerID"), limitParam(c, 20))
	if err != nil {
		writeServiceError(c, err, constants.ErrFailedFetchRecords)
		return
	}
	out, err := MarshalIntoSnakeKeys(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchRecords})
		return
	}
	c.JSON(http.StatusOK, out)
}
