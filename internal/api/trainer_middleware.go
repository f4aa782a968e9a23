package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/constants"
)

const ctxTrainerID = "trainerID"

// TrainerRequired reads the caller's trainer id from the X-Trainer-ID
// header, or the trainer_id query parameter for websocket clients that
// cannot set headers.
func TrainerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(constants.HeaderTrainerID))
		if id == "" {
			id = strings.TrimSpace(c.Query(constants.QueryTrainerID))
		}
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrTrainerIDRequired})
			return
		}
		c.Set(ctxTrainerID, id)
		c.Next()
	}
}

func trainerID(c *gin.Context) string {
	return c.GetString(ctxTrainerID)
}
