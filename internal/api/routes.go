package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/constants"
)

// Register mounts every route under the API prefix.
func (h *BattleHandler) Register(router *gin.Engine) {
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Catalogue
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteSpecies, h.ListSpecies)
		apiRoutes.GET(constants.RouteMoves, h.ListMoves)
		apiRoutes.GET(constants.RouteItems, h.ListItems)
		apiRoutes.GET(constants.RouteAreas, h.ListAreas)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)

		// Trainers
		apiRoutes.POST(constants.RouteTrainers, h.CreateTrainer)
		apiRoutes.GET(constants.RouteTrainerByID, h.GetTrainer)
		apiRoutes.GET(constants.RouteTrainerRecords, h.ListTrainerRecords)
		apiRoutes.POST(constants.RouteTrainerRest, h.RestParty)

		// Encounters, identified by the X-Trainer-ID header
		encounters := apiRoutes.Group("")
		encounters.Use(TrainerRequired())
		encounters.POST(constants.RouteWildEncounters, h.StartWildEncounter)
		encounters.POST(constants.RouteEncounters, h.StartChallenge)
		encounters.GET(constants.RouteEncounterByID, h.GetEncounter)
		encounters.POST(constants.RouteEncounterAction, h.SubmitAction)
		encounters.POST(constants.RouteEncounterAnimate, h.AnimationDone)
		encounters.POST(constants.RouteEncounterForfeit, h.Forfeit)
		encounters.GET(constants.RouteEncounterEvents, h.StreamEvents)
	}
}
