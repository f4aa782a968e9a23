package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/monster-battle/internal/constants"
	"github.com/ericogr/monster-battle/internal/service"
)

// normalizeModelKeys recursively renames GORM model keys from CamelCase
// (ID, CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients
// consistently receive snake_case fields.
func normalizeModelKeys(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeModelKeys(val)
		}
		for from, to := range modelKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeModelKeys(vv[i])
		}
		return vv
	default:
		return v
	}
}

var modelKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// MarshalIntoSnakeKeys marshals the given value into JSON, then decodes
// into an interface{} and normalizes model keys to snake_case.
func MarshalIntoSnakeKeys(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeModelKeys(out), nil
}

// limitParam parses ?limit=N within [1, 100].
func limitParam(c *gin.Context, def int) int {
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			return n
		}
	}
	return def
}

// writeServiceError maps service sentinel errors to status codes. Unknown
// errors become a 500 carrying fallback.
func writeServiceError(c *gin.Context, err error, fallback string) {
	status, msg := http.StatusInternalServerError, fallback
	switch {
	case errors.Is(err, service.ErrTrainerNotFound):
		status, msg = http.StatusNotFound, constants.ErrTrainerNotFound
	case errors.Is(err, service.ErrEncounterNotFound):
		status, msg = http.StatusNotFound, constants.ErrEncounterNotFound
	case errors.Is(err, service.ErrUnknownArea):
		status, msg = http.StatusNotFound, constants.ErrUnknownArea
	case errors.Is(err, service.ErrEncounterNotOwned):
		status, msg = http.StatusForbidden, constants.ErrEncounterNotOwned
	case errors.Is(err, service.ErrEncounterInProgress):
		status, msg = http.StatusConflict, constants.ErrEncounterInProgress
	case errors.Is(err, service.ErrEncounterFinished):
		status, msg = http.StatusConflict, constants.ErrEncounterFinished
	case errors.Is(err, service.ErrNoUsablePartyMember):
		status, msg = http.StatusConflict, constants.ErrNoUsablePartyMember
	case errors.Is(err, service.ErrUnknownSpecies):
		status, msg = http.StatusBadRequest, constants.ErrUnknownSpecies
	case errors.Is(err, service.ErrInvalidTier):
		status, msg = http.StatusBadRequest, constants.ErrInvalidTier
	case errors.Is(err, service.ErrInvalidLevel):
		status, msg = http.StatusBadRequest, constants.ErrInvalidLevel
	case errors.Is(err, service.ErrInvalidTrainerName):
		status, msg = http.StatusBadRequest, constants.ErrInvalidTrainerName
	case errors.Is(err, service.ErrPersistOutcome):
		msg = constants.ErrFailedPersistOutcome
	}
	c.JSON(status, gin.H{constants.JSONKeyError: msg})
}
