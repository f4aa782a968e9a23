package constants

// Centralized constants for env keys, routes and log fields.
const (
	// Environment variable keys
	EnvConfigPath = "BATTLE_CONFIG"
	EnvDatabase   = "BATTLE_DB"
	EnvSeed       = "BATTLE_SEED"

	DefaultConfigPath = "./battle_config.json"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	HeaderTrainerID   = "X-Trainer-ID"
	QueryTrainerID    = "trainer_id"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix        = "/api"
	RouteVersion          = "/version"
	RouteSpecies          = "/species"
	RouteMoves            = "/moves"
	RouteItems            = "/items"
	RouteAreas            = "/areas"
	RouteLeaderboard      = "/leaderboard"
	RouteTrainers         = "/trainers"
	RouteTrainerByID      = "/trainers/:trainerID"
	RouteTrainerRecords   = "/trainers/:trainerID/records"
	RouteTrainerRest      = "/trainers/:trainerID/rest"
	RouteEncounters       = "/encounters"
	RouteWildEncounters   = "/encounters/wild"
	RouteEncounterByID    = "/encounters/:encounterID"
	RouteEncounterAction  = "/encounters/:encounterID/action"
	RouteEncounterAnimate = "/encounters/:encounterID/animation-done"
	RouteEncounterEvents  = "/encounters/:encounterID/events"
	RouteEncounterForfeit = "/encounters/:encounterID/forfeit"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest          = "Invalid request"
	ErrTrainerIDRequired       = "trainer id is required"
	ErrTrainerNotFound         = "Trainer not found"
	ErrInvalidTrainerName      = "Trainer name must be 1-32 characters"
	ErrFailedCreateTrainer     = "Failed to create trainer"
	ErrFailedFetchTrainer      = "Failed to fetch trainer"
	ErrFailedFetchRecords      = "Failed to fetch battle records"
	ErrFailedRestParty         = "Failed to rest party"
	ErrFailedFetchLeaderboard  = "Failed to fetch leaderboard"
	ErrEncounterNotFound       = "Encounter not found"
	ErrEncounterFinished       = "Encounter already finished"
	ErrEncounterNotOwned       = "Encounter belongs to another trainer"
	ErrEncounterInProgress     = "Trainer already has an encounter in progress"
	ErrUnknownArea             = "Unknown area"
	ErrUnknownSpecies          = "Unknown species"
	ErrInvalidTier             = "Invalid encounter tier"
	ErrInvalidLevel            = "Level must be between 1 and 100"
	ErrFailedFetchEncounter    = "Failed to fetch encounter"
	ErrNoUsablePartyMember     = "No conscious party member"
	ErrFailedStartEncounter    = "Failed to start encounter"
	ErrFailedSubmitAction      = "Failed to submit action"
	ErrFailedPersistOutcome    = "Failed to persist encounter outcome"
	ErrWebsocketUpgradeFailure = "Failed to upgrade connection"
)

// Logging field names
const (
	LogFieldEncounterID = "encounter_id"
	LogFieldTrainerID   = "trainer_id"
	LogFieldState       = "state"
	LogFieldAction      = "action"
	LogFieldOutcome     = "outcome"
	LogFieldTier        = "tier"
	LogFieldArea        = "area"
	LogFieldSpecies     = "species"
	LogFieldMove        = "move"
	LogFieldItem        = "item"
	LogFieldAbility     = "ability"
	LogFieldTurn        = "turn"
	LogFieldSource      = "source"
	LogFieldName        = "name"
	LogFieldKey         = "key"
	LogFieldAddr        = "addr"
	LogFieldCount       = "count"
	LogFieldReason      = "reason"
	LogFieldConfigPath  = "config_path"
	LogFieldDexPath     = "dex_path"
	LogFieldDriver      = "driver"
	LogFieldHint        = "hint"
)

// ConfigHint is logged when the battle configuration cannot be loaded.
const ConfigHint = "create a battle_config.json with an 'areas' array of {name, weather, pool[{species,min_level,max_level,weight}]} and optional keys: server.address, database.driver, database.dsn, dex_path"
