package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent requests. Double-submitted "start wild encounter" calls for the
// same trainer and area collapse into a single encounter.

import "golang.org/x/sync/singleflight"

// EncounterGroup deduplicates wild encounter starts keyed by
// keys.WildEncounterKey.
var EncounterGroup singleflight.Group
