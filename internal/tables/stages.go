// Package tables holds the static lookup data the decode engine
// consults but never computes: stage geometry, ID mappings, and the
// per-character action quirk sets. Everything here is read-only after
// package init.
package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// edgeGroundPosition is the |x| coordinate of the grounded stage edge,
// per tournament-legal stage. Positions beyond it are past the ledge.
var edgeGroundPosition = map[core.Stage]float64{
	core.StageBattlefield:      68.4,
	core.StageFinalDestination: 85.5657,
	core.StageDreamland:        77.27,
	core.StageFountainOfDreams: 63.35,
	core.StagePokemonStadium:   87.75,
	core.StageYoshisStory:      56,
}

// EdgeGroundPosition returns the grounded edge bound for the stage.
// Stages without a known bound report ok=false.
func EdgeGroundPosition(s core.Stage) (float64, bool) {
	v, ok := edgeGroundPosition[s]
	return v, ok
}

// StageFromID maps a raw stage ID from a game-start or stage-select
// record to the internal Stage. Unmapped IDs resolve to StageNone.
func StageFromID(id uint16) core.Stage {
	s := core.Stage(id)
	if _, ok := edgeGroundPosition[s]; ok {
		return s
	}
	return core.StageNone
}
