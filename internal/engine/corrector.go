package engine

import (
	"math"

	"github.com/AndrewAXue/libmelee/internal/tables"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

const (
	respawnInvulnFrames = 120
	ledgeInvulnFrames   = 36
	respawnCutoffFrame  = 150
	offStageDepth       = -6.0
)

// applyCorrections patches up per-player fields the raw records report
// unreliably. Runs exactly once per finalized frame, so the countdowns
// tick at frame rate. prev is the previously finalized gameplay frame,
// nil before the first one.
func applyCorrections(snap *core.Snapshot, prev *core.Snapshot) {
	edge, hasEdge := tables.EdgeGroundPosition(snap.Stage)

	for port, player := range snap.Players {
		var last *core.PlayerState
		if prev != nil {
			last = prev.Players[port]
		}

		correctInvulnerability(snap, player, last)
		correctMoonwalk(player, last)

		if hasEdge {
			player.OffStage = math.Abs(player.X) > edge &&
				player.Y < offStageDepth && !player.OnGround
		}

		// The engine reports a handful of animations starting at frame
		// zero instead of one.
		if tables.IsZeroIndexed(player.Character, player.Action) {
			player.ActionFrame++
		}

		if !tables.IsStandardAttack(player.Action) {
			player.Interruptible = false
		}
	}
}

func correctInvulnerability(snap *core.Snapshot, player, last *core.PlayerState) {
	left := 0
	if last != nil && last.InvulnerabilityLeft > 0 {
		left = last.InvulnerabilityLeft - 1
	}

	switch {
	case player.Action == core.ActionOnHaloWait:
		left = respawnInvulnFrames
	case player.Action == core.ActionOnHaloDescent && snap.Frame > respawnCutoffFrame:
		// Halo descent also plays during the match intro, where no
		// respawn invulnerability is granted.
		left = respawnInvulnFrames
	case player.Action == core.ActionEdgeCatching && player.ActionFrame == 1:
		left = ledgeInvulnFrames
	}

	player.InvulnerabilityLeft = left
}

// correctMoonwalk flags dash entries that did not come from a turn,
// which the input stream renders as a dash-back moonwalk. The warning
// fires only on the transition frame.
func correctMoonwalk(player, last *core.PlayerState) {
	player.MoonwalkWarning = player.Action == core.ActionDashing &&
		last != nil &&
		last.Action != core.ActionDashing &&
		last.Action != core.ActionTurning
}
