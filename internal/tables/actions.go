package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// maxSharedAction is the last action ID in the shared (non
// character-specific) animation table.
const maxSharedAction core.ActionState = 0x17e

// ActionFromID validates a raw action-state ID from a post-frame
// record. IDs past the shared animation table resolve to
// UnknownAnimation rather than failing the record.
func ActionFromID(id uint16) core.ActionState {
	a := core.ActionState(id)
	if a > maxSharedAction {
		return core.UnknownAnimation
	}
	return a
}

// IsStandardAttack reports whether the action sits in the contiguous
// A-attack block. The game only maintains the interruptible flag
// reliably inside this range.
func IsStandardAttack(a core.ActionState) bool {
	return a >= core.ActionNeutralAttack1 && a <= core.ActionDownAir
}
