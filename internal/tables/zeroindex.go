package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// zeroIndexed records the (character, action) pairs whose action-frame
// counter starts at 0 instead of 1 in the game engine. The corrector
// adds 1 to these so every action presents a 1-based count. Derived
// from per-character frame data; pairs not listed are already 1-based.
var zeroIndexed = map[core.Character]map[core.ActionState]struct{}{
	core.Fox: {
		core.ActionKneeBend:     {},
		core.ActionEdgeCatching: {},
	},
	core.Falco: {
		core.ActionKneeBend:     {},
		core.ActionEdgeCatching: {},
	},
	core.Marth: {
		core.ActionDashing: {},
	},
	core.CaptainFalcon: {
		core.ActionKneeBend: {},
	},
	core.Sheik: {
		core.ActionEdgeCatching: {},
	},
	core.Jigglypuff: {
		core.ActionOnHaloDescent: {},
	},
	core.Peach: {
		core.ActionDashing: {},
	},
}

// IsZeroIndexed reports whether the character's action counts frames
// from 0.
func IsZeroIndexed(c core.Character, a core.ActionState) bool {
	actions, ok := zeroIndexed[c]
	if !ok {
		return false
	}
	_, ok = actions[a]
	return ok
}
