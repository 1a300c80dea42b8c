package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// cssToInternal maps the external character IDs used on the character
// select screen to Melee's internal character IDs. Sheik, Popo, and
// Nana have no CSS entry of their own.
var cssToInternal = map[uint8]core.Character{
	0x00: core.CaptainFalcon,
	0x01: core.DonkeyKong,
	0x02: core.Fox,
	0x03: core.GameAndWatch,
	0x04: core.Kirby,
	0x05: core.Bowser,
	0x06: core.Link,
	0x07: core.Luigi,
	0x08: core.Mario,
	0x09: core.Marth,
	0x0a: core.Mewtwo,
	0x0b: core.Ness,
	0x0c: core.Peach,
	0x0d: core.Pikachu,
	0x0e: core.Popo,
	0x0f: core.Jigglypuff,
	0x10: core.Samus,
	0x11: core.Yoshi,
	0x12: core.Zelda,
	0x13: core.Sheik,
	0x14: core.Falco,
	0x15: core.YoungLink,
	0x16: core.DrMario,
	0x17: core.Roy,
	0x18: core.Pichu,
	0x19: core.Ganondorf,
}

// CharacterFromCSS converts an external CSS character ID to the
// internal Character. Unmapped IDs resolve to UnknownCharacter.
func CharacterFromCSS(id uint8) core.Character {
	if c, ok := cssToInternal[id]; ok {
		return c
	}
	return core.UnknownCharacter
}

// CharacterFromInternal validates a raw internal character ID from a
// post-frame record. IDs past the roster resolve to UnknownCharacter.
func CharacterFromInternal(id uint8) core.Character {
	if id <= uint8(core.Roy) {
		return core.Character(id)
	}
	return core.UnknownCharacter
}
