package tables

import "github.com/AndrewAXue/libmelee/pkg/core"

// projectileNames catalogs the item subtypes seen in competitive play.
// The in-game item table is much larger; anything absent here decodes
// as UnknownProjectile and is still tracked positionally.
var projectileNames = map[core.ProjectileType]string{
	0x30: "FOX_LASER",
	0x31: "FALCO_LASER",
	0x32: "TURNIP",
	0x33: "FLIPPER",
	0x34: "SAMUS_BOMB",
	0x35: "SAMUS_MISSILE",
	0x2a: "SHEIK_NEEDLE_THROWN",
	0x2b: "SHEIK_NEEDLE_HELD",
	0x2c: "PILL",
	0x2d: "FIREBALL",
	0x2e: "SHADOWBALL",
	0x2f: "LINK_BOMB",
	0x36: "YOSHI_EGG_THROWN",
	0x37: "PK_FIRE",
	0x38: "PK_FLASH",
	0x39: "PK_THUNDER",
	0x3a: "ARROW",
	0x3f: "YOUNGLINK_BOMB",
}

// ProjectileFromID validates a raw item subtype ID. Unmapped IDs
// resolve to UnknownProjectile.
func ProjectileFromID(id uint16) core.ProjectileType {
	t := core.ProjectileType(id)
	if _, ok := projectileNames[t]; ok {
		return t
	}
	return core.UnknownProjectile
}

// ProjectileName returns the catalog name for a subtype, or
// "UNKNOWN_PROJECTILE" if it is not cataloged.
func ProjectileName(t core.ProjectileType) string {
	if n, ok := projectileNames[t]; ok {
		return n
	}
	return "UNKNOWN_PROJECTILE"
}
