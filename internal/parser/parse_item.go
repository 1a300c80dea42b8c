package parser

import (
	"github.com/AndrewAXue/libmelee/internal/tables"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Item-update record offsets.
const (
	itemSubtype = 0x5
	itemXSpeed  = 0xc
	itemYSpeed  = 0x10
	itemX       = 0x14
	itemY       = 0x18
	itemOwner   = 0x2a
)

// ParseItemUpdate decodes an item-update record and appends one
// projectile to the snapshot's list. The list is never deduplicated:
// each record is one entry.
func (p *Parser) ParseItemUpdate(snap *core.Snapshot, rec []byte) error {
	proj := core.Projectile{
		X:       f32At(rec, itemX),
		Y:       f32At(rec, itemY),
		XSpeed:  f32At(rec, itemXSpeed),
		YSpeed:  f32At(rec, itemYSpeed),
		Owner:   core.NoOwner,
		Subtype: core.UnknownProjectile,
	}

	// Owner byte is zero-based; anything past port 4 means no owner.
	// Pre-3.6 streams omit the byte entirely.
	if raw, ok := u8AtOk(rec, itemOwner); ok {
		owner := int(raw) + 1
		if owner <= 4 {
			proj.Owner = owner
		}
	}

	if raw, ok := u16AtOk(rec, itemSubtype); ok {
		proj.Subtype = tables.ProjectileFromID(raw)
	}

	snap.Projectiles = append(snap.Projectiles, proj)
	return nil
}
