package parser

import (
	"github.com/AndrewAXue/libmelee/internal/tables"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Post-frame record offsets. Everything from postBitflags2 on is an
// optional tail: older protocol revisions truncate the record, so each
// field defaults individually instead of failing the whole record.
const (
	postFrame       = 0x1
	postPort        = 0x5
	postCharacter   = 0x7
	postAction      = 0x8
	postX           = 0xa
	postY           = 0xe
	postFacing      = 0x12
	postPercent     = 0x16
	postShield      = 0x1a
	postStock       = 0x21
	postActionFrame = 0x22

	postBitflags2    = 0x27
	postHitstun      = 0x2b
	postAirborne     = 0x2f
	postJumps        = 0x32
	postInvulnerable = 0x34
	postSpeedAirX    = 0x35
	postSpeedY       = 0x39
	postSpeedXAtk    = 0x3d
	postSpeedYAtk    = 0x41
	postSpeedGroundX = 0x45
	postECBTopX      = 0x49
	postECBTopY      = 0x4d
	postECBBottomX   = 0x51
	postECBBottomY   = 0x55
	postECBLeftX     = 0x59
	postECBLeftY     = 0x5d
	postECBRightX    = 0x61
	postECBRightY    = 0x65
)

// hitlagMask is the bit inside the second post-frame flag byte that
// marks hitlag.
const hitlagMask = 0x20

// ParsePostFrame decodes a post-frame-update record into the snapshot:
// the authoritative per-port gameplay state for the frame.
func (p *Parser) ParsePostFrame(snap *core.Snapshot, rec []byte) error {
	snap.Stage = p.currentStage
	snap.Frame = i32At(rec, postFrame)

	port, err := p.portAt(rec, postPort)
	if err != nil {
		return err
	}
	ps := snap.Player(port)

	ps.X = f32At(rec, postX)
	ps.Y = f32At(rec, postY)
	ps.Character = tables.CharacterFromInternal(u8At(rec, postCharacter))
	ps.Action = tables.ActionFromID(u16At(rec, postAction))

	// The game stores facing in a float; only its sign matters.
	ps.FacingRight = f32At(rec, postFacing) > 0

	ps.Percent = int(f32At(rec, postPercent))
	ps.ShieldStrength = f32At(rec, postShield)
	ps.Stock = u8At(rec, postStock)
	ps.ActionFrame = int(f32At(rec, postActionFrame))

	ps.Hitlag = u8AtOr(rec, postBitflags2, 0)&hitlagMask != 0
	ps.HitstunFramesLeft = int(f32AtOr(rec, postHitstun, 0))
	ps.OnGround = u8AtOr(rec, postAirborne, 0) == 0
	ps.JumpsLeft = u8AtOr(rec, postJumps, 1)
	ps.Invulnerable = u8AtOr(rec, postInvulnerable, 0) != 0

	ps.SpeedAirXSelf = f32AtOr(rec, postSpeedAirX, 0)
	ps.SpeedYSelf = f32AtOr(rec, postSpeedY, 0)
	ps.SpeedXAttack = f32AtOr(rec, postSpeedXAtk, 0)
	ps.SpeedYAttack = f32AtOr(rec, postSpeedYAtk, 0)
	ps.SpeedGroundXSelf = f32AtOr(rec, postSpeedGroundX, 0)

	ps.ECBTop = core.Position{X: f32AtOr(rec, postECBTopX, 0), Y: f32AtOr(rec, postECBTopY, 0)}
	ps.ECBBottom = core.Position{X: f32AtOr(rec, postECBBottomX, 0), Y: f32AtOr(rec, postECBBottomY, 0)}
	ps.ECBLeft = core.Position{X: f32AtOr(rec, postECBLeftX, 0), Y: f32AtOr(rec, postECBLeftY, 0)}
	ps.ECBRight = core.Position{X: f32AtOr(rec, postECBRightX, 0), Y: f32AtOr(rec, postECBRightY, 0)}

	return nil
}

// PeekPostFrameIndex reads just the frame index of a post-frame record
// without applying it. The dispatcher uses it in legacy bookend mode
// to detect frame transitions before the record is folded in.
func PeekPostFrameIndex(rec []byte) int32 {
	return i32At(rec, postFrame)
}
