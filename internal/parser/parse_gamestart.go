package parser

import (
	"fmt"

	"github.com/blang/semver/v4"

	"github.com/AndrewAXue/libmelee/internal/tables"
)

// Game-start record offsets.
const (
	gsVersionMajor = 0x1
	gsVersionMinor = 0x2
	gsVersionBuild = 0x3
	gsStageID      = 0x13
	gsPlayerType   = 0x66 // per-port block, stride gsPortStride
	gsCostume      = 0x68
	gsCPULevel     = 0x74
	gsPortStride   = 0x24
)

// Player-type values from the game-start record.
const (
	humanPlayerType = 0
	cpuPlayerType   = 1
)

// ParseGameStart decodes a session-start record: protocol version,
// stage, and the per-port costume/CPU side tables consulted by later
// pre-frame records. It decides whether legacy bookend mode applies,
// and fails with ErrVersionTooLow for pre-3.0.0 streams unless the
// caller opted in.
func (p *Parser) ParseGameStart(rec []byte) error {
	major := u8At(rec, gsVersionMajor)
	minor := u8At(rec, gsVersionMinor)
	build := u8At(rec, gsVersionBuild)
	p.slpVersion = fmt.Sprintf("%d.%d.%d", major, minor, build)

	v, err := semver.Parse(p.slpVersion)
	if err != nil {
		return fmt.Errorf("parsing slp version %q: %w", p.slpVersion, err)
	}
	p.legacyBookends = p.allowOld && v.LT(minVersion)
	if v.Major < minVersion.Major && !p.allowOld {
		return fmt.Errorf("%w: stream is %s, need %s", ErrVersionTooLow, p.slpVersion, minVersion)
	}

	p.currentStage = tables.StageFromID(u16At(rec, gsStageID))

	for i := 0; i < 4; i++ {
		block := gsPortStride * i
		p.costumes[i] = u8At(rec, gsCostume+block)
		p.cpuLevels[i] = u8At(rec, gsCPULevel+block)
		p.playerTypes[i] = u8At(rec, gsPlayerType+block)
		if p.playerTypes[i] != cpuPlayerType {
			p.cpuLevels[i] = 0
		}
	}

	p.logger.Info("game start",
		"slpVersion", p.slpVersion,
		"stage", p.currentStage.String(),
		"legacyBookends", p.legacyBookends)

	return nil
}
