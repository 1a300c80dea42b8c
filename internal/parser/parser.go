// Package parser turns fixed-format event records into snapshot
// mutations. It owns the per-session side tables captured at game
// start (costumes, CPU levels, stage, protocol version) so that
// concurrent sessions cannot interfere through shared state.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blang/semver/v4"

	"github.com/AndrewAXue/libmelee/pkg/core"
)

// ErrVersionTooLow is returned when the stream declares a protocol
// version below 3.0.0 and the caller has not opted into old streams.
var ErrVersionTooLow = errors.New("slippi version too low")

// minVersion is the oldest protocol version with frame bookend
// records. Streams below it need legacy bookend synthesis.
var minVersion = semver.MustParse("3.0.0")

// Parser decodes individual event records into an in-progress
// snapshot. One Parser serves one stream; state captured from the
// game-start record is consulted by later records of the same session.
type Parser struct {
	logger *slog.Logger

	// Tolerate streams older than minVersion, set at creation time.
	allowOld bool

	costumes    [4]uint8
	cpuLevels   [4]uint8
	playerTypes [4]uint8

	currentStage   core.Stage
	slpVersion     string
	legacyBookends bool
}

// NewParser creates a parser for a single stream. allowOld opts into
// legacy streams predating frame bookends.
func NewParser(logger *slog.Logger, allowOld bool) *Parser {
	return &Parser{
		logger:       logger,
		allowOld:     allowOld,
		currentStage: core.StageNone,
		slpVersion:   "unknown",
	}
}

// SLPVersion returns the stream's declared protocol version, or
// "unknown" before the game-start record has been seen.
func (p *Parser) SLPVersion() string {
	return p.slpVersion
}

// LegacyBookends reports whether frame boundaries must be synthesized
// from post-frame index transitions.
func (p *Parser) LegacyBookends() bool {
	return p.legacyBookends
}

// CurrentStage returns the stage detected at game start.
func (p *Parser) CurrentStage() core.Stage {
	return p.currentStage
}

// SessionMeta summarizes the game-start record for storage backends.
// Ports without a human or CPU player are omitted.
func (p *Parser) SessionMeta(startedAt time.Time) *core.SessionMeta {
	meta := &core.SessionMeta{
		SLPVersion:     p.slpVersion,
		LegacyBookends: p.legacyBookends,
		Stage:          p.currentStage,
		StartedAt:      startedAt,
	}
	for i := 0; i < 4; i++ {
		if p.playerTypes[i] != humanPlayerType && p.playerTypes[i] != cpuPlayerType {
			continue
		}
		meta.Players = append(meta.Players, core.SessionPlayer{
			Port:     i + 1,
			Costume:  p.costumes[i],
			IsCPU:    p.playerTypes[i] == cpuPlayerType,
			CPULevel: int(p.cpuLevels[i]),
		})
	}
	return meta
}

func (p *Parser) portAt(rec []byte, off int) (int, error) {
	port := int(u8At(rec, off)) + 1
	if port < 1 || port > 4 {
		return 0, fmt.Errorf("controller port out of range: %d", port)
	}
	return port, nil
}
