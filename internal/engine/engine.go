package engine

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/AndrewAXue/libmelee/internal/dispatcher"
	"github.com/AndrewAXue/libmelee/internal/parser"
	"github.com/AndrewAXue/libmelee/internal/stream"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Meta describes the session as learned from the game-start record.
type Meta struct {
	SLPVersion     string
	LegacyBookends bool
	Stage          core.Stage
	GameStarted    bool
	GameEnded      bool
}

// Engine drives the decode loop: it pulls chunks from a Source, feeds
// them through the dispatcher, and assembles finalized frame snapshots.
type Engine struct {
	logger *slog.Logger
	src    stream.Source
	parser *parser.Parser
	disp   *dispatcher.Dispatcher

	pending []byte

	snap *core.Snapshot
	prev *core.Snapshot

	lastDelivered int32
	started       bool
	ended         bool
	startedAt     time.Time

	bytesConsumed   uint64
	framesDelivered uint
}

// Stats reports decode throughput counters for monitoring.
type Stats struct {
	BytesConsumed   uint64
	FramesDelivered uint
	PendingBytes    int
}

// New wires an engine to a source. allowOld enables the legacy bookend
// path for replays older than 3.0.0.
func New(logger *slog.Logger, src stream.Source, allowOld bool) (*Engine, error) {
	disp, err := dispatcher.New(logger)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		logger:        logger,
		src:           src,
		parser:        parser.NewParser(logger, allowOld),
		disp:          disp,
		lastDelivered: core.FrameNotStarted,
	}
	e.registerHandlers()
	return e, nil
}

// Meta reports what the engine knows about the session so far.
func (e *Engine) Meta() Meta {
	return Meta{
		SLPVersion:     e.parser.SLPVersion(),
		LegacyBookends: e.parser.LegacyBookends(),
		Stage:          e.parser.CurrentStage(),
		GameStarted:    e.started,
		GameEnded:      e.ended,
	}
}

// Stats returns cumulative decode counters.
func (e *Engine) Stats() Stats {
	return Stats{
		BytesConsumed:   e.bytesConsumed,
		FramesDelivered: e.framesDelivered,
		PendingBytes:    len(e.pending),
	}
}

// SessionMeta summarizes the current session for storage backends.
// Returns nil before the game-start record has been seen.
func (e *Engine) SessionMeta() *core.SessionMeta {
	if !e.started {
		return nil
	}
	return e.parser.SessionMeta(e.startedAt)
}

func (e *Engine) registerHandlers() {
	e.disp.Register(dispatcher.CmdGameStart, func(rec []byte) (dispatcher.Action, error) {
		if err := e.parser.ParseGameStart(rec); err != nil {
			return dispatcher.ActionNone, err
		}
		e.started = true
		e.ended = false
		e.startedAt = time.Now()
		e.lastDelivered = core.FrameNotStarted
		if e.parser.LegacyBookends() {
			e.disp.SetBoundary(dispatcher.CmdPostFrame, e.legacyBoundary)
		}
		return dispatcher.ActionNone, nil
	})

	e.disp.Register(dispatcher.CmdPreFrame, func(rec []byte) (dispatcher.Action, error) {
		return dispatcher.ActionNone, e.parser.ParsePreFrame(e.snapshot(), rec)
	})

	e.disp.Register(dispatcher.CmdPostFrame, func(rec []byte) (dispatcher.Action, error) {
		return dispatcher.ActionNone, e.parser.ParsePostFrame(e.snapshot(), rec)
	})

	e.disp.Register(dispatcher.CmdItemUpdate, func(rec []byte) (dispatcher.Action, error) {
		return dispatcher.ActionNone, e.parser.ParseItemUpdate(e.snapshot(), rec)
	})

	e.disp.Register(dispatcher.CmdFrameBookend, func(rec []byte) (dispatcher.Action, error) {
		return dispatcher.ActionFrameComplete, nil
	})

	e.disp.Register(dispatcher.CmdMenuFrame, func(rec []byte) (dispatcher.Action, error) {
		return dispatcher.ActionFrameComplete, e.parser.ParseMenuFrame(e.snapshot(), rec)
	})

	e.disp.Register(dispatcher.CmdGameEnd, func(rec []byte) (dispatcher.Action, error) {
		e.ended = true
		// Old replays have no bookends, so the final frame is still
		// pending when the end record arrives.
		if e.parser.LegacyBookends() {
			return dispatcher.ActionFrameComplete, nil
		}
		return dispatcher.ActionNone, nil
	})
}

// legacyBoundary stops the feed before a post-frame record that belongs
// to a newer frame than the one being assembled. The record stays in
// the pending buffer and is redelivered after the flush.
func (e *Engine) legacyBoundary(rec []byte) bool {
	if e.snap == nil || e.snap.Frame == core.FrameNotStarted {
		return false
	}
	return parser.PeekPostFrameIndex(rec) != e.snap.Frame
}

func (e *Engine) snapshot() *core.Snapshot {
	if e.snap == nil {
		e.snap = core.NewSnapshot()
	}
	return e.snap
}

// Step advances the engine until one frame is finalized. It returns
// (nil, nil) when a polling source has no data yet, and io.EOF from
// the source once the stream is exhausted.
func (e *Engine) Step(ctx context.Context) (*core.Snapshot, error) {
	for {
		if len(e.pending) > 0 {
			consumed, complete, err := e.disp.Feed(e.pending)
			if err != nil {
				return nil, err
			}
			e.bytesConsumed += uint64(consumed)
			e.pending = append(e.pending[:0], e.pending[consumed:]...)
			if complete {
				if snap := e.finalize(); snap != nil {
					e.framesDelivered++
					return snap, nil
				}
				continue
			}
		}

		chunk, err := e.src.NextChunk(ctx)
		if err != nil {
			return nil, err
		}
		if chunk == nil {
			return nil, nil
		}
		e.pending = append(e.pending, chunk...)
	}
}

// finalize closes out the in-progress snapshot. Every assembled
// gameplay frame is corrected and retained as the lookback frame, but
// only frames advancing past the last delivered index are emitted;
// resent frames are dropped after correction so the countdowns keep
// ticking across them. Menu frames run on their own clock and skip
// the gate.
func (e *Engine) finalize() *core.Snapshot {
	snap := e.snapshot()
	e.snap = nil

	snap.Distance = pairDistance(snap)
	applyCorrections(snap, e.prev)

	if snap.MenuScene == core.SceneInGame {
		e.prev = snap
		if snap.Frame <= e.lastDelivered {
			return nil
		}
		e.lastDelivered = snap.Frame
	}
	return snap
}

// pairDistance is the euclidean distance between the two lowest active
// ports, or 0 when fewer than two players are present.
func pairDistance(snap *core.Snapshot) float64 {
	ports := snap.ActivePorts()
	if len(ports) < 2 {
		return 0
	}
	a := snap.Players[ports[0]]
	b := snap.Players[ports[1]]
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
