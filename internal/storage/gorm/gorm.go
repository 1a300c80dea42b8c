package gorm

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/AndrewAXue/libmelee/internal/config"
	"github.com/AndrewAXue/libmelee/internal/database"
	"github.com/AndrewAXue/libmelee/internal/model"
	"github.com/AndrewAXue/libmelee/internal/queue"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Backend writes sessions and frames to a relational database through
// the shared database manager (Postgres with SQLite fallback). Frames
// are queued and flushed in batches from a background goroutine.
type Backend struct {
	cfg config.GormConfig
	db  *database.Manager
	log zerolog.Logger

	gameQueue *queue.Queue[model.GameFrame]
	menuQueue *queue.Queue[model.MenuFrame]

	mu         sync.Mutex
	session    *model.Session
	frameCount uint

	done    chan struct{}
	flushWg sync.WaitGroup
}

// New creates a gorm-based backend.
func New(cfg config.GormConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg:       cfg,
		log:       log,
		gameQueue: queue.New[model.GameFrame](),
		menuQueue: queue.New[model.MenuFrame](),
		done:      make(chan struct{}),
	}
}

// Init connects to the database, migrates the schema, and starts the
// flush loop.
func (b *Backend) Init() error {
	b.db = database.NewManager(b.log)
	if err := b.db.Connect(); err != nil {
		return fmt.Errorf("connecting database: %w", err)
	}
	if err := b.db.Setup(); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	b.flushWg.Add(1)
	go b.flushLoop()
	return nil
}

// Close drains the queues and shuts down the flush loop.
func (b *Backend) Close() error {
	close(b.done)
	b.flushWg.Wait()
	b.flush()

	if b.db != nil && b.db.SqlDB != nil {
		return b.db.SqlDB.Close()
	}
	return nil
}

// StartSession inserts the session row and its players.
func (b *Backend) StartSession(meta *core.SessionMeta) error {
	session := &model.Session{
		SLPVersion:     meta.SLPVersion,
		LegacyBookends: meta.LegacyBookends,
		StageName:      meta.Stage.String(),
		StartedAt:      meta.StartedAt,
	}
	for _, p := range meta.Players {
		session.Players = append(session.Players, model.SessionPlayer{
			Port:     p.Port,
			Costume:  p.Costume,
			IsCPU:    p.IsCPU,
			CPULevel: p.CPULevel,
		})
	}

	if err := b.db.DB.Create(session).Error; err != nil {
		return fmt.Errorf("creating session row: %w", err)
	}

	b.mu.Lock()
	b.session = session
	b.frameCount = 0
	b.mu.Unlock()

	b.log.Info().Uint("sessionId", session.ID).Str("stage", session.StageName).Msg("Session started")
	return nil
}

// RecordSnapshot queues a finalized frame for the next batch flush.
func (b *Backend) RecordSnapshot(s *core.Snapshot) error {
	b.mu.Lock()
	session := b.session
	if s.MenuScene == core.SceneInGame {
		b.frameCount++
	}
	b.mu.Unlock()

	if session == nil {
		return fmt.Errorf("no session in progress")
	}

	players, err := json.Marshal(s.Players)
	if err != nil {
		return fmt.Errorf("marshaling players: %w", err)
	}

	if s.MenuScene != core.SceneInGame {
		b.menuQueue.Push(model.MenuFrame{
			SessionID:  session.ID,
			FrameIndex: s.Frame,
			Scene:      s.MenuScene.String(),
			SubMenu:    uint8(s.SubMenu),
			Players:    datatypes.JSON(players),
		})
		return nil
	}

	projectiles, err := json.Marshal(s.Projectiles)
	if err != nil {
		return fmt.Errorf("marshaling projectiles: %w", err)
	}

	b.gameQueue.Push(model.GameFrame{
		SessionID:   session.ID,
		FrameIndex:  s.Frame,
		Distance:    s.Distance,
		Players:     datatypes.JSON(players),
		Projectiles: datatypes.JSON(projectiles),
	})
	return nil
}

// EndSession flushes remaining frames and stamps the session row.
func (b *Backend) EndSession() error {
	b.flush()

	b.mu.Lock()
	session := b.session
	frames := b.frameCount
	b.session = nil
	b.mu.Unlock()

	if session == nil {
		return fmt.Errorf("no session in progress")
	}

	err := b.db.DB.Model(session).Updates(map[string]any{
		"ended_at":    time.Now(),
		"frame_count": frames,
	}).Error
	if err != nil {
		return fmt.Errorf("finalizing session row: %w", err)
	}

	b.log.Info().Uint("sessionId", session.ID).Uint("frames", frames).Msg("Session ended")
	return nil
}

func (b *Backend) flushLoop() {
	defer b.flushWg.Done()

	interval := b.cfg.FlushInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			b.flush()
		}
	}
}

// flush drains both queues into the database in batches.
func (b *Backend) flush() {
	batchSize := b.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 600
	}

	if frames := b.gameQueue.GetAndEmpty(); len(frames) > 0 {
		if err := b.db.DB.CreateInBatches(frames, batchSize).Error; err != nil {
			b.log.Error().Err(err).Int("count", len(frames)).Msg("Failed to write game frames")
		}
	}
	if frames := b.menuQueue.GetAndEmpty(); len(frames) > 0 {
		if err := b.db.DB.CreateInBatches(frames, batchSize).Error; err != nil {
			b.log.Error().Err(err).Int("count", len(frames)).Msg("Failed to write menu frames")
		}
	}
}
