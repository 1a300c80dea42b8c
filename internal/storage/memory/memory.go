package memory

import (
	"sync"

	"github.com/AndrewAXue/libmelee/internal/config"
	"github.com/AndrewAXue/libmelee/pkg/core"
)

// Backend stores session data in memory and exports to JSON on
// EndSession.
type Backend struct {
	cfg  config.MemoryConfig
	meta *core.SessionMeta

	gameFrames []*core.Snapshot
	menuFrames []*core.Snapshot

	exportedPath string
	mu           sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session
func (b *Backend) StartSession(meta *core.SessionMeta) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.meta = meta
	b.gameFrames = nil
	b.menuFrames = nil
	b.exportedPath = ""

	return nil
}

// RecordSnapshot appends a finalized frame to the session
func (b *Backend) RecordSnapshot(s *core.Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s.MenuScene == core.SceneInGame {
		b.gameFrames = append(b.gameFrames, s)
	} else {
		b.menuFrames = append(b.menuFrames, s)
	}
	return nil
}

// EndSession finalizes and exports the session data
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.exportJSON()
}

// ExportedFilePath returns the path of the last exported recording,
// or empty if no export has happened yet.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.exportedPath
}

// GameFrameCount returns the number of recorded gameplay frames.
func (b *Backend) GameFrameCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.gameFrames)
}

// MenuFrameCount returns the number of recorded menu frames.
func (b *Backend) MenuFrameCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.menuFrames)
}
