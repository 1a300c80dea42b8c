package storage

import "github.com/AndrewAXue/libmelee/pkg/core"

// Backend is the interface all recording backends must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(meta *core.SessionMeta) error
	EndSession() error

	// Snapshot recording. Gameplay and menu snapshots both arrive here;
	// backends split them on MenuScene.
	RecordSnapshot(s *core.Snapshot) error
}

// Exportable is an optional interface for backends that produce a
// recording file on EndSession.
type Exportable interface {
	ExportedFilePath() string
}
