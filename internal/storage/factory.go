package storage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/AndrewAXue/libmelee/internal/config"
	gormbackend "github.com/AndrewAXue/libmelee/internal/storage/gorm"
	"github.com/AndrewAXue/libmelee/internal/storage/memory"
	"github.com/AndrewAXue/libmelee/internal/storage/websocket"
)

// NewBackend creates a recording backend based on configuration
func NewBackend(cfg config.StorageConfig, logger *slog.Logger, dbLog zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "gorm":
		return gormbackend.New(cfg.Gorm, dbLog), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	case "websocket":
		return websocket.New(websocket.Config{URL: cfg.Websocket.URL, Secret: cfg.Websocket.Secret}, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
