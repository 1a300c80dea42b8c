package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AndrewAXue/libmelee/pkg/core"
)

// recordingVersion identifies the export format.
const recordingVersion = 1

// Recording is the exported JSON document for one session.
type Recording struct {
	Version    int               `json:"version"`
	Meta       *core.SessionMeta `json:"meta"`
	ExportedAt time.Time         `json:"exportedAt"`
	GameFrames []*core.Snapshot  `json:"gameFrames"`
	MenuFrames []*core.Snapshot  `json:"menuFrames,omitempty"`
}

// exportJSON writes the session data to a JSON file under the
// configured output directory. Caller holds the lock.
func (b *Backend) exportJSON() error {
	if b.meta == nil {
		return fmt.Errorf("no session in progress")
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	rec := Recording{
		Version:    recordingVersion,
		Meta:       b.meta,
		ExportedAt: time.Now().UTC(),
		GameFrames: b.gameFrames,
		MenuFrames: b.menuFrames,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling recording: %w", err)
	}

	name := fmt.Sprintf("%s.%s.json",
		b.meta.Stage.String(),
		b.meta.StartedAt.Format("20060102_150405"))
	path := filepath.Join(b.cfg.OutputDir, name)

	if b.cfg.CompressOutput {
		path += ".gz"
		if err := writeGzip(path, data); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing recording: %w", err)
		}
	}

	b.exportedPath = path
	return nil
}

func writeGzip(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating recording file: %w", err)
	}

	gw := gzip.NewWriter(f)
	if _, err := gw.Write(data); err != nil {
		gw.Close()
		f.Close()
		return fmt.Errorf("writing compressed recording: %w", err)
	}
	if err := gw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flushing compressed recording: %w", err)
	}
	return f.Close()
}
