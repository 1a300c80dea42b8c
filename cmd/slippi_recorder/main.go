package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/AndrewAXue/libmelee/internal/config"
	"github.com/AndrewAXue/libmelee/internal/engine"
	"github.com/AndrewAXue/libmelee/internal/influx"
	"github.com/AndrewAXue/libmelee/internal/logging"
	"github.com/AndrewAXue/libmelee/internal/storage"
	"github.com/AndrewAXue/libmelee/internal/stream"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)

const appName = "slippi_recorder"

// pollSleep is how long the loop idles when a polling source has no data.
const pollSleep = 2 * time.Millisecond

// perfSampleInterval is how often decode throughput is reported.
const perfSampleInterval = 10 * time.Second

var (
	slogManager *logging.SlogManager
	logger      *slog.Logger
)

func main() {
	if err := parseFlags(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := config.Load(configDir()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	sessionStart := time.Now()
	logFile, err := openLogFile(sessionStart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	slogManager = logging.NewSlogManager()
	graylogAddr := ""
	if config.GetBool("graylog.enabled") {
		graylogAddr = config.GetString("graylog.address")
	}
	if err := slogManager.Setup(logFile, config.GetString("logLevel"), graylogAddr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer slogManager.Close()
	logger = slogManager.Logger()
	logger.Info("Starting up", "version", Version, "buildDate", BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Recorder failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Shut down cleanly")
}

// openLogFile creates the session log file under the configured logs
// directory. A nil file sends logs to stdout instead.
func openLogFile(sessionStart time.Time) (*os.File, error) {
	logsDir := config.GetString("logsDir")
	if logsDir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating logs dir: %w", err)
	}
	path := logging.LogFilePath(logsDir, appName, sessionStart)
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	return f, nil
}

func run(ctx context.Context) error {
	src, err := openSource()
	if err != nil {
		return err
	}
	defer src.Close()

	backend, err := openBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	var perfMonitor *influx.Manager
	if config.GetBool("influx.enabled") {
		backupPath := logging.LogFilePath(config.GetString("logsDir"), appName+".influx_backup", time.Now()) + ".gz"
		perfMonitor = influx.NewManager(dbLogger(), backupPath)
		if err := perfMonitor.Connect(); err != nil {
			logger.Warn("InfluxDB monitoring unavailable", "error", err)
			perfMonitor = nil
		}
	}

	eng, err := engine.New(logger, src, config.GetBool("allowOldVersion"))
	if err != nil {
		return fmt.Errorf("building decode engine: %w", err)
	}

	// Loop logs carry the live session context.
	loopLogger := slog.New(logging.NewContextHandler(logger.Handler(), func() []slog.Attr {
		meta := eng.Meta()
		return []slog.Attr{
			slog.String("slpVersion", meta.SLPVersion),
			slog.String("stage", meta.Stage.String()),
		}
	}))
	return decodeLoop(ctx, loopLogger, eng, backend, perfMonitor)
}

// openSource builds the event stream source from config.
func openSource() (stream.Source, error) {
	polling := config.GetBool("source.polling")

	switch sourceType() {
	case "relay":
		url := config.GetString("source.relayUrl")
		logger.Info("Connecting to relay", "url", url, "polling", polling)
		return stream.DialWebSocket(url, polling, logger)
	default:
		path := config.GetString("source.path")
		if path == "" {
			return nil, fmt.Errorf("no replay file given: set --file or source.path")
		}
		logger.Info("Reading replay file", "path", path)
		return stream.OpenFile(path)
	}
}

// openBackend builds and initializes the recording backend from config.
func openBackend() (storage.Backend, error) {
	cfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(cfg, logger, dbLogger())
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", cfg.Type, err)
	}
	logger.Info("Storage backend initialized", "type", cfg.Type)
	return backend, nil
}

// dbLogger builds the zerolog logger the database and influx managers use.
func dbLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// decodeLoop drives the engine until the stream ends or the context is
// canceled, forwarding finalized frames to the backend.
func decodeLoop(ctx context.Context, log *slog.Logger, eng *engine.Engine, backend storage.Backend, perfMonitor *influx.Manager) error {
	sessionActive := false
	lastSample := time.Now()
	var lastSampleFrames uint

	endSession := func() {
		if !sessionActive {
			return
		}
		if err := backend.EndSession(); err != nil {
			log.Error("Failed to end session", "error", err)
		}
		if exp, ok := backend.(storage.Exportable); ok && exp.ExportedFilePath() != "" {
			log.Info("Recording exported", "path", exp.ExportedFilePath())
		}
		sessionActive = false
	}

	for {
		snap, err := eng.Step(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("Stream ended")
				endSession()
				return nil
			}
			endSession()
			return err
		}
		if snap == nil {
			// polling source with no data yet
			select {
			case <-ctx.Done():
				endSession()
				return ctx.Err()
			case <-time.After(pollSleep):
			}
			continue
		}

		meta := eng.Meta()

		if !sessionActive && meta.GameStarted && !meta.GameEnded {
			if sessionMeta := eng.SessionMeta(); sessionMeta != nil {
				if err := backend.StartSession(sessionMeta); err != nil {
					return fmt.Errorf("starting session: %w", err)
				}
				sessionActive = true
				if perfMonitor != nil {
					point := influx.SessionPoint("start", meta.Stage.String(), meta.SLPVersion, len(sessionMeta.Players))
					if err := perfMonitor.WritePoint(ctx, influx.BucketSessionData, point); err != nil {
						log.Debug("Influx write failed", "error", err)
					}
				}
			}
		}

		if sessionActive {
			if err := backend.RecordSnapshot(snap); err != nil {
				log.Error("Failed to record frame", "frame", snap.Frame, "error", err)
			}
		}

		if meta.GameEnded {
			if perfMonitor != nil {
				point := influx.SessionPoint("end", meta.Stage.String(), meta.SLPVersion, 0)
				if err := perfMonitor.WritePoint(ctx, influx.BucketSessionData, point); err != nil {
					log.Debug("Influx write failed", "error", err)
				}
			}
			endSession()
		}

		if elapsed := time.Since(lastSample); elapsed >= perfSampleInterval {
			stats := eng.Stats()
			fps := float64(stats.FramesDelivered-lastSampleFrames) / elapsed.Seconds()
			log.Info("Decode throughput",
				"frames", stats.FramesDelivered,
				"bytes", stats.BytesConsumed,
				"framesPerSec", fps,
				"pendingBytes", stats.PendingBytes)
			if perfMonitor != nil {
				point := influx.DecodePerformancePoint(meta.Stage.String(), stats.FramesDelivered, stats.BytesConsumed, fps, stats.PendingBytes)
				if err := perfMonitor.WritePoint(ctx, influx.BucketDecodePerformance, point); err != nil {
					log.Debug("Influx write failed", "error", err)
				}
			}
			lastSample = time.Now()
			lastSampleFrames = stats.FramesDelivered
		}
	}
}
