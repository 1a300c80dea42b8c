package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// parseFlags binds command-line flags over the JSON config. Flags win
// over config file values, which win over defaults.
func parseFlags() error {
	flags := pflag.NewFlagSet("slippi_recorder", pflag.ContinueOnError)

	flags.String("config", ".", "directory containing slippi_recorder.cfg.json")
	flags.String("file", "", "decode a .slp replay file instead of connecting to a relay")
	flags.String("relay", "", "relay WebSocket URL to read the live stream from")
	flags.Bool("polling", false, "poll the source instead of blocking on reads")
	flags.Bool("allow-old", false, "accept replays older than protocol 3.0.0")
	flags.String("storage", "", "recording backend: memory, gorm, or websocket")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("version", false, "print version and exit")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\nFlags:\n%s", os.Args[0], flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	if v, _ := flags.GetBool("version"); v {
		fmt.Printf("slippi_recorder %s (built %s)\n", Version, BuildDate)
		os.Exit(0)
	}

	// Only flags the user actually set should override the config file.
	var bindErr error
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagConfigKeys[f.Name]
		if !ok {
			return
		}
		if err := viper.BindPFlag(key, f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if flags.Changed("relay") && !flags.Changed("file") {
		viper.Set("source.type", "relay")
	}
	return nil
}

// flagConfigKeys maps flag names onto viper config keys.
var flagConfigKeys = map[string]string{
	"file":      "source.path",
	"relay":     "source.relayUrl",
	"polling":   "source.polling",
	"allow-old": "allowOldVersion",
	"storage":   "storage.type",
	"log-level": "logLevel",
}

// configDir returns the --config flag value without consuming other
// flags; it is needed before the full config is loaded.
func configDir() string {
	for i, arg := range os.Args[1:] {
		if arg == "--config" && i+2 < len(os.Args) {
			return os.Args[i+2]
		}
		if len(arg) > 9 && arg[:9] == "--config=" {
			return arg[9:]
		}
	}
	return "."
}

// sourceType decides between file and relay input. An explicit --file
// wins; otherwise the configured source type applies.
func sourceType() string {
	if viper.GetString("source.path") != "" {
		return "file"
	}
	if t := viper.GetString("source.type"); t == "relay" {
		return t
	}
	return "file"
}
