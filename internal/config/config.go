// Package config resolves the application settings from defaults, an
// optional YAML file, VOCARD_* environment variables and command-line
// flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	flag "github.com/spf13/pflag"
)

const envPrefix = "VOCARD_"

// Config holds the resolved settings.
type Config struct {
	// StoragePath is the deck document, a single JSON file.
	StoragePath string `koanf:"storage_path"`
	// HistoryPath is the sqlite database for the review log and sources.
	HistoryPath string `koanf:"history_path"`
	// ListenAddr is the web UI address used with --serve.
	ListenAddr string `koanf:"listen_addr"`
	// ReposDir caches clones of git deck sources.
	ReposDir string `koanf:"repos_dir"`
}

// Load resolves the configuration. The storage location must be
// determinable; failing that is the one startup error that aborts the
// program.
func Load(flags *flag.FlagSet, configFile string) (*Config, error) {
	k := koanf.New(".")

	// Defaults may be unavailable (no resolvable user config dir); that is
	// only fatal if nothing else supplies a storage path.
	defaults, defErr := defaultConfig()

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("config: reading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshalling: %w", err)
	}

	// Unset string flags surface as empty values; fall back to defaults
	// field by field rather than letting them clobber anything.
	if cfg.StoragePath == "" {
		cfg.StoragePath = defaults.StoragePath
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = defaults.HistoryPath
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaults.ListenAddr
	}
	if cfg.ReposDir == "" {
		cfg.ReposDir = defaults.ReposDir
	}

	if cfg.StoragePath == "" {
		return nil, fmt.Errorf("config: no writable storage location could be determined: %v", defErr)
	}
	return &cfg, nil
}

// defaultConfig places everything under the user config dir, e.g.
// ~/.config/vocard on Linux.
func defaultConfig() (Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("config: resolving user config dir: %w", err)
	}
	dir := filepath.Join(base, "vocard")
	return Config{
		StoragePath: filepath.Join(dir, "decks.json"),
		HistoryPath: filepath.Join(dir, "history.db"),
		ListenAddr:  "127.0.0.1:8484",
		ReposDir:    filepath.Join(dir, "repos"),
	}, nil
}
