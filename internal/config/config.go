// Package config resolves todod's runtime settings. Sources apply in order:
// defaults, TOML file, TODOD_* environment, command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// DefaultConfigFile is read from the working directory when no explicit
// config path is given.
const DefaultConfigFile = "todod.toml"

var ErrUnknownStore = errors.New("config: unknown store backend")

type RuntimeConfig struct {
	ConfigPath      string `toml:"-"`
	Store           string `toml:"store"`
	DBPath          string `toml:"db_path"`
	StateFilePath   string `toml:"state_file"`
	LogFile         string `toml:"log_file"`
	LogLevel        string `toml:"log_level"`
	LogFormat       string `toml:"log_format"`
	DueWatcher      bool   `toml:"due_watcher"`
	SchedulerBuffer int    `toml:"scheduler_buffer"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Store:           StoreSQLite,
		DBPath:          ".todod.db",
		StateFilePath:   ".todod_state.json",
		LogFile:         ".todod.log",
		LogLevel:        "info",
		LogFormat:       "logfmt",
		DueWatcher:      true,
		SchedulerBuffer: 64,
	}
}

func (c RuntimeConfig) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: db_path is required for the sqlite store")
		}
	case StoreFile:
		if strings.TrimSpace(c.StateFilePath) == "" {
			return errors.New("config: state_file is required for the file store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be positive, got %d", c.SchedulerBuffer)
	}
	return nil
}

// Load resolves the configuration from every source. args are the
// command-line arguments without the program name.
func Load(fs *flag.FlagSet, args []string) (RuntimeConfig, error) {
	if fs == nil {
		fs = flag.NewFlagSet("todod", flag.ContinueOnError)
	}
	var overrides RuntimeConfig
	bindFlags(fs, &overrides)
	if err := fs.Parse(args); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := DefaultRuntimeConfig()
	path, explicit := configPath(overrides.ConfigPath)
	if path != "" {
		loaded, err := LoadFile(path, cfg)
		switch {
		case err == nil:
			cfg = loaded
			cfg.ConfigPath = path
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return RuntimeConfig{}, err
		}
	}

	cfg = RuntimeConfigFromEnv(cfg)
	cfg = applyFlags(fs, cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// LoadFile decodes the TOML file at path over base.
func LoadFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	if _, err := os.Stat(path); err != nil {
		return base, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return base, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODOD_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOD_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODOD_STATE_FILE"); ok {
		cfg.StateFilePath = v
	}
	if v, ok := getEnvString("TODOD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TODOD_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("TODOD_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TODOD_DUE_WATCHER"); ok {
		cfg.DueWatcher = v
	}
	if v, ok := getEnvInt("TODOD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func configPath(flagValue string) (string, bool) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, true
	}
	if v, ok := getEnvString("TODOD_CONFIG"); ok {
		return v, true
	}
	return DefaultConfigFile, false
}

func bindFlags(fs *flag.FlagSet, out *RuntimeConfig) {
	fs.StringVar(&out.ConfigPath, "config", "", "Path to TOML config file")
	fs.StringVar(&out.Store, "store", "", "Store backend: sqlite, file or memory")
	fs.StringVar(&out.DBPath, "db", "", "SQLite database path")
	fs.StringVar(&out.StateFilePath, "state-file", "", "JSON state file path for the file store")
	fs.StringVar(&out.LogFile, "log-file", "", "Log file path")
	fs.StringVar(&out.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.BoolVar(&out.DueWatcher, "due-watcher", true, "Refresh overdue markers when due dates pass")
}

func applyFlags(fs *flag.FlagSet, cfg RuntimeConfig, overrides RuntimeConfig) RuntimeConfig {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store = strings.ToLower(overrides.Store)
		case "db":
			cfg.DBPath = overrides.DBPath
		case "state-file":
			cfg.StateFilePath = overrides.StateFilePath
		case "log-file":
			cfg.LogFile = overrides.LogFile
		case "log-level":
			cfg.LogLevel = strings.ToLower(overrides.LogLevel)
		case "due-watcher":
			cfg.DueWatcher = overrides.DueWatcher
		}
	})
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
