package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"cosmic/internal/storage"
	"cosmic/internal/task"
	"cosmic/internal/view"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "cosmic.db"
	DefaultDataDir        = "data"
	EnvConfigPath         = "COSMIC_CONFIG"
)

type Keymap struct {
	Quit     string `toml:"quit"`
	Add      string `toml:"add"`
	Up       string `toml:"up"`
	Down     string `toml:"down"`
	Toggle   string `toml:"toggle"`
	Delete   string `toml:"delete"`
	Detail   string `toml:"detail"`
	Confirm  string `toml:"confirm"`
	Cancel   string `toml:"cancel"`
	Edit     string `toml:"edit"`
	Grab     string `toml:"grab"`
	Filter   string `toml:"filter"`
	Priority string `toml:"priority"`
}

type Config struct {
	Backend         string `toml:"backend"`
	DBPath          string `toml:"db_path"`
	DataDir         string `toml:"data_dir"`
	DefaultFilter   string `toml:"default_filter"`
	DefaultPriority string `toml:"default_priority"`
	ToastSeconds    int    `toml:"toast_seconds"`
	Celebrate       bool   `toml:"celebrate"`
	ConfirmDelete   bool   `toml:"confirm_delete"`
	Mouse           bool   `toml:"mouse"`
	LogPath         string `toml:"log_path"`
	Keys            Keymap `toml:"keys"`
}

// ResolveConfigPath honours $COSMIC_CONFIG, then the user config dir, then
// the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "cosmic", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Relative data paths are resolved against the
// directory holding the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case storage.BackendSQLite, storage.BackendFile:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", storage.BackendSQLite, storage.BackendFile, c.Backend)
	}
	if _, err := view.ParseFilter(c.DefaultFilter); err != nil {
		return fmt.Errorf("default_filter: %w", err)
	}
	if _, err := task.ParsePriority(c.DefaultPriority); err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	if c.ToastSeconds < 0 {
		return fmt.Errorf("toast_seconds must not be negative, got %d", c.ToastSeconds)
	}
	return nil
}

// StoragePath is the path handed to storage.Open for the configured backend.
func (c Config) StoragePath() string {
	if c.Backend == storage.BackendFile {
		return c.DataDir
	}
	return c.DBPath
}

func (c Config) Filter() view.Filter {
	f, err := view.ParseFilter(c.DefaultFilter)
	if err != nil {
		return view.FilterAll
	}
	return f
}

func (c Config) Priority() task.Priority {
	p, err := task.ParsePriority(c.DefaultPriority)
	if err != nil {
		return task.PriorityLow
	}
	return p
}

func (c Config) resolve(base string) Config {
	if c.DBPath == "" {
		c.DBPath = DefaultDBName
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	c.DBPath = resolvePath(base, c.DBPath)
	c.DataDir = resolvePath(base, c.DataDir)
	if c.LogPath != "" {
		c.LogPath = resolvePath(base, c.LogPath)
	}
	return c
}

func resolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Backend:         storage.BackendSQLite,
		DBPath:          DefaultDBName,
		DataDir:         DefaultDataDir,
		DefaultFilter:   string(view.FilterAll),
		DefaultPriority: string(task.PriorityLow),
		ToastSeconds:    3,
		Celebrate:       true,
		ConfirmDelete:   false,
		Mouse:           true,
		LogPath:         "cosmic.log",
		Keys: Keymap{
			Quit:     "q",
			Add:      "a",
			Up:       "k",
			Down:     "j",
			Toggle:   " ",
			Delete:   "d",
			Detail:   "i",
			Confirm:  "enter",
			Cancel:   "esc",
			Edit:     "e",
			Grab:     "m",
			Filter:   "f",
			Priority: "p",
		},
	}
}
