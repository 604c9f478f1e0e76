package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
}

// StorageConfig locates the SQLite database. An empty path means
// <config dir>/habitr/habitr.db.
type StorageConfig struct {
	DBPath string `yaml:"db_path" env:"HABITR_DB_PATH"`
}

// LogConfig holds logging settings. An empty dir means <config dir>/habitr/logs.
type LogConfig struct {
	Dir   string `yaml:"dir"   env:"HABITR_LOG_DIR"`
	Level string `yaml:"level" env:"HABITR_LOG_LEVEL" env-default:"warn"`
	Debug bool   `yaml:"debug" env:"HABITR_DEBUG"     env-default:"false"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultCategoryTitle string `yaml:"default_category_title" env:"HABITR_DEFAULT_CATEGORY_TITLE" env-default:"Uncategorized"`
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from HABITR_CONFIG,
// falling back to <config dir>/habitr/config.yaml; a missing default file
// is not an error.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("HABITR_CONFIG"))
}

// LoadFrom is Load with an explicit file path. An empty path selects the
// default file, which may be absent.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		dir, err := Dir()
		if err == nil {
			path = filepath.Join(dir, "config.yaml")
		}
	}

	if _, err := os.Stat(path); path != "" && err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Dir returns the habitr directory under the user's config dir.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "habitr"), nil
}

func (c *Config) resolvePaths() error {
	if c.Storage.DBPath != "" && c.Log.Dir != "" {
		return nil
	}
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = filepath.Join(dir, "habitr.db")
	}
	if c.Log.Dir == "" {
		c.Log.Dir = filepath.Join(dir, "logs")
	}
	return nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		errs = append(errs, errors.New("storage.db_path is required"))
	}
	if strings.TrimSpace(c.Log.Dir) == "" {
		errs = append(errs, errors.New("log.dir is required"))
	}
	if !slices.Contains(validLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level %q must be one of %s", c.Log.Level, strings.Join(validLevels, ", ")))
	}
	if strings.TrimSpace(c.UI.DefaultCategoryTitle) == "" {
		errs = append(errs, errors.New("ui.default_category_title must not be blank"))
	}
	return errors.Join(errs...)
}
