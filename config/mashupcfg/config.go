// Package mashupcfg loads the mashupctl configuration file and applies
// environment overrides on top of it.
package mashupcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kompox/mashup/adapters/platform"
)

// Environment variable names
const (
	DirEnvKey       = "MASHUP_DIR"
	URLEnvKey       = "MASHUP_URL"
	TokenEnvKey     = "MASHUP_TOKEN"
	UsernameEnvKey  = "MASHUP_USERNAME"
	LogFormatEnvKey = "MASHUP_LOG_FORMAT"
	DBURLEnvKey     = "MASHUP_DB_URL"
)

// Directory and file names
const (
	DirName        = ".mashup"
	ConfigFileName = "config.yml"
)

// Store types
const (
	StoreMemory = "memory"
	StoreRDB    = "rdb"
)

const defaultTimeout = 30 * time.Second

// Config is the resolved configuration.
type Config struct {
	Version   int                `yaml:"version"`
	Server    Server             `yaml:"server"`
	Session   Session            `yaml:"session"`
	Endpoints platform.Endpoints `yaml:"endpoints,omitempty"`
	Store     Store              `yaml:"store"`
	Logging   Logging            `yaml:"logging,omitempty"`
	Metrics   Metrics            `yaml:"metrics,omitempty"`

	// Dir is the resolved MASHUP_DIR; not read from the file.
	Dir string `yaml:"-"`
}

// Server describes the platform endpoint.
type Server struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Session identifies the user the cache is scoped to.
type Session struct {
	Username string `yaml:"username"`
}

// Store selects the cache backend.
type Store struct {
	Type string `yaml:"type"`           // rdb (default) | memory
	DSN  string `yaml:"dsn,omitempty"` // sqlite:path when type is rdb
}

// Logging mirrors logging.LogConfig.
type Logging struct {
	Format        string `yaml:"format,omitempty"`        // human (default), text, json
	Level         string `yaml:"level,omitempty"`         // DEBUG, INFO (default), WARN, ERROR
	Output        string `yaml:"output,omitempty"`        // -, none, auto or a file path
	Dir           string `yaml:"dir,omitempty"`           // default: $MASHUP_DIR/logs
	RetentionDays int    `yaml:"retentionDays,omitempty"` // default: 7
}

// Metrics configures the metrics export.
type Metrics struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:   1,
		Server:    Server{Timeout: defaultTimeout},
		Endpoints: platform.DefaultEndpoints(),
		Store:     Store{Type: StoreRDB},
		Logging:   Logging{RetentionDays: 7},
	}
}

// ResolveDir returns dir, or $MASHUP_DIR, or ~/.mashup.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		dir = os.Getenv(DirEnvKey)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, DirName)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s to absolute path: %w", DirEnvKey, err)
	}
	return filepath.Clean(abs), nil
}

// Load reads the configuration file at path, or $MASHUP_DIR/config.yml when
// path is empty, and applies environment overrides. A missing default file
// is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	dir, err := ResolveDir("")
	if err != nil {
		return nil, err
	}
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, ConfigFileName)
	}

	cfg := Default()
	cfg.Dir = dir
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(URLEnvKey); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv(TokenEnvKey); v != "" {
		c.Server.Token = v
	}
	if v := os.Getenv(UsernameEnvKey); v != "" {
		c.Session.Username = v
	}
	if v := os.Getenv(LogFormatEnvKey); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(DBURLEnvKey); v != "" {
		c.Store.Type = StoreRDB
		c.Store.DSN = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = defaultTimeout
	}
	if c.Store.Type == "" {
		c.Store.Type = StoreRDB
	}
	if c.Store.Type == StoreRDB && c.Store.DSN == "" {
		c.Store.DSN = "sqlite:" + filepath.Join(c.Dir, "mashupctl.db")
	}
	if c.Logging.Dir == "" && c.Dir != "" {
		c.Logging.Dir = filepath.Join(c.Dir, "logs")
	}
	if c.Logging.RetentionDays <= 0 {
		c.Logging.RetentionDays = 7
	}
	c.Endpoints = c.Endpoints.WithDefaults()
}

// Validate reports every problem found in c.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.URL) == "" {
		errs = append(errs, fmt.Errorf("server.url is required (or set %s)", URLEnvKey))
	}
	if strings.TrimSpace(c.Session.Username) == "" {
		errs = append(errs, fmt.Errorf("session.username is required (or set %s)", UsernameEnvKey))
	}
	switch c.Store.Type {
	case StoreMemory, StoreRDB:
	default:
		errs = append(errs, fmt.Errorf("store.type %q is not one of %s, %s", c.Store.Type, StoreMemory, StoreRDB))
	}
	return errors.Join(errs...)
}

// InitialConfigYAML generates a starter config.yml with 2-space indentation.
func InitialConfigYAML(serverURL, username string) ([]byte, error) {
	cfg := Default()
	cfg.Server.URL = serverURL
	cfg.Session.Username = username

	var buf strings.Builder
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encoding default config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("closing yaml encoder: %w", err)
	}
	return []byte(buf.String()), nil
}
