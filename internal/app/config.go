package app

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"contactpsi/internal/services/session"
)

// ConfigFileName is the config file looked up under the home directory.
const ConfigFileName = "config.toml"

// Duration is a time.Duration that reads and writes as "30s" in TOML.
type Duration struct{ time.Duration }

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Config holds runtime wiring options for building the app.
type Config struct {
	Home string `toml:"-"` // config directory, e.g. $HOME/.contactpsi

	// ClusterURL selects a remote cluster, e.g. http://127.0.0.1:8090.
	// Empty runs jobs in-process.
	ClusterURL string `toml:"cluster_url"`
	// StorePath holds the session database and, for in-process execution,
	// the cluster key file. Parties sharing a local cluster share this path.
	StorePath string `toml:"store_path"`
	// ClusterPassphrase protects the in-process cluster key file.
	ClusterPassphrase string `toml:"cluster_passphrase"`

	LogLevel   string   `toml:"log_level"`
	JSONLogs   bool     `toml:"json_logs"`
	JobTimeout Duration `toml:"job_timeout"`
	CacheSize  int      `toml:"cache_size"`
	Workers    int      `toml:"workers"`

	// Listen is the cluster server address.
	Listen string `toml:"listen"`

	HTTP *http.Client `toml:"-"` // optional; defaults to http.DefaultClient
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig(home string) Config {
	return Config{
		Home:              home,
		StorePath:         filepath.Join(home, "cluster"),
		ClusterPassphrase: "contactpsi-local-cluster",
		LogLevel:          "info",
		JobTimeout:        Duration{session.DefaultTimeout},
		CacheSize:         256,
		Workers:           4,
		Listen:            "127.0.0.1:8090",
	}
}

// LoadConfig reads <home>/config.toml over the defaults. A missing file is
// not an error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig(home)
	path := filepath.Join(home, ConfigFileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg.Home = home
	if cfg.StorePath != "" && !filepath.IsAbs(cfg.StorePath) {
		cfg.StorePath = filepath.Join(home, cfg.StorePath)
	}
	return cfg, nil
}

// SaveConfig writes cfg to <home>/config.toml.
func SaveConfig(cfg Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cfg.Home, ConfigFileName), buf.Bytes(), 0o600)
}
