// Package config loads and stores skipselect configuration from
// ~/.skipselect/config.yaml, with flag and environment overrides applied by
// the CLI layer on top of the values returned here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Defaults applied when no config file exists. The postcode/area pair
// matches the catalogue the tool was built against.
const (
	DefaultBaseURL        = "https://app.wewantwaste.co.uk"
	DefaultPostcode       = "NR32"
	DefaultArea           = "Lowestoft"
	DefaultTimeoutSeconds = 15
	DefaultOutputFormat   = "table"
)

// LocationConfig selects which skip catalogue is fetched.
type LocationConfig struct {
	Postcode string `yaml:"postcode"`
	Area     string `yaml:"area"`
}

// APIConfig holds catalogue endpoint settings.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// OutputConfig holds non-interactive output settings.
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `yaml:"format"`
}

// Config is the root configuration document.
type Config struct {
	Location LocationConfig `yaml:"location"`
	API      APIConfig      `yaml:"api"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Single config instance per CLI invocation
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
)

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		Location: LocationConfig{Postcode: DefaultPostcode, Area: DefaultArea},
		API:      APIConfig{BaseURL: DefaultBaseURL, TimeoutSeconds: DefaultTimeoutSeconds},
		Output:   OutputConfig{Format: DefaultOutputFormat},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

// ConfigDir returns the per-user skipselect directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skipselect"
	}
	return filepath.Join(home, ".skipselect")
}

// ConfigPath returns the path of the YAML config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// New loads the config file over defaults. A missing file is not an error;
// a malformed file is, so typos do not silently fall back to defaults.
func New() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigPath(), err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills in zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Location.Postcode == "" {
		c.Location.Postcode = DefaultPostcode
	}
	if c.Location.Area == "" {
		c.Location.Area = DefaultArea
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultOutputFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// SetGlobalConfig stores cfg for access by later command stages.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the stored config, loading defaults when no
// command stage has stored one yet.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	loaded, err := New()
	if err != nil {
		loaded = DefaultConfig()
	}
	SetGlobalConfig(loaded)
	return loaded
}

// WriteDefault writes a commented default config file, refusing to clobber
// an existing one.
func WriteDefault() (string, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return path, fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0600); err != nil {
		return path, fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

const defaultConfigYAML = `# skipselect configuration
location:
  postcode: NR32
  area: Lowestoft

api:
  base_url: https://app.wewantwaste.co.uk
  timeout_seconds: 15

output:
  # table or json
  format: table

logging:
  # trace, debug, info, warn, error
  level: info
  # console or json
  format: console
  # uncomment to log to a file instead of stderr
  # file: /tmp/skipselect.log
`
