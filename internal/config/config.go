package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration parses YAML strings like "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) String() string { return time.Duration(d).String() }

// Config is the operator-facing configuration for the bot daemon.
type Config struct {
	TokenFile        string   `yaml:"token_file"`
	DataDir          string   `yaml:"data_dir"`
	StaticDir        string   `yaml:"static_dir"`
	Admins           []int64  `yaml:"admins"`
	SnapshotInterval Duration `yaml:"snapshot_interval"`
	PatchVersion     string   `yaml:"patch_version"`
}

// Default returns the configuration used when a field is omitted.
func Default() Config {
	return Config{
		TokenFile:        "api_key.txt",
		DataDir:          "data",
		StaticDir:        "static_responses",
		SnapshotInterval: Duration(time.Hour),
	}
}

// Load reads and validates a YAML config file.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.SnapshotInterval <= 0 {
		return cfg, fmt.Errorf("snapshot_interval must be positive, got %s", cfg.SnapshotInterval)
	}
	if cfg.TokenFile == "" {
		return cfg, fmt.Errorf("token_file is required")
	}
	return cfg, nil
}

// Token reads the bot token from the configured file, trimming trailing
// whitespace the way shells tend to leave it.
func (c Config) Token() (string, error) {
	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", c.TokenFile)
	}
	return token, nil
}

// IsAdmin reports whether id is on the restart allow-list.
func (c Config) IsAdmin(id int64) bool {
	for _, admin := range c.Admins {
		if admin == id {
			return true
		}
	}
	return false
}
