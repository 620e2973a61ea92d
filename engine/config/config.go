// Package config loads game settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure
var ErrInvalid = errors.New("invalid config")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Flavor struct {
	Enabled   bool          `yaml:"enabled"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	APIKeyEnv string        `yaml:"api_key_env"`
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Spectate configures the read-only websocket feed. An empty Addr disables it.
type Spectate struct {
	Addr  string `yaml:"addr"`
	Every int    `yaml:"every"` // publish one snapshot per this many ticks
}

type Config struct {
	Window   Window   `yaml:"window"`
	TickRate float64  `yaml:"tick_rate"`
	Seed     uint64   `yaml:"seed"` // 0 picks a seed from the clock
	Flavor   Flavor   `yaml:"flavor"`
	Audio    Audio    `yaml:"audio"`
	Spectate Spectate `yaml:"spectate"`
}

// Default returns the settings used when no file is present
func Default() Config {
	return Config{
		Window:   Window{Width: 1024, Height: 720, Title: "Bug Hunt"},
		TickRate: 60,
		Flavor: Flavor{
			Enabled:   true,
			Model:     "gemini-2.5-flash",
			Timeout:   8 * time.Second,
			APIKeyEnv: "GEMINI_API_KEY",
		},
		Audio:    Audio{Enabled: true, Volume: 0.5},
		Spectate: Spectate{Every: 6},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("[config] %s not found, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEnv loads variables from the given .env files into the process
// environment. Missing files are skipped; existing variables win.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				log.Printf("[config] skipping %s: %v", f, err)
			}
			continue
		}
		log.Printf("[config] loaded environment from %s", f)
	}
}

// APIKey returns the flavor API key, trying the configured variable first and
// then API_KEY.
func (c Config) APIKey() string {
	for _, name := range []string{c.Flavor.APIKeyEnv, "GEMINI_API_KEY", "API_KEY"} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %v", ErrInvalid, c.TickRate)
	case c.Flavor.Timeout < 0:
		return fmt.Errorf("%w: flavor.timeout %v", ErrInvalid, c.Flavor.Timeout)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio.volume %v outside 0..1", ErrInvalid, c.Audio.Volume)
	case c.Spectate.Every <= 0:
		return fmt.Errorf("%w: spectate.every %d", ErrInvalid, c.Spectate.Every)
	}
	return nil
}
