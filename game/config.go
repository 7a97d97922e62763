package game

import (
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config holds the settings shared by the frontends. Every field can be overridden with the
// environment variable named in its tag.
type Config struct {
	// Playfield size in cells.
	Width  int `config:"SHOOTER_WIDTH"`
	Height int `config:"SHOOTER_HEIGHT"`

	// Ticks per second.
	TickRate int `config:"SHOOTER_TICK_RATE"`

	EntityCapacity int `config:"SHOOTER_ENTITY_CAPACITY"`

	LogLevel string `config:"SHOOTER_LOG_LEVEL"`
	LogFile  string `config:"SHOOTER_LOG_FILE"`

	DebugUI bool `config:"SHOOTER_DEBUG_UI"`
	Mute    bool `config:"SHOOTER_MUTE"`

	// Seed for enemy fire timing; 0 picks one from the clock.
	Seed uint64 `config:"SHOOTER_SEED"`
}

// DefaultConfig is the configuration used when no environment variable is set.
var DefaultConfig = Config{
	Width:          80,
	Height:         40,
	TickRate:       60,
	EntityCapacity: 2048,
	LogLevel:       "info",
	LogFile:        "shooter.log",
}

// LoadConfig reads the environment over DefaultConfig and validates the result.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig

	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse shooter config")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrap(err, "failed to validate config")
	}

	return cfg, nil
}

// Validate checks that the configuration describes a playable game.
func (cfg *Config) Validate() error {
	if cfg.Width < MinWidth || cfg.Height < MinHeight {
		return eris.Errorf("playfield %dx%d is smaller than %dx%d", cfg.Width, cfg.Height, MinWidth, MinHeight)
	}
	if cfg.TickRate <= 0 || cfg.TickRate > 1000 {
		return eris.Errorf("tick rate %d out of range (1-1000)", cfg.TickRate)
	}
	if cfg.EntityCapacity < 64 || cfg.EntityCapacity > 1<<20 {
		return eris.Errorf("entity capacity %d out of range (64-%d)", cfg.EntityCapacity, 1<<20)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", cfg.LogLevel)
	}
	return nil
}

// Level returns the parsed log level. It assumes Validate succeeded.
func (cfg *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// TickInterval is the duration of one tick.
func (cfg *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(cfg.TickRate)
}

// DeltaTime is the duration of one tick in seconds.
func (cfg *Config) DeltaTime() float64 {
	return 1.0 / float64(cfg.TickRate)
}
