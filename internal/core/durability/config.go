package durability

import (
	"fmt"
	"time"
)

// Strategy selects who drives the pass cadence.
type Strategy string

const (
	// StrategyLoop runs a self-paced background loop.
	StrategyLoop Strategy = "loop"
	// StrategyTick leaves cadence to the host, which calls Engine.Tick.
	StrategyTick Strategy = "tick"
)

// Config holds the scheduler settings.
type Config struct {
	Strategy Strategy `yaml:"strategy"`

	// MinInterval is the minimum time between two full passes.
	MinInterval time.Duration `yaml:"min_interval"`

	// Loop pacing
	BasePause    time.Duration `yaml:"base_pause"`
	MinPause     time.Duration `yaml:"min_pause"`
	MaxPause     time.Duration `yaml:"max_pause"`
	ProfileEvery time.Duration `yaml:"profile_every"`

	// FailureBackoff is how long scheduling pauses after a failed pass.
	FailureBackoff time.Duration `yaml:"failure_backoff"`

	// Workers bounds how many structures a pass processes concurrently.
	Workers int `yaml:"workers"`

	// HostTick is the cadence at which the demo host calls Tick.
	HostTick time.Duration `yaml:"host_tick"`
}

// DefaultConfig returns the reference cadence.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyLoop,
		MinInterval:    15 * time.Second,
		BasePause:      200 * time.Millisecond,
		MinPause:       100 * time.Millisecond,
		MaxPause:       500 * time.Millisecond,
		ProfileEvery:   10 * time.Second,
		FailureBackoff: 5 * time.Second,
		Workers:        1,
		HostTick:       50 * time.Millisecond,
	}
}

func (c Config) Validate() error {
	switch c.Strategy {
	case StrategyLoop, StrategyTick:
	default:
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrUnknownStrategy, c.Strategy)
	}
	if c.MinInterval < 0 || c.FailureBackoff < 0 || c.ProfileEvery < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	if c.MinPause <= 0 || c.MaxPause < c.MinPause {
		return fmt.Errorf("%w: pause bounds must satisfy 0 < min_pause <= max_pause", ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	return nil
}

func (c Config) pacing() pacing {
	return pacing{base: c.BasePause, min: c.MinPause, max: c.MaxPause}
}
