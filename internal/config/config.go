package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/durability/internal/core/durability"
	"github.com/zeusync/durability/internal/core/observability/log"
	"github.com/zeusync/durability/internal/core/tuning"
	"github.com/zeusync/durability/internal/core/world/memory"
)

var ErrInvalid = errors.New("invalid configuration")

// Config is the whole application configuration, loaded from one YAML file.
type Config struct {
	Log    log.Config        `yaml:"log"`
	Engine durability.Config `yaml:"engine"`
	Rates  tuning.Values     `yaml:"rates"`
	World  World             `yaml:"world"`
}

// World configures the in-memory demo world.
type World struct {
	Shards            int `yaml:"shards"`
	memory.SeedConfig `yaml:",inline"`
}

func Default() Config {
	return Config{
		Log:    log.DefaultConfig(),
		Engine: durability.DefaultConfig(),
		Rates:  tuning.DefaultValues(),
		World: World{
			Shards:     16,
			SeedConfig: memory.DefaultSeedConfig(),
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadReader(bytes.NewReader(raw))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadReader decodes one YAML document over the defaults and validates it.
// Unknown keys are rejected. An empty document yields the defaults.
func LoadReader(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalid, err)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("%w: engine: %w", ErrInvalid, err)
	}
	if err := c.Rates.Validate(); err != nil {
		return fmt.Errorf("%w: rates: %w", ErrInvalid, err)
	}
	if err := c.World.Validate(); err != nil {
		return fmt.Errorf("%w: world: %w", ErrInvalid, err)
	}
	return nil
}

func (w World) Validate() error {
	switch {
	case w.Shards < 0:
		return errors.New("shards must not be negative")
	case w.Structures < 0 || w.ComponentsPerStructure < 0 || w.ReactorsPerStructure < 0 || w.ConsumersPerStructure < 0:
		return errors.New("counts must not be negative")
	case w.LargeRatio < 0 || w.LargeRatio > 1:
		return fmt.Errorf("large_ratio %v outside [0, 1]", w.LargeRatio)
	case w.ReactorOutput < 0 || w.ConsumerDraw < 0:
		return errors.New("reactor_output and consumer_draw must not be negative")
	}
	return nil
}
