package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/durability/internal/config"
	"github.com/zeusync/durability/internal/core/durability"
	"github.com/zeusync/durability/internal/core/events/bus"
	"github.com/zeusync/durability/internal/core/observability/log"
	"github.com/zeusync/durability/internal/core/tuning"
	"github.com/zeusync/durability/internal/core/world/memory"
)

// App is the fully wired durability host.
type App struct {
	Engine *durability.Engine
	World  *memory.World
	Bus    bus.EventBus
	Logger *log.Logger
	Sink   *durability.LogSink
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideWorld,
	ProvideRates,
	ProvideEngine,
	ProvideSink,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := log.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

// ProvideWorld builds the demo world and seeds it.
func ProvideWorld(cfg config.Config) *memory.World {
	w := memory.New(cfg.World.Shards)
	memory.Seed(w, cfg.World.SeedConfig)
	return w
}

func ProvideRates(cfg config.Config) (*tuning.Rates, error) {
	return tuning.NewRates(cfg.Rates)
}

func ProvideEngine(cfg config.Config, world *memory.World, rates *tuning.Rates, b bus.EventBus, logger *log.Logger) (*durability.Engine, error) {
	return durability.NewEngine(cfg.Engine, world, rates,
		durability.WithBus(b),
		durability.WithLogger(logger))
}

func ProvideSink(b bus.EventBus, logger *log.Logger) (*durability.LogSink, func(), error) {
	sink, err := durability.AttachLogSink(b, logger)
	if err != nil {
		return nil, nil, err
	}
	return sink, func() { _ = sink.Close() }, nil
}
