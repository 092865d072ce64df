package durability

import (
	"errors"
	"fmt"

	"github.com/zeusync/durability/internal/core/events/bus"
	"github.com/zeusync/durability/internal/core/observability/log"
)

// Event types published by the engine.
const (
	EventPass    = "durability.pass"
	EventProfile = "durability.profile"

	EventSource = "durability.engine"
)

// LogSink writes engine diagnostics to a logger.
type LogSink struct {
	logger log.Log
	subs   []bus.Subscription
}

// AttachLogSink subscribes a LogSink to the pass and profile events of b.
func AttachLogSink(b bus.EventBus, logger log.Log) (*LogSink, error) {
	s := &LogSink{logger: logger.With(log.String("component", "durability.sink"))}

	passSub, err := b.Subscribe(EventPass, s.onPass)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", EventPass, err)
	}
	profileSub, err := b.Subscribe(EventProfile, s.onProfile)
	if err != nil {
		_ = passSub.Cancel()
		return nil, fmt.Errorf("subscribe %s: %w", EventProfile, err)
	}
	s.subs = []bus.Subscription{passSub, profileSub}
	return s, nil
}

// Close cancels the sink's subscriptions.
func (s *LogSink) Close() error {
	var all error
	for _, sub := range s.subs {
		all = errors.Join(all, sub.Cancel())
	}
	return all
}

func (s *LogSink) onPass(e bus.Event) error {
	res, ok := e.Data().(PassResult)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", EventPass, e.Data())
	}

	fields := []log.Field{
		log.String("pass_id", res.ID.String()),
		log.String("status", res.Status.String()),
		log.Duration("took", res.Duration),
		log.Float64("elapsed_hours", res.Elapsed.Hours()),
		log.Int("structures", res.Structures),
		log.Int("components", res.Components),
		log.Int("damaged", res.Damaged),
		log.Int("inert", res.Inert),
		log.Int("disposed", res.Disposed),
		log.Uint64("rates_version", res.RatesVersion),
	}

	switch res.Status {
	case PassFailed:
		s.logger.Error("Scan pass failed", append(fields, log.Error(res.Err))...)
	case PassPartial:
		s.logger.Warn("Scan pass finished with faults", append(fields, log.Int("faults", res.Faults), log.Error(res.Err))...)
	default:
		s.logger.Info("Finished damaging structures", fields...)
	}
	return nil
}

func (s *LogSink) onProfile(e bus.Event) error {
	p, ok := e.Data().(Profile)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", EventProfile, e.Data())
	}
	s.logger.Info("Main loop profile",
		log.Duration("avg_loop_interval", p.AvgLoopInterval),
		log.Duration("avg_loop_time", p.AvgLoopTime),
		log.Uint64("iterations", p.Iterations))
	return nil
}
