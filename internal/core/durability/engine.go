package durability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zeusync/durability/internal/core/events/bus"
	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/observability/log"
	"github.com/zeusync/durability/internal/core/tuning"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now for bookkeeping. Sleeps still use real timers.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.clock = now
		}
	}
}

// WithBus publishes pass results and profiles on b.
func WithBus(b bus.EventBus) Option {
	return func(e *Engine) { e.bus = b }
}

func WithLogger(l log.Log) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithModelOptions configures the damage model used by passes.
func WithModelOptions(opts ...ModelOption) Option {
	return func(e *Engine) { e.modelOpts = append(e.modelOpts, opts...) }
}

// Engine schedules scan passes. At most one pass runs at any time.
type Engine struct {
	cfg       Config
	rates     *tuning.Rates
	scanner   *Scanner
	pacing    pacing
	bus       bus.EventBus
	logger    log.Log
	clock     func() time.Time
	modelOpts []ModelOption

	// mu guards the lifecycle fields and state. Holding it across wg.Add
	// keeps Stop's Wait from racing a late launch. Every run gets its own
	// stopCh and wg.
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	baseCtx context.Context
	state   scanState
	wg      *sync.WaitGroup

	inFlight atomic.Bool

	passes     atomic.Uint64
	failures   atomic.Uint64
	lastResult atomic.Pointer[PassResult]
	profile    atomic.Pointer[Profile]
}

// NewEngine builds a stopped engine over the given host registry.
func NewEngine(cfg Config, registry models.Registry, rates *tuning.Rates, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rates == nil {
		rates = tuning.DefaultRates()
	}

	e := &Engine{
		cfg:    cfg,
		rates:  rates,
		pacing: cfg.pacing(),
		logger: log.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(log.String("component", "durability"))

	e.scanner = NewScanner(registry, rates, NewModel(e.modelOpts...), cfg.Workers)
	e.scanner.now = e.clock

	return e, nil
}

// Rates is the live tuning surface. Changes apply from the next pass on.
func (e *Engine) Rates() *tuning.Rates { return e.rates }

func (e *Engine) Config() Config { return e.cfg }

// Start begins scheduling. Calling it on a running engine does nothing.
// ctx only supplies values to passes; its cancellation does not stop the
// engine. Only Stop does.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	e.running = true
	e.stopCh = make(chan struct{})
	e.baseCtx = context.WithoutCancel(ctx)
	e.wg = &sync.WaitGroup{}
	e.state = newScanState(e.clock())

	if e.cfg.Strategy == StrategyLoop {
		e.wg.Add(1)
		go e.loop(e.baseCtx, e.stopCh, e.wg)
	}

	e.logger.Info("Durability engine started",
		log.String("strategy", string(e.cfg.Strategy)),
		log.Duration("min_interval", e.cfg.MinInterval),
		log.Int("workers", e.cfg.Workers))
	return nil
}

// Stop halts scheduling at once. A pass already running finishes; Stop
// waits for it until ctx is done. Calling it on a stopped engine does nothing.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return nil
	}
	e.running = false
	close(e.stopCh)
	wg := e.wg
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Durability engine stopped", log.Uint64("passes", e.passes.Load()))
		return nil
	case <-ctx.Done():
		e.logger.Warn("Durability engine stop timed out waiting for pass", log.Error(ctx.Err()))
		return ctx.Err()
	}
}

// Running reports whether the engine is scheduling passes.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Tick advances time bookkeeping and, when a pass is due, launches one in
// the background. It never waits for the pass. Only the tick strategy
// reacts to it.
func (e *Engine) Tick() {
	if e.cfg.Strategy != StrategyTick {
		return
	}

	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	now := e.clock()
	e.state.advance(now)
	if !e.state.due(now, e.cfg.MinInterval) || !e.inFlight.CompareAndSwap(false, true) {
		e.mu.Unlock()
		return
	}
	dt := e.state.begin(now)
	ctx := e.baseCtx
	wg := e.wg
	wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer wg.Done()
		e.runPass(ctx, dt)
	}()
}

// ScanNow runs a pass synchronously regardless of cadence.
func (e *Engine) ScanNow(ctx context.Context) (PassResult, error) {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return PassResult{}, ErrEngineStopped
	}
	if !e.inFlight.CompareAndSwap(false, true) {
		e.mu.Unlock()
		return PassResult{}, ErrPassInFlight
	}
	now := e.clock()
	e.state.advance(now)
	dt := e.state.begin(now)
	wg := e.wg
	wg.Add(1)
	e.mu.Unlock()

	defer wg.Done()
	return e.runPass(ctx, dt), nil
}

// runPass must be called with inFlight already claimed.
func (e *Engine) runPass(ctx context.Context, dt time.Duration) PassResult {
	defer e.inFlight.Store(false)

	res := e.scanner.Scan(ctx, dt)
	e.passes.Add(1)

	if res.Status == PassFailed {
		e.failures.Add(1)
		e.mu.Lock()
		e.state.cooldownUntil = e.clock().Add(e.cfg.FailureBackoff)
		if res.Damaged == 0 {
			e.state.restore(dt)
		}
		e.mu.Unlock()
	}

	e.lastResult.Store(&res)
	e.publish(EventPass, res)
	return res
}

func (e *Engine) loop(ctx context.Context, stopCh <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	var (
		lastLoop    = e.clock()
		lastProfile = lastLoop
		avgInterval time.Duration
		avgTime     time.Duration
		iterations  uint64
	)

	for {
		loopStart := e.clock()

		e.mu.Lock()
		launch := false
		var dt time.Duration
		// A loop left over from a previous run must not launch for the next one.
		if e.running && e.stopCh == stopCh {
			e.state.advance(loopStart)
			if e.state.due(loopStart, e.cfg.MinInterval) && e.inFlight.CompareAndSwap(false, true) {
				dt = e.state.begin(loopStart)
				launch = true
			}
		}
		e.mu.Unlock()

		failed := false
		if launch {
			failed = e.runPass(ctx, dt).Status == PassFailed
		}

		now := e.clock()
		interval := now.Sub(lastLoop)
		lastLoop = now
		iterations++
		avgInterval = halfAverage(avgInterval, interval)
		avgTime = halfAverage(avgTime, now.Sub(loopStart))

		profile := Profile{At: now, Iterations: iterations, AvgLoopInterval: avgInterval, AvgLoopTime: avgTime}
		e.profile.Store(&profile)
		if now.Sub(lastProfile) > e.cfg.ProfileEvery {
			lastProfile = now
			e.publish(EventProfile, profile)
		}

		pause := e.pacing.next(interval)
		if failed {
			pause = e.cfg.FailureBackoff
		}
		if !sleep(stopCh, pause) {
			return
		}
	}
}

// sleep returns false when the engine is stopping.
func sleep(stopCh <-chan struct{}, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-stopCh:
		return false
	case <-t.C:
		return true
	}
}

func (e *Engine) publish(eventType string, data any) {
	if e.bus == nil {
		return
	}
	if err := e.bus.Publish(bus.NewEvent(eventType, EventSource, data, nil)); err != nil {
		e.logger.Warn("Diagnostics handler failed", log.String("event", eventType), log.Error(err))
	}
}

// Stats is a point-in-time view of the engine.
type Stats struct {
	Running    bool
	Strategy   Strategy
	InFlight   bool
	Passes     uint64
	Failures   uint64
	LastResult *PassResult
	Profile    *Profile
}

func (e *Engine) Stats() Stats {
	s := Stats{
		Running:    e.Running(),
		Strategy:   e.cfg.Strategy,
		InFlight:   e.inFlight.Load(),
		Passes:     e.passes.Load(),
		Failures:   e.failures.Load(),
		LastResult: e.lastResult.Load(),
		Profile:    e.profile.Load(),
	}
	return s
}
