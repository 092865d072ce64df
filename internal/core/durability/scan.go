package durability

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/durability/internal/core/models"
	"github.com/zeusync/durability/internal/core/systems/physics"
	"github.com/zeusync/durability/internal/core/tuning"
	"github.com/zeusync/durability/pkg/concurrent"
	"github.com/zeusync/durability/pkg/generic"
)

// Scanner runs full passes over every live structure of a registry.
type Scanner struct {
	registry models.Registry
	rates    *tuning.Rates
	model    *Model
	workers  int
	now      func() time.Time
}

func NewScanner(registry models.Registry, rates *tuning.Rates, model *Model, workers int) *Scanner {
	if model == nil {
		model = NewModel()
	}
	return &Scanner{
		registry: registry,
		rates:    rates,
		model:    model,
		workers:  workers,
		now:      time.Now,
	}
}

type structureOutcome struct {
	disposed   bool
	components int
	damaged    int
	inert      int
}

type integrityUpdate struct {
	component models.Component
	next      float64
}

var updateBuffers = generic.NewPool(
	func() *[]integrityUpdate {
		buf := make([]integrityUpdate, 0, 64)
		return &buf
	},
	func(buf *[]integrityUpdate) *[]integrityUpdate {
		clear(*buf)
		*buf = (*buf)[:0]
		return buf
	},
)

// Scan applies dt worth of damage to every component of every live structure.
// It never panics; every failure is reported through the returned PassResult.
func (s *Scanner) Scan(ctx context.Context, dt time.Duration) (res PassResult) {
	res = PassResult{
		ID:           uuid.New(),
		Started:      s.now(),
		Elapsed:      dt,
		RatesVersion: s.rates.Version(),
	}
	defer func() {
		if r := recover(); r != nil {
			res.Status = PassFailed
			res.Err = fmt.Errorf("%w: %v", ErrPassPanicked, r)
		}
		res.Duration = s.now().Sub(res.Started)
	}()

	values := s.rates.Snapshot()

	structures, err := s.registry.LiveStructures(ctx)
	if err != nil {
		res.Status = PassFailed
		res.Err = fmt.Errorf("%w: %w", ErrListStructures, err)
		return res
	}

	var (
		mu     sync.Mutex
		faults error
	)
	process := concurrent.Safe(func(_ context.Context, st models.Structure) error {
		out := s.processStructure(st, dt, values)
		mu.Lock()
		defer mu.Unlock()
		if out.disposed {
			res.Disposed++
			return nil
		}
		res.Structures++
		res.Components += out.components
		res.Damaged += out.damaged
		res.Inert += out.inert
		return nil
	})

	err = concurrent.ForEach(ctx, structures, s.workers, func(ctx context.Context, st models.Structure) error {
		if perr := process(ctx, st); perr != nil {
			mu.Lock()
			res.Faults++
			faults = errors.Join(faults, fmt.Errorf("%w: %s: %w", ErrStructureFault, structureID(st), perr))
			mu.Unlock()
		}
		// Faults stay local to their structure.
		return nil
	})

	switch {
	case err != nil:
		res.Status = PassFailed
		res.Err = errors.Join(err, faults)
	case faults != nil:
		res.Status = PassPartial
		res.Err = faults
	default:
		res.Status = PassSucceeded
	}
	return res
}

// processStructure computes every new integrity first and writes them only if
// the structure is still alive, so a structure disposed mid-way is left as is.
func (s *Scanner) processStructure(st models.Structure, dt time.Duration, v tuning.Values) structureOutcome {
	if st == nil || st.Disposed() {
		return structureOutcome{disposed: true}
	}

	components := st.Components()
	emitters := CollectEmitters(components)
	blockSize := physics.BlockSize(st.SizeClass())

	buf := updateBuffers.Get()
	updates := *buf
	defer func() {
		*buf = updates
		updateBuffers.Put(buf)
	}()

	out := structureOutcome{}
	for _, c := range components {
		if c == nil {
			continue
		}
		out.components++
		next, ok := s.model.Apply(c, emitters, blockSize, dt, v)
		if !ok {
			out.inert++
			continue
		}
		updates = append(updates, integrityUpdate{component: c, next: next})
	}

	if st.Disposed() {
		return structureOutcome{disposed: true}
	}

	for _, u := range updates {
		u.component.SetIntegrity(u.next)
	}
	out.damaged = len(updates)
	return out
}

func structureID(st models.Structure) (id string) {
	defer func() {
		if recover() != nil {
			id = "<unknown>"
		}
	}()
	if st == nil {
		return "<nil>"
	}
	return st.ID()
}
