package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/durability/internal/core/models"
)

var _ models.Registry = (*World)(nil)

const defaultShardCount = 16

type shard struct {
	mu         sync.RWMutex
	structures map[string]*Structure
}

// World is a sharded in-memory structure registry.
type World struct {
	shards []*shard
	count  atomic.Int64
}

func New(shardCount int) *World {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	w := &World{shards: make([]*shard, shardCount)}
	for i := range w.shards {
		w.shards[i] = &shard{structures: make(map[string]*Structure)}
	}
	return w
}

func (w *World) shardFor(id string) *shard {
	return w.shards[xxhash.Sum64String(id)%uint64(len(w.shards))]
}

// Add registers s. Adding the same structure twice is a no-op.
func (w *World) Add(s *Structure) {
	sh := w.shardFor(s.ID())
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if _, ok := sh.structures[s.ID()]; ok {
		return
	}
	sh.structures[s.ID()] = s
	w.count.Add(1)
}

// Remove disposes the structure and drops it from the registry.
func (w *World) Remove(id string) bool {
	sh := w.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	s, ok := sh.structures[id]
	if !ok {
		return false
	}
	s.Dispose()
	delete(sh.structures, id)
	w.count.Add(-1)
	return true
}

func (w *World) Get(id string) (*Structure, bool) {
	sh := w.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	s, ok := sh.structures[id]
	return s, ok
}

func (w *World) Len() int {
	return int(w.count.Load())
}

// LiveStructures returns every non-disposed structure ordered by ID.
func (w *World) LiveStructures(ctx context.Context) ([]models.Structure, error) {
	live := make([]*Structure, 0, w.Len())
	for _, sh := range w.shards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sh.mu.RLock()
		for _, s := range sh.structures {
			if !s.Disposed() {
				live = append(live, s)
			}
		}
		sh.mu.RUnlock()
	}

	sort.Slice(live, func(i, j int) bool { return live[i].ID() < live[j].ID() })

	out := make([]models.Structure, len(live))
	for i, s := range live {
		out[i] = s
	}
	return out, nil
}
