package engine

import (
	"errors"

	"github.com/charmbracelet/log"
)

// Pool misuse errors. Release reports these instead of silently corrupting
// the free list.
var (
	// ErrDoubleRelease means the instance is already in the free list.
	ErrDoubleRelease = errors.New("engine: instance released twice")

	// ErrForeignInstance means the instance was never issued by this pool.
	ErrForeignInstance = errors.New("engine: instance not issued by this pool")
)

// PoolConfig describes a typed pool of reusable instances.
type PoolConfig[T any] struct {
	// New constructs a fresh instance. Nil defaults to new(T).
	New func() *T

	// Reset reinitializes an instance before it is handed out, for both
	// reused and newly constructed instances. May be nil.
	Reset func(obj *T, args ...any)

	// Preallocate instances are constructed eagerly at registration.
	Preallocate int

	// MaxSize is the soft ceiling on total constructed instances. Get past
	// the ceiling still succeeds (overflow is counted and logged) so a burst
	// of effects degrades memory bounds rather than gameplay.
	MaxSize int
}

// PoolStats are running counters for one pool.
type PoolStats struct {
	Hits       uint64 // Gets served from the free list
	Misses     uint64 // Gets that constructed a new instance
	Overflows  uint64 // Constructions past MaxSize
	Created    int    // Total instances ever constructed
	Available  int    // Idle instances owned by the pool
	CheckedOut int    // Instances currently owned by callers
}

// Pool hands out reusable *T instances. An instance is either available
// (pool-owned) or checked out (caller-owned), never both; Release enforces
// this and rejects double releases.
type Pool[T any] struct {
	name       string
	newFn      func() *T
	resetFn    func(*T, ...any)
	available  []*T
	checkedOut map[*T]struct{}
	maxSize    int
	created    int
	hits       uint64
	misses     uint64
	overflows  uint64
	logger     *log.Logger
}

// NewPool creates a standalone pool. Most callers register pools through a
// Registry instead, so related subsystems can share them by name.
func NewPool[T any](name string, cfg PoolConfig[T]) *Pool[T] {
	p := &Pool[T]{
		name:       name,
		newFn:      cfg.New,
		resetFn:    cfg.Reset,
		checkedOut: make(map[*T]struct{}),
		maxSize:    cfg.MaxSize,
	}
	if p.newFn == nil {
		p.newFn = func() *T { return new(T) }
	}
	for i := 0; i < cfg.Preallocate; i++ {
		p.available = append(p.available, p.newFn())
		p.created++
	}
	return p
}

// Get returns an instance, reusing an idle one when possible. Reset runs with
// the given args before the instance is handed out.
func (p *Pool[T]) Get(args ...any) *T {
	var obj *T
	if n := len(p.available); n > 0 {
		obj = p.available[n-1]
		p.available = p.available[:n-1]
		p.hits++
	} else {
		if p.maxSize > 0 && p.created >= p.maxSize {
			p.overflows++
			if p.logger != nil {
				p.logger.Debug("pool overflow", "pool", p.name, "max_size", p.maxSize, "created", p.created+1)
			}
		}
		obj = p.newFn()
		p.created++
		p.misses++
	}
	if p.resetFn != nil {
		p.resetFn(obj, args...)
	}
	p.checkedOut[obj] = struct{}{}
	return obj
}

// Release returns an instance to the free list. Releasing an instance twice,
// or one the pool never issued, is rejected.
func (p *Pool[T]) Release(obj *T) error {
	if obj == nil {
		return ErrForeignInstance
	}
	if _, ok := p.checkedOut[obj]; !ok {
		for _, idle := range p.available {
			if idle == obj {
				return ErrDoubleRelease
			}
		}
		return ErrForeignInstance
	}
	delete(p.checkedOut, obj)
	p.available = append(p.available, obj)
	return nil
}

// Clear drops all idle instances and forgets they were ever constructed.
// Checked-out instances are unaffected and still return to the free list on
// Release.
func (p *Pool[T]) Clear() {
	p.created -= len(p.available)
	p.available = p.available[:0]
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() PoolStats {
	return PoolStats{
		Hits:       p.hits,
		Misses:     p.misses,
		Overflows:  p.overflows,
		Created:    p.created,
		Available:  len(p.available),
		CheckedOut: len(p.checkedOut),
	}
}

// poolHandle is the untyped view the registry keeps of each pool.
type poolHandle interface {
	Stats() PoolStats
	Clear()
}

// Registry manages named pools. It is not safe for concurrent use; like the
// rest of the engine it belongs to the single control-flow thread.
type Registry struct {
	pools  map[string]poolHandle
	logger *log.Logger
}

// NewRegistry creates an empty pool registry.
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		pools:  make(map[string]poolHandle),
		logger: logger,
	}
}

// RegisterPool registers a typed pool under a name, preallocating instances.
// Re-registering an existing name replaces its configuration and drops the
// old pool (last write wins).
func RegisterPool[T any](r *Registry, name string, cfg PoolConfig[T]) *Pool[T] {
	if _, exists := r.pools[name]; exists && r.logger != nil {
		r.logger.Debug("pool re-registered", "pool", name)
	}
	p := NewPool(name, cfg)
	p.logger = r.logger
	r.pools[name] = p
	return p
}

// AcquirePool returns the typed pool registered under name. An unregistered
// name auto-registers a trivial new(T) pool so hot paths never hard-fail on a
// missing configuration; the event is logged because it usually indicates a
// setup bug.
func AcquirePool[T any](r *Registry, name string) *Pool[T] {
	if h, ok := r.pools[name]; ok {
		if p, ok := h.(*Pool[T]); ok {
			return p
		}
		if r.logger != nil {
			r.logger.Warn("pool type mismatch, re-registering", "pool", name)
		}
	} else if r.logger != nil {
		r.logger.Warn("unregistered pool auto-registered", "pool", name)
	}
	return RegisterPool(r, name, PoolConfig[T]{})
}

// Acquire gets an instance from the named pool, auto-registering it if
// needed.
func Acquire[T any](r *Registry, name string, args ...any) *T {
	return AcquirePool[T](r, name).Get(args...)
}

// ReleaseTo returns an instance to the named pool.
func ReleaseTo[T any](r *Registry, name string, obj *T) error {
	return AcquirePool[T](r, name).Release(obj)
}

// Clear empties the free list of one pool. Unknown names are ignored.
func (r *Registry) Clear(name string) {
	if h, ok := r.pools[name]; ok {
		h.Clear()
	}
}

// ClearAll empties the free lists of every pool. Checked-out instances are
// unaffected.
func (r *Registry) ClearAll() {
	for _, h := range r.pools {
		h.Clear()
	}
}

// Stats returns the counters for one pool.
func (r *Registry) Stats(name string) (PoolStats, bool) {
	h, ok := r.pools[name]
	if !ok {
		return PoolStats{}, false
	}
	return h.Stats(), true
}

// AllStats returns counters for every registered pool keyed by name.
func (r *Registry) AllStats() map[string]PoolStats {
	out := make(map[string]PoolStats, len(r.pools))
	for name, h := range r.pools {
		out[name] = h.Stats()
	}
	return out
}
