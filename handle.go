// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fx

import (
	"sync"

	"github.com/gogpu/fx/internal/parallel"
)

// Handle is an opaque reference to a registered effect, color filter,
// or bitmap. The high 32 bits carry the slot generation and the low 32
// bits the slot index, so a handle outlives neither its release nor a
// reuse of its slot: presenting it afterwards reports ErrStaleHandle.
//
// The zero Handle is never valid. Operations with nullable inputs
// treat it as "absent".
type Handle uint64

func makeHandle(generation uint32, index int) Handle {
	return Handle(uint64(generation)<<32 | uint64(uint32(index)))
}

func (h Handle) split() (generation uint32, index int) {
	return uint32(h >> 32), int(uint32(h))
}

// Kind identifies what a handle refers to.
type Kind uint8

const (
	KindEffect Kind = iota
	KindColorFilter
	KindBitmap
)

func (k Kind) String() string {
	switch k {
	case KindEffect:
		return "effect"
	case KindColorFilter:
		return "color filter"
	case KindBitmap:
		return "bitmap"
	}
	return "unknown"
}

// defaultSlotCapacity is the initial arena size; the arena grows past
// it on demand.
const defaultSlotCapacity = 64

// slot is one arena entry. Exactly one payload field is set while the
// slot is in use, selected by kind.
type slot struct {
	generation uint32
	kind       Kind
	inUse      bool
	nextFree   int32 // free-list link, -1 terminates

	node   *node
	filter *colorFilter
	bitmap *Bitmap
}

// Registry owns the handle arena and the factory operations. All
// methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	slots    []slot
	freeHead int32
	live     int

	poolMu      sync.Mutex
	pool        *parallel.WorkerPool
	poolClosed  bool
	parallelism int
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Registry{
		slots:       make([]slot, 0, o.slotCapacity),
		freeHead:    -1,
		parallelism: o.parallelism,
	}
	return r
}

// allocLocked takes a free slot (or grows the arena), stamps it with
// kind, and returns its handle plus the slot for payload assignment.
// Caller must hold r.mu for writing.
func (r *Registry) allocLocked(kind Kind) (Handle, *slot) {
	var index int
	if r.freeHead >= 0 {
		index = int(r.freeHead)
		r.freeHead = r.slots[index].nextFree
	} else {
		r.slots = append(r.slots, slot{generation: 1})
		index = len(r.slots) - 1
	}

	s := &r.slots[index]
	s.kind = kind
	s.inUse = true
	s.nextFree = -1
	r.live++

	return makeHandle(s.generation, index), s
}

// lookupLocked resolves a handle to its live slot, checking liveness,
// generation, and kind. Caller must hold r.mu (read or write).
func (r *Registry) lookupLocked(h Handle, want Kind) (*slot, error) {
	if h == 0 {
		return nil, ErrNilHandle
	}
	generation, index := h.split()
	if index >= len(r.slots) {
		return nil, ErrStaleHandle
	}
	s := &r.slots[index]
	if !s.inUse || s.generation != generation {
		return nil, ErrStaleHandle
	}
	if s.kind != want {
		return nil, &KindError{Handle: h, Want: want, Got: s.kind}
	}
	return s, nil
}

// freeSlotLocked clears a slot's payload, advances its generation so
// outstanding handles go stale, and returns it to the free list.
// Caller must hold r.mu for writing.
func (r *Registry) freeSlotLocked(index int) {
	s := &r.slots[index]
	s.generation++
	if s.generation == 0 {
		// Generation 0 with slot 0 would collide with the nil handle.
		s.generation = 1
	}
	s.inUse = false
	s.node = nil
	s.filter = nil
	s.bitmap = nil
	s.nextFree = r.freeHead
	r.freeHead = int32(index)
	r.live--
}

// Release invalidates a handle of any kind and drops the owning
// reference it carries. For effects the node's reference count
// decrements exactly once; node state shared with composed parents
// stays intact. Releasing a handle twice reports ErrStaleHandle.
func (r *Registry) Release(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h == 0 {
		return ErrNilHandle
	}
	generation, index := h.split()
	if index >= len(r.slots) {
		return ErrStaleHandle
	}
	s := &r.slots[index]
	if !s.inUse || s.generation != generation {
		Logger().Warn("fx: release of stale handle", "handle", uint64(h))
		return ErrStaleHandle
	}

	if s.kind == KindEffect {
		releaseNode(s.node)
	}
	r.freeSlotLocked(index)

	Logger().Debug("fx: released handle", "handle", uint64(h), "kind", s.kind.String())
	return nil
}

// releaseNode drops one reference from n, cascading to its inputs
// when the count reaches zero. Caller must hold r.mu for writing.
func releaseNode(n *node) {
	if n == nil {
		return
	}
	n.refs--
	if n.refs > 0 {
		return
	}
	releaseNode(n.input)
	releaseNode(n.input2)
}

// Count returns the number of live handles of all kinds.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.live
}

// Kind reports what a live handle refers to.
func (r *Registry) Kind(h Handle) (Kind, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h == 0 {
		return 0, ErrNilHandle
	}
	generation, index := h.split()
	if index >= len(r.slots) {
		return 0, ErrStaleHandle
	}
	s := &r.slots[index]
	if !s.inUse || s.generation != generation {
		return 0, ErrStaleHandle
	}
	return s.kind, nil
}

// refs returns an effect node's reference count, for tests.
func (r *Registry) refs(h Handle) (int32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, err := r.lookupLocked(h, KindEffect)
	if err != nil {
		return 0, err
	}
	return s.node.refs, nil
}

// Finalizer returns the registry's deallocation hook as a first-class
// function, suitable for registration with a collector. The returned
// function is Release with the error dropped; stale handles are
// ignored so a finalizer racing a manual Release stays harmless.
func (r *Registry) Finalizer() func(Handle) {
	return func(h Handle) {
		_ = r.Release(h)
	}
}

// workerPool returns the lazily created evaluation pool, or nil when
// parallelism is disabled or the registry was closed.
func (r *Registry) workerPool() *parallel.WorkerPool {
	if r.parallelism < 0 {
		return nil
	}

	r.poolMu.Lock()
	defer r.poolMu.Unlock()
	if r.poolClosed {
		return nil
	}
	if r.pool == nil {
		r.pool = parallel.NewWorkerPool(r.parallelism)
		Logger().Debug("fx: started evaluation pool", "workers", r.pool.Workers())
	}
	return r.pool
}

// Close shuts down the evaluation worker pool. The registry itself
// remains usable; subsequent evaluations run on the calling
// goroutine. Close is safe to call multiple times.
func (r *Registry) Close() {
	r.poolMu.Lock()
	defer r.poolMu.Unlock()

	r.poolClosed = true
	if r.pool != nil {
		r.pool.Close()
		r.pool = nil
	}
}
