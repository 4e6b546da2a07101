package fx

import (
	"runtime"
	"sync/atomic"
)

// Effect ties a handle's lifetime to a garbage-collected object. When
// an Effect becomes unreachable without Close having been called, the
// runtime releases its handle. Deterministic callers use Close; the
// cleanup is the safety net for the rest.
type Effect struct {
	registry *Registry
	handle   Handle
	closed   atomic.Bool
}

// cleanupArgs carries what the cleanup needs. It must not reference
// the Effect itself, or the object could never become unreachable.
type cleanupArgs struct {
	registry *Registry
	handle   Handle
}

// Wrap attaches the registry's release hook to h via
// runtime.SetFinalizer and returns the managing Effect. Wrapping a
// stale handle is harmless: the eventual release is ignored.
func (r *Registry) Wrap(h Handle) *Effect {
	e := &Effect{registry: r, handle: h}
	args := cleanupArgs{registry: r, handle: h}
	runtime.SetFinalizer(e, func(*Effect) {
		_ = args.registry.Release(args.handle)
	})
	return e
}

// Handle returns the wrapped handle. It goes stale once the Effect is
// closed or collected.
func (e *Effect) Handle() Handle {
	return e.handle
}

// Apply evaluates the wrapped effect against src.
func (e *Effect) Apply(src *Pixmap) (*Pixmap, error) {
	return e.registry.Apply(e.handle, src)
}

// Close releases the wrapped handle and disarms the runtime cleanup.
// Calling Close more than once is a no-op returning nil.
func (e *Effect) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	runtime.SetFinalizer(e, nil)
	err := e.registry.Release(e.handle)
	// Keep e reachable until the release lands, so the object cannot
	// be collected and its cleanup queued mid-Close.
	runtime.KeepAlive(e)
	return err
}
