package fx

// Option configures a Registry during creation.
//
// Example:
//
//	// Defaults: small arena, parallel evaluation on GOMAXPROCS workers
//	reg := fx.New()
//
//	// Preallocated arena, serial evaluation
//	reg := fx.New(fx.WithSlotCapacity(1024), fx.WithParallelism(-1))
type Option func(*registryOptions)

// registryOptions holds optional configuration for Registry creation.
type registryOptions struct {
	slotCapacity int
	parallelism  int
}

// defaultOptions returns the default registry options.
func defaultOptions() registryOptions {
	return registryOptions{
		slotCapacity: defaultSlotCapacity,
		parallelism:  0, // GOMAXPROCS
	}
}

// WithSlotCapacity preallocates the handle arena for n slots. The
// arena still grows on demand past n; this only avoids reallocation
// for workloads with a known number of live handles.
func WithSlotCapacity(n int) Option {
	return func(o *registryOptions) {
		if n > 0 {
			o.slotCapacity = n
		}
	}
}

// WithParallelism sets the number of worker goroutines used for
// row-band evaluation. Zero selects GOMAXPROCS; negative values
// disable the worker pool so evaluation runs on the calling
// goroutine.
func WithParallelism(n int) Option {
	return func(o *registryOptions) {
		o.parallelism = n
	}
}
