package engine

// Options configures one Parse call, mirroring the functional-options style
// of gorgo's lr/earley.Option (earley.StoreTokens, earley.GenerateTree).
type Options struct {
	// MaxSteps bounds the number of descriptors popped from the work-list
	// before Parse gives up with a StepLimitExceeded outcome. Zero (the
	// default) means unbounded — the O(n³) termination guarantee already
	// bounds this, so MaxSteps is a belt-and-suspenders safety net against
	// a pathological or buggy compiled grammar, not a substitute for it.
	// Supplemented from turtles/gll/frontend.py's explicit depth guard.
	MaxSteps int
}

// Option mutates an Options value.
type Option func(*Options)

// WithMaxSteps sets the descriptor-pop safety bound.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.MaxSteps = n }
}

func buildOptions(opts []Option) Options {
	var o Options
	for _, f := range opts {
		f(&o)
	}
	return o
}
