package perr

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "gll.perr", mirroring gorgo's per-package
// tracer() helper (e.g. lr/earley.tracer, lr/glr.tracer).
func tracer() tracing.Trace {
	return tracing.Select("gll.perr")
}
