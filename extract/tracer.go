package extract

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "gll.extract", mirroring gorgo's per-package
// tracer() helper (e.g. lr/earley.tracer, lr/glr.tracer).
func tracer() tracing.Trace {
	return tracing.Select("gll.extract")
}
