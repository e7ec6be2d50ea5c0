package disambig

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "gll.disambig", mirroring gorgo's per-package
// tracer() helper (e.g. lr/earley.tracer, lr/glr.tracer).
func tracer() tracing.Trace {
	return tracing.Select("gll.disambig")
}
