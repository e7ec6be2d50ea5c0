package grammar

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "gll.grammar", mirroring gorgo's per-package
// tracer() helper (e.g. lr/earley.tracer, lr/glr.tracer).
func tracer() tracing.Trace {
	return tracing.Select("gll.grammar")
}
