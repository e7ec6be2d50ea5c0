package gll

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key "gll", mirroring gorgo's per-package tracer()
// helper.
func tracer() tracing.Trace {
	return tracing.Select("gll")
}
