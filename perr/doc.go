/*
Package perr implements the error reporter. It tracks the farthest input
offset any descriptor reached before failing to advance and the set of
atom descriptions expected there, and formats that into a single
human-readable ParseError with 1-indexed line/column context and a caret
under the offending position.

engine.Outcome already accumulates FarthestPos and Expected during the
parse; this package turns those two plain values into the final message,
keeping the engine package free of any text-formatting concerns (mirroring
how gorgo keeps lr/scanner's error *positions* separate from the message
formatting its callers choose to do with them).
*/
package perr
