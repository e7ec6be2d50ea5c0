/*
Package charclass compiles character-range specifications into fast
matchers, corresponding to component C of the grammar engine: the
character class engine.

Surface syntax accepted: single characters, inclusive ranges "a-z",
implicit concatenation, a leading "^" for negation, and the backslash
escapes \\ \n \t \r \- \]. No regex-style shorthands such as \d are
supported.

Ranges are code-point intervals, not byte ranges: a class matches one
rune at a time, so multi-byte UTF-8 input is handled correctly.
*/
package charclass
