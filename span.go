package gll

import "fmt"

// Span is an input extent, in byte offsets: [From, To). Parse itself hands
// spans to listeners as extract.Span, not as this type. Adapted from gorgo's
// token-indexed Span (gorgo.go), narrowed from uint64 token positions to
// int byte offsets since this core has no separate token stream — scanning
// runs directly against the input string.
type Span struct {
	From int
	To   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.To - s.From
}

// IsNull reports whether s is the zero span (0,0). An empty span at any
// other offset is not null; use Len for that.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend grows s to also cover other, returning the smallest span
// containing both.
func (s Span) Extend(other Span) Span {
	if other.From < s.From {
		s.From = other.From
	}
	if other.To > s.To {
		s.To = other.To
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s.From, s.To)
}
