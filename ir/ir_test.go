package ir

import "testing"

func TestOptionalDesugarsToRepeat(t *testing.T) {
	opt := NewOptional(NewLiteral("x")).Captured("maybeX")
	rep := opt.AsRepeat()
	if rep.AtLeast != 0 || rep.AtMost != 1 {
		t.Fatalf("expected Repeat(0,1), got Repeat(%d,%d)", rep.AtLeast, rep.AtMost)
	}
	if rep.Capture() != "maybeX" {
		t.Fatalf("expected capture name to survive desugaring, got %q", rep.Capture())
	}
}

func TestWalkVisitsInDocumentOrder(t *testing.T) {
	seq := NewSequence(NewLiteral("a").Captured("first"), NewLiteral("b").Captured("second"))
	var order []string
	Walk(seq, func(n Node) {
		if n.Capture() != "" {
			order = append(order, n.Capture())
		}
	})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected [first second], got %v", order)
	}
}

func TestRepeatChildrenIncludesSeparator(t *testing.T) {
	r := NewRepeat(NewLiteral("x"), 1, Unbounded, NewLiteral(","))
	if len(r.Children()) != 2 {
		t.Fatalf("expected body+separator as children, got %d", len(r.Children()))
	}
}
