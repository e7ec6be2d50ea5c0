package gss

import (
	"testing"

	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/sppf"
)

func testSlot(name string, dot int) Slot {
	return Slot{Prod: &grammar.Production{LHS: &grammar.Symbol{Name: name}}, Dot: dot}
}

func TestGetOrCreateDeduplicates(t *testing.T) {
	g := NewGraph()
	slot := testSlot("E", 1)
	n1, created1 := g.GetOrCreate(slot, 3)
	n2, created2 := g.GetOrCreate(slot, 3)
	if !created1 || created2 {
		t.Fatalf("expected second GetOrCreate to find the existing node")
	}
	if n1 != n2 {
		t.Fatalf("expected identical node for identical (slot, pos)")
	}
}

func TestGetOrCreateDistinctPosition(t *testing.T) {
	g := NewGraph()
	slot := testSlot("E", 1)
	n1, _ := g.GetOrCreate(slot, 3)
	n2, _ := g.GetOrCreate(slot, 4)
	if n1 == n2 {
		t.Fatalf("expected distinct nodes for distinct positions")
	}
}

func TestAddEdgeDeduplicates(t *testing.T) {
	g := NewGraph()
	child, _ := g.GetOrCreate(testSlot("E", 1), 3)
	parent, _ := g.GetOrCreate(Slot{}, 0)
	label := sppf.NewForest().Terminal("x", 0, 3)
	_, new1 := child.AddEdge(parent, label)
	_, new2 := child.AddEdge(parent, label)
	if !new1 {
		t.Fatalf("expected first AddEdge to be new")
	}
	if new2 {
		t.Fatalf("expected duplicate AddEdge to be rejected")
	}
	if len(child.Edges()) != 1 {
		t.Fatalf("expected exactly one edge, got %d", len(child.Edges()))
	}
}

func TestRecordPopIsSingleValued(t *testing.T) {
	g := NewGraph()
	n, _ := g.GetOrCreate(testSlot("E", 1), 3)
	forest := sppf.NewForest()
	label := forest.Terminal("x", 3, 5)
	if !n.RecordPop(5, label) {
		t.Fatalf("expected first RecordPop at a position to succeed")
	}
	if n.RecordPop(5, label) {
		t.Fatalf("expected second RecordPop at the same position to report no-op")
	}
	got, ok := n.PoppedAt(5)
	if !ok || got != label {
		t.Fatalf("expected PoppedAt to return the recorded label")
	}
}

func TestEachPopReplaysInsertionOrder(t *testing.T) {
	g := NewGraph()
	n, _ := g.GetOrCreate(testSlot("E", 1), 3)
	forest := sppf.NewForest()
	l1 := forest.Terminal("a", 3, 4)
	l2 := forest.Terminal("b", 3, 6)
	n.RecordPop(6, l2)
	n.RecordPop(4, l1)
	var order []int
	n.EachPop(func(pos int, _ sppf.Node) {
		order = append(order, pos)
	})
	if len(order) != 2 || order[0] != 6 || order[1] != 4 {
		t.Fatalf("expected insertion-order replay [6,4], got %v", order)
	}
}

func TestRootSlotIsRoot(t *testing.T) {
	if !(Slot{}).IsRoot() {
		t.Fatalf("expected zero Slot to be the root sentinel")
	}
	if testSlot("E", 0).IsRoot() {
		t.Fatalf("expected a real production slot not to be the root sentinel")
	}
}
