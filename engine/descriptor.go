package engine

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/npillmayer/gll/gss"
	"github.com/npillmayer/gll/grammar"
	"github.com/npillmayer/gll/sppf"
)

// descriptor is a scheduling record (grammar slot, GSS node, input
// position, current SPPF node). Prod+Dot together are the "grammar
// slot": which production and how many of its atoms have already been
// matched. SPPFNode is nil exactly when Dot is 0 (nothing matched yet in
// this production).
type descriptor struct {
	Prod     *grammar.Production
	Dot      int
	Node     *gss.Node
	Pos      int
	SPPFNode sppf.Node
}

// leftStart returns the left extent of the partial match this descriptor
// carries: the accumulated SPPF node's own left extent, or the current
// position if nothing has been matched yet.
func (d descriptor) leftStart() int {
	if d.SPPFNode != nil {
		return d.SPPFNode.Left()
	}
	return d.Pos
}

// key returns a dedup key for d, built with cnf/structhash over a flat
// struct of plain identifiers — the same library and pattern
// lr/earley/earley.go's hash helper uses for its backlink table, applied
// to pointer identities (rendered as addresses via fmt's %p, which
// structhash can hash without having to traverse into the pointed-to
// struct's unexported fields).
func (d descriptor) key() string {
	k := struct {
		ProdID int
		Dot    int
		Node   string
		Pos    int
		SPPF   string
	}{
		ProdID: prodID(d.Prod),
		Dot:    d.Dot,
		Node:   fmt.Sprintf("%p", d.Node),
		Pos:    d.Pos,
		SPPF:   fmt.Sprintf("%p", d.SPPFNode),
	}
	h, err := structhash.Hash(k, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func prodID(p *grammar.Production) int {
	if p == nil {
		return -1
	}
	return p.ID
}
