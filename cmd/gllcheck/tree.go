package main

import (
	"github.com/npillmayer/gll/extract"
)

// node is a minimal parse-tree value for pterm.DefaultTree to render: a
// rule or terminal name plus its already-hydrated children, in document
// order. It plays the same role gorgo's Listener-supplied AST values
// play for gorgo.Parser, just narrowed to what --tree needs to print.
type node struct {
	label    string
	children []*node
}

// treeListener hydrates a disambiguated parse into node values, dropping
// capture bookkeeping entirely since gllcheck only renders shape, not
// application semantics.
type treeListener struct{}

func (treeListener) Rule(name string, span extract.Span, captures []extract.Capture, children []interface{}) interface{} {
	n := &node{label: name}
	for _, c := range children {
		if cn, ok := c.(*node); ok {
			n.children = append(n.children, cn)
		}
	}
	return n
}

func (treeListener) Terminal(text string, span extract.Span) interface{} {
	return &node{label: quoteTerminal(text)}
}

func quoteTerminal(text string) string {
	if text == "" {
		return "ε"
	}
	return "\"" + text + "\""
}
