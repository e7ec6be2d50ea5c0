// Command gllcheck compiles one of a small set of built-in demonstration
// grammars and parses a single --input string against it, printing either
// a colored parse-tree rendering or a colored ParseError. It exists to
// exercise package gll's public surface end to end from a real binary,
// not as a grammar-file loader or a REPL.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/npillmayer/gll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var flags = struct {
	grammar string
	input   string
	tree    bool
	promote bool
}{}

var rootCmd = &cobra.Command{
	Use:           "gllcheck",
	Short:         "Parse one input string against a built-in GLL grammar",
	Long:          "gllcheck compiles a built-in grammar and runs it against --input, reporting success, ambiguity, failure or cancellation.",
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCheck,
}

func init() {
	names := grammarNames()
	rootCmd.Flags().StringVarP(&flags.grammar, "grammar", "g", "arith", fmt.Sprintf("built-in grammar to parse with: one of %s", strings.Join(names, ", ")))
	rootCmd.Flags().StringVarP(&flags.input, "input", "i", "", "input string to parse (required)")
	rootCmd.Flags().BoolVarP(&flags.tree, "tree", "t", false, "render the parse tree on success")
	rootCmd.Flags().BoolVar(&flags.promote, "promote-ambiguity", false, "treat an ambiguous parse as an error")
}

func grammarNames() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func runCheck(cmd *cobra.Command, args []string) error {
	if flags.input == "" {
		return fmt.Errorf("--input is required")
	}
	build, ok := grammars[flags.grammar]
	if !ok {
		return fmt.Errorf("unknown grammar %q, want one of %s", flags.grammar, strings.Join(grammarNames(), ", "))
	}
	cg, start := build()

	var opts []gll.ParseOption
	if flags.promote {
		opts = append(opts, gll.WithPromoteAmbiguity())
	}
	res, err := cg.Parse(context.Background(), flags.input, treeListener{}, opts...)
	if err != nil {
		var ambErr *gll.AmbiguityError
		if errors.As(err, &ambErr) {
			pterm.Error.Printfln("ambiguous parse of %s, promoted to error:", start)
			pterm.Error.Println(ambErr.Error())
			return err
		}
		pterm.Error.Println(err.Error())
		return err
	}

	switch res.Kind {
	case gll.ResultSuccess:
		pterm.Success.Printfln("parsed %q as %s", flags.input, start)
		if flags.tree {
			renderTree(res.Tree)
		}
	case gll.ResultAmbiguous:
		pterm.Warning.Printfln("parsed %q as %s, but %d ambiguity tie-break(s) were resolved:", flags.input, start, len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			pterm.Warning.Printfln("  %s at (%d,%d): %d candidates, resolved by %s", d.RuleName, d.Left, d.Right, d.Candidates, d.Reason)
		}
		if flags.tree {
			renderTree(res.Tree)
		}
	case gll.ResultFailure:
		pterm.Error.Printfln("failed to parse %q:", flags.input)
		pterm.Error.Println(res.Err.Error())
		return res.Err
	case gll.ResultCancelled:
		pterm.Warning.Println("parse cancelled before reaching a result")
		return fmt.Errorf("parse of %q cancelled", flags.input)
	}
	return nil
}

func renderTree(tree interface{}) {
	n, ok := tree.(*node)
	if !ok {
		return
	}
	root := toPtermTree(n)
	pterm.DefaultTree.WithRoot(root).Render()
}

func toPtermTree(n *node) pterm.TreeNode {
	t := pterm.TreeNode{Text: n.label}
	for _, c := range n.children {
		t.Children = append(t.Children, toPtermTree(c))
	}
	return t
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
