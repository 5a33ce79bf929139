// Command hammer is a thin demonstration binary: it compiles one fixed
// arithmetic-expression grammar under a chosen backend and parses an input
// file (or stdin), printing the resulting parse tree or the failure.
//
// It deliberately does not read a grammar description from the command
// line — this module's combinator-construction surface is a Go API, not a
// textual grammar language, so there is nothing for a CLI to parse into a
// grammar. What it does give every finished library in the corpus: the
// ambient "demo/smoke-test binary" surface, wired with pflag the way
// dekarrin-tunaq wires its own command-line tools.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/TJamesCorcoran/hammer/backend"
	"github.com/TJamesCorcoran/hammer/grammar"
	"github.com/TJamesCorcoran/hammer/tree"

	_ "github.com/TJamesCorcoran/hammer/glr"
	_ "github.com/TJamesCorcoran/hammer/lalr"
	_ "github.com/TJamesCorcoran/hammer/llk"
	_ "github.com/TJamesCorcoran/hammer/packrat"
)

// arithmeticGrammar builds E -> E '+' T | T ; T -> T '*' F | F ;
// F -> '(' E ')' | digit, the same arithmetic grammar package lalr's tests
// build.
func arithmeticGrammar() *grammar.Grammar {
	g := grammar.New()
	digit := g.Chars(grammar.CharRange('0', '9'))

	e := g.Indirect("E")
	t := g.Indirect("T")
	f := g.Indirect("F")

	eRec := g.Sequence(e, g.Token("+"), t)
	e.Bind(g.Choice(eRec, t))

	tRec := g.Sequence(t, g.Token("*"), f)
	t.Bind(g.Choice(tRec, f))

	paren := g.Sequence(g.Token("("), e, g.Token(")"))
	f.Bind(g.Choice(paren, digit))

	g.Start = e
	return g
}

func backendByName(name string) (backend.ID, error) {
	switch name {
	case "packrat":
		return backend.PACKRAT, nil
	case "llk":
		return backend.LLK, nil
	case "lalr":
		return backend.LALR, nil
	case "glr":
		return backend.GLR, nil
	}
	return 0, fmt.Errorf("unknown backend %q (want packrat, llk, lalr, or glr)", name)
}

func main() {
	backendName := pflag.StringP("backend", "b", "packrat", "backend to compile and parse with: packrat, llk, lalr, glr")
	k := pflag.IntP("k", "k", 1, "lookahead depth, LL(k) backend only")
	pflag.Parse()

	id, err := backendByName(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hammer:", err)
		os.Exit(2)
	}

	b, err := backend.Lookup(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hammer:", err)
		os.Exit(2)
	}

	var input []byte
	if args := pflag.Args(); len(args) > 0 {
		input, err = os.ReadFile(args[0])
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "hammer: reading input:", err)
		os.Exit(1)
	}

	state, err := b.Compile(arithmeticGrammar(), backend.Options{K: *k})
	if err != nil {
		fmt.Fprintln(os.Stderr, "hammer: compile failed:", err)
		os.Exit(1)
	}
	defer b.Free(state)

	result, err := b.Parse(state, input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hammer: parse failed:", err)
		os.Exit(1)
	}

	if n, ok := result.(*tree.Node); ok {
		printTree(os.Stdout, n, 0)
		return
	}
	fmt.Fprintf(os.Stdout, "%v\n", result)
}

func printTree(w io.Writer, n *tree.Node, depth int) {
	if n == nil {
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Fprint(w, "  ")
	}
	fmt.Fprintln(w, n.String())
	for _, c := range n.Children {
		printTree(w, c, depth+1)
	}
}
