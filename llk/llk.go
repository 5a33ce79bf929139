/*
Package llk implements a predictive LL(k) table parser over the normalized
CFG (package cfg). k defaults to 1 but the construction is written generally
over lookahead strings of length ≤ k: FIRST_k and FOLLOW_k are computed as
fixed points over length-k-bounded token strings rather than single tokens,
so Compile(cg, 2) genuinely disambiguates on two-token lookahead instead of
silently behaving like k=1.

Compile builds, for every non-terminal A and every lookahead string
α (|α| ≤ k) that some production of A could start with, at most one
applicable production. Two productions whose predict sets for A overlap
make the grammar not LL(k); Compile reports this as a *hammer.CompileError
with Kind GrammarNotLLK rather than silently picking one.

The driver is a recursive-descent parser guided by the prediction table: it
starts from S', matches each terminal against the input and advances, and
expands each non-terminal by the one production the table predicts for the
next k tokens, one Go call per expansion.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package llk

import (
	"fmt"
	"strings"

	"github.com/TJamesCorcoran/hammer"
	"github.com/TJamesCorcoran/hammer/cfg"
	"github.com/TJamesCorcoran/hammer/cursor"
	"github.com/TJamesCorcoran/hammer/tree"
)

// predictKey is a (non-terminal, lookahead string) pair used as a table key.
type predictKey struct {
	nonterm string
	la      string // lookahead terminal values, comma-joined
}

// Parser holds the compiled LL(k) prediction table for one grammar.
type Parser struct {
	g     *cfg.Grammar
	k     int
	table map[predictKey]*cfg.Rule
}

// Compile constructs the LL(k) prediction table for g. k <= 0 defaults to 1.
func Compile(g *cfg.Grammar, k int) (*Parser, error) {
	if k <= 0 {
		k = 1
	}
	p := &Parser{g: g, k: k, table: make(map[predictKey]*cfg.Rule)}

	firstK := computeFirstK(g, k)
	followK := computeFollowK(g, firstK, k)

	for _, r := range g.Rules() {
		predicts := p.predictSet(r, firstK, followK)
		for _, la := range predicts {
			key := predictKey{nonterm: r.LHS.Name, la: la}
			if existing, ok := p.table[key]; ok && existing != r {
				return nil, &hammer.CompileError{
					Kind: hammer.GrammarNotLLK,
					Message: fmt.Sprintf("productions %v and %v of %s both predict on %q",
						existing, r, r.LHS.Name, la),
				}
			}
			p.table[key] = r
		}
	}
	return p, nil
}

// predictSet computes PREDICT_k(r) = FIRST_k(RHS · FOLLOW_k(LHS)) for rule
// r, returned as comma-joined lookahead strings of length exactly k
// (shorter only near end-of-input, since FOLLOW_k always bottoms out at
// #eof, which terminates the string).
func (p *Parser) predictSet(r *cfg.Rule, firstK *kSets, followK *kSets) []string {
	prefixes := firstK.ofSeq(r.RHS, p.k)
	var out []string
	for _, pre := range prefixes {
		if len(pre) >= p.k {
			out = append(out, laString(pre))
			continue
		}
		lhsFollow := followK.of(r.LHS)
		if len(lhsFollow) == 0 {
			out = append(out, laString(pre))
			continue
		}
		for _, f := range lhsFollow {
			out = append(out, laString(concatK(pre, f, p.k)))
		}
	}
	if len(out) == 0 {
		out = append(out, laString(nil))
	}
	return out
}

// kSets holds, per symbol, the set of distinct token-value strings (each of
// length <= k, deduplicated by their comma-joined key) that some fixed-point
// analysis has settled on for that symbol — the shared representation
// behind both computeFirstK and computeFollowK.
type kSets struct {
	k    int
	sets map[*cfg.Symbol]map[string][]int32
}

func newKSets(g *cfg.Grammar, k int) *kSets {
	ks := &kSets{k: k, sets: make(map[*cfg.Symbol]map[string][]int32)}
	g.EachNonTerminal(func(A *cfg.Symbol) { ks.sets[A] = make(map[string][]int32) })
	return ks
}

// of returns the current set of k-bounded strings recorded for A, as a
// slice of the distinct strings (map iteration order is irrelevant since
// callers only ever range over or count them).
func (ks *kSets) of(A *cfg.Symbol) [][]int32 {
	out := make([][]int32, 0, len(ks.sets[A]))
	for _, v := range ks.sets[A] {
		out = append(out, v)
	}
	return out
}

func (ks *kSets) add(A *cfg.Symbol, s []int32) bool {
	key := laString(s)
	target := ks.sets[A]
	if _, ok := target[key]; ok {
		return false
	}
	target[key] = s
	return true
}

// symOf returns the k-bounded FIRST set for a single symbol: a terminal's
// singleton {[value]}, or the fixed-point set accumulated so far for a
// non-terminal.
func (fk *kSets) symOf(sym *cfg.Symbol) [][]int32 {
	if sym.IsTerminal() {
		return [][]int32{{sym.Value()}}
	}
	return fk.of(sym)
}

// ofSeq computes FIRST_k(seq) by threading every symbol's k-bounded FIRST
// set onto every prefix accumulated so far, truncating at k and leaving a
// prefix alone once it has already reached length k (nothing past that
// point can matter for a length-k lookahead string).
func (fk *kSets) ofSeq(seq []*cfg.Symbol, k int) [][]int32 {
	prefixes := [][]int32{{}}
	for _, sym := range seq {
		seen := make(map[string]bool)
		var next [][]int32
		record := func(s []int32) {
			key := laString(s)
			if !seen[key] {
				seen[key] = true
				next = append(next, s)
			}
		}
		for _, pre := range prefixes {
			if len(pre) >= k {
				record(pre)
				continue
			}
			for _, s := range fk.symOf(sym) {
				record(concatK(pre, s, k))
			}
		}
		prefixes = next
		if len(prefixes) == 0 {
			return nil
		}
	}
	return prefixes
}

// concatK concatenates a and b, truncated to length k. a already at length
// k needs nothing from b — it is already a complete k-bounded lookahead
// string — and neither does an a that ends in #eof, since nothing follows
// end-of-input.
func concatK(a, b []int32, k int) []int32 {
	if len(a) >= k {
		return a[:k]
	}
	if len(a) > 0 && a[len(a)-1] == cfg.EOF {
		return a
	}
	out := make([]int32, 0, k)
	out = append(out, a...)
	out = append(out, b...)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// computeFirstK computes FIRST_k for every non-terminal of g by fixed-point
// iteration over k-bounded token strings, generalizing cfg.LRAnalysis's
// single-token FIRST in the same worklist style (package cfg's
// computeFirst): repeatedly fold every rule's RHS lookahead-strings into its
// LHS's set until nothing changes. The per-symbol domain is finite (bounded
// by the terminal alphabet raised to the k-th power), so this always
// terminates even for left-recursive grammars.
func computeFirstK(g *cfg.Grammar, k int) *kSets {
	fk := newKSets(g, k)
	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules() {
			for _, s := range fk.ofSeq(r.RHS, k) {
				if fk.add(r.LHS, s) {
					changed = true
				}
			}
		}
	}
	return fk
}

// computeFollowK computes FOLLOW_k for every non-terminal of g, mirroring
// cfg.LRAnalysis.computeFollow's rule-scanning fixed point but propagating
// k-bounded strings (via firstK and concatK) instead of single tokens: for
// every occurrence B in a rule's RHS, FOLLOW_k(B) gains FIRST_k(rest),
// extended by FOLLOW_k(LHS) wherever that prefix falls short of length k.
func computeFollowK(g *cfg.Grammar, firstK *kSets, k int) *kSets {
	fo := newKSets(g, k)
	start := g.Rule(0).LHS
	fo.add(start, []int32{cfg.EOF})

	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules() {
			for i, B := range r.RHS {
				if B.IsTerminal() {
					continue
				}
				rest := r.RHS[i+1:]
				for _, pre := range firstK.ofSeq(rest, k) {
					if len(pre) >= k {
						if fo.add(B, pre) {
							changed = true
						}
						continue
					}
					lhsFollow := fo.of(r.LHS)
					if len(lhsFollow) == 0 {
						if fo.add(B, pre) {
							changed = true
						}
						continue
					}
					for _, f := range lhsFollow {
						if fo.add(B, concatK(pre, f, k)) {
							changed = true
						}
					}
				}
			}
		}
	}
	return fo
}

func laString(vals []int32) string {
	ss := make([]string, len(vals))
	for i, v := range vals {
		ss[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(ss, ",")
}

// driver holds the mutable cursor state for one Parse call. The predictive
// parser itself is expressed as recursive descent guided by the prediction
// table, rather than an explicit symbol stack: each non-terminal expansion
// is one Go call frame, which makes bottom-up tree assembly (a child's node
// must exist before its parent's Sequence node is built) immediate instead
// of requiring a separate fix-up pass over a flattened stack.
type driver struct {
	p     *Parser
	input []byte
	pos   int
	cur   *cursor.Cursor
}

func newDriver(p *Parser, input []byte) *driver {
	return &driver{p: p, input: input, cur: cursor.New(input)}
}

func (d *driver) peek() int32 {
	d.cur.Seek(d.pos)
	b, ok := d.cur.PeekByte()
	if !ok {
		return cfg.EOF
	}
	return int32(b)
}

// peekK returns the next up-to-k token values without consuming them,
// stopping early (and appending the #eof sentinel) the moment it reaches
// the end of input — matching the way the compiled predict table's
// lookahead strings always terminate at #eof rather than running past it.
func (d *driver) peekK(k int) []int32 {
	out := make([]int32, 0, k)
	for i := 0; i < k; i++ {
		d.cur.Seek(d.pos + i)
		b, ok := d.cur.PeekByte()
		if !ok {
			out = append(out, cfg.EOF)
			break
		}
		out = append(out, int32(b))
	}
	return out
}

// Parse drives the predictive table parser over input, starting from the
// grammar's augmented start symbol.
func (p *Parser) Parse(input []byte) (*tree.Node, error) {
	d := newDriver(p, input)
	start := p.g.Rule(0)
	node, err := d.expand(start.RHS[0])
	if err != nil {
		return nil, err
	}
	if d.peek() != cfg.EOF {
		return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(d.pos)}
	}
	return node, nil
}

// expand recognizes one instance of sym (terminal or non-terminal) starting
// at the driver's current position.
func (d *driver) expand(sym *cfg.Symbol) (*tree.Node, error) {
	if sym.IsTerminal() {
		if d.peek() != sym.Value() {
			return nil, &hammer.ParseError{
				Kind: hammer.ParseFailed, Position: uint64(d.pos), Expected: []string{sym.String()},
			}
		}
		n := tree.NewBytes(d.input, d.pos, d.pos+1)
		d.pos++
		return n, nil
	}
	la := d.peekK(d.p.k)
	rule, ok := d.p.table[predictKey{nonterm: sym.Name, la: laString(la)}]
	if !ok {
		return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(d.pos)}
	}
	children := make([]*tree.Node, 0, len(rule.RHS))
	for _, rsym := range rule.RHS {
		child, err := d.expand(rsym)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	if rule.Action != nil {
		vals := make([]interface{}, len(children))
		for i, c := range children {
			vals[i] = c
		}
		v, ok := rule.Action(vals)
		if !ok {
			return nil, &hammer.ParseError{Kind: hammer.ParseFailed, Position: uint64(d.pos)}
		}
		return wrapValue(v), nil
	}
	return tree.NewSequence(children), nil
}

func wrapValue(v interface{}) *tree.Node {
	switch x := v.(type) {
	case *tree.Node:
		return x
	case uint64:
		return tree.NewUint(x, tree.Span{})
	case int64:
		return tree.NewSint(x, tree.Span{})
	default:
		return tree.NewUser(v, tree.Span{})
	}
}
