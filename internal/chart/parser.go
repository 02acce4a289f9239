// Package chart implements a bottom-up chart parser for arbitrary
// context-free grammars without empty rules. It returns every derivation
// of the start symbol that spans the whole input.
package chart

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/grammar"
)

// DefaultMaxTrees bounds the number of trees enumerated per Parse call.
const DefaultMaxTrees = 10000

// Parser parses token sequences with a fixed grammar. A Parser holds no
// per-call state and may be used from multiple goroutines.
type Parser struct {
	g        *grammar.Grammar
	maxTrees int
	// nonUnit rules consume strictly smaller spans (or one terminal) and
	// can be matched as soon as shorter spans are complete; unit rules are
	// closed per cell afterwards.
	nonUnit []grammar.Rule
	unit    []grammar.Rule
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxTrees caps the number of trees returned by Parse. n <= 0 removes
// the cap.
func WithMaxTrees(n int) Option {
	return func(p *Parser) {
		if n <= 0 {
			n = math.MaxInt
		}
		p.maxTrees = n
	}
}

// NewParser creates a parser for g.
func NewParser(g *grammar.Grammar, opts ...Option) *Parser {
	p := &Parser{g: g, maxTrees: DefaultMaxTrees}
	for _, opt := range opts {
		opt(p)
	}
	for _, r := range g.Rules() {
		if r.IsUnit() {
			p.unit = append(p.unit, r)
		} else {
			p.nonUnit = append(p.nonUnit, r)
		}
	}
	return p
}

// Grammar returns the parser's grammar.
func (p *Parser) Grammar() *grammar.Grammar { return p.g }

// Parse returns all derivations of the start symbol spanning tokens.
//
// Trees come out in a fixed order: alternatives for a span are tried in
// rule declaration order, then by ascending split points, and the last
// child varies fastest. An input with no derivation yields no trees and a
// nil error. When the number of trees exceeds the cap, the first trees in
// that order are returned together with an error wrapping
// domain.ErrTooManyCandidates.
func (p *Parser) Parse(tokens []string) ([]*Tree, error) {
	n := len(tokens)
	if n == 0 {
		return nil, nil
	}

	c := p.fill(tokens)
	if len(c.at(0, n)[p.g.Start()]) == 0 {
		return nil, nil
	}

	e := &enumerator{
		c:    c,
		g:    p.g,
		max:  p.maxTrees,
		memo: make(map[spanKey][]*deriv),
	}
	derivs := e.expand(p.g.Start(), 0, n)

	trees := make([]*Tree, len(derivs))
	for i, d := range derivs {
		trees[i] = flatten(d)
	}
	if e.truncated {
		return trees, fmt.Errorf("parse %d tokens: kept %d trees: %w", n, len(trees), domain.ErrTooManyCandidates)
	}
	return trees, nil
}

// Recognize reports whether tokens are derivable from the start symbol
// without enumerating trees.
func (p *Parser) Recognize(tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	c := p.fill(tokens)
	return len(c.at(0, len(tokens))[p.g.Start()]) > 0
}

// backpointer records one way a symbol derives a span: the rule used and
// the token positions separating its children (len(RHS)+1 entries).
type backpointer struct {
	rule   int
	bounds []int
}

type cell map[grammar.Symbol][]backpointer

type chart struct {
	tokens []string
	cells  [][]cell
}

func (c *chart) at(i, j int) cell { return c.cells[i][j] }

func (p *Parser) fill(tokens []string) *chart {
	n := len(tokens)
	c := &chart{tokens: tokens, cells: make([][]cell, n+1)}
	for i := range c.cells {
		c.cells[i] = make([]cell, n+1)
	}

	for length := 1; length <= n; length++ {
		for i := 0; i+length <= n; i++ {
			j := i + length
			cl := make(cell)
			c.cells[i][j] = cl

			for _, r := range p.nonUnit {
				for _, bounds := range c.match(r.RHS, i, j) {
					cl[r.LHS] = append(cl[r.LHS], backpointer{rule: r.ID, bounds: bounds})
				}
			}
			p.closeUnits(cl, i, j)

			for _, bps := range cl {
				slices.SortStableFunc(bps, func(a, b backpointer) int {
					return cmp.Compare(a.rule, b.rule)
				})
			}
		}
	}
	return c
}

// closeUnits applies unit rules A -> B within one cell until nothing
// changes. Each unit rule contributes at most one back-pointer per cell.
func (p *Parser) closeUnits(cl cell, i, j int) {
	applied := make(map[int]bool)
	for changed := true; changed; {
		changed = false
		for _, r := range p.unit {
			if applied[r.ID] || len(cl[r.RHS[0].Symbol]) == 0 {
				continue
			}
			cl[r.LHS] = append(cl[r.LHS], backpointer{rule: r.ID, bounds: []int{i, j}})
			applied[r.ID] = true
			changed = true
		}
	}
}

// match returns every way to split [i, j) into consecutive non-empty
// sub-spans derived by the elements of rhs, splits in ascending order.
// Only called for non-unit rules, so every non-terminal child covers a
// strictly shorter span whose cell is already complete.
func (c *chart) match(rhs []grammar.Element, i, j int) [][]int {
	var (
		out    [][]int
		bounds = []int{i}
	)

	var walk func(k, pos int)
	walk = func(k, pos int) {
		if k == len(rhs) {
			if pos == j {
				out = append(out, slices.Clone(bounds))
			}
			return
		}
		rest := len(rhs) - k - 1
		e := rhs[k]

		if e.Terminal {
			if pos < j-rest && c.tokens[pos] == string(e.Symbol) {
				bounds = append(bounds, pos+1)
				walk(k+1, pos+1)
				bounds = bounds[:len(bounds)-1]
			}
			return
		}

		for end := pos + 1; end <= j-rest; end++ {
			if len(c.at(pos, end)[e.Symbol]) == 0 {
				continue
			}
			bounds = append(bounds, end)
			walk(k+1, end)
			bounds = bounds[:len(bounds)-1]
		}
	}

	walk(0, i)
	return out
}

type spanKey struct {
	sym        grammar.Symbol
	start, end int
}

// deriv is an intermediate, possibly shared, derivation used while
// enumerating; flatten copies it into an owned Tree.
type deriv struct {
	sym        grammar.Symbol
	terminal   bool
	rule       int
	start, end int
	children   []*deriv
}

type enumerator struct {
	c         *chart
	g         *grammar.Grammar
	max       int
	memo      map[spanKey][]*deriv
	truncated bool
}

func (e *enumerator) expand(sym grammar.Symbol, i, j int) []*deriv {
	key := spanKey{sym: sym, start: i, end: j}
	if d, ok := e.memo[key]; ok {
		return d
	}

	var out []*deriv
	for _, bp := range e.c.at(i, j)[sym] {
		if len(out) >= e.max {
			e.truncated = true
			break
		}
		r := e.g.Rule(bp.rule)
		options := make([][]*deriv, len(r.RHS))
		for k, el := range r.RHS {
			lo, hi := bp.bounds[k], bp.bounds[k+1]
			if el.Terminal {
				options[k] = []*deriv{{sym: el.Symbol, terminal: true, rule: -1, start: lo, end: hi}}
				continue
			}
			options[k] = e.expand(el.Symbol, lo, hi)
		}
		out = e.product(out, key, bp.rule, options)
	}

	e.memo[key] = out
	return out
}

// product appends one derivation per combination of options, first child
// varying slowest, stopping at the cap.
func (e *enumerator) product(out []*deriv, key spanKey, rule int, options [][]*deriv) []*deriv {
	for _, o := range options {
		if len(o) == 0 {
			return out
		}
	}

	idx := make([]int, len(options))
	for {
		if len(out) >= e.max {
			e.truncated = true
			return out
		}
		children := make([]*deriv, len(options))
		for k := range options {
			children[k] = options[k][idx[k]]
		}
		out = append(out, &deriv{
			sym:      key.sym,
			rule:     rule,
			start:    key.start,
			end:      key.end,
			children: children,
		})

		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(options[k]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return out
		}
	}
}

// flatten copies d into a fresh arena in pre-order using an explicit
// stack.
func flatten(d *deriv) *Tree {
	type item struct {
		d      *deriv
		parent int
	}
	t := &Tree{}
	stack := []item{{d: d, parent: -1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := len(t.Nodes)
		t.Nodes = append(t.Nodes, Node{
			Symbol:   it.d.sym,
			Terminal: it.d.terminal,
			Rule:     it.d.rule,
			Start:    it.d.start,
			End:      it.d.end,
		})
		if it.parent >= 0 {
			t.Nodes[it.parent].Children = append(t.Nodes[it.parent].Children, idx)
		}
		for k := len(it.d.children) - 1; k >= 0; k-- {
			stack = append(stack, item{d: it.d.children[k], parent: idx})
		}
	}
	return t
}
