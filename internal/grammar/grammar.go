// Package grammar defines context-free grammars over phoneme tokens.
// A Grammar is immutable once built and safe for concurrent use.
package grammar

import (
	"slices"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Symbol names a non-terminal category (or, inside an Element, a terminal
// literal).
type Symbol string

// Element is one item of a rule body.
type Element struct {
	Symbol   Symbol
	Terminal bool
}

// N returns a non-terminal element.
func N(s Symbol) Element { return Element{Symbol: s} }

// T returns a terminal element matching the literal token s.
func T(s string) Element { return Element{Symbol: Symbol(s), Terminal: true} }

func (e Element) String() string {
	if e.Terminal {
		return `"` + string(e.Symbol) + `"`
	}
	return string(e.Symbol)
}

// Rule is a production LHS -> RHS. ID is the declaration index inside its
// grammar and fixes enumeration order.
type Rule struct {
	ID  int
	LHS Symbol
	RHS []Element
}

// IsUnit reports whether the rule body is a single non-terminal.
func (r Rule) IsUnit() bool {
	return len(r.RHS) == 1 && !r.RHS[0].Terminal
}

func (r Rule) String() string {
	parts := make([]string, len(r.RHS))
	for i, e := range r.RHS {
		parts[i] = e.String()
	}
	return string(r.LHS) + " -> " + strings.Join(parts, " ")
}

// Grammar is a validated set of rules with a start symbol.
type Grammar struct {
	start Symbol
	rules []Rule
	byLHS map[Symbol][]int
}

// New builds and validates a grammar. Rule IDs are reassigned to the
// position of each rule in rules. All validation failures wrap
// domain.ErrConfig.
func New(start Symbol, rules []Rule) (*Grammar, error) {
	g := &Grammar{
		start: start,
		rules: make([]Rule, len(rules)),
		byLHS: make(map[Symbol][]int),
	}
	for i, r := range rules {
		r.ID = i
		r.RHS = slices.Clone(r.RHS)
		g.rules[i] = r
		g.byLHS[r.LHS] = append(g.byLHS[r.LHS], i)
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// MustNew is like New but panics on error. Intended for package-level
// grammars built from constant data.
func MustNew(start Symbol, rules []Rule) *Grammar {
	g, err := New(start, rules)
	if err != nil {
		panic(err)
	}
	return g
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol { return g.start }

// Rules returns all rules in declaration order.
func (g *Grammar) Rules() []Rule { return g.rules }

// Rule returns the rule with the given ID.
func (g *Grammar) Rule(id int) Rule { return g.rules[id] }

// RulesFor returns the rules whose left-hand side is nt, in declaration
// order. The result is nil for unknown symbols.
func (g *Grammar) RulesFor(nt Symbol) []Rule {
	ids := g.byLHS[nt]
	if len(ids) == 0 {
		return nil
	}
	out := make([]Rule, len(ids))
	for i, id := range ids {
		out[i] = g.rules[id]
	}
	return out
}

// IsNonTerminal reports whether s has at least one rule.
func (g *Grammar) IsNonTerminal(s Symbol) bool {
	_, ok := g.byLHS[s]
	return ok
}

// NonTerminals returns every left-hand side in first-declaration order.
func (g *Grammar) NonTerminals() []Symbol {
	seen := make(map[Symbol]bool, len(g.byLHS))
	var out []Symbol
	for _, r := range g.rules {
		if !seen[r.LHS] {
			seen[r.LHS] = true
			out = append(out, r.LHS)
		}
	}
	return out
}

// Terminals returns every distinct terminal literal, sorted.
func (g *Grammar) Terminals() []string {
	set := make(map[string]struct{})
	for _, r := range g.rules {
		for _, e := range r.RHS {
			if e.Terminal {
				set[string(e.Symbol)] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (g *Grammar) validate() error {
	if g.start == "" {
		return domain.NewConfigError("grammar", "start symbol is empty")
	}
	if !g.IsNonTerminal(g.start) {
		return domain.NewConfigError("grammar", "start symbol %q has no rules", g.start)
	}

	for _, r := range g.rules {
		if r.LHS == "" {
			return domain.NewConfigError("grammar", "rule %d has an empty left-hand side", r.ID)
		}
		if len(r.RHS) == 0 {
			return domain.NewConfigError("grammar", "rule %q has an empty body", r.LHS)
		}
		for _, e := range r.RHS {
			if e.Symbol == "" {
				return domain.NewConfigError("grammar", "rule %q contains an empty symbol", r.String())
			}
			if !e.Terminal && !g.IsNonTerminal(e.Symbol) {
				return domain.NewConfigError("grammar", "symbol %q used in %q has no rules", e.Symbol, r.String())
			}
		}
	}

	reachable := g.reachable()
	for _, nt := range g.NonTerminals() {
		if !reachable[nt] {
			return domain.NewConfigError("grammar", "symbol %q is not reachable from %q", nt, g.start)
		}
	}

	if cycle := g.unitCycle(); cycle != nil {
		return domain.NewConfigError("grammar", "unit rule cycle %s", joinSymbols(cycle))
	}
	return nil
}

func (g *Grammar) reachable() map[Symbol]bool {
	seen := map[Symbol]bool{g.start: true}
	queue := []Symbol{g.start}
	for len(queue) > 0 {
		nt := queue[0]
		queue = queue[1:]
		for _, id := range g.byLHS[nt] {
			for _, e := range g.rules[id].RHS {
				if !e.Terminal && !seen[e.Symbol] {
					seen[e.Symbol] = true
					queue = append(queue, e.Symbol)
				}
			}
		}
	}
	return seen
}

// unitCycle returns a cycle A -> B -> ... -> A made only of unit rules, or
// nil. Such a cycle would make the set of derivations infinite.
func (g *Grammar) unitCycle() []Symbol {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[Symbol]int)
	var path []Symbol

	var visit func(nt Symbol) []Symbol
	visit = func(nt Symbol) []Symbol {
		state[nt] = active
		path = append(path, nt)
		for _, id := range g.byLHS[nt] {
			r := g.rules[id]
			if !r.IsUnit() {
				continue
			}
			next := r.RHS[0].Symbol
			switch state[next] {
			case active:
				start := slices.Index(path, next)
				return append(slices.Clone(path[start:]), next)
			case unvisited:
				if c := visit(next); c != nil {
					return c
				}
			}
		}
		path = path[:len(path)-1]
		state[nt] = done
		return nil
	}

	for _, nt := range g.NonTerminals() {
		if state[nt] == unvisited {
			if c := visit(nt); c != nil {
				return c
			}
		}
	}
	return nil
}

func joinSymbols(syms []Symbol) string {
	parts := make([]string, len(syms))
	for i, s := range syms {
		parts[i] = string(s)
	}
	return strings.Join(parts, " -> ")
}
