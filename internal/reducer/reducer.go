// Package reducer turns parse trees into candidate alignments.
package reducer

import (
	"fmt"
	"math"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/chart"
	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/grammar"
)

// Reducer expands trees of one grammar into alignments. It is immutable and
// safe for concurrent use.
type Reducer struct {
	cfg    Config
	filler domain.Pair
	max    int
}

// New checks that cfg describes every category of g and returns a reducer.
// Missing table entries are not checked here; a cluster without renderings
// makes its tree produce no alignments. Use Config.Validate to reject them
// up front.
func New(g *grammar.Grammar, cfg Config) (*Reducer, error) {
	if err := cfg.check(g); err != nil {
		return nil, err
	}
	limit := cfg.MaxAlignments
	if limit <= 0 {
		limit = math.MaxInt
	}
	return &Reducer{
		cfg:    cfg,
		filler: domain.Pair{Jamo: cfg.Filler},
		max:    limit,
	}, nil
}

// Reduce returns every alignment of t in enumeration order: children are
// combined left to right with the last child varying fastest, and table
// renderings are tried in table order. The tree is not modified.
//
// A cluster missing from its table yields no alignments and no error.
// When a node exceeds the cap, its first alignments are kept and the error
// wraps domain.ErrTooManyCandidates.
func (r *Reducer) Reduce(t *chart.Tree) ([]domain.Alignment, error) {
	if t == nil || len(t.Nodes) == 0 {
		return nil, nil
	}

	var (
		sets      = make([][]domain.Alignment, len(t.Nodes))
		truncated bool
	)
	keep := func(in []domain.Alignment) []domain.Alignment {
		if len(in) > r.max {
			truncated = true
			return in[:r.max]
		}
		return in
	}
	product := func(parts [][]domain.Alignment) []domain.Alignment {
		out, cut := cartesian(parts, r.max)
		truncated = truncated || cut
		return out
	}

	for _, i := range t.PostOrder() {
		n := t.Nodes[i]
		if n.Terminal {
			continue
		}
		kind := r.cfg.Kinds[n.Symbol]
		switch kind {
		case Consonant, Vowel, Isolated:
			key := clusterKey(t, i)
			jamo, _ := r.cfg.table(kind).Lookup(key)
			out := make([]domain.Alignment, len(jamo))
			for k, j := range jamo {
				out[k] = domain.Alignment{{Tag: key, Jamo: j}}
			}
			sets[i] = keep(out)

		case Sequence, Syllables:
			sets[i] = product(childSets(sets, n.Children))

		case LeadingFiller:
			parts := append([][]domain.Alignment{r.fillerSet()}, childSets(sets, n.Children)...)
			sets[i] = product(parts)

		case MedialFiller:
			children := childSets(sets, n.Children)
			last := len(children) - 1
			parts := make([][]domain.Alignment, 0, len(children)+1)
			parts = append(parts, children[:last]...)
			parts = append(parts, r.fillerSet(), children[last])
			sets[i] = product(parts)

		case Final:
			pinned := t.Nodes[n.Children[len(n.Children)-1]]
			parts := childSets(sets, n.Children[:len(n.Children)-1])
			parts = append(parts, r.finalSet(n.Symbol, string(pinned.Symbol)))
			sets[i] = product(parts)

		case PassThrough:
			sets[i] = sets[n.Children[0]]

		default:
			return nil, domain.NewConfigError("reducer", "symbol %q has no reduction kind", n.Symbol)
		}
	}

	out := sets[0]
	if truncated {
		return out, fmt.Errorf("reduce %d nodes: kept %d alignments: %w", len(t.Nodes), len(out), domain.ErrTooManyCandidates)
	}
	return out, nil
}

func (r *Reducer) fillerSet() []domain.Alignment {
	return []domain.Alignment{{r.filler}}
}

func (r *Reducer) finalSet(sym grammar.Symbol, tag string) []domain.Alignment {
	renderings := r.cfg.Finals[sym]
	if len(renderings) == 0 {
		return []domain.Alignment{{{Tag: tag}}}
	}
	out := make([]domain.Alignment, len(renderings))
	for k, j := range renderings {
		out[k] = domain.Alignment{{Tag: tag, Jamo: j}}
	}
	return out
}

func childSets(sets [][]domain.Alignment, children []int) [][]domain.Alignment {
	out := make([][]domain.Alignment, len(children))
	for k, c := range children {
		out[k] = sets[c]
	}
	return out
}

// clusterKey joins the terminals below node i.
func clusterKey(t *chart.Tree, i int) string {
	var b strings.Builder
	stack := []int{i}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Nodes[top]
		if n.Terminal {
			b.WriteString(string(n.Symbol))
			continue
		}
		for k := len(n.Children) - 1; k >= 0; k-- {
			stack = append(stack, n.Children[k])
		}
	}
	return b.String()
}

// cartesian concatenates one alignment from each part for every
// combination, first part varying slowest, keeping at most limit results.
// The second result reports whether combinations were dropped.
func cartesian(parts [][]domain.Alignment, limit int) ([]domain.Alignment, bool) {
	total, cut := 1, false
	for _, p := range parts {
		if len(p) == 0 {
			return nil, false
		}
		if cut {
			continue
		}
		if total > limit/len(p) {
			cut = true
			continue
		}
		total *= len(p)
	}
	if cut {
		total = limit
	}

	out := make([]domain.Alignment, 0, total)
	idx := make([]int, len(parts))
	choice := make([]domain.Alignment, len(parts))
	for len(out) < total {
		for k := range parts {
			choice[k] = parts[k][idx[k]]
		}
		out = append(out, domain.Concat(choice...))

		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(parts[k]) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			break
		}
	}
	return out, cut
}
