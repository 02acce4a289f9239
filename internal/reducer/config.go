package reducer

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
	"github.com/heartmarshall/myenglish-translit/internal/grammar"
	"github.com/heartmarshall/myenglish-translit/internal/soundmap"
)

// Kind selects how a grammar category turns its children into alignments.
type Kind int

const (
	// Unknown is the zero Kind; a category without a kind cannot be reduced.
	Unknown Kind = iota
	// Consonant, Vowel and Isolated join the node's tokens into a key and
	// fan out over the renderings found in the matching table.
	Consonant
	Vowel
	Isolated
	// Sequence combines child alignments by cartesian product in child order.
	Sequence
	// LeadingFiller is a Sequence preceded by the filler jamo.
	LeadingFiller
	// MedialFiller is a Sequence with the filler jamo before the last child.
	MedialFiller
	// Final is a Sequence whose last child is a pinned terminal, rendered by
	// a fixed list instead of a table.
	Final
	// PassThrough returns the alignments of its only child.
	PassThrough
	// Syllables concatenates whole syllable alignments.
	Syllables
)

var kindNames = [...]string{
	Unknown:       "unknown",
	Consonant:     "consonant",
	Vowel:         "vowel",
	Isolated:      "isolated",
	Sequence:      "sequence",
	LeadingFiller: "leading-filler",
	MedialFiller:  "medial-filler",
	Final:         "final",
	PassThrough:   "pass-through",
	Syllables:     "syllables",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) leaf() bool {
	return k == Consonant || k == Vowel || k == Isolated
}

// Config describes the reduction of one grammar.
type Config struct {
	// Kinds assigns a reduction to every non-terminal.
	Kinds map[grammar.Symbol]Kind
	// Finals lists the renderings of the pinned terminal of each Final
	// category. An empty list renders the terminal silently: it keeps its
	// tag with empty jamo.
	Finals map[grammar.Symbol][]string
	// Filler is the jamo inserted by LeadingFiller and MedialFiller nodes.
	Filler string
	Tables soundmap.Set
	// MaxAlignments caps the alignments kept per node; zero or less means
	// no cap.
	MaxAlignments int
}

func (c Config) table(k Kind) *soundmap.Table {
	switch k {
	case Consonant:
		return c.Tables.Consonants
	case Vowel:
		return c.Tables.Vowels
	case Isolated:
		return c.Tables.Isolated
	default:
		return nil
	}
}

// Validate checks that c can reduce every tree of g and that every
// terminal cluster under a table-backed category has a table entry.
// Failures wrap domain.ErrConfig.
func (c Config) Validate(g *grammar.Grammar) error {
	if err := c.check(g); err != nil {
		return err
	}
	if missing := c.Missing(g); len(missing) > 0 {
		return domain.NewConfigError("reducer", "clusters without renderings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Missing returns "category:KEY" for every rule body of a table-backed
// category whose joined key has no table entry, in rule order.
func (c Config) Missing(g *grammar.Grammar) []string {
	var missing []string
	for _, r := range g.Rules() {
		k := c.Kinds[r.LHS]
		if !k.leaf() {
			continue
		}
		var key strings.Builder
		for _, e := range r.RHS {
			key.WriteString(string(e.Symbol))
		}
		if _, ok := c.table(k).Lookup(key.String()); !ok {
			missing = append(missing, string(r.LHS)+":"+key.String())
		}
	}
	return missing
}

// check verifies the shape of every rule against the kind of its
// left-hand side.
func (c Config) check(g *grammar.Grammar) error {
	fail := func(format string, args ...any) error {
		return domain.NewConfigError("reducer", format, args...)
	}

	for _, sym := range g.NonTerminals() {
		k, ok := c.Kinds[sym]
		if !ok || k == Unknown {
			return fail("symbol %q has no reduction kind", sym)
		}
		if k.leaf() && c.table(k) == nil {
			return fail("no %s table for %q", k, sym)
		}
		if (k == LeadingFiller || k == MedialFiller) && c.Filler == "" {
			return fail("symbol %q needs a filler", sym)
		}
		if k == Final {
			if _, ok := c.Finals[sym]; !ok {
				return fail("final %q has no rendering", sym)
			}
		}
	}

	for _, r := range g.Rules() {
		k := c.Kinds[r.LHS]
		body := r.RHS
		switch k {
		case Consonant, Vowel, Isolated:
			for _, e := range body {
				if !e.Terminal {
					return fail("%s rule %q must contain only terminals", k, r)
				}
			}
			continue
		case Final:
			if !body[len(body)-1].Terminal {
				return fail("final rule %q must end with a terminal", r)
			}
			body = body[:len(body)-1]
		case PassThrough:
			if len(body) != 1 {
				return fail("pass-through rule %q must have one child", r)
			}
		case MedialFiller:
			if len(body) < 2 {
				return fail("medial-filler rule %q needs at least two children", r)
			}
		}
		for _, e := range body {
			if e.Terminal {
				return fail("%s rule %q must not contain terminal %s", k, r, e)
			}
		}
	}
	return nil
}
