package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

func TestFromString_ParsesAlternativesAndQuotes(t *testing.T) {
	t.Parallel()

	g, err := FromString(`
# comment
S -> A | A S
A -> "K" 'S' | "T"
`)
	require.NoError(t, err)

	assert.Equal(t, Symbol("S"), g.Start())
	assert.Equal(t, []Symbol{"S", "A"}, g.NonTerminals())
	assert.Equal(t, []string{"K", "S", "T"}, g.Terminals())

	rules := g.RulesFor("A")
	require.Len(t, rules, 2)
	assert.Equal(t, []Element{T("K"), T("S")}, rules[0].RHS)
	assert.Equal(t, `A -> "K" "S"`, rules[0].String())
	assert.Equal(t, 2, rules[0].ID)
	assert.Equal(t, 3, rules[1].ID)
}

func TestFromString_AdjacentBar(t *testing.T) {
	t.Parallel()

	g, err := FromString(`S -> "Z" "H"| "R" "D"`)
	require.NoError(t, err)
	assert.Len(t, g.RulesFor("S"), 2)
}

func TestNew_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		start Symbol
		rules []Rule
		msg   string
	}{
		{
			name:  "empty start",
			start: "",
			rules: []Rule{{LHS: "S", RHS: []Element{T("a")}}},
			msg:   "start symbol is empty",
		},
		{
			name:  "start without rules",
			start: "S",
			rules: []Rule{{LHS: "A", RHS: []Element{T("a")}}},
			msg:   `start symbol "S" has no rules`,
		},
		{
			name:  "undefined non-terminal",
			start: "S",
			rules: []Rule{{LHS: "S", RHS: []Element{N("A")}}},
			msg:   `symbol "A" used in "S -> A" has no rules`,
		},
		{
			name:  "empty body",
			start: "S",
			rules: []Rule{{LHS: "S"}},
			msg:   `rule "S" has an empty body`,
		},
		{
			name:  "unreachable",
			start: "S",
			rules: []Rule{
				{LHS: "S", RHS: []Element{T("a")}},
				{LHS: "B", RHS: []Element{T("b")}},
			},
			msg: `symbol "B" is not reachable from "S"`,
		},
		{
			name:  "unit cycle",
			start: "S",
			rules: []Rule{
				{LHS: "S", RHS: []Element{N("A")}},
				{LHS: "A", RHS: []Element{N("B")}},
				{LHS: "B", RHS: []Element{N("A")}},
				{LHS: "B", RHS: []Element{T("b")}},
			},
			msg: "unit rule cycle A -> B -> A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.start, tt.rules)
			require.ErrorIs(t, err, domain.ErrConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFromString_Malformed(t *testing.T) {
	t.Parallel()

	for _, text := range []string{
		"",
		"S A B",
		`S -> "K`,
		`S -> A | `,
		`S -> K"`,
	} {
		_, err := FromString(text)
		assert.ErrorIs(t, err, domain.ErrConfig, "text %q", text)
	}
}

func TestEnglish_Shape(t *testing.T) {
	t.Parallel()

	g := English()

	assert.Equal(t, Start, g.Start())
	assert.Len(t, g.RulesFor(Syllable), 12)
	assert.Len(t, g.RulesFor(Vowel), 25)
	assert.Len(t, g.RulesFor(IsolatedConsonant), 11)

	for _, final := range []Symbol{FinalT, FinalK, FinalS, FinalR, FinalP, FinalN} {
		rules := g.RulesFor(final)
		require.Len(t, rules, 1, "final %s", final)
		last := rules[0].RHS[len(rules[0].RHS)-1]
		assert.True(t, last.Terminal)
		assert.Equal(t, string(final)[2:], string(last.Symbol))
	}

	for _, term := range g.Terminals() {
		assert.Len(t, term, 1, "terminals are single letters")
	}
}

func TestEnglish_YOWConsonant(t *testing.T) {
	t.Parallel()

	bodies := make(map[string]bool)
	for _, r := range English().RulesFor(Consonant) {
		var body string
		for _, e := range r.RHS {
			require.True(t, e.Terminal, "rule %s", r)
			body += string(e.Symbol)
		}
		bodies[body] = true
	}

	assert.True(t, bodies["YOW"], "C derives the YOW cluster")
	assert.False(t, bodies["YO"], "YO has no rendering and must not be a consonant")
}

func TestRulesFor_Unknown(t *testing.T) {
	t.Parallel()

	assert.Nil(t, English().RulesFor("nope"))
	assert.False(t, English().IsNonTerminal("nope"))
}
