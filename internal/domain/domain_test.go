package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Computer", want: "computer"},
		{name: "trim", input: "  cat \t", want: "cat"},
		{name: "variant suffix", input: "HOUSE(2)", want: "house"},
		{name: "apostrophe kept", input: "Don't", want: "don't"},
		{name: "dots kept", input: "A.M.", want: "a.m."},
		{name: "empty", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeWord(tt.input))
		})
	}
}

func TestStripStress(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "AY", StripStress("AY1"))
	assert.Equal(t, "AH", StripStress("AH0"))
	assert.Equal(t, "EH", StripStress("EH2"))
	assert.Equal(t, "K", StripStress("K"))
	assert.Equal(t, "", StripStress(""))
}

func TestAlignment_JamoAndTags(t *testing.T) {
	t.Parallel()

	a := Alignment{{Tag: "", Jamo: "ㅇ"}, {Tag: "AA", Jamo: "ㅏ"}, {Tag: "R", Jamo: ""}}

	assert.Equal(t, "ㅇㅏ", a.Jamo())
	assert.Equal(t, "AAR", a.Tags())
}

func TestConcat_DoesNotAlias(t *testing.T) {
	t.Parallel()

	left := make(Alignment, 1, 4)
	left[0] = Pair{Tag: "K", Jamo: "ㅋ"}
	right := Alignment{{Tag: "AE", Jamo: "ㅐ"}}

	joined := Concat(left, right)
	joined[0].Jamo = "ㄱ"

	assert.Equal(t, "ㅋ", left[0].Jamo)
	assert.Len(t, joined, 2)
}

func TestConfigError_Unwrap(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("startup: %w", NewConfigError("grammar", "symbol %q has no rules", "CVC"))

	assert.True(t, errors.Is(err, ErrConfig))
	assert.EqualError(t, err, `startup: grammar: symbol "CVC" has no rules`)
}
