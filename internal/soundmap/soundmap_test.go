package soundmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

func TestNewTable_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	tbl, err := NewTable("test", map[string][]string{"AH": {"ㅏ", "ㅔ", "ㅏ", "ㅔ"}})
	require.NoError(t, err)

	got, ok := tbl.Lookup("AH")
	require.True(t, ok)
	assert.Equal(t, []string{"ㅏ", "ㅔ"}, got)
}

func TestNewTable_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries map[string][]string
	}{
		{name: "empty key", entries: map[string][]string{"": {"ㅏ"}}},
		{name: "no renderings", entries: map[string][]string{"K": nil}},
		{name: "empty rendering", entries: map[string][]string{"K": {""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTable("test", tt.entries)
			assert.ErrorIs(t, err, domain.ErrConfig)
		})
	}
}

func TestTable_LookupMissAndNil(t *testing.T) {
	t.Parallel()

	_, ok := English().Consonants.Lookup("QQ")
	assert.False(t, ok)

	var nilTable *Table
	_, ok = nilTable.Lookup("K")
	assert.False(t, ok)
}

func TestEnglish_Tables(t *testing.T) {
	t.Parallel()

	set := English()
	assert.Equal(t, 37, set.Consonants.Len())
	assert.Equal(t, 25, set.Vowels.Len())
	assert.Equal(t, 11, set.Isolated.Len())

	ah, _ := set.Vowels.Lookup("AH")
	assert.Len(t, ah, 8, "duplicate ㅔ collapsed")

	keys := set.Isolated.Keys()
	assert.IsIncreasing(t, keys)
}

func TestSet_CandidatesOrder(t *testing.T) {
	t.Parallel()

	set := English()

	// YOW is a consonant, a vowel and an isolated cluster; the consonant
	// table wins.
	assert.Equal(t, []string{"ㅇㅛ"}, set.Candidates("YOW"))
	assert.Equal(t, []string{"ㅋ", "ㅋㅡ", "ㄱ"}, set.Candidates("K"))
	assert.Equal(t, []string{"ㅅㅕㄹ"}, set.Candidates("CHAHL"))
	assert.Nil(t, set.Candidates("QQ"))
}

func TestSet_Ambiguous(t *testing.T) {
	t.Parallel()

	set := English()
	assert.True(t, set.Ambiguous("K"))
	assert.True(t, set.Ambiguous("AE"))
	assert.True(t, set.Ambiguous("YA"))
	assert.False(t, set.Ambiguous("T"))
	assert.False(t, set.Ambiguous("IY"))
	assert.False(t, set.Ambiguous(""))
	assert.False(t, set.Ambiguous("QQ"))
}
