package hangul

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "closed syllable", in: "ㅋㅐㅌ", want: "캩"},
		{name: "open syllables", in: "ㅎㅏㄹㄹㅗ", want: "할로"},
		{name: "final moves before vowel", in: "ㅋㅗㄹㄹㅏ", want: "콜라"},
		{name: "compound final", in: "ㄱㅏㅂㅅ", want: "값"},
		{name: "compound final splits before vowel", in: "ㄱㅏㅂㅅㅣ", want: "갑시"},
		{name: "compound vowel", in: "ㅇㅗㅏ", want: "와"},
		{name: "trailing consonant kept", in: "ㅋㅡㄹㄹ", want: "클ㄹ"},
		{name: "leading consonants only", in: "ㄱㅅ", want: "ㄱㅅ"},
		{name: "lone vowel after syllable", in: "ㅋㅏㅣ", want: "카ㅣ"},
		{name: "double initial", in: "ㄲㅏ", want: "까"},
		{name: "consonant that cannot close", in: "ㄷㅏㄸ", want: "다ㄸ"},
		{name: "lone vowel then syllable", in: "ㅏㄸㅏ", want: "ㅏ따"},
		{name: "non jamo passes through", in: "ㅋㅏ ㅋㅏ!", want: "카 카!"},
		{name: "precomposed passes through", in: "한ㄱㅏ", want: "한가"},
		{name: "word", in: "ㅋㅓㅁㅍㅠㅌㅓ", want: "컴퓨터"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compose(tt.in))
		})
	}
}

func TestComposer_Feed(t *testing.T) {
	t.Parallel()

	var c Composer
	assert.Equal(t, "", c.Feed('ㅎ'))
	assert.Equal(t, "ㅎ", c.Pending())
	assert.Equal(t, "", c.Feed('ㅏ'))
	assert.Equal(t, "", c.Feed('ㄴ'))
	assert.Equal(t, "한", c.Pending())

	assert.Equal(t, "하", c.Feed('ㅏ'), "final moves to the next syllable")
	assert.Equal(t, "나", c.Pending())

	assert.Equal(t, "나", c.Flush())
	assert.Equal(t, "", c.Flush())
}
