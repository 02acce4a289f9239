// Package hangul composes compatibility jamo into Hangul syllable blocks.
package hangul

import "strings"

var (
	choList  = []rune{'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
	jungList = []rune{'ㅏ', 'ㅐ', 'ㅑ', 'ㅒ', 'ㅓ', 'ㅔ', 'ㅕ', 'ㅖ', 'ㅗ', 'ㅘ', 'ㅙ', 'ㅚ', 'ㅛ', 'ㅜ', 'ㅝ', 'ㅞ', 'ㅟ', 'ㅠ', 'ㅡ', 'ㅢ', 'ㅣ'}
	jongList = []rune{0, 'ㄱ', 'ㄲ', 'ㄳ', 'ㄴ', 'ㄵ', 'ㄶ', 'ㄷ', 'ㄹ', 'ㄺ', 'ㄻ', 'ㄼ', 'ㄽ', 'ㄾ', 'ㄿ', 'ㅀ', 'ㅁ', 'ㅂ', 'ㅄ', 'ㅅ', 'ㅆ', 'ㅇ', 'ㅈ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ'}
)

var (
	doubleMedial = map[[2]rune]rune{
		{'ㅗ', 'ㅏ'}: 'ㅘ',
		{'ㅗ', 'ㅐ'}: 'ㅙ',
		{'ㅗ', 'ㅣ'}: 'ㅚ',
		{'ㅜ', 'ㅓ'}: 'ㅝ',
		{'ㅜ', 'ㅔ'}: 'ㅞ',
		{'ㅜ', 'ㅣ'}: 'ㅟ',
		{'ㅡ', 'ㅣ'}: 'ㅢ',
	}
	doubleFinal = map[[2]rune]rune{
		{'ㄱ', 'ㅅ'}: 'ㄳ',
		{'ㄴ', 'ㅈ'}: 'ㄵ',
		{'ㄴ', 'ㅎ'}: 'ㄶ',
		{'ㄹ', 'ㄱ'}: 'ㄺ',
		{'ㄹ', 'ㅁ'}: 'ㄻ',
		{'ㄹ', 'ㅂ'}: 'ㄼ',
		{'ㄹ', 'ㅅ'}: 'ㄽ',
		{'ㄹ', 'ㅌ'}: 'ㄾ',
		{'ㄹ', 'ㅍ'}: 'ㄿ',
		{'ㄹ', 'ㅎ'}: 'ㅀ',
		{'ㅂ', 'ㅅ'}: 'ㅄ',
	}
	finalDecompose = invertDouble(doubleFinal)
)

var (
	choseongIndex  = buildIndex(choList)
	jungseongIndex = buildIndex(jungList)
	jongseongIndex = buildIndex(jongList)
)

func invertDouble(src map[[2]rune]rune) map[rune][2]rune {
	dst := make(map[rune][2]rune, len(src))
	for pair, value := range src {
		dst[value] = pair
	}
	return dst
}

// buildIndex maps each rune to its position, skipping the empty final slot.
func buildIndex(list []rune) map[rune]int {
	idx := make(map[rune]int, len(list))
	for i, ch := range list {
		if ch != 0 {
			idx[ch] = i
		}
	}
	return idx
}

func isVowel(ch rune) bool {
	_, ok := jungseongIndex[ch]
	return ok
}

func isConsonant(ch rune) bool {
	if _, ok := choseongIndex[ch]; ok {
		return true
	}
	_, ok := jongseongIndex[ch]
	return ok
}

// Compose joins a string of compatibility jamo into syllable blocks. A
// consonant after a vowel closes the syllable unless a vowel follows it, in
// which case it starts the next one; compound vowels and compound finals
// are formed where Hangul allows them. Jamo that cannot join a syllable are
// kept as they are, and any other rune passes through unchanged.
func Compose(jamo string) string {
	var (
		b strings.Builder
		c Composer
	)
	for _, ch := range jamo {
		b.WriteString(c.Feed(ch))
	}
	b.WriteString(c.Flush())
	return b.String()
}

// Composer composes jamo fed one rune at a time. The zero value is ready to
// use.
type Composer struct {
	leading  rune
	vowel    rune
	trailing rune
}

// Feed adds ch and returns the text completed by it, if any.
func (c *Composer) Feed(ch rune) string {
	switch {
	case isVowel(ch):
		return c.handleVowel(ch)
	case isConsonant(ch):
		return c.handleConsonant(ch)
	default:
		return c.Flush() + string(ch)
	}
}

// Flush returns the syllable in progress and resets the composer.
func (c *Composer) Flush() string {
	out := string(c.compose())
	*c = Composer{}
	return out
}

// Pending returns the syllable in progress without consuming it.
func (c *Composer) Pending() string {
	return string(c.compose())
}

func (c *Composer) handleConsonant(ch rune) string {
	if c.vowel == 0 || c.leading == 0 {
		commit := c.Flush()
		return commit + c.startWith(ch)
	}

	if c.trailing == 0 {
		if _, ok := jongseongIndex[ch]; ok {
			c.trailing = ch
			return ""
		}
		commit := c.Flush()
		return commit + c.startWith(ch)
	}

	if combined, ok := doubleFinal[[2]rune{c.trailing, ch}]; ok {
		c.trailing = combined
		return ""
	}
	commit := c.Flush()
	return commit + c.startWith(ch)
}

// startWith makes ch the leading consonant of a fresh syllable, or returns
// it as is when it cannot lead one.
func (c *Composer) startWith(ch rune) string {
	if _, ok := choseongIndex[ch]; ok {
		c.leading = ch
		return ""
	}
	return string(ch)
}

func (c *Composer) handleVowel(ch rune) string {
	if c.vowel == 0 {
		c.vowel = ch
		return ""
	}

	if c.trailing == 0 {
		if combined, ok := doubleMedial[[2]rune{c.vowel, ch}]; ok {
			c.vowel = combined
			return ""
		}
		commit := c.Flush()
		c.vowel = ch
		return commit
	}

	next := c.trailing
	if split, ok := finalDecompose[c.trailing]; ok {
		c.trailing = split[0]
		next = split[1]
	} else {
		c.trailing = 0
	}
	commit := c.Flush()
	c.leading = next
	c.vowel = ch
	return commit
}

func (c *Composer) compose() []rune {
	switch {
	case c.leading != 0 && c.vowel != 0:
		leadIdx := choseongIndex[c.leading]
		vowelIdx := jungseongIndex[c.vowel]
		tailIdx := 0
		if c.trailing != 0 {
			tailIdx = jongseongIndex[c.trailing]
		}
		return []rune{rune(0xAC00 + ((leadIdx*21)+vowelIdx)*28 + tailIdx)}
	case c.leading != 0:
		return []rune{c.leading}
	case c.vowel != 0:
		return []rune{c.vowel}
	default:
		return nil
	}
}
