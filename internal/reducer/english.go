package reducer

import (
	"github.com/heartmarshall/myenglish-translit/internal/grammar"
	"github.com/heartmarshall/myenglish-translit/internal/soundmap"
)

// Filler is the silent initial consonant written before a vowel.
const Filler = "ㅇ"

// English returns the reduction of grammar.English with the built-in
// tables and no alignment cap.
func English() Config {
	return Config{
		Kinds: map[grammar.Symbol]Kind{
			grammar.Start:             Syllables,
			grammar.Syllable:          PassThrough,
			grammar.CVC:               Sequence,
			grammar.CV:                Sequence,
			grammar.OnlyC:             Sequence,
			grammar.CVV:               MedialFiller,
			grammar.VC:                LeadingFiller,
			grammar.OnlyV:             LeadingFiller,
			grammar.FinalT:            Final,
			grammar.FinalK:            Final,
			grammar.FinalS:            Final,
			grammar.FinalR:            Final,
			grammar.FinalP:            Final,
			grammar.FinalN:            Final,
			grammar.Consonant:         Consonant,
			grammar.Vowel:             Vowel,
			grammar.IsolatedConsonant: Isolated,
		},
		Finals: map[grammar.Symbol][]string{
			grammar.FinalT: {"ㅅ", "ㅌㅡ"},
			grammar.FinalP: {"ㅂ", "ㅍㅡ"},
			grammar.FinalN: {"ㄴ"},
			grammar.FinalK: {"ㅋㅡ"},
			grammar.FinalS: {"ㅅㅡ"},
			// R after a vowel is absorbed into it.
			grammar.FinalR: nil,
		},
		Filler: Filler,
		Tables: soundmap.English(),
	}
}
