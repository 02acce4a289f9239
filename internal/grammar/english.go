package grammar

// Categories of the built-in English syllable grammar.
const (
	Start     Symbol = "S"
	Syllable  Symbol = "Syllable"
	Consonant Symbol = "C"
	Vowel     Symbol = "V"
	// IsolatedConsonant is a consonant cluster that forms a syllable on its
	// own and is rendered with an epenthetic vowel.
	IsolatedConsonant Symbol = "aloneC"

	CVC   Symbol = "CVC"
	CV    Symbol = "CV"
	CVV   Symbol = "CVV"
	VC    Symbol = "VC"
	OnlyV Symbol = "onlyV"
	OnlyC Symbol = "onlyC"

	// Syllables pinned to a final consonant phoneme.
	FinalT Symbol = "cvT"
	FinalK Symbol = "cvK"
	FinalS Symbol = "cvS"
	FinalR Symbol = "cvR"
	FinalP Symbol = "cvP"
	FinalN Symbol = "cvN"
)

// englishText is written over single letters: a pronunciation is joined
// into one string before tokenizing, so "K" "S" is the KS cluster and
// "A" "A" the vowel AA.
const englishText = `
S        -> Syllable | Syllable S
Syllable -> CVC | CV | CVV | VC | cvT | cvK | cvS | cvR | cvP | cvN | onlyC | onlyV
cvR      -> C V "R"
cvS      -> C V "S"
cvK      -> C V "K"
cvT      -> C V "T"
cvP      -> C V "P"
cvN      -> C V "N"
CVC      -> C V C
CV       -> C V
CVV      -> C V V
VC       -> V C
onlyV    -> V
onlyC    -> aloneC
C        -> "K" "S" | "K" | "F" | "S" "H" | "B" "R" | "N" "G" | "P" | "T" "S" | "H" "H" | "B" | "M" | "G" | "N" "D" | "C" "H" | "R" | "T" | "V" | "S" | "N" | "D" "R" | "J" "H" | "D" | "L" | "K" "R" | "K" "L" | "Z" | "G" "R" | "P" "R" | "T" "R" | "W" | "Y" "O" "W" | "Y" "A" | "Y" "A" "A" | "Z" "H" | "R" "D" | "B" "L" | "N" "T"
aloneC   -> "K" | "S" | "Z" | "C" "H" | "V" | "J" "H" | "Y" "O" "W" | "Y" "A" | "F" | "R" "D" | "C" "H" "A" "H" "L"
V        -> "A" "A" | "I" "Y" | "A" "H" | "A" "O" | "A" "E" | "E" "H" | "O" "W" | "E" "Y" | "U" "H" | "I" "H" | "Y" "U" "W" | "E" | "A" "Y" | "E" "R" | "U" "W" | "A" "W" | "Y" "O" "W" | "A" "Y" "R" | "W" "A" "Y" | "W" "E" "Y" | "W" "I" "H" | "Y" "U" "H" | "W" "E" | "E" "H" "R" | "O" "Y"
`

var english = mustFromString(englishText)

// English returns the built-in English syllable grammar. The grammar is
// shared; callers must not modify the returned rules.
func English() *Grammar { return english }

// EnglishText returns the source of the built-in grammar.
func EnglishText() string { return englishText }

func mustFromString(text string) *Grammar {
	g, err := FromString(text)
	if err != nil {
		panic(err)
	}
	return g
}
