// Package cmu parses the CMU Pronouncing Dictionary into ARPAbet phoneme
// sequences and serves them as the phonemic lookup of the transliterator.
package cmu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// errSkipLine signals that a line should be skipped (comment, empty, etc.).
var errSkipLine = errors.New("skip line")

// arpabetMap maps ARPAbet phonemes (without stress markers) to IPA symbols.
// Its keys are the phoneme inventory accepted by the parser.
var arpabetMap = map[string]string{
	"AA": "\u0251",     // ɑ
	"AE": "\u00e6",     // æ
	"AH": "\u028c",     // ʌ
	"AO": "\u0254",     // ɔ
	"AW": "a\u028a",    // aʊ
	"AY": "a\u026a",    // aɪ
	"B":  "b",
	"CH": "t\u0283",    // tʃ
	"D":  "d",
	"DH": "\u00f0",     // ð
	"EH": "\u025b",     // ɛ
	"ER": "\u025d",     // ɝ
	"EY": "e\u026a",    // eɪ
	"F":  "f",
	"G":  "\u0261",     // ɡ
	"HH": "h",
	"IH": "\u026a",     // ɪ
	"IY": "i",
	"JH": "d\u0292",    // dʒ
	"K":  "k",
	"L":  "l",
	"M":  "m",
	"N":  "n",
	"NG": "\u014b",     // ŋ
	"OW": "o\u028a",    // oʊ
	"OY": "\u0254\u026a", // ɔɪ
	"P":  "p",
	"R":  "\u0279",     // ɹ
	"S":  "s",
	"SH": "\u0283",     // ʃ
	"T":  "t",
	"TH": "\u03b8",     // θ
	"UH": "\u028a",     // ʊ
	"UW": "u",
	"V":  "v",
	"W":  "w",
	"Y":  "j",
	"Z":  "z",
	"ZH": "\u0292",     // ʒ
}

// Pronunciation is one stress-free phoneme sequence with its variant index.
type Pronunciation struct {
	Phonemes     []string // e.g., ["HH", "AW", "S"]
	VariantIndex int      // 0 for primary, 1 for (2), 2 for (3), etc.
}

// ParseResult holds the parsed CMU dictionary data.
type ParseResult struct {
	Pronunciations map[string][]Pronunciation // normalizedWord → pronunciations
	Stats          Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	InvalidLines int
	UniqueWords  int
}

// Parse reads a CMU dict file and returns parsed pronunciations.
func Parse(filePath string) (ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return ParseResult{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ParseReader(f)
}

// ParseReader parses CMU dict content from r. Lines with phonemes outside
// the ARPAbet inventory are counted as invalid and skipped.
func ParseReader(r io.Reader) (ParseResult, error) {
	result := ParseResult{
		Pronunciations: make(map[string][]Pronunciation),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		result.Stats.TotalLines++
		line := scanner.Text()

		word, pron, err := parseLine(line)
		if errors.Is(err, errSkipLine) {
			if strings.HasPrefix(line, ";;;") {
				result.Stats.CommentLines++
			}
			continue
		}
		if err != nil {
			result.Stats.InvalidLines++
			continue
		}

		result.Stats.ParsedLines++
		result.Pronunciations[word] = append(result.Pronunciations[word], pron)
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("scanner error: %w", err)
	}

	result.Stats.UniqueWords = len(result.Pronunciations)
	return result, nil
}

// IPA renders an ARPAbet sequence as a slash-delimited IPA transcription.
// Stress markers are stripped; unknown phonemes are skipped.
func IPA(phonemes []string) string {
	var b strings.Builder
	b.WriteByte('/')
	for _, p := range phonemes {
		if ipa, ok := arpabetMap[domain.StripStress(p)]; ok {
			b.WriteString(ipa)
		}
	}
	b.WriteByte('/')
	return b.String()
}

// parseLine parses a single line from a CMU dict file.
// Returns the normalized word and its pronunciation, or errSkipLine for
// comments/empty lines.
func parseLine(line string) (string, Pronunciation, error) {
	if line == "" || strings.HasPrefix(line, ";;;") {
		return "", Pronunciation{}, errSkipLine
	}

	// CMU format: WORD  PHONEME1 PHONEME2 ... (two spaces between word and phonemes).
	rawWord, phonemesStr, ok := strings.Cut(line, "  ")
	if !ok {
		return "", Pronunciation{}, errSkipLine
	}
	rawWord = strings.TrimSpace(rawWord)
	phonemesStr = strings.TrimSpace(phonemesStr)
	if rawWord == "" || phonemesStr == "" {
		return "", Pronunciation{}, errSkipLine
	}

	word, variantIdx := parseWordAndVariant(rawWord)
	fields := strings.Fields(phonemesStr)
	phonemes := make([]string, len(fields))
	for i, f := range fields {
		p := domain.StripStress(f)
		if _, ok := arpabetMap[p]; !ok {
			return "", Pronunciation{}, fmt.Errorf("word %q: unknown phoneme %q", rawWord, f)
		}
		phonemes[i] = p
	}

	return word, Pronunciation{
		Phonemes:     phonemes,
		VariantIndex: variantIdx,
	}, nil
}

// parseWordAndVariant splits a raw CMU word like "HOUSE(2)" into
// the normalized word and variant index.
// Primary pronunciation has variant index 0, "(2)" maps to 1, "(3)" to 2, etc.
func parseWordAndVariant(raw string) (string, int) {
	idx := strings.IndexByte(raw, '(')
	if idx == -1 {
		return domain.NormalizeWord(raw), 0
	}

	end := strings.IndexByte(raw[idx:], ')')
	if end == -1 {
		return domain.NormalizeWord(raw), 0
	}

	n, err := strconv.Atoi(raw[idx+1 : idx+end])
	if err != nil {
		return domain.NormalizeWord(raw), 0
	}

	// (2) → variant index 1, (3) → variant index 2, etc.
	return domain.NormalizeWord(raw[:idx]), n - 1
}
