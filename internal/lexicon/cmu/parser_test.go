package cmu

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// --- Full line parsing ---

func TestParseLine(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantWord     string
		wantPhonemes []string
		wantVariant  int
		wantSkip     bool
		wantErr      bool
	}{
		{
			name:         "simple word",
			line:         "HELLO  HH AH0 L OW1",
			wantWord:     "hello",
			wantPhonemes: []string{"HH", "AH", "L", "OW"},
		},
		{
			name:         "variant 2",
			line:         "HOUSE(2)  HH AW1 Z",
			wantWord:     "house",
			wantPhonemes: []string{"HH", "AW", "Z"},
			wantVariant:  1,
		},
		{
			name:         "variant 3",
			line:         "THE(3)  DH IY0",
			wantWord:     "the",
			wantPhonemes: []string{"DH", "IY"},
			wantVariant:  2,
		},
		{
			name:     "comment line",
			line:     ";;; This is a comment",
			wantSkip: true,
		},
		{
			name:     "empty line",
			line:     "",
			wantSkip: true,
		},
		{
			name:     "single space separator",
			line:     "CAT K AE1 T",
			wantSkip: true,
		},
		{
			name:    "unknown phoneme",
			line:    "BOGUS  K QQ1 T",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, pron, err := parseLine(tt.line)
			if tt.wantSkip {
				if !errors.Is(err, errSkipLine) {
					t.Errorf("parseLine(%q) should return errSkipLine, got err=%v", tt.line, err)
				}
				return
			}
			if tt.wantErr {
				if err == nil || errors.Is(err, errSkipLine) {
					t.Errorf("parseLine(%q) should fail, got err=%v", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLine(%q) returned unexpected error: %v", tt.line, err)
			}
			if word != tt.wantWord {
				t.Errorf("word: got %q, want %q", word, tt.wantWord)
			}
			if !slices.Equal(pron.Phonemes, tt.wantPhonemes) {
				t.Errorf("phonemes: got %v, want %v", pron.Phonemes, tt.wantPhonemes)
			}
			if pron.VariantIndex != tt.wantVariant {
				t.Errorf("VariantIndex: got %d, want %d", pron.VariantIndex, tt.wantVariant)
			}
		})
	}
}

// --- IPA rendering ---

func TestIPA(t *testing.T) {
	tests := []struct {
		name     string
		phonemes []string
		want     string
	}{
		{"HOUSE", []string{"HH", "AW1", "S"}, "/haʊs/"},
		{"WORLD", []string{"W", "ER1", "L", "D"}, "/wɝld/"},
		{"THE", []string{"DH", "AH0"}, "/ðʌ/"},
		{"unknown skipped", []string{"K", "QQ", "T"}, "/kt/"},
		{"empty", nil, "//"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IPA(tt.phonemes); got != tt.want {
				t.Errorf("IPA(%v) = %q, want %q", tt.phonemes, got, tt.want)
			}
		})
	}
}

// --- parseWordAndVariant ---

func TestParseWordAndVariant(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantWord    string
		wantVariant int
	}{
		{"no variant", "HELLO", "hello", 0},
		{"variant 2", "HOUSE(2)", "house", 1},
		{"variant 10", "WORD(10)", "word", 9},
		{"lowercase preserved", "hello", "hello", 0},
		{"apostrophe kept", "DON'T", "don't", 0},
		{"broken variant", "WORD(x)", "word", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, variant := parseWordAndVariant(tt.raw)
			if word != tt.wantWord {
				t.Errorf("word: got %q, want %q", word, tt.wantWord)
			}
			if variant != tt.wantVariant {
				t.Errorf("variant: got %d, want %d", variant, tt.wantVariant)
			}
		})
	}
}

// --- Full file parsing ---

func TestParse(t *testing.T) {
	result, err := Parse(testdataPath(t, "sample.dict"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := Stats{TotalLines: 14, CommentLines: 2, ParsedLines: 10, InvalidLines: 1, UniqueWords: 6}
	if result.Stats != want {
		t.Errorf("Stats: got %+v, want %+v", result.Stats, want)
	}

	the := result.Pronunciations["the"]
	if len(the) != 3 {
		t.Fatalf("the: expected 3 pronunciations, got %d", len(the))
	}
	if the[2].VariantIndex != 2 {
		t.Errorf("the[2] VariantIndex: got %d, want 2", the[2].VariantIndex)
	}
	if _, ok := result.Pronunciations["bogus"]; ok {
		t.Error("lines with unknown phonemes must be skipped")
	}
}

func TestParse_FileNotFound(t *testing.T) {
	if _, err := Parse("/nonexistent/file.dict"); err == nil {
		t.Error("Parse should return error for missing file")
	}
}

func TestParseReader_Empty(t *testing.T) {
	result, err := ParseReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseReader should not error on empty input: %v", err)
	}
	if len(result.Pronunciations) != 0 || result.Stats.TotalLines != 0 {
		t.Errorf("expected empty result, got %+v", result.Stats)
	}
}

// --- Dictionary ---

func TestDictionary_Lookup(t *testing.T) {
	dict, _, err := Load(testdataPath(t, "sample.dict"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if dict.Len() != 6 {
		t.Errorf("Len: got %d, want 6", dict.Len())
	}

	got, err := dict.Lookup("  House ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	want := [][]string{{"HH", "AW", "S"}, {"HH", "AW", "Z"}}
	if len(got) != len(want) {
		t.Fatalf("house: got %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("house[%d]: got %v, want %v", i, got[i], want[i])
		}
	}

	// Callers own the returned slices.
	got[0][0] = "XX"
	again, _ := dict.Lookup("house")
	if again[0][0] != "HH" {
		t.Error("Lookup must return copies")
	}

	if _, err := dict.Lookup("zyzzyva"); !errors.Is(err, domain.ErrUnknownWord) {
		t.Errorf("unknown word: got err=%v, want ErrUnknownWord", err)
	}
}

func TestNewDictionary_OrdersVariants(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unordered.dict")
	content := "READ(2)  R EH1 D\nREAD  R IY1 D\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dict, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got, err := dict.Lookup("read")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if !slices.Equal(got[0], []string{"R", "IY", "D"}) {
		t.Errorf("primary variant first: got %v", got)
	}
}
