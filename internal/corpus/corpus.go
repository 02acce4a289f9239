// Package corpus reads labelled transliteration examples.
//
// Each line holds three whitespace-separated fields:
//
//	computer -> 컴퓨터
//
// The middle field is a separator and is ignored. Blank lines and lines
// starting with '#' are skipped.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines     int
	SkippedLines   int
	MalformedLines int
	Entries        int
}

// ParseFile reads the corpus at path.
func ParseFile(path string) ([]domain.CorpusEntry, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads corpus lines from r. Malformed lines are counted and skipped.
func Parse(r io.Reader) ([]domain.CorpusEntry, Stats, error) {
	var (
		entries []domain.CorpusEntry
		stats   Stats
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.TotalLines++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			stats.SkippedLines++
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			stats.MalformedLines++
			continue
		}

		entries = append(entries, domain.CorpusEntry{
			Word:   fields[0],
			Hangul: fields[2],
			Line:   stats.TotalLines,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("scan corpus: %w", err)
	}

	stats.Entries = len(entries)
	return entries, stats, nil
}
