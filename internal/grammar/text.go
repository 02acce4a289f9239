package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/myenglish-translit/internal/domain"
)

// FromString parses a grammar written one production group per line:
//
//	S -> Syllable | Syllable S
//	C -> "K" "S" | 'B'
//
// Quoted items (single or double quotes) are terminals, bare items are
// non-terminals, '|' separates alternatives. The first left-hand side is
// the start symbol. Blank lines and lines starting with '#' are ignored.
func FromString(text string) (*Grammar, error) {
	var (
		start Symbol
		rules []Rule
	)

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		lhsText, body, ok := strings.Cut(line, "->")
		if !ok {
			return nil, domain.NewConfigError("grammar", "line %d: missing '->'", lineNum)
		}
		lhs := Symbol(strings.TrimSpace(lhsText))
		if lhs == "" || strings.ContainsAny(string(lhs), " \t\"'") {
			return nil, domain.NewConfigError("grammar", "line %d: invalid left-hand side %q", lineNum, lhs)
		}
		if start == "" {
			start = lhs
		}

		for _, alt := range strings.Split(body, "|") {
			rhs, err := parseAlternative(alt)
			if err != nil {
				return nil, domain.NewConfigError("grammar", "line %d: %s", lineNum, err.Error())
			}
			rules = append(rules, Rule{LHS: lhs, RHS: rhs})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if start == "" {
		return nil, domain.NewConfigError("grammar", "no productions")
	}

	return New(start, rules)
}

func parseAlternative(alt string) ([]Element, error) {
	fields := strings.Fields(alt)
	if len(fields) == 0 {
		return nil, errors.New("empty alternative")
	}
	out := make([]Element, 0, len(fields))
	for _, f := range fields {
		if q := f[0]; q == '"' || q == '\'' {
			if len(f) < 3 || f[len(f)-1] != q {
				return nil, fmt.Errorf("malformed terminal %s", f)
			}
			out = append(out, T(f[1:len(f)-1]))
			continue
		}
		if strings.ContainsAny(f, "\"'") {
			return nil, fmt.Errorf("malformed symbol %s", f)
		}
		out = append(out, N(Symbol(f)))
	}
	return out, nil
}
