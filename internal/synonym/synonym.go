// Package synonym builds the canonical-term table from the synonyms
// sheet and rewrites queries with it before record matching.
package synonym

import (
	"sort"
	"strings"
)

// DefaultMarker is the substring a column name must contain for its value
// to be treated as a synonym group («Синонимы», «синонимы слова», ...).
const DefaultMarker = "синон"

type entry struct {
	canonical string
	variants  []string
}

// Table maps canonical terms to their variant spellings. Entries keep
// ingestion order: when the same variant is listed under two canonical
// terms, Rewrite resolves it to the first one registered. A row that
// redefines an existing canonical replaces its variants in place.
type Table struct {
	entries []entry
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Build parses synonym rows into a table. A field qualifies when its name
// contains marker (case-insensitive) and its value is non-empty; the value
// is split on commas, every piece lowercased and trimmed, empty pieces
// dropped. The first surviving piece becomes the canonical term, the rest
// its variants. Field names are visited in sorted order so repeated builds
// of the same rows produce the same table.
func Build(rows []map[string]string, marker string) *Table {
	if marker == "" {
		marker = DefaultMarker
	}
	marker = strings.ToLower(marker)

	t := NewTable()
	for _, row := range rows {
		names := make([]string, 0, len(row))
		for name := range row {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value := row[name]
			if value == "" || !strings.Contains(strings.ToLower(name), marker) {
				continue
			}

			var words []string
			for _, piece := range strings.Split(value, ",") {
				piece = strings.ToLower(strings.TrimSpace(piece))
				if piece != "" {
					words = append(words, piece)
				}
			}
			if len(words) == 0 {
				continue
			}
			t.Add(words[0], words[1:])
		}
	}
	return t
}

// Add registers a canonical term with its variants, replacing any earlier
// definition of the same canonical.
func (t *Table) Add(canonical string, variants []string) {
	canonical = strings.ToLower(canonical)
	if pos, ok := t.index[canonical]; ok {
		t.entries[pos].variants = variants
		return
	}
	t.index[canonical] = len(t.entries)
	t.entries = append(t.entries, entry{canonical: canonical, variants: variants})
}

// Len reports the number of canonical terms.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Variants returns the variant list of a canonical term.
func (t *Table) Variants(canonical string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	pos, ok := t.index[strings.ToLower(canonical)]
	if !ok {
		return nil, false
	}
	return t.entries[pos].variants, true
}

// Canonical resolves a token that is a registered variant to its canonical
// term. Entries are scanned in ingestion order, so the first canonical a
// variant was listed under wins.
func (t *Table) Canonical(token string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, e := range t.entries {
		for _, v := range e.variants {
			if v == token {
				return e.canonical, true
			}
		}
	}
	return "", false
}

// Rewrite lowercases the query, replaces every token that is a registered
// variant with its canonical term and re-joins with single spaces. Tokens
// without a match pass through unchanged.
func (t *Table) Rewrite(query string) string {
	words := strings.Fields(strings.ToLower(query))
	if t.Len() == 0 {
		return strings.Join(words, " ")
	}

	for i, word := range words {
		if canonical, ok := t.Canonical(word); ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}
