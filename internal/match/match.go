// Package match selects the catalog record a free-text query refers to.
// The heuristic is deliberately weak: whole-query substring of the record
// name, or any single name word found inside the query. The first record
// in sheet order wins; there is no relevance scoring.
package match

import (
	"strings"

	"github.com/vatastudio/concierge/internal/catalog"
	"github.com/vatastudio/concierge/internal/synonym"
	"github.com/vatastudio/concierge/internal/textutil"
)

// Tariff finds the tariff a query talks about, nil when none matches.
// The query is cleaned and synonym-rewritten before comparison.
func Tariff(query string, records []catalog.Record, table *synonym.Table) catalog.Record {
	return byName(query, records, table, catalog.Record.TariffName)
}

// Model finds the model a query talks about, nil when none matches.
func Model(query string, records []catalog.Record, table *synonym.Table) catalog.Record {
	return byName(query, records, table, catalog.Record.ModelName)
}

func byName(query string, records []catalog.Record, table *synonym.Table, name func(catalog.Record) string) catalog.Record {
	q := strings.ToLower(textutil.Clean(query))
	if table != nil {
		q = table.Rewrite(q)
	}
	if q == "" {
		return nil
	}

	for _, rec := range records {
		n := strings.ToLower(name(rec))
		if n == "" {
			continue
		}
		if strings.Contains(n, q) {
			return rec
		}
		for _, word := range strings.Fields(n) {
			if strings.Contains(q, word) {
				return rec
			}
		}
	}
	return nil
}
