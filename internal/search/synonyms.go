package search

import "strings"

// SynonymTable maps colloquial terms to the vocabulary products are indexed
// under. Matching is applied before any fuzzy scoring: an exact-phrase hit
// rewrites the whole query, otherwise each token is substituted on its own.
type SynonymTable map[string]string

// DefaultSynonyms covers the store's common regional aliases.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"chesco":      "refresco",
		"gaseosa":     "refresco",
		"soda":        "refresco",
		"blanquillo":  "huevo",
		"blanquillos": "huevos",
		"jitomate":    "tomate",
		"pan de caja": "pan blanco",
		"papitas":     "botana",
	}
}

// Normalize rewrites a query through the table. Exact-phrase match takes
// priority over per-token substitution.
func (t SynonymTable) Normalize(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	if repl, ok := t[q]; ok {
		return repl
	}
	tokens := strings.Fields(q)
	for i, tok := range tokens {
		if repl, ok := t[tok]; ok {
			tokens[i] = repl
		}
	}
	return strings.Join(tokens, " ")
}
