package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"abarrotes-backend/internal/domain"
)

// Options tunes the approximate matcher. Scores are normalized edit
// distances: 0 is an exact hit, 1 no resemblance at all.
type Options struct {
	// Threshold is the worst (weight-adjusted) score admitted into the
	// visible result list.
	Threshold float64
	// SuggestionThreshold is the looser bound used for the "did you mean"
	// pass when the primary pass comes up empty.
	SuggestionThreshold float64
	// MaxSuggestions caps the suggestions channel.
	MaxSuggestions int

	Synonyms SynonymTable
}

func DefaultOptions() Options {
	return Options{
		Threshold:           0.34,
		SuggestionThreshold: 0.55,
		MaxSuggestions:      4,
		Synonyms:            DefaultSynonyms(),
	}
}

// field weights, name dominates.
var fieldWeights = []struct {
	weight float64
	get    func(p domain.Product) string
}{
	{1.0, func(p domain.Product) string { return p.Name }},
	{0.6, func(p domain.Product) string { return p.Category }},
	{0.5, func(p domain.Product) string { return p.Brand }},
	{0.3, func(p domain.Product) string { return p.Description }},
}

type entry struct {
	product domain.Product
	fields  []indexedField
}

type indexedField struct {
	tokens []string
	text   string
	weight float64
}

// Index is a weighted fuzzy index over product fields. Build once per
// catalog snapshot; Search is read-only and safe for concurrent use.
type Index struct {
	entries []entry
	opts    Options
}

// Result separates visible matches from "did you mean" suggestions; the two
// channels are never silently merged.
type Result struct {
	Products    []domain.Product
	Suggestions []domain.Product
}

func New(products []domain.Product, opts Options) *Index {
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = DefaultOptions().MaxSuggestions
	}
	if opts.Synonyms == nil {
		opts.Synonyms = DefaultSynonyms()
	}
	ix := &Index{opts: opts}
	for _, p := range products {
		e := entry{product: p}
		for _, f := range fieldWeights {
			text := strings.ToLower(strings.TrimSpace(f.get(p)))
			if text == "" {
				continue
			}
			e.fields = append(e.fields, indexedField{
				tokens: strings.Fields(text),
				text:   text,
				weight: f.weight,
			})
		}
		ix.entries = append(ix.entries, e)
	}
	return ix
}

// Search runs the synonym-normalized query against the index, best match
// first. A blank query yields an empty result: "no search" is the
// taxonomy-filter code path, not a search with an empty string.
func (ix *Index) Search(query string) Result {
	q := ix.opts.Synonyms.Normalize(query)
	if q == "" {
		return Result{}
	}

	products := ix.rank(q, ix.opts.Threshold, 0)
	if len(products) > 0 {
		return Result{Products: products}
	}

	// Degrade gracefully: looser pass feeds the suggestions channel only.
	return Result{Suggestions: ix.rank(q, ix.opts.SuggestionThreshold, ix.opts.MaxSuggestions)}
}

type scored struct {
	product domain.Product
	score   float64
}

func (ix *Index) rank(query string, threshold float64, limit int) []domain.Product {
	qTokens := strings.Fields(query)
	var hits []scored
	for _, e := range ix.entries {
		s := e.score(query, qTokens)
		if s <= threshold {
			hits = append(hits, scored{product: e.product, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]domain.Product, len(hits))
	for i, h := range hits {
		out[i] = h.product
	}
	return out
}

// score is the best weight-adjusted field score; lower is better.
func (e entry) score(query string, qTokens []string) float64 {
	best := 1.0
	for _, f := range e.fields {
		s := fieldScore(query, qTokens, f) * (2 - f.weight)
		if s < best {
			best = s
		}
	}
	return best
}

// fieldScore averages, over the query tokens, the best normalized distance
// to any field token. A direct substring hit short-circuits to 0.
func fieldScore(query string, qTokens []string, f indexedField) float64 {
	if strings.Contains(f.text, query) {
		return 0
	}
	if len(qTokens) == 0 {
		return 1
	}
	var sum float64
	for _, qt := range qTokens {
		best := 1.0
		for _, ft := range f.tokens {
			if d := tokenScore(qt, ft); d < best {
				best = d
			}
		}
		sum += best
	}
	return sum / float64(len(qTokens))
}

func tokenScore(a, b string) float64 {
	if a == b {
		return 0
	}
	if strings.Contains(b, a) || strings.Contains(a, b) {
		return 0.1
	}
	la, lb := len([]rune(a)), len([]rune(b))
	max := la
	if lb > max {
		max = lb
	}
	if max == 0 {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b)) / float64(max)
}
