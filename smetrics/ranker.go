// Package smetrics implements crossmcp.Ranker with normalized
// Wagner-Fischer edit distances from github.com/xrash/smetrics.
package smetrics

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"github.com/xrash/smetrics"
)

// Ranking defaults.
const (
	// DefaultThreshold is the worst normalized distance a query token may
	// score and still match.
	DefaultThreshold = 0.3

	// DefaultMaxHits bounds the hits recorded per field.
	DefaultMaxHits = 16

	// MinTokenLength is the shortest token, in runes, that can match.
	MinTokenLength = 2
)

// epsilon replaces exact-match scores so they still weigh in the product.
const epsilon = 2.220446049250313e-16

// Ensure Ranker implements crossmcp.Ranker at compile time.
var _ crossmcp.Ranker = (*Ranker)(nil)

// Ranker builds edit-distance matchers. Lower scores are better.
type Ranker struct {
	Threshold float64
	MaxHits   int
}

// NewRanker returns a Ranker with the default threshold.
func NewRanker() *Ranker {
	return &Ranker{
		Threshold: DefaultThreshold,
		MaxHits:   DefaultMaxHits,
	}
}

type token struct {
	text  string // lowercased
	runes int
	start int
	end   int
}

type field struct {
	key    crossmcp.SearchKey
	tokens []token
	norm   float64
}

type entry struct {
	doc    *crossmcp.Document
	fields []field
}

// Build tokenizes every weighted field of docs.
func (r *Ranker) Build(docs []*crossmcp.Document, keys []crossmcp.SearchKey) (crossmcp.Matcher, error) {
	if len(keys) == 0 {
		return nil, crossmcp.Errorf(crossmcp.EINVALID, "at least one search key required")
	}
	var total float64
	for _, k := range keys {
		if k.Weight <= 0 {
			return nil, crossmcp.Errorf(crossmcp.EINVALID, "search key %q requires a positive weight", k.Field)
		}
		total += k.Weight
	}

	m := &matcher{
		entries:   make([]entry, 0, len(docs)),
		total:     total,
		threshold: r.Threshold,
		maxHits:   r.MaxHits,
	}
	if m.threshold <= 0 {
		m.threshold = DefaultThreshold
	}
	if m.maxHits <= 0 {
		m.maxHits = DefaultMaxHits
	}

	for _, doc := range docs {
		e := entry{doc: doc, fields: make([]field, 0, len(keys))}
		for _, k := range keys {
			tokens := tokenize(k.Field.Value(doc))
			norm := 1.0
			if n := len(tokens); n > 0 {
				norm = math.Round(1/math.Sqrt(float64(n))*1000) / 1000
			}
			e.fields = append(e.fields, field{key: k, tokens: tokens, norm: norm})
		}
		m.entries = append(m.entries, e)
	}
	return m, nil
}

type matcher struct {
	entries   []entry
	total     float64
	threshold float64
	maxHits   int
}

// Match scores every document against query. Fields contribute
// score^(weight/total * norm); a document matches when any field does.
func (m *matcher) Match(query string) []*crossmcp.Match {
	var terms []token
	for _, t := range tokenize(query) {
		if t.runes >= MinTokenLength {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil
	}

	var out []*crossmcp.Match
	for _, e := range m.entries {
		score := 1.0
		matched := false
		var hits []crossmcp.Hit
		for _, f := range e.fields {
			s, fh, ok := m.matchField(terms, f)
			if !ok {
				continue
			}
			matched = true
			score *= math.Pow(math.Max(s, epsilon), f.key.Weight/m.total*f.norm)
			hits = append(hits, fh...)
		}
		if matched {
			out = append(out, &crossmcp.Match{Document: e.doc, Score: score, Hits: hits})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// matchField returns the mean best score of terms against the field and
// the positions of field tokens within the threshold. Every term must
// match for the field to match.
func (m *matcher) matchField(terms []token, f field) (float64, []crossmcp.Hit, bool) {
	if len(f.tokens) == 0 {
		return 0, nil, false
	}

	var sum float64
	hit := make([]bool, len(f.tokens))
	for _, q := range terms {
		best := math.Inf(1)
		for i, t := range f.tokens {
			s := score(q, t)
			if s <= m.threshold {
				hit[i] = true
			}
			best = math.Min(best, s)
		}
		if best > m.threshold {
			return 0, nil, false
		}
		sum += best
	}

	var hits []crossmcp.Hit
	for i, ok := range hit {
		if !ok {
			continue
		}
		hits = append(hits, crossmcp.Hit{Field: f.key.Field, Start: f.tokens[i].start, End: f.tokens[i].end})
		if len(hits) == m.maxHits {
			break
		}
	}
	return sum / float64(len(terms)), hits, true
}

// score is the normalized edit distance of q against t. Containment
// scores 0; t is also compared by its prefix so partial words match.
func score(q, t token) float64 {
	if t.runes < MinTokenLength {
		return 1
	}
	if strings.Contains(t.text, q.text) {
		return 0
	}
	d := distance(q.text, t.text, max(q.runes, t.runes))
	if t.runes > q.runes {
		d = math.Min(d, distance(q.text, prefix(t.text, q.runes), q.runes))
	}
	return d
}

func distance(a, b string, n int) float64 {
	return float64(smetrics.WagnerFischer(a, b, 1, 1, 1)) / float64(n)
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// tokenize splits s into runs of letters and digits, keeping byte
// offsets into the original string.
func tokenize(s string) []token {
	var tokens []token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		text := strings.ToLower(s[start:end])
		tokens = append(tokens, token{
			text:  text,
			runes: utf8.RuneCountInString(text),
			start: start,
			end:   end,
		})
		start = -1
	}
	for i, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(s))
	return tokens
}
