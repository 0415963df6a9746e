package search

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"quickcomm/internal/model"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MaxHits caps a result list.
	MaxHits = 12

	categoryBoost = 3.0
	substrBoost   = 2.0
	exactBoost    = 4.0
)

var (
	tokenRe = regexp.MustCompile(`[a-z0-9']+`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// Normalize folds text for matching: NFKD, combining marks removed, lowercased,
// trimmed, and whitespace runs collapsed to one space.
func Normalize(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.TrimSpace(strings.ToLower(folded))
	return spaceRe.ReplaceAllString(folded, " ")
}

// Tokenize returns the [a-z0-9'] runs of the normalized text, in order.
func Tokenize(text string) []string {
	return tokenRe.FindAllString(Normalize(text), -1)
}

// Score rates text against query: shared tokens, plus a bonus when the query is a
// substring of the text and a larger one when they are equal.
func Score(query, text string) float64 {
	q := Normalize(query)
	if q == "" {
		return 0
	}
	t := Normalize(text)

	tt := map[string]struct{}{}
	for _, tok := range tokenRe.FindAllString(t, -1) {
		tt[tok] = struct{}{}
	}
	overlap := 0
	seen := map[string]struct{}{}
	for _, tok := range tokenRe.FindAllString(q, -1) {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := tt[tok]; ok {
			overlap++
		}
	}

	score := float64(overlap)
	if strings.Contains(t, q) {
		score += substrBoost
	}
	if q == t {
		score += exactBoost
	}
	return score
}

// Search ranks phrases and categories against query. Category hits get a boost
// over equally scored phrases. Ties keep enumeration order: phrases first, then
// categories in the order given.
func Search(query string, phrases []string, categories []model.Category) []model.Hit {
	var hits []model.Hit
	for _, p := range phrases {
		if s := Score(query, p); s > 0 {
			hits = append(hits, model.PhraseHit(p, s))
		}
	}
	for _, c := range categories {
		if s := Score(query, c.Category()); s > 0 {
			hits = append(hits, model.CategoryHit(c.Scope(), c.Category(), s+categoryBoost))
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })

	out := make([]model.Hit, 0, MaxHits)
	seen := map[string]bool{}
	for _, h := range hits {
		k := h.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, h)
		if len(out) >= MaxHits {
			break
		}
	}
	return out
}
