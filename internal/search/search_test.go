package search

import (
	"strings"
	"testing"

	"quickcomm/internal/model"
	"quickcomm/internal/phrases"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "  Café   Crème ", want: "cafe creme"},
		{in: "GYM", want: "gym"},
		{in: "a\t\n b", want: "a b"},
		{in: "", want: ""},
		{in: "naïve résumé", want: "naive resume"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("I'm stuck — can I try again?")
	want := []string{"i'm", "stuck", "can", "i", "try", "again"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Tokenize mismatch (-want +got):\n%s", diff)
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	if got := Score("gym", "Gym"); got != 7 {
		t.Fatalf("Score(gym, Gym) = %v, want 7", got)
	}
	if Score("gym", "Gym") <= Score("class", "Gym") {
		t.Fatalf("expected exact match to outrank a non-match")
	}
	if got := Score("   ", "anything"); got != 0 {
		t.Fatalf("expected empty query to score 0; got %v", got)
	}
	// Repeated query tokens count once.
	if got := Score("second second", "one second please"); got != 1 {
		t.Fatalf("expected overlap of 1; got %v", got)
	}
	// Substring without token overlap.
	if got := Score("sec", "one second"); got != 2 {
		t.Fatalf("expected substring bonus only; got %v", got)
	}
}

func TestSearch_GymCategoryRanksAbovePhrases(t *testing.T) {
	t.Parallel()

	cat := phrases.NewCatalog(nil)
	hits := Search("gym", cat.AllPhrases(), cat.CategoryRoutes())
	if len(hits) == 0 {
		t.Fatalf("expected hits for gym")
	}
	first := hits[0]
	if first.Kind != model.HitOpenCategory || first.Scope != model.ScopePlaces || first.Category != "Gym" {
		t.Fatalf("expected Open Places/Gym first; got %#v", first)
	}
	if first.Score != 10 {
		t.Fatalf("expected boosted score 10; got %v", first.Score)
	}
}

func TestSearch_StuckSurfacesPhrases(t *testing.T) {
	t.Parallel()

	cat := phrases.NewCatalog(nil)
	all := cat.AllPhrases()
	hits := Search("stuck", all, cat.CategoryRoutes())

	var withStuck []string
	for _, p := range all {
		if strings.Contains(strings.ToLower(p), "stuck") {
			withStuck = append(withStuck, p)
		}
	}
	if len(withStuck) == 0 {
		t.Fatalf("fixture expects phrases containing stuck")
	}
	got := map[string]bool{}
	for _, h := range hits {
		if h.Kind == model.HitPhrase {
			got[h.Phrase] = true
		}
	}
	for _, p := range withStuck {
		if !got[p] {
			t.Fatalf("expected %q in results; got %#v", p, hits)
		}
	}
	if !got["I’m stuck — can I try again in a moment?"] {
		t.Fatalf("expected the generic stuck phrase in results")
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Fatalf("results not sorted by descending score at %d: %#v", i, hits)
		}
	}
}

func TestSearch_DedupesAndTruncates(t *testing.T) {
	t.Parallel()

	var ps []string
	for i := 0; i < 20; i++ {
		ps = append(ps, "moment "+strings.Repeat("x", i))
	}
	ps = append(ps, "moment ")
	hits := Search("moment", ps, nil)
	if len(hits) != MaxHits {
		t.Fatalf("expected %d hits; got %d", MaxHits, len(hits))
	}

	dup := Search("a", []string{"a", "a", "b a"}, nil)
	want := []model.Hit{model.PhraseHit("a", 7), model.PhraseHit("b a", 3)}
	if diff := cmp.Diff(want, dup); diff != "" {
		t.Fatalf("dedupe mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_TiesKeepEnumerationOrder(t *testing.T) {
	t.Parallel()

	hits := Search("wait", []string{"wait here", "please wait"}, nil)
	if len(hits) != 2 || hits[0].Phrase != "wait here" || hits[1].Phrase != "please wait" {
		t.Fatalf("expected input order for equal scores; got %#v", hits)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	t.Parallel()

	cat := phrases.NewCatalog(nil)
	if hits := Search("  ", cat.AllPhrases(), cat.CategoryRoutes()); len(hits) != 0 {
		t.Fatalf("expected no hits for blank query; got %d", len(hits))
	}
}
