package model

import (
	"errors"
	"testing"
)

func TestParseRoute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Route
	}{
		{in: "home", want: Home{}},
		{in: "display", want: Display{}},
		{in: "favorites", want: Favorites{}},
		{in: "fullscreen", want: Fullscreen{}},
		{in: "places", want: ScopeList{scope: ScopePlaces}},
		{in: "Activities", want: ScopeList{scope: ScopeActivities}},
		{in: "places/Gym", want: Category{scope: ScopePlaces, name: "Gym"}},
		{in: "places/School Gate", want: Category{scope: ScopePlaces, name: "School Gate"}},
	}
	for _, tt := range tests {
		got, err := ParseRoute(tt.in)
		if err != nil {
			t.Fatalf("ParseRoute(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseRoute(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
		if got.Ref() == "" {
			t.Fatalf("expected non-empty ref for %q", tt.in)
		}
	}
}

func TestParseRoute_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "nowhere", "places/", "home/x", "display/x", "gym/Gym"} {
		if _, err := ParseRoute(in); !errors.Is(err, ErrInvalidRoute) {
			t.Fatalf("ParseRoute(%q): expected ErrInvalidRoute, got %v", in, err)
		}
	}
}

func TestNewCategory_RejectsEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := NewCategory(ScopePlaces, "  "); err == nil {
		t.Fatalf("expected error for empty category name")
	}
	if _, err := NewCategory(Scope("nope"), "Gym"); err == nil {
		t.Fatalf("expected error for unknown scope")
	}
}

func TestParseCategory_RejectsScopeList(t *testing.T) {
	t.Parallel()

	if _, err := ParseCategory("places"); err == nil {
		t.Fatalf("expected error for scope-only ref")
	}
	c, err := ParseCategory("activities/Exam")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if c.Scope() != ScopeActivities || c.Category() != "Exam" || c.Ref() != "activities/Exam" {
		t.Fatalf("unexpected category: %#v", c)
	}
}

func TestHitKey_IgnoresScore(t *testing.T) {
	t.Parallel()

	if PhraseHit("a", 1).Key() != PhraseHit("a", 3).Key() {
		t.Fatalf("expected phrase hit keys to ignore score")
	}
	if CategoryHit(ScopePlaces, "Gym", 1).Key() == CategoryHit(ScopeActivities, "Gym", 1).Key() {
		t.Fatalf("expected category keys to include scope")
	}
	if PhraseHit("Gym", 1).Key() == CategoryHit(ScopePlaces, "Gym", 1).Key() {
		t.Fatalf("expected phrase and category keys to differ")
	}
}
