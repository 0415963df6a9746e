package model

import (
	"fmt"
	"strings"
)

type Scope string

const (
	ScopeActivities Scope = "activities"
	ScopePlaces     Scope = "places"
)

// Scopes lists every scope in iteration order.
func Scopes() []Scope {
	return []Scope{ScopeActivities, ScopePlaces}
}

func (s Scope) Valid() bool {
	return s == ScopeActivities || s == ScopePlaces
}

// Title is the display name of a scope.
func (s Scope) Title() string {
	switch s {
	case ScopeActivities:
		return "Activities"
	case ScopePlaces:
		return "Places"
	default:
		return string(s)
	}
}

func ParseScope(s string) (Scope, error) {
	sc := Scope(strings.ToLower(strings.TrimSpace(s)))
	if !sc.Valid() {
		return "", fmt.Errorf("unknown scope: %q (want activities|places)", s)
	}
	return sc, nil
}

type HitKind string

const (
	HitPhrase       HitKind = "phrase"
	HitOpenCategory HitKind = "open_category"
)

// Hit is a search result: either a phrase or a category to open.
type Hit struct {
	Kind     HitKind `json:"kind"`
	Phrase   string  `json:"phrase,omitempty"`
	Scope    Scope   `json:"scope,omitempty"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
}

func PhraseHit(text string, score float64) Hit {
	return Hit{Kind: HitPhrase, Phrase: text, Score: score}
}

func CategoryHit(scope Scope, category string, score float64) Hit {
	return Hit{Kind: HitOpenCategory, Scope: scope, Category: category, Score: score}
}

// Key identifies a hit regardless of its score.
func (h Hit) Key() string {
	if h.Kind == HitOpenCategory {
		return string(h.Kind) + "\x00" + string(h.Scope) + "\x00" + h.Category
	}
	return string(h.Kind) + "\x00" + h.Phrase
}

// Route returns the category route for an open_category hit.
func (h Hit) Route() (Category, bool) {
	if h.Kind != HitOpenCategory {
		return Category{}, false
	}
	c, err := NewCategory(h.Scope, h.Category)
	if err != nil {
		return Category{}, false
	}
	return c, true
}

// Label is the text shown for a hit in result lists.
func (h Hit) Label() string {
	if h.Kind == HitOpenCategory {
		return "Open: " + h.Scope.Title() + " • " + h.Category
	}
	return h.Phrase
}
