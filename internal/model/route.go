package model

import (
	"errors"
	"fmt"
	"strings"
)

type RouteName string

const (
	RouteHome       RouteName = "home"
	RouteScopeList  RouteName = "scope_list"
	RouteCategory   RouteName = "category"
	RouteDisplay    RouteName = "display"
	RouteFavorites  RouteName = "favorites"
	RouteFullscreen RouteName = "fullscreen"
)

// Route is one screen the user can be on. Each variant carries exactly the
// fields it needs; ScopeList and Category are only built through constructors
// that validate them.
type Route interface {
	Name() RouteName
	// Ref is the textual form accepted by ParseRoute.
	Ref() string
	isRoute()
}

type Home struct{}

type ScopeList struct {
	scope Scope
}

type Category struct {
	scope Scope
	name  string
}

type Display struct{}

type Favorites struct{}

type Fullscreen struct{}

func (Home) Name() RouteName       { return RouteHome }
func (ScopeList) Name() RouteName  { return RouteScopeList }
func (Category) Name() RouteName   { return RouteCategory }
func (Display) Name() RouteName    { return RouteDisplay }
func (Favorites) Name() RouteName  { return RouteFavorites }
func (Fullscreen) Name() RouteName { return RouteFullscreen }

func (Home) isRoute()       {}
func (ScopeList) isRoute()  {}
func (Category) isRoute()   {}
func (Display) isRoute()    {}
func (Favorites) isRoute()  {}
func (Fullscreen) isRoute() {}

func (Home) Ref() string         { return "home" }
func (r ScopeList) Ref() string  { return string(r.scope) }
func (r Category) Ref() string   { return string(r.scope) + "/" + r.name }
func (Display) Ref() string      { return "display" }
func (Favorites) Ref() string    { return "favorites" }
func (Fullscreen) Ref() string   { return "fullscreen" }
func (r ScopeList) Scope() Scope { return r.scope }
func (r Category) Scope() Scope  { return r.scope }
func (r Category) Category() string {
	return r.name
}

var ErrInvalidRoute = errors.New("invalid route")

func NewScopeList(scope Scope) (ScopeList, error) {
	if !scope.Valid() {
		return ScopeList{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidRoute, scope)
	}
	return ScopeList{scope: scope}, nil
}

func NewCategory(scope Scope, name string) (Category, error) {
	if !scope.Valid() {
		return Category{}, fmt.Errorf("%w: unknown scope %q", ErrInvalidRoute, scope)
	}
	if strings.TrimSpace(name) == "" {
		return Category{}, fmt.Errorf("%w: empty category name", ErrInvalidRoute)
	}
	return Category{scope: scope, name: name}, nil
}

// MustCategory is NewCategory for static tables.
func MustCategory(scope Scope, name string) Category {
	c, err := NewCategory(scope, name)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseRoute parses a route reference such as "home", "places" or
// "activities/Lecture". Category names keep their original case.
func ParseRoute(ref string) (Route, error) {
	ref = strings.TrimSpace(ref)
	head, rest, hasRest := strings.Cut(ref, "/")
	switch strings.ToLower(head) {
	case "home", "":
		if hasRest || head == "" {
			break
		}
		return Home{}, nil
	case "display":
		if !hasRest {
			return Display{}, nil
		}
	case "favorites":
		if !hasRest {
			return Favorites{}, nil
		}
	case "fullscreen":
		if !hasRest {
			return Fullscreen{}, nil
		}
	case string(ScopeActivities), string(ScopePlaces):
		scope := Scope(strings.ToLower(head))
		if !hasRest {
			return NewScopeList(scope)
		}
		return NewCategory(scope, strings.TrimSpace(rest))
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidRoute, ref)
}

// ParseCategory parses a reference that must name a category.
func ParseCategory(ref string) (Category, error) {
	r, err := ParseRoute(ref)
	if err != nil {
		return Category{}, err
	}
	c, ok := r.(Category)
	if !ok {
		return Category{}, fmt.Errorf("%w: %q is not a category (want scope/Category)", ErrInvalidRoute, ref)
	}
	return c, nil
}

// RouteTitle is the heading shown for a route.
func RouteTitle(r Route) string {
	switch r := r.(type) {
	case ScopeList:
		return r.scope.Title()
	case Category:
		return r.scope.Title() + " • " + r.name
	case Display:
		return "Phrase"
	case Favorites:
		return "Favorites"
	case Fullscreen:
		return "Full-screen"
	default:
		return "Quick Communication Support"
	}
}
