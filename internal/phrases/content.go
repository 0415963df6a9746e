package phrases

import "quickcomm/internal/model"

// builtinCategory is one entry of the static content tables. Slices (not maps)
// keep declaration order stable.
type builtinCategory struct {
	name    string
	phrases []string
}

// SafeDefaultPhrase backs the "I'm stuck" quick button on category screens.
const SafeDefaultPhrase = "I know what I mean — I just need a second."

// Generic fallback phrases are appended to every category.
var genericPhrases = []string{
	"Can I have a moment, please?",
	"I know what I mean — I just need a second.",
	"Please give me a moment to organise my words.",
	"The word is on the tip of my tongue.",
	"I’m stuck — can I try again in a moment?",
	"Could you repeat the question, please?",
	"Can you say that more slowly?",
	"Sorry — my brain froze for a second.",
	"Let me restart that sentence.",
}

var activities = []builtinCategory{
	{name: "Presentation", phrases: []string{
		"Let me restart that sentence.",
		"I’m nervous, but I understand the answer.",
		"I want to answer — I just need a moment.",
		"Can I quickly rephrase that?",
		"One second — I’m collecting my thoughts.",
	}},
	{name: "Lecture", phrases: []string{
		"Could you repeat that last part, please?",
		"Can you say that more slowly?",
		"I’m following — give me a second to write it down.",
		"Can I ask a quick clarification?",
	}},
	{name: "Exam", phrases: []string{
		"I understand — can I restate it in my own words?",
		"I know the answer — I just need a second.",
		"Can I have a moment to organise my words?",
		"Sorry — I’m stuck for a second. Let me try again.",
	}},
	{name: "Games", phrases: []string{
		"Wait — my tongue is lagging 😂",
		"Give me a second, I’ll say it.",
		"I know what I want to say — one sec!",
		"Hold on — let me restart.",
	}},
	{name: "Friends", phrases: []string{
		"Bro my tongue is protesting 😭",
		"Waittt — I’ll say it again 😂",
		"I swear I know the word… give me a sec 😅",
		"Let me restart before you roast me 😭",
		"My brain froze — not me!",
	}},
}

var places = []builtinCategory{
	{name: "Class", phrases: []string{
		"Can I have a moment, please?",
		"I know the answer — I just need a second.",
		"Sorry — I’m stuck for a second. Let me try again.",
		"Can you repeat the question, please?",
	}},
	{name: "Library", phrases: []string{
		"Sorry — can you say that more slowly?",
		"One second — I’m thinking.",
		"Can I rephrase that?",
	}},
	{name: "Hall", phrases: []string{
		"I’m stuck — can I try again in a moment?",
		"Give me a moment to organise my words.",
	}},
	{name: "Gym", phrases: []string{
		"Wait — let me restart 😅",
		"One sec — I’ll say it.",
	}},
	{name: "School Gate", phrases: []string{
		"Sorry — my brain froze for a second.",
		"Can I have a moment, please?",
	}},
	{name: "Basketball Court", phrases: []string{
		"Wait — my tongue is lagging 😂",
		"Give me a second, I’ll say it.",
	}},
}

func builtins(scope model.Scope) []builtinCategory {
	switch scope {
	case model.ScopeActivities:
		return activities
	case model.ScopePlaces:
		return places
	default:
		return nil
	}
}

// GenericPhrases returns a copy of the fallback phrases.
func GenericPhrases() []string {
	return append([]string(nil), genericPhrases...)
}

// Categories returns the built-in category names of a scope in declaration order.
func Categories(scope model.Scope) []string {
	cats := builtins(scope)
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.name)
	}
	return out
}

// Builtin returns the built-in phrases of one category (nil when unknown).
func Builtin(scope model.Scope, category string) []string {
	for _, c := range builtins(scope) {
		if c.name == category {
			return append([]string(nil), c.phrases...)
		}
	}
	return nil
}

func HasCategory(scope model.Scope, category string) bool {
	for _, c := range builtins(scope) {
		if c.name == category {
			return true
		}
	}
	return false
}

// DefaultQuickAccess are the home-screen shortcuts used when config has none.
func DefaultQuickAccess() []model.Category {
	return []model.Category{
		model.MustCategory(model.ScopePlaces, "Gym"),
		model.MustCategory(model.ScopePlaces, "Class"),
		model.MustCategory(model.ScopeActivities, "Lecture"),
		model.MustCategory(model.ScopeActivities, "Exam"),
		model.MustCategory(model.ScopeActivities, "Friends"),
	}
}
