package category

import "fmt"

// Category is a closed tag classifying how tracked time is spent.
type Category string

const (
	Work     Category = "work"
	Study    Category = "study"
	Exercise Category = "exercise"
	Personal Category = "personal"
	Creative Category = "creative"
)

// All lists every known category in display order.
var All = []Category{Work, Study, Exercise, Personal, Creative}

type meta struct {
	Label string
	Icon  string
}

var table = map[Category]meta{
	Work:     {Label: "Work", Icon: "💼"},
	Study:    {Label: "Study", Icon: "📚"},
	Exercise: {Label: "Exercise", Icon: "🏃"},
	Personal: {Label: "Personal", Icon: "🏠"},
	Creative: {Label: "Creative", Icon: "🎨"},
}

func init() {
	// The display table must cover the closed set exactly.
	if len(table) != len(All) {
		panic("category: display table out of sync with category set")
	}
	for _, c := range All {
		if _, ok := table[c]; !ok {
			panic(fmt.Sprintf("category: no display entry for %q", c))
		}
	}
}

// ErrUnknown reports a category outside the closed set.
type ErrUnknown struct {
	Value string
}

func (e *ErrUnknown) Error() string {
	return fmt.Sprintf("unknown category %q", e.Value)
}

// Parse validates a raw string against the closed category set.
func Parse(raw string) (Category, error) {
	c := Category(raw)
	if _, ok := table[c]; !ok {
		return "", &ErrUnknown{Value: raw}
	}
	return c, nil
}

// Valid reports whether c belongs to the closed set.
func Valid(c Category) bool {
	_, ok := table[c]
	return ok
}

// Label returns the human-readable name for c.
func (c Category) Label() string {
	return table[c].Label
}

// Icon returns the display icon for c.
func (c Category) Icon() string {
	return table[c].Icon
}

func (c Category) String() string {
	return string(c)
}
