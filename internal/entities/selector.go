package entities

import (
	"fmt"
	"strings"
)

// Selector addresses one character record
type Selector struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
}

// Valid reports whether the selector names a known category and a non-blank name
func (s Selector) Valid() bool {
	return s.Category.Valid() && strings.TrimSpace(s.Name) != ""
}

// Key is the identity key of the addressed record
func (s Selector) Key() string {
	return NormalizeName(s.Name)
}

// Label renders the selector as "name (category)"
func (s Selector) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Category)
}

// Matches reports whether other addresses the same record
func (s Selector) Matches(other Selector) bool {
	return s.Category == other.Category && s.Key() == other.Key()
}

// ParseLabel parses a "name (category)" label. The split happens at the last
// " (" so names may contain parentheses.
func ParseLabel(label string) (Selector, bool) {
	if !strings.HasSuffix(label, ")") {
		return Selector{}, false
	}

	idx := strings.LastIndex(label, " (")
	if idx < 0 {
		return Selector{}, false
	}

	category, ok := ParseCategory(label[idx+2 : len(label)-1])
	if !ok {
		return Selector{}, false
	}

	sel := Selector{Category: category, Name: label[:idx]}
	if !sel.Valid() {
		return Selector{}, false
	}
	return sel, true
}
