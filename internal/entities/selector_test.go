package entities_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

type SelectorTestSuite struct {
	suite.Suite
}

func TestSelectorSuite(t *testing.T) {
	suite.Run(t, new(SelectorTestSuite))
}

func (s *SelectorTestSuite) TestParseLabel() {
	testCases := []struct {
		name  string
		label string
		want  entities.Selector
		ok    bool
	}{
		{"player", "Aria (player)", entities.Selector{Category: entities.CategoryPlayer, Name: "Aria"}, true},
		{"enemy with spaces", "Cave Goblin (enemy)", entities.Selector{Category: entities.CategoryEnemy, Name: "Cave Goblin"}, true},
		{"parens in name", "Bob (the Bold) (npc)", entities.Selector{Category: entities.CategoryNPC, Name: "Bob (the Bold)"}, true},
		{"unknown category", "Smaug (dragon)", entities.Selector{}, false},
		{"missing close paren", "Aria (player", entities.Selector{}, false},
		{"no category", "Aria", entities.Selector{}, false},
		{"empty name", " (player)", entities.Selector{}, false},
		{"empty", "", entities.Selector{}, false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, ok := entities.ParseLabel(tc.label)
			s.Equal(tc.ok, ok)
			s.Equal(tc.want, got)
		})
	}
}

func (s *SelectorTestSuite) TestLabelRoundTrip() {
	sel := entities.Selector{Category: entities.CategoryEnemy, Name: "Orc Chief"}
	s.Equal("Orc Chief (enemy)", sel.Label())

	parsed, ok := entities.ParseLabel(sel.Label())
	s.True(ok)
	s.Equal(sel, parsed)
}

func (s *SelectorTestSuite) TestMatchesUsesIdentityKey() {
	a := entities.Selector{Category: entities.CategoryPlayer, Name: "Old Tom"}

	s.True(a.Matches(entities.Selector{Category: entities.CategoryPlayer, Name: "old  tom"}))
	s.False(a.Matches(entities.Selector{Category: entities.CategoryNPC, Name: "Old Tom"}))
}
