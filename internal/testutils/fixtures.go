package testutils

import (
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// NewTestPlayer returns a player sheet with a few non-default values
func NewTestPlayer(name string) *entities.Character {
	c := entities.NewCharacter(entities.CategoryPlayer)
	c.Name = name
	c.Class = "Fighter"
	c.Race = "Human"
	c.Level = 3
	c.ArmorClass = 16
	c.InitiativeBonus = 2
	c.HitPointsMax = 28
	c.HitPointsCurrent = 28
	return c
}

// NewTestNPC returns an NPC sheet
func NewTestNPC(name string) *entities.Character {
	c := entities.NewCharacter(entities.CategoryNPC)
	c.Name = name
	c.Class = "Commoner"
	c.InitiativeBonus = 1
	c.HitPointsCurrent = 4
	return c
}

// NewTestEnemy returns an enemy sheet carrying loot
func NewTestEnemy(name string, hp, gold int, equipment string) *entities.Character {
	c := entities.NewCharacter(entities.CategoryEnemy)
	c.Name = name
	c.ArmorClass = 13
	c.InitiativeBonus = 1
	c.HitPointsMax = hp
	c.HitPointsCurrent = hp
	c.Gold = gold
	c.Equipment = equipment
	return c
}
