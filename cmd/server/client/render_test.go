package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
)

func TestRenderBattle(t *testing.T) {
	aria := entities.Row{
		ParticipantID:    "p_1",
		Category:         entities.CategoryPlayer,
		Name:             "Aria",
		BaseInitiative:   2,
		RolledInitiative: 15,
		TotalInitiative:  17,
		ArmorClass:       16,
		CurrentHP:        28,
	}
	goblin := entities.Row{
		ParticipantID:   "p_2",
		Category:        entities.CategoryEnemy,
		Name:            "Goblin",
		BaseInitiative:  1,
		TotalInitiative: 1,
		ArmorClass:      13,
		CurrentHP:       7,
	}

	out := renderBattle(&v1alpha1.Battle{
		BattleID:    "battle_1",
		Phase:       entities.PhaseActive,
		Turn:        3,
		Rows:        []entities.Row{aria, goblin},
		Current:     &aria,
		Accumulator: entities.Accumulator{Gold: 1250, Items: "Rope\nDagger"},
	})

	assert.Contains(t, out, "Battle battle_1  phase: active  turn: 3")
	assert.Contains(t, out, "Current: Aria (p_1)")
	for _, column := range battleColumns {
		assert.Contains(t, out, column)
	}
	assert.Contains(t, out, "Goblin")
	assert.Contains(t, out, "Gold: 1,250")
	assert.Contains(t, out, "  - Rope\n  - Dagger\n")
}

func TestRenderEmptyBattle(t *testing.T) {
	out := renderBattle(&v1alpha1.Battle{BattleID: "battle_2", Phase: entities.PhaseEmpty})

	assert.Equal(t, "Battle battle_2  phase: empty\nNo participants\nGold: 0\nItems: none\n", out)
	assert.Empty(t, renderBattle(nil))
}
