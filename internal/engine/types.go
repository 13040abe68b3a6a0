package engine

import (
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// AddInput contains the state and the record to add
type AddInput struct {
	State entities.BattleState
	// Selector may be nil, which makes the add a no-op
	Selector *entities.Selector
}

// AddOutput contains the next state
type AddOutput struct {
	State entities.BattleState
	Rows  []entities.Row
	// Added is nil when the add was a no-op
	Added *entities.Participant
}

// StartInput contains the state and the edited rows
type StartInput struct {
	State entities.BattleState
	Edits []entities.RowEdit
}

// StartOutput contains the next state
type StartOutput struct {
	State entities.BattleState
	Rows  []entities.Row
}

// AdvanceInput contains the state and the edited rows
type AdvanceInput struct {
	State entities.BattleState
	Edits []entities.RowEdit
}

// AdvanceOutput contains the next state and what happened this turn
type AdvanceOutput struct {
	State entities.BattleState
	Rows  []entities.Row
	// Defeated lists participants removed this turn in roster order
	Defeated []entities.Participant
	// Loot is what this turn's defeated participants contributed
	Loot entities.Accumulator
}

// ResetInput is empty; reset needs no state
type ResetInput struct{}

// ResetOutput contains the cleared state
type ResetOutput struct {
	State entities.BattleState
	Rows  []entities.Row
}

// RollInitiativeInput contains the state to roll for
type RollInitiativeInput struct {
	State entities.BattleState
	// Overwrite rerolls participants that already have a rolled value
	Overwrite bool
}

// RollInitiativeOutput contains the next state
type RollInitiativeOutput struct {
	State entities.BattleState
	Rows  []entities.Row
	// Rolled maps participant id to the new roll
	Rolled map[string]int
}
