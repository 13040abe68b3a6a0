package battle

import (
	"time"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// Snapshot is the externally visible state of one battle
type Snapshot struct {
	BattleID    string
	Phase       entities.Phase
	Turn        int
	Rows        []entities.Row
	Accumulator entities.Accumulator
	// Current is the acting participant; nil for an empty roster
	Current   *entities.Row
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Combatant is one pick-list entry
type Combatant struct {
	Selector entities.Selector
	Label    string
}

// CreateBattleInput defines the request for creating a battle
type CreateBattleInput struct{}

// CreateBattleOutput defines the response for creating a battle
type CreateBattleOutput struct {
	Battle *Snapshot
}

// GetBattleInput defines the request for reading a battle
type GetBattleInput struct {
	BattleID string
}

// GetBattleOutput defines the response for reading a battle
type GetBattleOutput struct {
	Battle *Snapshot
}

// AddParticipantInput defines the request for adding a participant.
// Selector wins over Label; a Label that does not parse adds nothing.
type AddParticipantInput struct {
	BattleID string
	Selector *entities.Selector
	Label    string
}

// AddParticipantOutput defines the response for adding a participant
type AddParticipantOutput struct {
	Battle *Snapshot
	// Added is nil when nothing was added
	Added *entities.Participant
}

// StartBattleInput defines the request for starting a battle
type StartBattleInput struct {
	BattleID string
	Edits    []entities.RowEdit
}

// StartBattleOutput defines the response for starting a battle
type StartBattleOutput struct {
	Battle *Snapshot
}

// NextTurnInput defines the request for advancing a battle
type NextTurnInput struct {
	BattleID string
	Edits    []entities.RowEdit
}

// NextTurnOutput defines the response for advancing a battle
type NextTurnOutput struct {
	Battle *Snapshot
	// Defeated names participants removed this turn
	Defeated []string
	// Loot is what this turn added to the accumulator
	Loot entities.Accumulator
}

// RollInitiativeInput defines the request for rolling initiative
type RollInitiativeInput struct {
	BattleID  string
	Overwrite bool
}

// RollInitiativeOutput defines the response for rolling initiative
type RollInitiativeOutput struct {
	Battle *Snapshot
	Rolled map[string]int
}

// ResetBattleInput defines the request for resetting a battle
type ResetBattleInput struct {
	BattleID string
}

// ResetBattleOutput defines the response for resetting a battle
type ResetBattleOutput struct {
	Battle *Snapshot
}

// EndBattleInput defines the request for ending a battle
type EndBattleInput struct {
	BattleID string
}

// EndBattleOutput defines the response for ending a battle
type EndBattleOutput struct{}

// ListCombatantsInput defines the request for the pick-list
type ListCombatantsInput struct{}

// ListCombatantsOutput defines the response for the pick-list
type ListCombatantsOutput struct {
	Combatants []Combatant
}
