package v1alpha1

import (
	"time"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// SaveCharacterRequest stores a sheet; Category defaults to the sheet's type
type SaveCharacterRequest struct {
	Category  string              `json:"category,omitempty"`
	Character *entities.Character `json:"character"`
}

// SaveCharacterResponse carries the stored sheet and a status line
type SaveCharacterResponse struct {
	Character *entities.Character `json:"character"`
	Message   string              `json:"message"`
}

// GetCharacterRequest addresses one sheet
type GetCharacterRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// GetCharacterResponse carries the loaded sheet
type GetCharacterResponse struct {
	Character *entities.Character `json:"character"`
}

// DeleteCharacterRequest addresses one sheet
type DeleteCharacterRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

// DeleteCharacterResponse carries a status line and the refreshed list
type DeleteCharacterResponse struct {
	Message string   `json:"message"`
	Names   []string `json:"names"`
}

// ListCharactersRequest names one category
type ListCharactersRequest struct {
	Category string `json:"category"`
}

// ListCharactersResponse lists sheet names
type ListCharactersResponse struct {
	Names []string `json:"names"`
}

// Battle is the wire form of a battle snapshot
type Battle struct {
	BattleID    string               `json:"battle_id"`
	Phase       entities.Phase       `json:"phase"`
	Turn        int                  `json:"turn"`
	Rows        []entities.Row       `json:"rows"`
	Accumulator entities.Accumulator `json:"accumulator"`
	Current     *entities.Row        `json:"current,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Combatant is one pick-list entry
type Combatant struct {
	Category entities.Category `json:"category"`
	Name     string            `json:"name"`
	Label    string            `json:"label"`
}

type CreateBattleRequest struct{}

type CreateBattleResponse struct {
	Battle *Battle `json:"battle"`
}

type GetBattleRequest struct {
	BattleID string `json:"battle_id"`
}

type GetBattleResponse struct {
	Battle *Battle `json:"battle"`
}

type ListCombatantsRequest struct{}

type ListCombatantsResponse struct {
	Combatants []*Combatant `json:"combatants"`
}

// AddParticipantRequest adds by Selector, or by a "name (category)" Label
type AddParticipantRequest struct {
	BattleID string             `json:"battle_id"`
	Selector *entities.Selector `json:"selector,omitempty"`
	Label    string             `json:"label,omitempty"`
}

// AddParticipantResponse has a nil Added when nothing was added
type AddParticipantResponse struct {
	Battle *Battle                `json:"battle"`
	Added  *entities.Participant `json:"added,omitempty"`
}

type RollInitiativeRequest struct {
	BattleID  string `json:"battle_id"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

type RollInitiativeResponse struct {
	Battle *Battle         `json:"battle"`
	Rolled map[string]int `json:"rolled"`
}

type StartBattleRequest struct {
	BattleID string             `json:"battle_id"`
	Edits    []entities.RowEdit `json:"edits,omitempty"`
}

type StartBattleResponse struct {
	Battle *Battle `json:"battle"`
}

type NextTurnRequest struct {
	BattleID string             `json:"battle_id"`
	Edits    []entities.RowEdit `json:"edits,omitempty"`
}

type NextTurnResponse struct {
	Battle   *Battle              `json:"battle"`
	Defeated []string             `json:"defeated"`
	Loot     entities.Accumulator `json:"loot"`
}

type ResetBattleRequest struct {
	BattleID string `json:"battle_id"`
}

type ResetBattleResponse struct {
	Battle *Battle `json:"battle"`
}

type EndBattleRequest struct {
	BattleID string `json:"battle_id"`
}

type EndBattleResponse struct{}
