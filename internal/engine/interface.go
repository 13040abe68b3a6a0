// Package engine implements the battle state machine: turn order,
// damage, defeat and loot collection.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-sheets/internal/engine Engine

import (
	"context"
)

// Engine applies battle transitions. Every method takes the current state and
// returns the next one; inputs are never mutated. Character records are only
// ever read.
type Engine interface {
	// Add snapshots a character record into the roster.
	// A missing selector, unknown record or invalid selector is a no-op.
	// Other record store failures are returned and the state is unchanged.
	Add(ctx context.Context, input *AddInput) (*AddOutput, error)

	// Start fixes the turn order from the edited rolled initiative values
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Advance applies edited damage, removes defeated participants, collects
	// their loot and rotates the turn to the next participant
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)

	// Reset clears the battle
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	// RollInitiative fills rolled initiative with d20 rolls
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)
}
