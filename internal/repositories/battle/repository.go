// Package battle stores battle sessions, in process memory or in redis with
// an idle expiry
package battle

import (
	"context"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// Repository defines the storage interface for battle sessions
type Repository interface {
	// Create stores a new battle
	// Returns errors.AlreadyExists if the id is taken
	Create(ctx context.Context, input *CreateInput) (*CreateOutput, error)

	// Get retrieves a battle by ID
	// Returns errors.NotFound if the battle doesn't exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Update replaces the state of an existing battle
	// Returns errors.NotFound if the battle doesn't exist
	Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error)

	// Delete removes a battle
	// Returns errors.NotFound if the battle doesn't exist
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the request for creating a battle
type CreateInput struct {
	Battle *entities.Battle
}

// CreateOutput defines the response for creating a battle
type CreateOutput struct {
	Battle *entities.Battle
}

// GetInput defines the request for retrieving a battle
type GetInput struct {
	BattleID string
}

// GetOutput defines the response for retrieving a battle
type GetOutput struct {
	Battle *entities.Battle
}

// UpdateInput defines the request for updating a battle
type UpdateInput struct {
	Battle *entities.Battle
}

// UpdateOutput defines the response for updating a battle
type UpdateOutput struct {
	Battle *entities.Battle
}

// DeleteInput defines the request for deleting a battle
type DeleteInput struct {
	BattleID string
}

// DeleteOutput defines the response for deleting a battle
type DeleteOutput struct{}
