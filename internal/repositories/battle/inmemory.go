package battle

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
)

const (
	errInputRequired = "input is required"
	errBattleNil     = "battle is required"
	errBattleIDEmpty = "battle ID is required"
)

// InMemoryRepository implements Repository using in-memory storage. Battles
// are copied in and out so callers never share roster slices.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*entities.Battle
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*entities.Battle),
	}
}

// Create stores a new battle
func (r *InMemoryRepository) Create(_ context.Context, input *CreateInput) (*CreateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Battle.ID]; exists {
		return nil, errors.AlreadyExists("battle already exists").
			WithMeta("battle_id", input.Battle.ID)
	}
	r.store[input.Battle.ID] = input.Battle.Clone()

	return &CreateOutput{Battle: input.Battle.Clone()}, nil
}

// Get retrieves a battle by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, exists := r.store[input.BattleID]
	if !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}

	return &GetOutput{Battle: b.Clone()}, nil
}

// Update replaces the state of an existing battle
func (r *InMemoryRepository) Update(_ context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Battle.ID]; !exists {
		return nil, errors.NotFoundf("battle %s not found", input.Battle.ID)
	}
	r.store[input.Battle.ID] = input.Battle.Clone()

	return &UpdateOutput{Battle: input.Battle.Clone()}, nil
}

// Delete removes a battle
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.BattleID]; !exists {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}
	delete(r.store, input.BattleID)

	return &DeleteOutput{}, nil
}
