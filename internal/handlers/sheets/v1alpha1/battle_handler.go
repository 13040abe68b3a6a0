package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/battle"
)

// BattleHandlerConfig holds dependencies for the battle handler
type BattleHandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *BattleHandlerConfig) Validate() error {
	if c == nil || c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// BattleHandler implements the battle gRPC service
type BattleHandler struct {
	battleService battle.Service
}

// NewBattleHandler creates a new battle handler with the given configuration
func NewBattleHandler(cfg *BattleHandlerConfig) (*BattleHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &BattleHandler{
		battleService: cfg.BattleService,
	}, nil
}

// CreateBattle opens a new battle session
func (h *BattleHandler) CreateBattle(
	ctx context.Context,
	_ *CreateBattleRequest,
) (*CreateBattleResponse, error) {
	output, err := h.battleService.CreateBattle(ctx, &battle.CreateBattleInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &CreateBattleResponse{Battle: convertSnapshot(output.Battle)}, nil
}

// GetBattle reads a battle without changing it
func (h *BattleHandler) GetBattle(
	ctx context.Context,
	req *GetBattleRequest,
) (*GetBattleResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.GetBattle(ctx, &battle.GetBattleInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetBattleResponse{Battle: convertSnapshot(output.Battle)}, nil
}

// ListCombatants returns the pick-list of every stored character
func (h *BattleHandler) ListCombatants(
	ctx context.Context,
	_ *ListCombatantsRequest,
) (*ListCombatantsResponse, error) {
	output, err := h.battleService.ListCombatants(ctx, &battle.ListCombatantsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	combatants := make([]*Combatant, 0, len(output.Combatants))
	for _, c := range output.Combatants {
		combatants = append(combatants, &Combatant{
			Category: c.Selector.Category,
			Name:     c.Selector.Name,
			Label:    c.Label,
		})
	}

	return &ListCombatantsResponse{Combatants: combatants}, nil
}

// AddParticipant stages a stored character into the battle
func (h *BattleHandler) AddParticipant(
	ctx context.Context,
	req *AddParticipantRequest,
) (*AddParticipantResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.AddParticipant(ctx, &battle.AddParticipantInput{
		BattleID: req.BattleID,
		Selector: req.Selector,
		Label:    req.Label,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &AddParticipantResponse{
		Battle: convertSnapshot(output.Battle),
		Added:  output.Added,
	}, nil
}

// RollInitiative rolls a d20 for participants without a rolled value
func (h *BattleHandler) RollInitiative(
	ctx context.Context,
	req *RollInitiativeRequest,
) (*RollInitiativeResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.RollInitiative(ctx, &battle.RollInitiativeInput{
		BattleID:  req.BattleID,
		Overwrite: req.Overwrite,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &RollInitiativeResponse{
		Battle: convertSnapshot(output.Battle),
		Rolled: output.Rolled,
	}, nil
}

// StartBattle applies edits, orders the roster and begins turn tracking
func (h *BattleHandler) StartBattle(
	ctx context.Context,
	req *StartBattleRequest,
) (*StartBattleResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.StartBattle(ctx, &battle.StartBattleInput{
		BattleID: req.BattleID,
		Edits:    req.Edits,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &StartBattleResponse{Battle: convertSnapshot(output.Battle)}, nil
}

// NextTurn applies edits, removes the defeated and rotates the roster
func (h *BattleHandler) NextTurn(
	ctx context.Context,
	req *NextTurnRequest,
) (*NextTurnResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.NextTurn(ctx, &battle.NextTurnInput{
		BattleID: req.BattleID,
		Edits:    req.Edits,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	defeated := output.Defeated
	if defeated == nil {
		defeated = []string{}
	}

	return &NextTurnResponse{
		Battle:   convertSnapshot(output.Battle),
		Defeated: defeated,
		Loot:     output.Loot,
	}, nil
}

// ResetBattle clears the battle back to empty
func (h *BattleHandler) ResetBattle(
	ctx context.Context,
	req *ResetBattleRequest,
) (*ResetBattleResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.ResetBattle(ctx, &battle.ResetBattleInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ResetBattleResponse{Battle: convertSnapshot(output.Battle)}, nil
}

// EndBattle discards the battle session
func (h *BattleHandler) EndBattle(
	ctx context.Context,
	req *EndBattleRequest,
) (*EndBattleResponse, error) {
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	if _, err := h.battleService.EndBattle(ctx, &battle.EndBattleInput{BattleID: req.BattleID}); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &EndBattleResponse{}, nil
}

func convertSnapshot(s *battle.Snapshot) *Battle {
	if s == nil {
		return nil
	}

	rows := s.Rows
	if rows == nil {
		rows = []entities.Row{}
	}

	return &Battle{
		BattleID:    s.BattleID,
		Phase:       s.Phase,
		Turn:        s.Turn,
		Rows:        rows,
		Accumulator: s.Accumulator,
		Current:     s.Current,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
