// Package battle implements the battle orchestrator: one session per battle,
// each operation a single engine transition.
package battle

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/KirkDiggler/rpg-sheets/internal/orchestrators/battle Service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-sheets/internal/engine"
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/battle"
	"github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
)

const errBattleIDRequired = "battle ID is required"

// Service defines the interface for battle operations
type Service interface {
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error)
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)
	StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error)
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)
	ResetBattle(ctx context.Context, input *ResetBattleInput) (*ResetBattleOutput, error)
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)

	// ListCombatants returns every stored character as a pick-list sorted by label
	ListCombatants(ctx context.Context, input *ListCombatantsInput) (*ListCombatantsOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	Engine      engine.Engine
	Battles     battlerepo.Repository
	Characters  character.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Battles == nil {
		vb.RequiredField("Battles")
	}
	if c.Characters == nil {
		vb.RequiredField("Characters")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	engine     engine.Engine
	battles    battlerepo.Repository
	characters character.Repository
	idGen      idgen.Generator
	clock      clock.Clock

	// mu serializes operations so a load, transition and save never interleave
	mu sync.Mutex
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &orchestrator{
		engine:     cfg.Engine,
		battles:    cfg.Battles,
		characters: cfg.Characters,
		idGen:      cfg.IDGenerator,
		clock:      c,
	}, nil
}

func (o *orchestrator) CreateBattle(ctx context.Context, _ *CreateBattleInput) (*CreateBattleOutput, error) {
	now := o.clock.Now()
	b := &entities.Battle{
		ID:        o.idGen.Generate(),
		State:     entities.NewBattleState(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := o.battles.Create(ctx, &battlerepo.CreateInput{Battle: b}); err != nil {
		return nil, errors.Wrap(err, "failed to create battle")
	}

	slog.InfoContext(ctx, "battle created", "battle_id", b.ID)

	return &CreateBattleOutput{Battle: snapshot(b)}, nil
}

func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}
	return &GetBattleOutput{Battle: snapshot(b)}, nil
}

func (o *orchestrator) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	sel := input.Selector
	if sel == nil && input.Label != "" {
		if parsed, ok := entities.ParseLabel(input.Label); ok {
			sel = &parsed
		} else {
			slog.DebugContext(ctx, "ignoring malformed combatant label", "label", input.Label)
		}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Add(ctx, &engine.AddInput{State: b.State, Selector: sel})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add participant")
	}

	if out.Added == nil {
		return &AddParticipantOutput{Battle: snapshot(b)}, nil
	}

	b, err = o.save(ctx, b, out.State)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "participant added",
		"battle_id", b.ID,
		"participant_id", out.Added.ID,
		"name", out.Added.Name,
		"category", out.Added.Category)

	return &AddParticipantOutput{Battle: snapshot(b), Added: out.Added}, nil
}

func (o *orchestrator) StartBattle(ctx context.Context, input *StartBattleInput) (*StartBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Start(ctx, &engine.StartInput{State: b.State, Edits: input.Edits})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start battle")
	}

	b, err = o.save(ctx, b, out.State)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle started",
		"battle_id", b.ID,
		"participants", len(b.State.Roster))

	return &StartBattleOutput{Battle: snapshot(b)}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Advance(ctx, &engine.AdvanceInput{State: b.State, Edits: input.Edits})
	if err != nil {
		return nil, errors.Wrap(err, "failed to advance battle")
	}

	b, err = o.save(ctx, b, out.State)
	if err != nil {
		return nil, err
	}

	defeated := make([]string, len(out.Defeated))
	for i, p := range out.Defeated {
		defeated[i] = p.Name
	}

	slog.InfoContext(ctx, "turn advanced",
		"battle_id", b.ID,
		"turn", b.State.Turn,
		"defeated", len(defeated),
		"gold_collected", out.Loot.Gold)

	return &NextTurnOutput{
		Battle:   snapshot(b),
		Defeated: defeated,
		Loot:     out.Loot,
	}, nil
}

func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.RollInitiative(ctx, &engine.RollInitiativeInput{
		State:     b.State,
		Overwrite: input.Overwrite,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll initiative")
	}

	b, err = o.save(ctx, b, out.State)
	if err != nil {
		return nil, err
	}

	return &RollInitiativeOutput{Battle: snapshot(b), Rolled: out.Rolled}, nil
}

func (o *orchestrator) ResetBattle(ctx context.Context, input *ResetBattleInput) (*ResetBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	b, err := o.load(ctx, input.BattleID)
	if err != nil {
		return nil, err
	}

	out, err := o.engine.Reset(ctx, &engine.ResetInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to reset battle")
	}

	b, err = o.save(ctx, b, out.State)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle reset", "battle_id", b.ID)

	return &ResetBattleOutput{Battle: snapshot(b)}, nil
}

func (o *orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDRequired)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.battles.Delete(ctx, &battlerepo.DeleteInput{BattleID: input.BattleID}); err != nil {
		return nil, errors.Wrapf(err, "failed to end battle %s", input.BattleID)
	}

	slog.InfoContext(ctx, "battle ended", "battle_id", input.BattleID)

	return &EndBattleOutput{}, nil
}

func (o *orchestrator) ListCombatants(ctx context.Context, _ *ListCombatantsInput) (*ListCombatantsOutput, error) {
	combatants := []Combatant{}

	for _, category := range entities.Categories() {
		out, err := o.characters.List(ctx, character.ListInput{Category: category})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list %s records", category)
		}
		for _, name := range out.Names {
			sel := entities.Selector{Category: category, Name: name}
			combatants = append(combatants, Combatant{Selector: sel, Label: sel.Label()})
		}
	}

	sort.Slice(combatants, func(i, j int) bool {
		return combatants[i].Label < combatants[j].Label
	})

	return &ListCombatantsOutput{Combatants: combatants}, nil
}

func (o *orchestrator) load(ctx context.Context, battleID string) (*entities.Battle, error) {
	if battleID == "" {
		return nil, errors.InvalidArgument(errBattleIDRequired)
	}

	out, err := o.battles.Get(ctx, &battlerepo.GetInput{BattleID: battleID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load battle %s", battleID)
	}
	return out.Battle, nil
}

func (o *orchestrator) save(ctx context.Context, b *entities.Battle, state entities.BattleState) (*entities.Battle, error) {
	next := b.Clone()
	next.State = state
	next.UpdatedAt = o.clock.Now()

	out, err := o.battles.Update(ctx, &battlerepo.UpdateInput{Battle: next})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save battle %s", b.ID)
	}
	return out.Battle, nil
}

func snapshot(b *entities.Battle) *Snapshot {
	rows := b.State.Roster.Rows()

	var current *entities.Row
	if len(rows) > 0 {
		head := rows[0]
		current = &head
	}

	return &Snapshot{
		BattleID:    b.ID,
		Phase:       b.State.Phase,
		Turn:        b.State.Turn,
		Rows:        rows,
		Accumulator: b.State.Accumulator,
		Current:     current,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
