package engine

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
)

const (
	initiativeDie = 20
	maxIDAttempts = 8
)

// Config holds the dependencies for the battle engine
type Config struct {
	Characters  character.Repository
	IDGenerator idgen.Generator
	// DiceRoller defaults to dice.DefaultRoller
	DiceRoller dice.Roller
}

// Validate ensures all required dependencies are provided
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Characters == nil {
		vb.RequiredField("Characters")
	}
	if cfg.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	return vb.Build()
}

type engine struct {
	characters character.Repository
	idGen      idgen.Generator
	roller     dice.Roller
}

// New creates a battle engine
func New(cfg *Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.DefaultRoller
	}

	return &engine{
		characters: cfg.Characters,
		idGen:      cfg.IDGenerator,
		roller:     roller,
	}, nil
}

func (e *engine) Add(ctx context.Context, input *AddInput) (*AddOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state := input.State.Clone()
	unchanged := &AddOutput{State: state, Rows: state.Roster.Rows()}

	if input.Selector == nil || !input.Selector.Valid() {
		return unchanged, nil
	}
	sel := *input.Selector

	out, err := e.characters.Get(ctx, character.GetInput{Category: sel.Category, Name: sel.Name})
	if err != nil {
		if errors.IsNotFound(err) || errors.IsInvalidArgument(err) {
			slog.DebugContext(ctx, "add skipped, record unavailable",
				"selector", sel.Label(),
				"error", err)
			return unchanged, nil
		}
		return nil, errors.Wrapf(err, "failed to load %s", sel.Label())
	}

	if sel.Category != entities.CategoryEnemy && state.Roster.Contains(sel) {
		slog.DebugContext(ctx, "add skipped, already in battle", "selector", sel.Label())
		return unchanged, nil
	}

	c := out.Character
	added := entities.Participant{
		ID:             e.nextID(state.Roster),
		Category:       sel.Category,
		Name:           sel.Name,
		BaseInitiative: entities.ClampCell(c.InitiativeBonus),
		ArmorClass:     entities.ClampCell(c.ArmorClass),
		CurrentHP:      entities.ClampCell(c.HitPointsCurrent),
	}

	state.Roster = append(state.Roster, added)
	if state.Phase != entities.PhaseActive {
		state.Phase = entities.PhaseStaged
	}

	slog.DebugContext(ctx, "participant added",
		"participant_id", added.ID,
		"selector", sel.Label(),
		"roster_size", len(state.Roster))

	return &AddOutput{
		State: state,
		Rows:  state.Roster.Rows(),
		Added: &added,
	}, nil
}

// nextID returns a generated id not already used in roster
func (e *engine) nextID(roster entities.Roster) string {
	id := e.idGen.Generate()
	for attempt := 0; attempt < maxIDAttempts && roster.Has(id); attempt++ {
		id = e.idGen.Generate()
	}
	return id
}

func (e *engine) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state := input.State.Clone()
	if len(state.Roster) == 0 {
		return &StartOutput{State: state, Rows: state.Roster.Rows()}, nil
	}

	edits := entities.IndexEdits(input.Edits)
	for i := range state.Roster {
		p := &state.Roster[i]
		p.RolledInitiative = entities.ParseCell(edits[p.ID].RolledInitiative)
		p.TotalInitiative = p.BaseInitiative + p.RolledInitiative
		p.DamageTaken = 0
	}

	sort.SliceStable(state.Roster, func(i, j int) bool {
		return state.Roster[i].TotalInitiative > state.Roster[j].TotalInitiative
	})

	state.Phase = entities.PhaseActive
	state.Turn = 1

	slog.DebugContext(ctx, "battle started",
		"roster_size", len(state.Roster),
		"first", state.Roster[0].Name)

	return &StartOutput{State: state, Rows: state.Roster.Rows()}, nil
}

func (e *engine) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state := input.State.Clone()
	if len(state.Roster) == 0 {
		return &AdvanceOutput{State: state, Rows: state.Roster.Rows()}, nil
	}

	edits := entities.IndexEdits(input.Edits)
	survivors := make(entities.Roster, 0, len(state.Roster))
	var defeated []entities.Participant

	for _, p := range state.Roster {
		p.DamageTaken = entities.ParseCell(edits[p.ID].DamageTaken)
		p.CurrentHP = entities.ClampCell(p.CurrentHP - p.DamageTaken)
		if p.CurrentHP < 0 {
			p.CurrentHP = 0
		}

		if p.CurrentHP > 0 {
			survivors = append(survivors, p)
		} else {
			defeated = append(defeated, p)
		}
	}

	loot := e.collectLoot(ctx, defeated)
	state.Accumulator = state.Accumulator.Collect(loot.Gold, loot.ItemList())

	if len(survivors) == 0 {
		state.Roster = entities.Roster{}
		state.Phase = entities.PhaseEmpty
		state.Turn = 0

		slog.DebugContext(ctx, "battle over, no survivors", "defeated", len(defeated))

		return &AdvanceOutput{
			State:    state,
			Rows:     []entities.Row{},
			Defeated: defeated,
			Loot:     loot,
		}, nil
	}

	survivors = append(survivors[1:], survivors[0])
	for i := range survivors {
		survivors[i].DamageTaken = 0
	}
	state.Roster = survivors
	if state.Phase == entities.PhaseActive {
		state.Turn++
	}

	return &AdvanceOutput{
		State:    state,
		Rows:     state.Roster.Rows(),
		Defeated: defeated,
		Loot:     loot,
	}, nil
}

// collectLoot re-reads each defeated participant's record. Records that are
// gone or unreadable contribute nothing.
func (e *engine) collectLoot(ctx context.Context, defeated []entities.Participant) entities.Accumulator {
	var loot entities.Accumulator

	for _, p := range defeated {
		out, err := e.characters.Get(ctx, character.GetInput{Category: p.Category, Name: p.Name})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.DebugContext(ctx, "no loot, record not found",
					"participant_id", p.ID,
					"name", p.Name)
			} else {
				slog.WarnContext(ctx, "no loot, record unreadable",
					"participant_id", p.ID,
					"name", p.Name,
					"error", err)
			}
			continue
		}

		loot = loot.Collect(out.Character.Gold, out.Character.EquipmentItems())
	}

	return loot
}

func (e *engine) Reset(_ context.Context, _ *ResetInput) (*ResetOutput, error) {
	return &ResetOutput{
		State: entities.NewBattleState(),
		Rows:  []entities.Row{},
	}, nil
}

func (e *engine) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	state := input.State.Clone()
	rolled := make(map[string]int)

	for i := range state.Roster {
		p := &state.Roster[i]
		if p.RolledInitiative != 0 && !input.Overwrite {
			continue
		}

		n, err := e.roller.Roll(initiativeDie)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll initiative for %s", p.Name)
		}
		p.RolledInitiative = n
		rolled[p.ID] = n
	}

	slog.DebugContext(ctx, "initiative rolled", "count", len(rolled))

	return &RollInitiativeOutput{
		State:  state,
		Rows:   state.Roster.Rows(),
		Rolled: rolled,
	}, nil
}
