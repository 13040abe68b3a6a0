package battle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-sheets/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-sheets/internal/engine/mock"
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/battle"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheets/internal/pkg/idgen"
	battlerepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/battle"
	"github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
	charactermock "github.com/KirkDiggler/rpg-sheets/internal/repositories/character/mock"
)

var testTime = time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockEngine   *enginemock.MockEngine
	mockChars    *charactermock.MockRepository
	battles      *battlerepo.InMemoryRepository
	orchestrator battle.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEngine = enginemock.NewMockEngine(s.ctrl)
	s.mockChars = charactermock.NewMockRepository(s.ctrl)
	s.battles = battlerepo.NewInMemory()
	s.ctx = context.Background()

	orch, err := battle.NewOrchestrator(&battle.Config{
		Engine:      s.mockEngine,
		Battles:     s.battles,
		Characters:  s.mockChars,
		IDGenerator: idgen.NewSequential("battle"),
		Clock:       clock.NewFixed(testTime),
	})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) createBattle() string {
	out, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)
	return out.Battle.BattleID
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := battle.NewOrchestrator(&battle.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestCreateBattle() {
	out, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)

	s.Equal("battle_1", out.Battle.BattleID)
	s.Equal(entities.PhaseEmpty, out.Battle.Phase)
	s.Empty(out.Battle.Rows)
	s.Nil(out.Battle.Current)
	s.Equal(testTime, out.Battle.CreatedAt)
}

func (s *OrchestratorTestSuite) TestUnknownBattleIsNotFound() {
	testCases := []struct {
		name string
		call func() error
	}{
		{"get", func() error {
			_, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: "nope"})
			return err
		}},
		{"add", func() error {
			_, err := s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{BattleID: "nope", Label: "Hero (player)"})
			return err
		}},
		{"start", func() error {
			_, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{BattleID: "nope"})
			return err
		}},
		{"next", func() error {
			_, err := s.orchestrator.NextTurn(s.ctx, &battle.NextTurnInput{BattleID: "nope"})
			return err
		}},
		{"roll", func() error {
			_, err := s.orchestrator.RollInitiative(s.ctx, &battle.RollInitiativeInput{BattleID: "nope"})
			return err
		}},
		{"reset", func() error {
			_, err := s.orchestrator.ResetBattle(s.ctx, &battle.ResetBattleInput{BattleID: "nope"})
			return err
		}},
		{"end", func() error {
			_, err := s.orchestrator.EndBattle(s.ctx, &battle.EndBattleInput{BattleID: "nope"})
			return err
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsNotFound(tc.call()))
		})
	}
}

func (s *OrchestratorTestSuite) TestEmptyBattleIDIsInvalid() {
	_, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.orchestrator.EndBattle(s.ctx, &battle.EndBattleInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestAddParticipantParsesLabel() {
	id := s.createBattle()
	added := &entities.Participant{ID: "p_1", Category: entities.CategoryEnemy, Name: "Cave Goblin", CurrentHP: 7}

	s.mockEngine.EXPECT().
		Add(s.ctx, &engine.AddInput{
			State:    entities.NewBattleState(),
			Selector: &entities.Selector{Category: entities.CategoryEnemy, Name: "Cave Goblin"},
		}).
		Return(&engine.AddOutput{
			State: entities.BattleState{Phase: entities.PhaseStaged, Roster: entities.Roster{*added}},
			Added: added,
		}, nil)

	out, err := s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{
		BattleID: id,
		Label:    "Cave Goblin (enemy)",
	})
	s.Require().NoError(err)

	s.Equal(added, out.Added)
	s.Equal(entities.PhaseStaged, out.Battle.Phase)
	s.Require().NotNil(out.Battle.Current)
	s.Equal("p_1", out.Battle.Current.ParticipantID)

	stored, err := s.battles.Get(s.ctx, &battlerepo.GetInput{BattleID: id})
	s.Require().NoError(err)
	s.Len(stored.Battle.State.Roster, 1)
}

func (s *OrchestratorTestSuite) TestAddParticipantMalformedLabelPassesNoSelector() {
	id := s.createBattle()

	s.mockEngine.EXPECT().
		Add(s.ctx, &engine.AddInput{State: entities.NewBattleState()}).
		Return(&engine.AddOutput{State: entities.NewBattleState()}, nil)

	out, err := s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{
		BattleID: id,
		Label:    "Smaug (dragon)",
	})
	s.Require().NoError(err)
	s.Nil(out.Added)
	s.Equal(entities.PhaseEmpty, out.Battle.Phase)
}

func (s *OrchestratorTestSuite) TestAddParticipantEngineErrorKeepsState() {
	id := s.createBattle()

	s.mockEngine.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("store unavailable"))

	_, err := s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{
		BattleID: id,
		Selector: &entities.Selector{Category: entities.CategoryPlayer, Name: "Hero"},
	})
	s.Require().Error(err)
	s.True(errors.IsInternal(err))

	stored, err := s.battles.Get(s.ctx, &battlerepo.GetInput{BattleID: id})
	s.Require().NoError(err)
	s.Equal(entities.NewBattleState(), stored.Battle.State)
}

func (s *OrchestratorTestSuite) TestNextTurnReportsDefeated() {
	id := s.createBattle()
	edits := []entities.RowEdit{{ParticipantID: "p_2", DamageTaken: "9"}}

	s.mockEngine.EXPECT().
		Advance(s.ctx, &engine.AdvanceInput{State: entities.NewBattleState(), Edits: edits}).
		Return(&engine.AdvanceOutput{
			State: entities.BattleState{
				Phase:       entities.PhaseActive,
				Turn:        2,
				Roster:      entities.Roster{{ID: "p_1", Name: "Hero", CurrentHP: 10}},
				Accumulator: entities.Accumulator{Gold: 15, Items: "Sword"},
			},
			Defeated: []entities.Participant{{ID: "p_2", Name: "Goblin"}},
			Loot:     entities.Accumulator{Gold: 15, Items: "Sword"},
		}, nil)

	out, err := s.orchestrator.NextTurn(s.ctx, &battle.NextTurnInput{BattleID: id, Edits: edits})
	s.Require().NoError(err)

	s.Equal([]string{"Goblin"}, out.Defeated)
	s.Equal(15, out.Loot.Gold)
	s.Equal(entities.Accumulator{Gold: 15, Items: "Sword"}, out.Battle.Accumulator)
	s.Equal(2, out.Battle.Turn)
	s.Equal("p_1", out.Battle.Current.ParticipantID)
}

func (s *OrchestratorTestSuite) TestEndBattleDropsSession() {
	id := s.createBattle()

	_, err := s.orchestrator.EndBattle(s.ctx, &battle.EndBattleInput{BattleID: id})
	s.Require().NoError(err)

	_, err = s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: id})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListCombatantsSortedByLabel() {
	s.mockChars.EXPECT().
		List(s.ctx, character.ListInput{Category: entities.CategoryPlayer}).
		Return(&character.ListOutput{Names: []string{"zed", "aria"}}, nil)
	s.mockChars.EXPECT().
		List(s.ctx, character.ListInput{Category: entities.CategoryNPC}).
		Return(&character.ListOutput{Names: []string{"barkeep"}}, nil)
	s.mockChars.EXPECT().
		List(s.ctx, character.ListInput{Category: entities.CategoryEnemy}).
		Return(&character.ListOutput{Names: []string{"goblin", "aria"}}, nil)

	out, err := s.orchestrator.ListCombatants(s.ctx, &battle.ListCombatantsInput{})
	s.Require().NoError(err)

	var labels []string
	for _, c := range out.Combatants {
		labels = append(labels, c.Label)
	}
	s.Equal([]string{
		"aria (enemy)",
		"aria (player)",
		"barkeep (npc)",
		"goblin (enemy)",
		"zed (player)",
	}, labels)
	s.Equal(entities.Selector{Category: entities.CategoryEnemy, Name: "aria"}, out.Combatants[0].Selector)
}

func (s *OrchestratorTestSuite) TestListCombatantsStoreError() {
	s.mockChars.EXPECT().
		List(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("boom"))

	_, err := s.orchestrator.ListCombatants(s.ctx, &battle.ListCombatantsInput{})
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestNilInput() {
	_, err := s.orchestrator.StartBattle(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

// FlowTestSuite drives the orchestrator with the real engine and a filesystem store
type FlowTestSuite struct {
	suite.Suite
	ctx          context.Context
	chars        character.Repository
	clock        *clock.Fixed
	orchestrator battle.Service
}

func TestFlowSuite(t *testing.T) {
	suite.Run(t, new(FlowTestSuite))
}

func (s *FlowTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFixed(testTime)

	chars, err := character.NewFilesystem(&character.FilesystemConfig{BasePath: s.T().TempDir()})
	s.Require().NoError(err)
	s.chars = chars

	e, err := engine.New(&engine.Config{
		Characters:  chars,
		IDGenerator: idgen.NewSequential("p"),
	})
	s.Require().NoError(err)

	orch, err := battle.NewOrchestrator(&battle.Config{
		Engine:      e,
		Battles:     battlerepo.NewInMemory(),
		Characters:  chars,
		IDGenerator: idgen.NewSequential("battle"),
		Clock:       s.clock,
	})
	s.Require().NoError(err)
	s.orchestrator = orch

	hero := entities.NewCharacter(entities.CategoryPlayer)
	hero.Name = "Hero"
	hero.InitiativeBonus = 3
	s.save(hero)

	goblin := entities.NewCharacter(entities.CategoryEnemy)
	goblin.Name = "Goblin"
	goblin.HitPointsCurrent = 5
	goblin.Gold = 15
	goblin.Equipment = "Sword, Shield"
	s.save(goblin)
}

func (s *FlowTestSuite) save(c *entities.Character) {
	_, err := s.chars.Save(s.ctx, character.SaveInput{Category: c.Type, Character: c})
	s.Require().NoError(err)
}

func (s *FlowTestSuite) TestFullBattle() {
	created, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)
	id := created.Battle.BattleID

	for _, label := range []string{"Goblin (enemy)", "Hero (player)", "Hero (player)"} {
		_, err := s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{BattleID: id, Label: label})
		s.Require().NoError(err)
	}

	got, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: id})
	s.Require().NoError(err)
	s.Len(got.Battle.Rows, 2)
	s.Equal(entities.PhaseStaged, got.Battle.Phase)

	started, err := s.orchestrator.StartBattle(s.ctx, &battle.StartBattleInput{
		BattleID: id,
		Edits: []entities.RowEdit{
			{ParticipantID: "p_1", RolledInitiative: "4"},
			{ParticipantID: "p_2", RolledInitiative: "10"},
		},
	})
	s.Require().NoError(err)
	s.Equal("Hero", started.Battle.Current.Name)
	s.Equal(13, started.Battle.Current.TotalInitiative)

	next, err := s.orchestrator.NextTurn(s.ctx, &battle.NextTurnInput{
		BattleID: id,
		Edits:    []entities.RowEdit{{ParticipantID: "p_1", DamageTaken: "8"}},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Goblin"}, next.Defeated)
	s.Equal(entities.Accumulator{Gold: 15, Items: "Sword\nShield"}, next.Battle.Accumulator)
	s.Len(next.Battle.Rows, 1)

	s.clock.Advance(time.Minute)
	reset, err := s.orchestrator.ResetBattle(s.ctx, &battle.ResetBattleInput{BattleID: id})
	s.Require().NoError(err)
	s.Equal(testTime, reset.Battle.CreatedAt)
	s.Equal(testTime.Add(time.Minute), reset.Battle.UpdatedAt)
	s.Empty(reset.Battle.Rows)
	s.Equal(entities.Accumulator{}, reset.Battle.Accumulator)
	s.Equal(entities.PhaseEmpty, reset.Battle.Phase)
}

func (s *FlowTestSuite) TestSessionsAreIndependent() {
	a, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)
	b, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)

	_, err = s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{
		BattleID: a.Battle.BattleID,
		Selector: &entities.Selector{Category: entities.CategoryPlayer, Name: "Hero"},
	})
	s.Require().NoError(err)

	got, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: b.Battle.BattleID})
	s.Require().NoError(err)
	s.Empty(got.Battle.Rows)
}

func (s *FlowTestSuite) TestConcurrentAddsAllLand() {
	created, err := s.orchestrator.CreateBattle(s.ctx, &battle.CreateBattleInput{})
	s.Require().NoError(err)
	id := created.Battle.BattleID

	const adds = 20
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.orchestrator.AddParticipant(s.ctx, &battle.AddParticipantInput{
				BattleID: id,
				Selector: &entities.Selector{Category: entities.CategoryEnemy, Name: "Goblin"},
			})
		}()
	}
	wg.Wait()

	got, err := s.orchestrator.GetBattle(s.ctx, &battle.GetBattleInput{BattleID: id})
	s.Require().NoError(err)
	s.Len(got.Battle.Rows, adds)
}
