package v1alpha1_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/battle"
	battlemock "github.com/KirkDiggler/rpg-sheets/internal/orchestrators/battle/mock"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character"
	charactermock "github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character/mock"
	"github.com/KirkDiggler/rpg-sheets/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	mockCharacters   *charactermock.MockService
	mockBattles      *battlemock.MockService
	characterHandler *v1alpha1.CharacterHandler
	battleHandler    *v1alpha1.BattleHandler
	ctx              context.Context
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharacters = charactermock.NewMockService(s.ctrl)
	s.mockBattles = battlemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.characterHandler, err = v1alpha1.NewCharacterHandler(&v1alpha1.CharacterHandlerConfig{
		CharacterService: s.mockCharacters,
	})
	s.Require().NoError(err)

	s.battleHandler, err = v1alpha1.NewBattleHandler(&v1alpha1.BattleHandlerConfig{
		BattleService: s.mockBattles,
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestNewHandlersRequireServices() {
	_, err := v1alpha1.NewCharacterHandler(&v1alpha1.CharacterHandlerConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewBattleHandler(nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestSaveCharacter() {
	aria := testutils.NewTestPlayer("Aria")

	s.mockCharacters.EXPECT().
		SaveCharacter(s.ctx, &character.SaveCharacterInput{
			Category:  entities.CategoryPlayer,
			Character: aria,
		}).
		Return(&character.SaveCharacterOutput{
			Character: aria,
			Message:   "Character Aria saved successfully!",
		}, nil)

	resp, err := s.characterHandler.SaveCharacter(s.ctx, &v1alpha1.SaveCharacterRequest{
		Category:  " Player ",
		Character: aria,
	})
	s.Require().NoError(err)
	s.Equal("Character Aria saved successfully!", resp.Message)
	s.Equal(aria, resp.Character)
}

func (s *HandlerTestSuite) TestSaveCharacterRequiresCharacter() {
	_, err := s.characterHandler.SaveCharacter(s.ctx, &v1alpha1.SaveCharacterRequest{Category: "player"})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestCharacterRequestValidation() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "get with unknown category",
			call: func() error {
				_, err := s.characterHandler.GetCharacter(s.ctx, &v1alpha1.GetCharacterRequest{Category: "dragon", Name: "x"})
				return err
			},
		},
		{
			name: "get without name",
			call: func() error {
				_, err := s.characterHandler.GetCharacter(s.ctx, &v1alpha1.GetCharacterRequest{Category: "npc"})
				return err
			},
		},
		{
			name: "delete without name",
			call: func() error {
				_, err := s.characterHandler.DeleteCharacter(s.ctx, &v1alpha1.DeleteCharacterRequest{Category: "enemy"})
				return err
			},
		},
		{
			name: "list with empty category",
			call: func() error {
				_, err := s.characterHandler.ListCharacters(s.ctx, &v1alpha1.ListCharactersRequest{})
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(codes.InvalidArgument, status.Code(tc.call()))
		})
	}
}

func (s *HandlerTestSuite) TestGetCharacterNotFoundCarriesMeta() {
	s.mockCharacters.EXPECT().
		GetCharacter(s.ctx, &character.GetCharacterInput{Category: entities.CategoryNPC, Name: "nobody"}).
		Return(nil, errors.NotFound("Character not found!").WithMeta("category", "npc"))

	_, err := s.characterHandler.GetCharacter(s.ctx, &v1alpha1.GetCharacterRequest{
		Category: "npc",
		Name:     "nobody",
	})
	s.Require().Error(err)

	st, ok := status.FromError(err)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("Character not found!", st.Message())

	converted := errors.FromGRPCError(err)
	s.True(errors.IsNotFound(converted))
	s.Equal("npc", errors.GetMeta(converted)["category"])
}

func (s *HandlerTestSuite) TestDeleteCharacter() {
	s.mockCharacters.EXPECT().
		DeleteCharacter(s.ctx, &character.DeleteCharacterInput{Category: entities.CategoryEnemy, Name: "Goblin"}).
		Return(&character.DeleteCharacterOutput{Message: "Character Goblin deleted.", Names: []string{"orc"}}, nil)

	resp, err := s.characterHandler.DeleteCharacter(s.ctx, &v1alpha1.DeleteCharacterRequest{
		Category: "enemy",
		Name:     "Goblin",
	})
	s.Require().NoError(err)
	s.Equal("Character Goblin deleted.", resp.Message)
	s.Equal([]string{"orc"}, resp.Names)
}

func (s *HandlerTestSuite) TestBattleRequestsRequireID() {
	_, err := s.battleHandler.GetBattle(s.ctx, &v1alpha1.GetBattleRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.battleHandler.NextTurn(s.ctx, &v1alpha1.NextTurnRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.battleHandler.EndBattle(s.ctx, &v1alpha1.EndBattleRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestGetBattleConvertsSnapshot() {
	at := time.Date(2026, 5, 4, 18, 30, 0, 0, time.UTC)
	row := entities.Row{ParticipantID: "p_1", Category: entities.CategoryPlayer, Name: "Aria", TotalInitiative: 14}

	s.mockBattles.EXPECT().
		GetBattle(s.ctx, &battle.GetBattleInput{BattleID: "battle_1"}).
		Return(&battle.GetBattleOutput{Battle: &battle.Snapshot{
			BattleID:  "battle_1",
			Phase:     entities.PhaseActive,
			Turn:      2,
			Rows:      []entities.Row{row},
			Current:   &row,
			CreatedAt: at,
			UpdatedAt: at,
		}}, nil)

	resp, err := s.battleHandler.GetBattle(s.ctx, &v1alpha1.GetBattleRequest{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.Equal(&v1alpha1.Battle{
		BattleID:  "battle_1",
		Phase:     entities.PhaseActive,
		Turn:      2,
		Rows:      []entities.Row{row},
		Current:   &row,
		CreatedAt: at,
		UpdatedAt: at,
	}, resp.Battle)
}

func (s *HandlerTestSuite) TestGetBattleUnknownID() {
	s.mockBattles.EXPECT().
		GetBattle(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFoundf("battle %s not found", "nope"))

	_, err := s.battleHandler.GetBattle(s.ctx, &v1alpha1.GetBattleRequest{BattleID: "nope"})
	s.Equal(codes.NotFound, status.Code(err))
}

func (s *HandlerTestSuite) TestNextTurnDefaultsDefeated() {
	s.mockBattles.EXPECT().
		NextTurn(s.ctx, &battle.NextTurnInput{BattleID: "battle_1"}).
		Return(&battle.NextTurnOutput{Battle: &battle.Snapshot{BattleID: "battle_1"}}, nil)

	resp, err := s.battleHandler.NextTurn(s.ctx, &v1alpha1.NextTurnRequest{BattleID: "battle_1"})
	s.Require().NoError(err)
	s.NotNil(resp.Defeated)
	s.Empty(resp.Defeated)
	s.NotNil(resp.Battle.Rows)
}

func (s *HandlerTestSuite) TestListCombatants() {
	s.mockBattles.EXPECT().
		ListCombatants(s.ctx, &battle.ListCombatantsInput{}).
		Return(&battle.ListCombatantsOutput{Combatants: []battle.Combatant{
			{Selector: entities.Selector{Category: entities.CategoryEnemy, Name: "goblin"}, Label: "goblin (enemy)"},
		}}, nil)

	resp, err := s.battleHandler.ListCombatants(s.ctx, &v1alpha1.ListCombatantsRequest{})
	s.Require().NoError(err)
	s.Equal([]*v1alpha1.Combatant{
		{Category: entities.CategoryEnemy, Name: "goblin", Label: "goblin (enemy)"},
	}, resp.Combatants)
}
