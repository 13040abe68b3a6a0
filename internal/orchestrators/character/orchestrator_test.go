package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character"
	characterrepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
	repomock "github.com/KirkDiggler/rpg-sheets/internal/repositories/character/mock"
	"github.com/KirkDiggler/rpg-sheets/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *repomock.MockRepository
	orchestrator character.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = repomock.NewMockRepository(s.ctrl)
	s.ctx = context.Background()

	orch, err := character.NewOrchestrator(&character.Config{Characters: s.mockRepo})
	s.Require().NoError(err)
	s.orchestrator = orch
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidation() {
	_, err := character.NewOrchestrator(&character.Config{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSaveCharacter() {
	aria := testutils.NewTestPlayer("Aria")

	s.mockRepo.EXPECT().
		Save(s.ctx, characterrepo.SaveInput{Category: entities.CategoryPlayer, Character: aria}).
		Return(&characterrepo.SaveOutput{Character: aria, Key: "aria"}, nil)

	out, err := s.orchestrator.SaveCharacter(s.ctx, &character.SaveCharacterInput{Character: aria})
	s.Require().NoError(err)
	s.Equal("Character Aria saved successfully!", out.Message)
	s.Equal(aria, out.Character)
}

func (s *OrchestratorTestSuite) TestSaveCharacterValidation() {
	testCases := []struct {
		name     string
		input    *character.SaveCharacterInput
		wantMsg  string
	}{
		{
			name:    "empty name",
			input:   &character.SaveCharacterInput{Character: testutils.NewTestPlayer("")},
			wantMsg: "Character name is required",
		},
		{
			name:    "blank name",
			input:   &character.SaveCharacterInput{Character: testutils.NewTestPlayer("  ")},
			wantMsg: "Character name is required",
		},
		{
			name: "unknown category",
			input: &character.SaveCharacterInput{
				Category:  entities.Category("dragon"),
				Character: testutils.NewTestPlayer("Smaug"),
			},
			wantMsg: "validation failed: category: must be one of player, npc, enemy",
		},
		{
			name:    "nil character",
			input:   &character.SaveCharacterInput{Category: entities.CategoryPlayer},
			wantMsg: "validation failed: character: is required",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.SaveCharacter(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Equal(tc.wantMsg, errors.GetMessage(err))
			s.NotNil(errors.GetMeta(err)["validation_errors"])
		})
	}
}

func (s *OrchestratorTestSuite) TestSaveCharacterStoreError() {
	s.mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("disk full"))

	_, err := s.orchestrator.SaveCharacter(s.ctx, &character.SaveCharacterInput{Character: testutils.NewTestPlayer("Aria")})
	s.True(errors.IsInternal(err))
}

func (s *OrchestratorTestSuite) TestGetCharacterNotFound() {
	s.mockRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{Category: entities.CategoryNPC, Name: "nobody"}).
		Return(nil, errors.NotFound("character nobody not found"))

	_, err := s.orchestrator.GetCharacter(s.ctx, &character.GetCharacterInput{
		Category: entities.CategoryNPC,
		Name:     "nobody",
	})
	s.True(errors.IsNotFound(err))
	s.Equal("Character not found!", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestDeleteCharacterRefreshesList() {
	s.mockRepo.EXPECT().
		Delete(s.ctx, characterrepo.DeleteInput{Category: entities.CategoryEnemy, Name: "Goblin"}).
		Return(&characterrepo.DeleteOutput{}, nil)
	s.mockRepo.EXPECT().
		List(s.ctx, characterrepo.ListInput{Category: entities.CategoryEnemy}).
		Return(&characterrepo.ListOutput{Names: []string{"orc"}}, nil)

	out, err := s.orchestrator.DeleteCharacter(s.ctx, &character.DeleteCharacterInput{
		Category: entities.CategoryEnemy,
		Name:     "Goblin",
	})
	s.Require().NoError(err)
	s.Equal([]string{"orc"}, out.Names)
	s.Equal("Character Goblin deleted.", out.Message)
}

func (s *OrchestratorTestSuite) TestDeleteCharacterNotFound() {
	s.mockRepo.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("missing"))

	_, err := s.orchestrator.DeleteCharacter(s.ctx, &character.DeleteCharacterInput{
		Category: entities.CategoryEnemy,
		Name:     "Goblin",
	})
	s.True(errors.IsNotFound(err))
	s.Equal("Character not found!", errors.GetMessage(err))
}

func (s *OrchestratorTestSuite) TestListCharacters() {
	s.mockRepo.EXPECT().
		List(s.ctx, characterrepo.ListInput{Category: entities.CategoryPlayer}).
		Return(&characterrepo.ListOutput{Names: []string{"aria", "zed"}}, nil)

	out, err := s.orchestrator.ListCharacters(s.ctx, &character.ListCharactersInput{Category: entities.CategoryPlayer})
	s.Require().NoError(err)
	s.Equal([]string{"aria", "zed"}, out.Names)
}
