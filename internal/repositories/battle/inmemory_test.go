package battle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/repositories/battle"
)

type InMemoryTestSuite struct {
	suite.Suite
	repo *battle.InMemoryRepository
	ctx  context.Context
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryTestSuite))
}

func (s *InMemoryTestSuite) SetupTest() {
	s.repo = battle.NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryTestSuite) newBattle(id string) *entities.Battle {
	return &entities.Battle{ID: id, State: entities.NewBattleState()}
}

func (s *InMemoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, &battle.CreateInput{Battle: s.newBattle("b1")})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &battle.GetInput{BattleID: "b1"})
	s.Require().NoError(err)
	s.Equal("b1", out.Battle.ID)
	s.Equal(entities.PhaseEmpty, out.Battle.State.Phase)
}

func (s *InMemoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, &battle.CreateInput{Battle: s.newBattle("b1")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, &battle.CreateInput{Battle: s.newBattle("b1")})
	s.True(errors.IsAlreadyExists(err))
}

func (s *InMemoryTestSuite) TestStoredCopyIsIsolated() {
	b := s.newBattle("b1")
	b.State.Roster = entities.Roster{{ID: "p_1", CurrentHP: 10}}
	_, err := s.repo.Create(s.ctx, &battle.CreateInput{Battle: b})
	s.Require().NoError(err)

	b.State.Roster[0].CurrentHP = 0

	out, err := s.repo.Get(s.ctx, &battle.GetInput{BattleID: "b1"})
	s.Require().NoError(err)
	s.Equal(10, out.Battle.State.Roster[0].CurrentHP)

	out.Battle.State.Roster[0].CurrentHP = 1
	again, err := s.repo.Get(s.ctx, &battle.GetInput{BattleID: "b1"})
	s.Require().NoError(err)
	s.Equal(10, again.Battle.State.Roster[0].CurrentHP)
}

func (s *InMemoryTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, &battle.CreateInput{Battle: s.newBattle("b1")})
	s.Require().NoError(err)

	updated := s.newBattle("b1")
	updated.State.Phase = entities.PhaseStaged
	_, err = s.repo.Update(s.ctx, &battle.UpdateInput{Battle: updated})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, &battle.GetInput{BattleID: "b1"})
	s.Require().NoError(err)
	s.Equal(entities.PhaseStaged, out.Battle.State.Phase)

	_, err = s.repo.Update(s.ctx, &battle.UpdateInput{Battle: s.newBattle("missing")})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, &battle.CreateInput{Battle: s.newBattle("b1")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, &battle.DeleteInput{BattleID: "b1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, &battle.GetInput{BattleID: "b1"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, &battle.DeleteInput{BattleID: "b1"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryTestSuite) TestInvalidInput() {
	testCases := []struct {
		name string
		call func() error
	}{
		{"nil create", func() error { _, err := s.repo.Create(s.ctx, nil); return err }},
		{"nil battle", func() error { _, err := s.repo.Create(s.ctx, &battle.CreateInput{}); return err }},
		{"empty id", func() error { _, err := s.repo.Get(s.ctx, &battle.GetInput{}); return err }},
		{"nil update", func() error { _, err := s.repo.Update(s.ctx, nil); return err }},
		{"empty delete", func() error { _, err := s.repo.Delete(s.ctx, &battle.DeleteInput{}); return err }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.True(errors.IsInvalidArgument(tc.call()))
		})
	}
}
