package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheets/internal/config"
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	battlerepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/battle"
	characterrepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
	"github.com/KirkDiggler/rpg-sheets/internal/testutils"
)

type OpenStoreTestSuite struct {
	suite.Suite
	ctx context.Context
	dir string
}

func TestOpenStoreSuite(t *testing.T) {
	suite.Run(t, new(OpenStoreTestSuite))
}

func (s *OpenStoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.dir = s.T().TempDir()
}

// roundTrip saves and reloads one record through repo
func (s *OpenStoreTestSuite) roundTrip(repo characterrepo.Repository) {
	_, err := repo.Save(s.ctx, characterrepo.SaveInput{Character: testutils.NewTestPlayer("Aria")})
	s.Require().NoError(err)

	got, err := repo.Get(s.ctx, characterrepo.GetInput{Category: entities.CategoryPlayer, Name: "aria"})
	s.Require().NoError(err)
	s.Equal("Aria", got.Character.Name)
}

// battleRoundTrip creates and reloads one battle through repo
func (s *OpenStoreTestSuite) battleRoundTrip(repo battlerepo.Repository) {
	_, err := repo.Create(s.ctx, &battlerepo.CreateInput{Battle: &entities.Battle{ID: "b1", State: entities.NewBattleState()}})
	s.Require().NoError(err)

	got, err := repo.Get(s.ctx, &battlerepo.GetInput{BattleID: "b1"})
	s.Require().NoError(err)
	s.Equal(entities.PhaseEmpty, got.Battle.State.Phase)
}

func (s *OpenStoreTestSuite) TestBackends() {
	_, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	defer cleanup()

	testCases := []struct {
		name    string
		storage config.StorageConfig
	}{
		{
			name:    "filesystem",
			storage: config.StorageConfig{Backend: config.BackendFilesystem, DataDir: filepath.Join(s.dir, "data")},
		},
		{
			name:    "sqlite",
			storage: config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(s.dir, "sheets.db")},
		},
		{
			name:    "redis",
			storage: config.StorageConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr()},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repos, err := openStores(s.ctx, tc.storage)
			s.Require().NoError(err)
			defer func() { s.NoError(repos.close()) }()

			s.roundTrip(repos.characters)
			s.battleRoundTrip(repos.battles)
		})
	}
}

func (s *OpenStoreTestSuite) TestRedisBattlesDoNotOutliveProcess() {
	_, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	defer cleanup()
	storage := config.StorageConfig{Backend: config.BackendRedis, RedisAddr: mr.Addr()}

	before, err := openStores(s.ctx, storage)
	s.Require().NoError(err)
	s.battleRoundTrip(before.battles)
	s.Require().NoError(before.close())

	after, err := openStores(s.ctx, storage)
	s.Require().NoError(err)
	defer func() { s.NoError(after.close()) }()

	_, err = after.battles.Get(s.ctx, &battlerepo.GetInput{BattleID: "b1"})
	s.True(errors.IsNotFound(err))
}

func (s *OpenStoreTestSuite) TestUnknownBackend() {
	_, err := openStores(s.ctx, config.StorageConfig{Backend: "postgres"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OpenStoreTestSuite) TestUnreachableRedis() {
	_, mr, cleanup := testutils.CreateTestRedisServer(s.T())
	addr := mr.Addr()
	cleanup()

	_, err := openStores(s.ctx, config.StorageConfig{Backend: config.BackendRedis, RedisAddr: addr})
	s.True(errors.IsUnavailable(err))
}
