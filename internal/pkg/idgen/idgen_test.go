package idgen_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-sheets/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("p")
	s.Equal("p_1", gen.Generate())
	s.Equal("p_2", gen.Generate())

	bare := idgen.NewSequential("")
	s.Equal("1", bare.Generate())
}

func (s *IDGenTestSuite) TestUUID() {
	id := idgen.NewUUID("battle").Generate()
	s.True(strings.HasPrefix(id, "battle_"))

	_, err := uuid.Parse(strings.TrimPrefix(id, "battle_"))
	s.NoError(err)
	s.NotEqual(id, idgen.NewUUID("battle").Generate())
}

func (s *IDGenTestSuite) TestShort() {
	id := idgen.NewShort("p").Generate()
	s.Regexp(`^p_[0-9a-f]{8}$`, id)
}
