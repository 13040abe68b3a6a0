// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// SequentialGenerator generates sequential IDs. Participants use it so ids
// stay short enough to type in edits.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// shortLength is the hex prefix kept by NewShort; roster ids only need to be
// unique within one battle
const shortLength = 8

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
	length int
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// NewShort creates a generator that keeps the first eight hex digits of a
// UUID, for ids a user types into row edits
func NewShort(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix, length: shortLength}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.length > 0 {
		id = id[:g.length]
	}
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}
