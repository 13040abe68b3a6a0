// Package character provides the record store for character sheets
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/rpg-sheets/internal/repositories/character Repository

import (
	"context"
	"strings"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
)

const (
	// Error messages
	errCharacterNil    = "character cannot be nil"
	errNameEmpty       = "name is required"
	errNameInvalid     = "name must not contain path separators or '..'"
	errCategoryInvalid = "category must be one of player, npc, enemy"
)

// Repository defines the interface for character record persistence.
// Records are addressed by category and identity key; saving a record with
// an existing key overwrites it.
type Repository interface {
	// Save creates or overwrites a record
	// Returns errors.InvalidArgument for an empty or unsafe name or unknown category
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get loads a record
	// Returns errors.InvalidArgument for an invalid selector
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.DataLoss if the stored document can't be decoded
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes a record
	// Returns errors.InvalidArgument for an invalid selector
	// Returns errors.NotFound if the record doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns record names of one category in lexicographic key order.
	// An empty category yields an empty slice.
	// Returns errors.InvalidArgument for an unknown category
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// SaveInput defines the input for saving a character
type SaveInput struct {
	Category  entities.Category
	Character *entities.Character
}

// SaveOutput defines the output for saving a character
type SaveOutput struct {
	Character *entities.Character
	// Key is the identity key the record was stored under
	Key string
}

// GetInput defines the input for getting a character
type GetInput struct {
	Category entities.Category
	Name     string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	Category entities.Category
	Name     string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListInput defines the input for listing characters
type ListInput struct {
	Category entities.Category
}

// ListOutput defines the output for listing characters
type ListOutput struct {
	// Names are derived from storage keys, so "Old Tom" lists as "old tom"
	Names []string
}

// validateName checks a name is usable as a storage key and returns the key
func validateName(name string) (string, error) {
	key := entities.NormalizeName(name)
	if key == "" {
		return "", errors.InvalidArgument(errNameEmpty)
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", errors.InvalidArgument(errNameInvalid).WithMeta("name", name)
	}
	return key, nil
}

func validateCategory(category entities.Category) error {
	if !category.Valid() {
		return errors.InvalidArgument(errCategoryInvalid).WithMeta("category", string(category))
	}
	return nil
}

// validateSelector validates a category and name pair and returns the key
func validateSelector(category entities.Category, name string) (string, error) {
	if err := validateCategory(category); err != nil {
		return "", err
	}
	return validateName(name)
}

// prepareSave validates a save and returns the stored copy with its key
func prepareSave(input SaveInput) (*entities.Character, string, error) {
	if input.Character == nil {
		return nil, "", errors.InvalidArgument(errCharacterNil)
	}

	category := input.Category
	if category == "" {
		category = input.Character.Type
	}
	key, err := validateSelector(category, input.Character.Name)
	if err != nil {
		return nil, "", err
	}

	stored := *input.Character
	stored.Type = category
	return &stored, key, nil
}

// decodeDocument decodes a stored JSON document into a Character. The
// partition it was read from overrides any type in the document.
func decodeDocument(data []byte, category entities.Category) (*entities.Character, error) {
	c := &entities.Character{Type: category}
	if err := c.UnmarshalJSON(data); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode character document")
	}
	c.Type = category
	return c, nil
}
