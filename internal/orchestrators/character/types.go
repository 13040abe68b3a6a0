package character

import (
	"github.com/KirkDiggler/rpg-sheets/internal/entities"
)

// SaveCharacterInput defines the request for saving a character sheet
type SaveCharacterInput struct {
	// Category defaults to Character.Type when empty
	Category  entities.Category
	Character *entities.Character
}

// SaveCharacterOutput defines the response for saving a character sheet
type SaveCharacterOutput struct {
	Character *entities.Character
	// Message is the status line shown to the user
	Message string
}

// GetCharacterInput defines the request for loading a character sheet
type GetCharacterInput struct {
	Category entities.Category
	Name     string
}

// GetCharacterOutput defines the response for loading a character sheet
type GetCharacterOutput struct {
	Character *entities.Character
}

// DeleteCharacterInput defines the request for deleting a character sheet
type DeleteCharacterInput struct {
	Category entities.Category
	Name     string
}

// DeleteCharacterOutput defines the response for deleting a character sheet
type DeleteCharacterOutput struct {
	Message string
	// Names is the refreshed list for the category
	Names []string
}

// ListCharactersInput defines the request for listing a category
type ListCharactersInput struct {
	Category entities.Category
}

// ListCharactersOutput defines the response for listing a category
type ListCharactersOutput struct {
	Names []string
}

// ImportInput defines the request for copying records between stores
type ImportInput struct {
	// Categories defaults to every category
	Categories []entities.Category
}

// ImportOutput reports how many records were copied per category
type ImportOutput struct {
	Copied map[entities.Category]int
	// Skipped lists records that could not be read from the source
	Skipped []entities.Selector
}
