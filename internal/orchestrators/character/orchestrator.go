// Package character implements the character sheet orchestrator
package character

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character Service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
)

const (
	msgSaved         = "Character %s saved successfully!"
	msgDeleted       = "Character %s deleted."
	msgNameRequired  = "Character name is required"
	msgNotFound      = "Character not found!"
	msgCategoryValid = "must be one of player, npc, enemy"
)

// Service defines the interface for character sheet operations
type Service interface {
	// SaveCharacter validates and stores a sheet, overwriting any sheet with
	// the same identity key
	SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error)

	// GetCharacter loads a sheet; a missing sheet is NotFound
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// DeleteCharacter removes a sheet and returns the refreshed category list
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// ListCharacters lists sheet names of one category
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
}

// Config holds the dependencies for the character orchestrator
type Config struct {
	Characters characterrepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Characters == nil {
		vb.RequiredField("Characters")
	}
	return vb.Build()
}

type orchestrator struct {
	characters characterrepo.Repository
}

// NewOrchestrator creates a new character orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{characters: cfg.Characters}, nil
}

func (o *orchestrator) SaveCharacter(ctx context.Context, input *SaveCharacterInput) (*SaveCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	category := input.Category
	if input.Character == nil {
		vb.RequiredField("character")
	} else {
		if category == "" {
			category = input.Character.Type
		}
		if strings.TrimSpace(input.Character.Name) == "" {
			vb.Field("name", "is required")
		}
	}
	if !category.Valid() {
		vb.Field("category", msgCategoryValid)
	}
	if err := vb.Build(); err != nil {
		if input.Character != nil && strings.TrimSpace(input.Character.Name) == "" {
			return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, msgNameRequired)
		}
		return nil, err
	}

	out, err := o.characters.Save(ctx, characterrepo.SaveInput{
		Category:  category,
		Character: input.Character,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", input.Character.Name)
	}

	slog.InfoContext(ctx, "character saved",
		"category", category,
		"name", out.Character.Name,
		"key", out.Key)

	return &SaveCharacterOutput{
		Character: out.Character,
		Message:   fmt.Sprintf(msgSaved, out.Character.Name),
	}, nil
}

func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.characters.Get(ctx, characterrepo.GetInput{Category: input.Category, Name: input.Name})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, msgNotFound)
		}
		return nil, errors.Wrapf(err, "failed to load character %s", input.Name)
	}

	return &GetCharacterOutput{Character: out.Character}, nil
}

func (o *orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	_, err := o.characters.Delete(ctx, characterrepo.DeleteInput{Category: input.Category, Name: input.Name})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.WrapWithCode(err, errors.CodeNotFound, msgNotFound)
		}
		return nil, errors.Wrapf(err, "failed to delete character %s", input.Name)
	}

	slog.InfoContext(ctx, "character deleted",
		"category", input.Category,
		"name", input.Name)

	list, err := o.characters.List(ctx, characterrepo.ListInput{Category: input.Category})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to refresh %s list", input.Category)
	}

	return &DeleteCharacterOutput{
		Message: fmt.Sprintf(msgDeleted, input.Name),
		Names:   list.Names,
	}, nil
}

func (o *orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.characters.List(ctx, characterrepo.ListInput{Category: input.Category})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", input.Category)
	}

	return &ListCharactersOutput{Names: out.Names}, nil
}
