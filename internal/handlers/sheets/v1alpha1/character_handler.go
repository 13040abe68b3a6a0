// Package v1alpha1 handles the rpg-sheets grpc service interface
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character"
)

// CharacterHandlerConfig holds dependencies for the character handler
type CharacterHandlerConfig struct {
	CharacterService character.Service
}

// Validate ensures all required dependencies are present
func (c *CharacterHandlerConfig) Validate() error {
	if c == nil || c.CharacterService == nil {
		return errors.InvalidArgument("character service is required")
	}
	return nil
}

// CharacterHandler implements the character gRPC service
type CharacterHandler struct {
	characterService character.Service
}

// NewCharacterHandler creates a new character handler with the given configuration
func NewCharacterHandler(cfg *CharacterHandlerConfig) (*CharacterHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CharacterHandler{
		characterService: cfg.CharacterService,
	}, nil
}

// SaveCharacter creates or overwrites a character sheet
func (h *CharacterHandler) SaveCharacter(
	ctx context.Context,
	req *SaveCharacterRequest,
) (*SaveCharacterResponse, error) {
	if req.Character == nil {
		return nil, errors.ToGRPCError(errors.InvalidArgument("character is required"))
	}

	// An unknown category is passed through so the orchestrator reports it
	// alongside any other field errors
	category := entities.Category(req.Category)
	if parsed, ok := entities.ParseCategory(req.Category); ok {
		category = parsed
	}

	output, err := h.characterService.SaveCharacter(ctx, &character.SaveCharacterInput{
		Category:  category,
		Character: req.Character,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &SaveCharacterResponse{
		Character: output.Character,
		Message:   output.Message,
	}, nil
}

// GetCharacter loads one character sheet
func (h *CharacterHandler) GetCharacter(
	ctx context.Context,
	req *GetCharacterRequest,
) (*GetCharacterResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	output, err := h.characterService.GetCharacter(ctx, &character.GetCharacterInput{
		Category: category,
		Name:     req.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetCharacterResponse{Character: output.Character}, nil
}

// DeleteCharacter removes one character sheet
func (h *CharacterHandler) DeleteCharacter(
	ctx context.Context,
	req *DeleteCharacterRequest,
) (*DeleteCharacterResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.Name == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("name is required"))
	}

	output, err := h.characterService.DeleteCharacter(ctx, &character.DeleteCharacterInput{
		Category: category,
		Name:     req.Name,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &DeleteCharacterResponse{
		Message: output.Message,
		Names:   output.Names,
	}, nil
}

// ListCharacters lists the sheet names of one category
func (h *CharacterHandler) ListCharacters(
	ctx context.Context,
	req *ListCharactersRequest,
) (*ListCharactersResponse, error) {
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.characterService.ListCharacters(ctx, &character.ListCharactersInput{
		Category: category,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListCharactersResponse{Names: output.Names}, nil
}

func parseCategory(s string) (entities.Category, error) {
	category, ok := entities.ParseCategory(s)
	if !ok {
		return "", errors.InvalidArgument("category must be one of player, npc, enemy").
			WithMeta("category", s)
	}
	return category, nil
}
