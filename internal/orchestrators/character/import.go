package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	characterrepo "github.com/KirkDiggler/rpg-sheets/internal/repositories/character"
)

// Import copies every record of the requested categories from src to dst.
// Records that cannot be decoded from src are skipped and reported; write
// failures on dst stop the import.
func Import(ctx context.Context, src, dst characterrepo.Repository, input *ImportInput) (*ImportOutput, error) {
	if src == nil || dst == nil {
		return nil, errors.InvalidArgument("source and destination are required")
	}
	if input == nil {
		input = &ImportInput{}
	}

	categories := input.Categories
	if len(categories) == 0 {
		categories = entities.Categories()
	}

	result := &ImportOutput{Copied: make(map[entities.Category]int)}

	for _, category := range categories {
		list, err := src.List(ctx, characterrepo.ListInput{Category: category})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list source %s", category)
		}

		for _, name := range list.Names {
			got, err := src.Get(ctx, characterrepo.GetInput{Category: category, Name: name})
			if err != nil {
				if errors.IsNotFound(err) || errors.IsDataLoss(err) {
					slog.WarnContext(ctx, "skipping unreadable record",
						"category", category,
						"name", name,
						"error", err)
					result.Skipped = append(result.Skipped, entities.Selector{Category: category, Name: name})
					continue
				}
				return nil, errors.Wrapf(err, "failed to read source %s %s", category, name)
			}

			// Keep the stored display name; the listed name comes from the key
			if got.Character.Name == "" {
				got.Character.Name = name
			}

			if _, err := dst.Save(ctx, characterrepo.SaveInput{Category: category, Character: got.Character}); err != nil {
				return nil, errors.Wrapf(err, "failed to write %s %s", category, name)
			}
			result.Copied[category]++
		}
	}

	slog.InfoContext(ctx, "import complete",
		"players", result.Copied[entities.CategoryPlayer],
		"npcs", result.Copied[entities.CategoryNPC],
		"enemies", result.Copied[entities.CategoryEnemy],
		"skipped", len(result.Skipped))

	return result, nil
}
