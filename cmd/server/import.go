package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/orchestrators/character"
)

var (
	importFrom       string
	importTo         string
	importCategories []string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy character records between storage backends",
	Long: `Copy every character record from one storage backend to another.
Connection settings for both backends come from the config file and environment.

  rpg-sheets import --from filesystem --to sqlite`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFrom, "from", "filesystem", "source backend (filesystem, redis, sqlite)")
	importCmd.Flags().StringVar(&importTo, "to", "sqlite", "destination backend (filesystem, redis, sqlite)")
	importCmd.Flags().StringSliceVar(&importCategories, "category", nil, "limit the import to these categories")
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importFrom == importTo {
		return fmt.Errorf("source and destination are both %s", importFrom)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.Log))

	categories := make([]entities.Category, 0, len(importCategories))
	for _, raw := range importCategories {
		category, ok := entities.ParseCategory(raw)
		if !ok {
			return fmt.Errorf("unknown category %q", raw)
		}
		categories = append(categories, category)
	}

	ctx := context.Background()

	srcStorage := cfg.Storage
	srcStorage.Backend = importFrom
	src, err := openStores(ctx, srcStorage)
	if err != nil {
		return fmt.Errorf("failed to open source %s: %w", importFrom, err)
	}
	defer func() { _ = src.close() }()

	dstStorage := cfg.Storage
	dstStorage.Backend = importTo
	dst, err := openStores(ctx, dstStorage)
	if err != nil {
		return fmt.Errorf("failed to open destination %s: %w", importTo, err)
	}
	defer func() { _ = dst.close() }()

	out, err := character.Import(ctx, src.characters, dst.characters, &character.ImportInput{Categories: categories})
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported from %s to %s\n", importFrom, importTo)
	for _, category := range entities.Categories() {
		fmt.Printf("  %-8s %d\n", category, out.Copied[category])
	}
	for _, skipped := range out.Skipped {
		fmt.Printf("  skipped %s\n", skipped.Label())
	}
	return nil
}
