package client

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
)

var (
	characterCategory string
	characterName     string
	characterFile     string
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "Manage character sheets",
}

var listCharactersCmd = &cobra.Command{
	Use:   "list",
	Short: "List the sheets of one category",
	RunE:  runListCharacters,
}

var getCharacterCmd = &cobra.Command{
	Use:   "get",
	Short: "Print one sheet as JSON",
	RunE:  runGetCharacter,
}

var saveCharacterCmd = &cobra.Command{
	Use:   "save",
	Short: "Create or overwrite a sheet from a JSON file",
	Long: `Create or overwrite a sheet from a JSON file. Missing fields take their
defaults; a sheet with the same name in the category is replaced.

  rpg-sheets client characters save --category enemy --file goblin.json`,
	RunE: runSaveCharacter,
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one sheet",
	RunE:  runDeleteCharacter,
}

func init() {
	charactersCmd.PersistentFlags().StringVar(&characterCategory, "category", "player", "Category (player, npc, enemy)")

	getCharacterCmd.Flags().StringVar(&characterName, "name", "", "Character name (required)")
	_ = getCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	deleteCharacterCmd.Flags().StringVar(&characterName, "name", "", "Character name (required)")
	_ = deleteCharacterCmd.MarkFlagRequired("name") // nolint:errcheck // safe to ignore in init

	saveCharacterCmd.Flags().StringVar(&characterFile, "file", "", "Path to the sheet JSON (required)")
	_ = saveCharacterCmd.MarkFlagRequired("file") // nolint:errcheck // safe to ignore in init

	charactersCmd.AddCommand(listCharactersCmd)
	charactersCmd.AddCommand(getCharacterCmd)
	charactersCmd.AddCommand(saveCharacterCmd)
	charactersCmd.AddCommand(deleteCharacterCmd)
}

func runListCharacters(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.ListCharacters(ctx, &v1alpha1.ListCharactersRequest{Category: characterCategory})
	if err != nil {
		return describeError("failed to list characters", err)
	}

	out := cmd.OutOrStdout()
	if len(resp.Names) == 0 {
		fmt.Fprintf(out, "No %s sheets\n", characterCategory)
		return nil
	}
	for _, name := range resp.Names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func runGetCharacter(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.GetCharacter(ctx, &v1alpha1.GetCharacterRequest{
		Category: characterCategory,
		Name:     characterName,
	})
	if err != nil {
		return describeError("failed to get character", err)
	}

	data, err := json.MarshalIndent(resp.Character, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to format character: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runSaveCharacter(cmd *cobra.Command, _ []string) error {
	sheet, err := readSheet(characterFile, characterCategory)
	if err != nil {
		return err
	}

	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.SaveCharacter(ctx, &v1alpha1.SaveCharacterRequest{
		Category:  characterCategory,
		Character: sheet,
	})
	if err != nil {
		return describeError("failed to save character", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}

func runDeleteCharacter(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createCharacterClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.DeleteCharacter(ctx, &v1alpha1.DeleteCharacterRequest{
		Category: characterCategory,
		Name:     characterName,
	})
	if err != nil {
		return describeError("failed to delete character", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resp.Message)
	fmt.Fprintf(out, "Remaining %s sheets: %d\n", characterCategory, len(resp.Names))
	return nil
}

// readSheet decodes a sheet file; category is the default type
func readSheet(path, category string) (*entities.Character, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sheet := &entities.Character{}
	if parsed, ok := entities.ParseCategory(category); ok {
		sheet.Type = parsed
	}
	if err := json.Unmarshal(data, sheet); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return sheet, nil
}
