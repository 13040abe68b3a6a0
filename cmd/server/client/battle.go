package client

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
)

var (
	battleID      string
	addLabel      string
	addCategory   string
	addName       string
	rollEdits     []string
	damageEdits   []string
	rollOverwrite bool
)

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Run initiative-ordered battles",
}

var newBattleCmd = &cobra.Command{
	Use:   "new",
	Short: "Open a new battle",
	RunE:  runNewBattle,
}

var showBattleCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the battle table",
	RunE:  runShowBattle,
}

var combatantsCmd = &cobra.Command{
	Use:   "combatants",
	Short: "List every stored character that can join a battle",
	RunE:  runCombatants,
}

var addParticipantCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a stored character to the battle",
	Long: `Add a stored character by label or by category and name.

  rpg-sheets client battle add --battle b_1 --label "goblin (enemy)"
  rpg-sheets client battle add --battle b_1 --category player --name Aria`,
	RunE: runAddParticipant,
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll a d20 initiative for participants without one",
	RunE:  runRollInitiative,
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Order the roster by initiative and begin turns",
	Long: `Order the roster by initiative and begin turns. Participants without a
--roll edit keep their current rolled value.

  rpg-sheets client battle start --battle b_1 --roll p_1=14 --roll p_2=9`,
	RunE: runStartBattle,
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Apply damage, remove the defeated and pass the turn",
	Long: `Apply damage, remove the defeated and pass the turn.

  rpg-sheets client battle next --battle b_1 --damage p_2=6`,
	RunE: runNextTurn,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the battle back to empty",
	RunE:  runResetBattle,
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "Discard the battle",
	RunE:  runEndBattle,
}

func init() {
	for _, cmd := range []*cobra.Command{showBattleCmd, addParticipantCmd, rollCmd, startCmd, nextCmd, resetCmd, endCmd} {
		cmd.Flags().StringVar(&battleID, "battle", "", "Battle ID (required)")
		_ = cmd.MarkFlagRequired("battle") // nolint:errcheck // safe to ignore in init
	}

	addParticipantCmd.Flags().StringVar(&addLabel, "label", "", `Combatant label, "name (category)"`)
	addParticipantCmd.Flags().StringVar(&addCategory, "category", "", "Category (player, npc, enemy)")
	addParticipantCmd.Flags().StringVar(&addName, "name", "", "Character name")

	rollCmd.Flags().BoolVar(&rollOverwrite, "overwrite", false, "Re-roll participants that already have a value")

	for _, cmd := range []*cobra.Command{startCmd, nextCmd} {
		cmd.Flags().StringArrayVar(&rollEdits, "roll", nil, "Rolled initiative edit, id=N (repeatable)")
		cmd.Flags().StringArrayVar(&damageEdits, "damage", nil, "Damage taken edit, id=N (repeatable)")
	}

	battleCmd.AddCommand(newBattleCmd)
	battleCmd.AddCommand(showBattleCmd)
	battleCmd.AddCommand(combatantsCmd)
	battleCmd.AddCommand(addParticipantCmd)
	battleCmd.AddCommand(rollCmd)
	battleCmd.AddCommand(startCmd)
	battleCmd.AddCommand(nextCmd)
	battleCmd.AddCommand(resetCmd)
	battleCmd.AddCommand(endCmd)
}

func runNewBattle(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.CreateBattle(ctx, &v1alpha1.CreateBattleRequest{})
	if err != nil {
		return describeError("failed to create battle", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Battle %s created\n", resp.Battle.BattleID)
	return nil
}

func runShowBattle(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.GetBattle(ctx, &v1alpha1.GetBattleRequest{BattleID: battleID})
	if err != nil {
		return describeError("failed to get battle", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderBattle(resp.Battle))
	return nil
}

func runCombatants(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.ListCombatants(ctx, &v1alpha1.ListCombatantsRequest{})
	if err != nil {
		return describeError("failed to list combatants", err)
	}

	out := cmd.OutOrStdout()
	if len(resp.Combatants) == 0 {
		fmt.Fprintln(out, "No stored characters")
		return nil
	}
	for _, c := range resp.Combatants {
		fmt.Fprintln(out, c.Label)
	}
	return nil
}

func runAddParticipant(cmd *cobra.Command, _ []string) error {
	req := &v1alpha1.AddParticipantRequest{BattleID: battleID, Label: addLabel}
	if addName != "" {
		category, ok := entities.ParseCategory(addCategory)
		if !ok {
			return fmt.Errorf("--category must be one of player, npc, enemy when --name is set")
		}
		req.Selector = &entities.Selector{Category: category, Name: addName}
	}
	if req.Selector == nil && req.Label == "" {
		return fmt.Errorf("either --label or --name is required")
	}

	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.AddParticipant(ctx, req)
	if err != nil {
		return describeError("failed to add participant", err)
	}

	out := cmd.OutOrStdout()
	if resp.Added == nil {
		fmt.Fprintln(out, "Nothing added")
	} else {
		fmt.Fprintf(out, "Added %s as %s\n", resp.Added.Name, resp.Added.ID)
	}
	fmt.Fprint(out, renderBattle(resp.Battle))
	return nil
}

func runRollInitiative(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.RollInitiative(ctx, &v1alpha1.RollInitiativeRequest{
		BattleID:  battleID,
		Overwrite: rollOverwrite,
	})
	if err != nil {
		return describeError("failed to roll initiative", err)
	}

	out := cmd.OutOrStdout()
	ids := make([]string, 0, len(resp.Rolled))
	for id := range resp.Rolled {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "%s rolled %d\n", id, resp.Rolled[id])
	}
	fmt.Fprint(out, renderBattle(resp.Battle))
	return nil
}

func runStartBattle(cmd *cobra.Command, _ []string) error {
	edits, err := parseEdits(rollEdits, damageEdits)
	if err != nil {
		return err
	}

	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	current, err := client.GetBattle(ctx, &v1alpha1.GetBattleRequest{BattleID: battleID})
	if err != nil {
		return describeError("failed to get battle", err)
	}

	resp, err := client.StartBattle(ctx, &v1alpha1.StartBattleRequest{
		BattleID: battleID,
		Edits:    prefillRolls(current.Battle.Rows, edits),
	})
	if err != nil {
		return describeError("failed to start battle", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderBattle(resp.Battle))
	return nil
}

func runNextTurn(cmd *cobra.Command, _ []string) error {
	edits, err := parseEdits(rollEdits, damageEdits)
	if err != nil {
		return err
	}

	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.NextTurn(ctx, &v1alpha1.NextTurnRequest{
		BattleID: battleID,
		Edits:    edits,
	})
	if err != nil {
		return describeError("failed to advance battle", err)
	}

	out := cmd.OutOrStdout()
	for _, name := range resp.Defeated {
		fmt.Fprintf(out, "%s was defeated\n", name)
	}
	fmt.Fprint(out, renderBattle(resp.Battle))
	return nil
}

func runResetBattle(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	resp, err := client.ResetBattle(ctx, &v1alpha1.ResetBattleRequest{BattleID: battleID})
	if err != nil {
		return describeError("failed to reset battle", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderBattle(resp.Battle))
	return nil
}

func runEndBattle(cmd *cobra.Command, _ []string) error {
	client, cleanup, err := createBattleClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := requestContext()
	defer cancel()

	if _, err := client.EndBattle(ctx, &v1alpha1.EndBattleRequest{BattleID: battleID}); err != nil {
		return describeError("failed to end battle", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Battle %s ended\n", battleID)
	return nil
}

// parseEdits merges id=N roll and damage flags into one edit per id, in
// first-seen order. Values are passed through as typed.
func parseEdits(rolls, damages []string) ([]entities.RowEdit, error) {
	var edits []entities.RowEdit
	index := make(map[string]int)

	upsert := func(raw string, set func(*entities.RowEdit, string)) error {
		id, value, ok := strings.Cut(raw, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return fmt.Errorf("edit %q must look like id=N", raw)
		}
		i, seen := index[id]
		if !seen {
			i = len(edits)
			index[id] = i
			edits = append(edits, entities.RowEdit{ParticipantID: id})
		}
		set(&edits[i], strings.TrimSpace(value))
		return nil
	}

	for _, raw := range rolls {
		if err := upsert(raw, func(e *entities.RowEdit, v string) { e.RolledInitiative = v }); err != nil {
			return nil, err
		}
	}
	for _, raw := range damages {
		if err := upsert(raw, func(e *entities.RowEdit, v string) { e.DamageTaken = v }); err != nil {
			return nil, err
		}
	}
	return edits, nil
}

// prefillRolls gives every row without a roll edit its current rolled value,
// so starting a battle keeps earlier rolls
func prefillRolls(rows []entities.Row, edits []entities.RowEdit) []entities.RowEdit {
	out := make([]entities.RowEdit, 0, len(rows)+len(edits))
	out = append(out, edits...)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.ParticipantID] = i
	}

	for _, row := range rows {
		rolled := strconv.Itoa(row.RolledInitiative)
		i, ok := index[row.ParticipantID]
		if !ok {
			index[row.ParticipantID] = len(out)
			out = append(out, entities.RowEdit{ParticipantID: row.ParticipantID, RolledInitiative: rolled})
			continue
		}
		if out[i].RolledInitiative == "" {
			out[i].RolledInitiative = rolled
		}
	}
	return out
}
