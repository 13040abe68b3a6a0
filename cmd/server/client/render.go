package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/handlers/sheets/v1alpha1"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = cellStyle.Bold(true).Foreground(lipgloss.Color("11"))
)

var battleColumns = []string{
	"ID",
	"Type",
	"Name",
	"Default Initiative",
	"Rolled Initiative",
	"Total Initiative",
	"Armor Class",
	"HP",
	"Damage Taken",
}

// renderBattle draws the battle header, roster table and loot
func renderBattle(b *v1alpha1.Battle) string {
	if b == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Battle %s  phase: %s", b.BattleID, b.Phase)
	if b.Phase == entities.PhaseActive {
		fmt.Fprintf(&sb, "  turn: %d", b.Turn)
	}
	sb.WriteString("\n")

	if b.Current != nil && b.Phase == entities.PhaseActive {
		fmt.Fprintf(&sb, "Current: %s (%s)\n", b.Current.Name, b.Current.ParticipantID)
	}

	if len(b.Rows) == 0 {
		sb.WriteString("No participants\n")
	} else {
		sb.WriteString(renderRows(b.Rows, b.Phase == entities.PhaseActive))
		sb.WriteString("\n")
	}

	sb.WriteString(renderLoot(b.Accumulator))
	return sb.String()
}

// renderRows draws the roster table; the head row is the acting participant
// when the battle is active
func renderRows(rows []entities.Row, highlightHead bool) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			r.ParticipantID,
			string(r.Category),
			r.Name,
			strconv.Itoa(r.BaseInitiative),
			strconv.Itoa(r.RolledInitiative),
			strconv.Itoa(r.TotalInitiative),
			strconv.Itoa(r.ArmorClass),
			strconv.Itoa(r.CurrentHP),
			strconv.Itoa(r.DamageTaken),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(battleColumns...).
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == 0 && highlightHead:
				return currentStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

func renderLoot(acc entities.Accumulator) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Gold: %s\n", humanize.Comma(int64(acc.Gold)))

	items := acc.ItemList()
	if len(items) == 0 {
		sb.WriteString("Items: none\n")
		return sb.String()
	}
	sb.WriteString("Items:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "  - %s\n", item)
	}
	return sb.String()
}
