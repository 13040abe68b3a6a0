package entities

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Phase is the lifecycle stage of a battle
type Phase string

const (
	// PhaseEmpty has no participants
	PhaseEmpty Phase = "empty"
	// PhaseStaged has participants but no fixed turn order
	PhaseStaged Phase = "staged"
	// PhaseActive has a fixed turn order; the roster head is acting
	PhaseActive Phase = "active"
)

// Participant is a battle snapshot of a character record. BaseInitiative is
// captured when the participant is added and never refreshed.
type Participant struct {
	ID               string   `json:"id"`
	Category         Category `json:"category"`
	Name             string   `json:"name"`
	BaseInitiative   int      `json:"base_initiative"`
	RolledInitiative int      `json:"rolled_initiative"`
	TotalInitiative  int      `json:"total_initiative"`
	ArmorClass       int      `json:"armor_class"`
	CurrentHP        int      `json:"current_hp"`
	DamageTaken      int      `json:"damage_taken"`
}

var _ core.Entity = (*Participant)(nil)

// GetID returns the participant id
func (p *Participant) GetID() string {
	return p.ID
}

// GetType returns the participant category
func (p *Participant) GetType() string {
	return string(p.Category)
}

// Selector addresses the record the participant was created from
func (p *Participant) Selector() Selector {
	return Selector{Category: p.Category, Name: p.Name}
}

// Defeated reports whether the participant has no hit points left
func (p *Participant) Defeated() bool {
	return p.CurrentHP <= 0
}

// Row is the display form of a participant
func (p *Participant) Row() Row {
	return Row{
		ParticipantID:    p.ID,
		Category:         p.Category,
		Name:             p.Name,
		BaseInitiative:   p.BaseInitiative,
		RolledInitiative: p.RolledInitiative,
		TotalInitiative:  p.TotalInitiative,
		ArmorClass:       p.ArmorClass,
		CurrentHP:        p.CurrentHP,
		DamageTaken:      p.DamageTaken,
	}
}

// Roster is the ordered participant list; the head is the current actor
type Roster []Participant

// Clone returns a copy that shares nothing with r
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	copy(out, r)
	return out
}

// Rows returns the display rows in roster order
func (r Roster) Rows() []Row {
	rows := make([]Row, len(r))
	for i := range r {
		rows[i] = r[i].Row()
	}
	return rows
}

// Contains reports whether a participant was created from the selected record
func (r Roster) Contains(sel Selector) bool {
	for i := range r {
		if r[i].Selector().Matches(sel) {
			return true
		}
	}
	return false
}

// Has reports whether a participant with id is in the roster
func (r Roster) Has(id string) bool {
	for i := range r {
		if r[i].ID == id {
			return true
		}
	}
	return false
}

// Head returns the current actor, or nil for an empty roster
func (r Roster) Head() *Participant {
	if len(r) == 0 {
		return nil
	}
	return &r[0]
}

// Accumulator holds loot collected from defeated participants
type Accumulator struct {
	Gold  int    `json:"gold"`
	Items string `json:"items"`
}

// Collect adds gold and appends items one per line
func (a Accumulator) Collect(gold int, items []string) Accumulator {
	a.Gold += gold
	if len(items) == 0 {
		return a
	}

	joined := strings.Join(items, "\n")
	if a.Items == "" {
		a.Items = joined
	} else {
		a.Items += "\n" + joined
	}
	return a
}

// ItemList returns the collected items one entry per line
func (a Accumulator) ItemList() []string {
	if a.Items == "" {
		return nil
	}
	return strings.Split(a.Items, "\n")
}

// Row is a display row of the battle table
type Row struct {
	ParticipantID    string   `json:"participant_id"`
	Category         Category `json:"category"`
	Name             string   `json:"name"`
	BaseInitiative   int      `json:"base_initiative"`
	RolledInitiative int      `json:"rolled_initiative"`
	TotalInitiative  int      `json:"total_initiative"`
	ArmorClass       int      `json:"armor_class"`
	CurrentHP        int      `json:"current_hp"`
	DamageTaken      int      `json:"damage_taken"`
}

// RowEdit carries user-entered cell text for one participant
type RowEdit struct {
	ParticipantID    string `json:"participant_id"`
	RolledInitiative string `json:"rolled_initiative,omitempty"`
	DamageTaken      string `json:"damage_taken,omitempty"`
}

// IndexEdits maps edits by participant id; later edits win
func IndexEdits(edits []RowEdit) map[string]RowEdit {
	out := make(map[string]RowEdit, len(edits))
	for _, e := range edits {
		out[e.ParticipantID] = e
	}
	return out
}

// ParseCell reads an integer from cell text. Decimal text is truncated,
// values beyond the int32 range saturate at its bounds and anything
// unparseable is 0.
func ParseCell(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	if n, err := strconv.Atoi(text); err == nil {
		return ClampCell(n)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// ClampCell bounds n to the int32 range so sums and differences of cell
// values cannot overflow
func ClampCell(n int) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	}
	return n
}

// BattleState is everything one battle session owns
type BattleState struct {
	Phase       Phase       `json:"phase"`
	Roster      Roster      `json:"roster"`
	Accumulator Accumulator `json:"accumulator"`
	// Turn counts turns since start; 0 before the battle starts
	Turn int `json:"turn"`
}

// NewBattleState returns an empty battle
func NewBattleState() BattleState {
	return BattleState{Phase: PhaseEmpty}
}

// Clone returns a copy whose roster shares nothing with s
func (s BattleState) Clone() BattleState {
	s.Roster = s.Roster.Clone()
	return s
}

// Battle is a stored battle session
type Battle struct {
	ID        string      `json:"id"`
	State     BattleState `json:"state"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Clone returns a deep copy of the battle
func (b *Battle) Clone() *Battle {
	if b == nil {
		return nil
	}
	out := *b
	out.State = b.State.Clone()
	return &out
}
