// Package entities provides the core data structures for rpg-sheets.
package entities

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Category partitions character records
type Category string

const (
	// CategoryPlayer is a player character
	CategoryPlayer Category = "player"
	// CategoryNPC is a non-player character
	CategoryNPC Category = "npc"
	// CategoryEnemy is an enemy; enemies may join a battle more than once
	CategoryEnemy Category = "enemy"
)

// Categories returns every category in pick-list order
func Categories() []Category {
	return []Category{CategoryPlayer, CategoryNPC, CategoryEnemy}
}

// ParseCategory returns the category named by s
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryPlayer, CategoryNPC, CategoryEnemy:
		return true
	default:
		return false
	}
}

// Partition is the storage partition holding records of this category
func (c Category) Partition() string {
	switch c {
	case CategoryNPC:
		return "npcs"
	case CategoryEnemy:
		return "enemies"
	default:
		return "characters"
	}
}

func (c Category) String() string {
	return string(c)
}

// Abilities holds the six ability scores
type Abilities struct {
	Strength     int `json:"strength" mapstructure:"strength"`
	Dexterity    int `json:"dexterity" mapstructure:"dexterity"`
	Constitution int `json:"constitution" mapstructure:"constitution"`
	Intelligence int `json:"intelligence" mapstructure:"intelligence"`
	Wisdom       int `json:"wisdom" mapstructure:"wisdom"`
	Charisma     int `json:"charisma" mapstructure:"charisma"`
}

// SavingThrows marks saving throw proficiencies
type SavingThrows struct {
	Strength     bool `json:"strength" mapstructure:"strength"`
	Dexterity    bool `json:"dexterity" mapstructure:"dexterity"`
	Constitution bool `json:"constitution" mapstructure:"constitution"`
	Intelligence bool `json:"intelligence" mapstructure:"intelligence"`
	Wisdom       bool `json:"wisdom" mapstructure:"wisdom"`
	Charisma     bool `json:"charisma" mapstructure:"charisma"`
}

// Character is a stored character sheet. Attributes the sheet does not know
// about are kept in Extra and written back with the record.
type Character struct {
	// Basic info
	Name       string   `json:"name" mapstructure:"name"`
	Class      string   `json:"class" mapstructure:"class"`
	Level      int      `json:"level" mapstructure:"level"`
	Race       string   `json:"race" mapstructure:"race"`
	Background string   `json:"background" mapstructure:"background"`
	Alignment  string   `json:"alignment" mapstructure:"alignment"`
	Type       Category `json:"type" mapstructure:"type"`

	// Combat stats
	ArmorClass       int    `json:"armor_class" mapstructure:"armor_class"`
	InitiativeBonus  int    `json:"initiative_bonus" mapstructure:"initiative_bonus"`
	Speed            int    `json:"speed" mapstructure:"speed"`
	HitPointsMax     int    `json:"hit_points_max" mapstructure:"hit_points_max"`
	HitPointsCurrent int    `json:"hit_points_current" mapstructure:"hit_points_current"`
	TemporaryHP      int    `json:"temporary_hp" mapstructure:"temporary_hp"`
	HitDiceTotal     string `json:"hit_dice_total" mapstructure:"hit_dice_total"`
	HitDiceRemaining string `json:"hit_dice_remaining" mapstructure:"hit_dice_remaining"`

	Abilities    Abilities    `json:"abilities" mapstructure:"abilities"`
	SavingThrows SavingThrows `json:"saving_throws" mapstructure:"saving_throws"`

	// Combat options
	Weapons             []any  `json:"weapons" mapstructure:"weapons"`
	SpellcastingAbility string `json:"spellcasting_ability" mapstructure:"spellcasting_ability"`
	SpellSaveDC         int    `json:"spell_save_dc" mapstructure:"spell_save_dc"`
	SpellAttackBonus    int    `json:"spell_attack_bonus" mapstructure:"spell_attack_bonus"`

	Gold             int    `json:"gold" mapstructure:"gold"`
	Equipment        string `json:"equipment" mapstructure:"equipment"`
	Features         string `json:"features" mapstructure:"features"`
	Spells           string `json:"spells" mapstructure:"spells"`
	ProficiencyBonus int    `json:"proficiency_bonus" mapstructure:"proficiency_bonus"`

	Extra map[string]any `json:"-" mapstructure:",remain"`
}

// NewCharacter returns a blank sheet of the given category with default values
func NewCharacter(category Category) *Character {
	return &Character{
		Level:            1,
		Type:             category,
		ArmorClass:       10,
		Speed:            30,
		HitPointsMax:     10,
		HitPointsCurrent: 10,
		HitDiceTotal:     "1d8",
		HitDiceRemaining: "1d8",
		Abilities: Abilities{
			Strength:     10,
			Dexterity:    10,
			Constitution: 10,
			Intelligence: 10,
			Wisdom:       10,
			Charisma:     10,
		},
		Weapons:          []any{},
		SpellSaveDC:      10,
		ProficiencyBonus: 2,
	}
}

// Key is the record identity key within the category
func (c *Character) Key() string {
	return NormalizeName(c.Name)
}

// Selector returns the selector addressing this record
func (c *Character) Selector() Selector {
	return Selector{Category: c.Type, Name: c.Name}
}

// EquipmentItems returns the parsed equipment list
func (c *Character) EquipmentItems() []string {
	return ParseEquipment(c.Equipment)
}

// DecodeCharacter builds a Character from an open attribute map. Absent,
// null and blank numeric attributes take their defaults, numbers are accepted as floats or
// numeric strings, and unknown attributes land in Extra.
func DecodeCharacter(doc map[string]any, category Category) (*Character, error) {
	c := NewCharacter(category)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncValue(numericStringHook),
		Result:           c,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(dropNulls(doc)); err != nil {
		return nil, err
	}

	if c.Weapons == nil {
		c.Weapons = []any{}
	}
	if len(c.Extra) == 0 {
		c.Extra = nil
	}
	return c, nil
}

// characterFields has the Character fields without its methods
type characterFields Character

// MarshalJSON writes the known fields merged with Extra
func (c Character) MarshalJSON() ([]byte, error) {
	if c.Weapons == nil {
		c.Weapons = []any{}
	}
	known, err := json.Marshal(characterFields(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}

	doc := make(map[string]any, len(c.Extra)+32)
	if err := json.Unmarshal(known, &doc); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a document with the same leniency as DecodeCharacter.
// The receiver's Type is the default category.
func (c *Character) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	decoded, err := DecodeCharacter(doc, c.Type)
	if err != nil {
		return err
	}
	*c = *decoded
	return nil
}

// NormalizeName lower-cases a name and collapses whitespace runs to "_"
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// NameFromKey recovers a display name from an identity key
func NameFromKey(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

// ParseEquipment splits equipment text on commas and newlines, dropping
// blank entries.
func ParseEquipment(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	items := make([]string, 0, len(fields))
	for _, f := range fields {
		if item := strings.TrimSpace(f); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func dropNulls(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch typed := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = dropNulls(typed)
		default:
			out[k] = v
		}
	}
	return out
}

// numericStringHook lets integer fields accept strings such as "12.0". A
// blank string keeps the field's default, the same as null.
func numericStringHook(from reflect.Value, to reflect.Value) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int {
		return from.Interface(), nil
	}

	text := strings.TrimSpace(from.String())
	if text == "" {
		return to.Interface(), nil
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return int(f), nil
	}
	return from.Interface(), nil
}
