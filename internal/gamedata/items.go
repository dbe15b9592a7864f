package gamedata

// Item type discriminators used in items.json.
const (
	ItemTypeConsumable = "consumable"
	ItemTypeEquippable = "equippable"
)

// Consumable effect discriminators.
const (
	EffectHealing   = "healing"
	EffectLightning = "lightning"
	EffectConfusion = "confusion"
	EffectFireball  = "fireball"
)

// Equippable special-ability discriminators. Empty means none.
const (
	SpecialAreaDamage = "area_damage"
	SpecialSelfHeal   = "self_heal"
	SpecialThorns     = "thorns"
)

// ItemDef defines an item template loaded from JSON. Type selects which
// of the remaining fields are meaningful.
type ItemDef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Color string `json:"color"`
	Type  string `json:"type"` // "consumable" or "equippable"

	// Consumable fields
	Effect   string `json:"effect,omitempty"`
	Amount   int    `json:"amount,omitempty"`
	Damage   int    `json:"damage,omitempty"`
	MaxRange int    `json:"maxRange,omitempty"`
	Radius   int    `json:"radius,omitempty"`
	Turns    int    `json:"turns,omitempty"`

	// Equippable fields
	Slot          string `json:"slot,omitempty"` // "weapon" or "armor"
	PowerBonus    int    `json:"powerBonus,omitempty"`
	DefenseBonus  int    `json:"defenseBonus,omitempty"`
	Special       string `json:"special,omitempty"`
	SpecialDamage int    `json:"specialDamage,omitempty"`
	SpecialRadius int    `json:"specialRadius,omitempty"`
	SpecialHeal   int    `json:"specialHeal,omitempty"`
	Cooldown      int    `json:"cooldown,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (i *ItemDef) GlyphRune() rune {
	if len(i.Glyph) == 0 {
		return '?'
	}
	return []rune(i.Glyph)[0]
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item definitions from the embedded items.json.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
