package gamedata

// MonsterDef defines a monster template loaded from JSON.
type MonsterDef struct {
	ID      string `json:"id"`      // Unique identifier (e.g., "orc")
	Name    string `json:"name"`    // Display name (e.g., "Orc")
	Glyph   string `json:"glyph"`   // Single character for rendering (e.g., "o")
	Color   string `json:"color"`   // Hex color code (e.g., "#3F7F3F")
	HP      int    `json:"hp"`      // Base hit points
	Defense int    `json:"defense"` // Base defense value
	Power   int    `json:"power"`   // Base attack power
	XP      int    `json:"xp"`      // Experience granted on death
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return []rune(m.Glyph)[0]
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters []MonsterDef `json:"monsters"`
}

// LoadMonsters loads monster definitions from the embedded monsters.json.
func LoadMonsters() ([]MonsterDef, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	return file.Monsters, nil
}
