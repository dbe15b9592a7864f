package procgen

import (
	"fmt"

	"github.com/samdwyer/vaultcrawl/internal/entity"
	"github.com/samdwyer/vaultcrawl/internal/gamedata"
)

// Templates holds prototype entities built from the data registry.
// Spawning always deep-copies a prototype, so instances never share
// mutable state.
type Templates struct {
	monsters map[string]*entity.Entity
	items    map[string]*entity.Entity
	registry *gamedata.Registry
}

// BuildTemplates constructs prototype entities for every monster and
// item definition in the registry.
func BuildTemplates(registry *gamedata.Registry) (*Templates, error) {
	t := &Templates{
		monsters: make(map[string]*entity.Entity),
		items:    make(map[string]*entity.Entity),
		registry: registry,
	}

	for _, id := range registry.MonsterIDs() {
		def := registry.Monster(id)
		color, err := gamedata.ParseHexColor(def.Color)
		if err != nil {
			return nil, fmt.Errorf("monster %s: %w", id, err)
		}
		t.monsters[id] = entity.NewActor(
			def.GlyphRune(), color, def.Name,
			entity.NewFighter(def.HP, def.Defense, def.Power),
			entity.NewStats(def.XP),
			entity.AIModeHostile,
			0,
		)
	}

	for _, id := range registry.ItemIDs() {
		def := registry.Item(id)
		proto, err := buildItem(def)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		t.items[id] = proto
	}
	return t, nil
}

// buildItem translates one item definition into a prototype entity.
func buildItem(def *gamedata.ItemDef) (*entity.Entity, error) {
	color, err := gamedata.ParseHexColor(def.Color)
	if err != nil {
		return nil, err
	}

	switch def.Type {
	case gamedata.ItemTypeConsumable:
		c := entity.Consumable{
			Amount:   def.Amount,
			Damage:   def.Damage,
			MaxRange: def.MaxRange,
			Radius:   def.Radius,
			Turns:    def.Turns,
		}
		switch def.Effect {
		case gamedata.EffectHealing:
			c.Kind = entity.ConsumableHealing
		case gamedata.EffectLightning:
			c.Kind = entity.ConsumableLightning
		case gamedata.EffectConfusion:
			c.Kind = entity.ConsumableConfusion
		case gamedata.EffectFireball:
			c.Kind = entity.ConsumableFireball
		default:
			return nil, fmt.Errorf("unknown consumable effect %q", def.Effect)
		}
		return entity.NewConsumableItem(def.GlyphRune(), color, def.Name, c), nil

	case gamedata.ItemTypeEquippable:
		eq := entity.Equippable{
			PowerBonus:    def.PowerBonus,
			DefenseBonus:  def.DefenseBonus,
			SpecialDamage: def.SpecialDamage,
			SpecialRadius: def.SpecialRadius,
			SpecialHeal:   def.SpecialHeal,
			Cooldown:      def.Cooldown,
		}
		switch def.Slot {
		case "weapon":
			eq.Slot = entity.SlotWeapon
		case "armor":
			eq.Slot = entity.SlotArmor
		default:
			return nil, fmt.Errorf("unknown equipment slot %q", def.Slot)
		}
		switch def.Special {
		case "":
			eq.Special = entity.SpecialNone
		case gamedata.SpecialAreaDamage:
			eq.Special = entity.SpecialAreaDamage
		case gamedata.SpecialSelfHeal:
			eq.Special = entity.SpecialSelfHeal
		case gamedata.SpecialThorns:
			eq.Special = entity.SpecialThorns
		default:
			return nil, fmt.Errorf("unknown equipment special %q", def.Special)
		}
		return entity.NewEquipmentItem(def.GlyphRune(), color, def.Name, eq), nil

	default:
		return nil, fmt.Errorf("unknown item type %q", def.Type)
	}
}

// Monster returns the prototype for a monster id, or nil.
func (t *Templates) Monster(id string) *entity.Entity {
	return t.monsters[id]
}

// Item returns the prototype for an item id, or nil.
func (t *Templates) Item(id string) *entity.Entity {
	return t.items[id]
}

// Registry exposes the underlying data registry.
func (t *Templates) Registry() *gamedata.Registry {
	return t.registry
}
