package menu

import (
	"strconv"
	"strings"
)

// Materials written when a player head is configured.
const (
	MaterialPlayerHead  = "PLAYER_HEAD"
	MaterialLegacySkull = "SKULL_ITEM"
	legacySkullData     = 3
)

// ItemBuilder produces the visual payload from the item sub-node at path.
type ItemBuilder interface {
	BuildItem(node Section, path string) (*MenuItem, error)
}

// ItemBuilderFunc adapts a function to ItemBuilder.
type ItemBuilderFunc func(node Section, path string) (*MenuItem, error)

// BuildItem implements ItemBuilder.
func (f ItemBuilderFunc) BuildItem(node Section, path string) (*MenuItem, error) {
	if f == nil {
		return nil, nil
	}
	return f(node, path)
}

// SectionItemBuilder reads material, data, amount, name and lore verbatim.
type SectionItemBuilder struct{}

// BuildItem implements ItemBuilder.
func (SectionItemBuilder) BuildItem(node Section, path string) (*MenuItem, error) {
	amount := node.GetInt(joinPath(path, "amount"), 1)
	if amount < 1 {
		amount = 1
	}
	return &MenuItem{
		Material: node.GetString(joinPath(path, "material"), "STONE"),
		Data:     node.GetInt(joinPath(path, "data"), 0),
		Amount:   amount,
		Name:     node.GetString(joinPath(path, "name"), ""),
		Lore:     node.GetStringList(joinPath(path, "lore")),
	}, nil
}

// applyPlayerHead turns item into a player skull.
func applyPlayerHead(item *MenuItem, legacy bool) {
	if item == nil {
		return
	}
	if legacy {
		item.Material = MaterialLegacySkull
		item.Data = legacySkullData
		return
	}
	item.Material = MaterialPlayerHead
}

// SoundCatalog resolves configured sound ids to canonical names.
type SoundCatalog interface {
	MatchSound(id string) (string, bool)
}

// SoundSet is a SoundCatalog over a fixed list of names.
type SoundSet map[string]struct{}

// NewSoundSet normalises names into a catalog.
func NewSoundSet(names ...string) SoundSet {
	set := make(SoundSet, len(names))
	for _, name := range names {
		if normalized := normalizeSoundID(name); normalized != "" {
			set[normalized] = struct{}{}
		}
	}
	return set
}

// MatchSound implements SoundCatalog.
func (s SoundSet) MatchSound(id string) (string, bool) {
	normalized := normalizeSoundID(id)
	_, ok := s[normalized]
	return normalized, ok
}

// AnySound accepts every non-empty id, normalised to upper snake case.
type AnySound struct{}

// MatchSound implements SoundCatalog.
func (AnySound) MatchSound(id string) (string, bool) {
	normalized := normalizeSoundID(id)
	return normalized, normalized != ""
}

func normalizeSoundID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	replacer := strings.NewReplacer(".", "_", " ", "_", "-", "_")
	return strings.ToUpper(replacer.Replace(id))
}

// parseSoundFloat reads pitch and volume values such as "1.0" or "0.5f".
func parseSoundFloat(raw string, def float32) float32 {
	raw = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "f")
	value, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return def
	}
	return float32(value)
}
