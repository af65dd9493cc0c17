package menu

import (
	"strconv"
	"strings"
)

// DefaultInventorySize is used when a request does not name one.
const DefaultInventorySize = 54

// AbsoluteSlot converts a page-relative slot into an absolute one. Pages are
// 1-based; anything lower is treated as page 1.
func AbsoluteSlot(relativeSlot, page, inventorySize int) int {
	if page < 1 {
		page = 1
	}
	return relativeSlot + (page-1)*inventorySize
}

// ParsePageSlot parses the combined "page-slot" form. ok is false when raw
// has no separator or either half is not an integer.
func ParsePageSlot(raw string) (page, slot int, ok bool) {
	if !strings.Contains(raw, "-") {
		return 0, 0, false
	}
	parts := strings.Split(raw, "-")
	page, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	slot, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return page, slot, true
}

// MaxSlotRange bounds how many slots one "from-to" entry may expand to: a
// full inventory across 64 pages.
const MaxSlotRange = DefaultInventorySize * 64

// ParseSlots expands a list of single slots and inclusive "from-to" ranges.
// Entries that are not integers, and ranges wider than MaxSlotRange, are
// ignored.
func ParseSlots(values []string) []int {
	var slots []int
	for _, value := range values {
		value = strings.TrimSpace(value)
		if from, to, ok := parseRange(value); ok {
			if to-from >= MaxSlotRange {
				continue
			}
			for slot := from; slot <= to; slot++ {
				slots = append(slots, slot)
			}
			continue
		}
		if slot, err := strconv.Atoi(value); err == nil {
			slots = append(slots, slot)
		}
	}
	return slots
}

func parseRange(value string) (int, int, bool) {
	index := strings.Index(value, "-")
	if index <= 0 {
		return 0, 0, false
	}
	from, err := strconv.Atoi(strings.TrimSpace(value[:index]))
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.Atoi(strings.TrimSpace(value[index+1:]))
	if err != nil {
		return 0, 0, false
	}
	if to < from {
		from, to = to, from
	}
	return from, to, true
}

// readPlacement reads the raw placement fields of the node at path. A
// malformed combined slot silently falls back to the separate slot and page
// keys.
func readPlacement(node Section, path string) buttonOverlay {
	var raw buttonOverlay
	if value, ok := node.LookupString(joinPath(path, "slot")); ok {
		if page, slot, ok := ParsePageSlot(value); ok {
			raw.Page = &page
			raw.Slot = &slot
		}
	}
	if raw.Slot == nil {
		raw.Slot = lookupInt(node, joinPath(path, "slot"))
		raw.Page = lookupInt(node, joinPath(path, "page"))
	}
	raw.Slots = ParseSlots(node.GetStringList(joinPath(path, "slots")))
	return raw
}

func lookupInt(node Section, path string) *int {
	value, ok := node.LookupString(path)
	if !ok {
		return nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &parsed
}
