package menu

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-menu/layering"
)

// buttonOverlay captures the inheritable fields a node actually declares.
// Nil means "not declared" and is filled from the defaults layer.
type buttonOverlay struct {
	Slot           *int
	Page           *int
	Slots          []int
	Permanent      *bool
	UpdateOnClick  *bool
	CloseInventory *bool
	RefreshOnClick *bool
	Updated        *bool
	PlayerHead     *string
}

// inherited is the outcome of layering a node over its defaults.
type inherited struct {
	RelativeSlot   int
	Page           int
	Slots          []int
	Permanent      bool
	UpdateOnClick  bool
	CloseInventory bool
	RefreshOnClick bool
	Updated        bool
	PlayerHead     string
	// HasPlayerHead is set when playerHead is declared, even as "".
	HasPlayerHead  bool
}

func (d DefaultButtonValue) overlay() buttonOverlay {
	out := buttonOverlay{
		Slot:           &d.Slot,
		Page:           &d.Page,
		Slots:          d.Slots,
		Permanent:      &d.Permanent,
		UpdateOnClick:  &d.UpdateOnClick,
		CloseInventory: &d.CloseInventory,
		RefreshOnClick: &d.RefreshOnClick,
		Updated:        &d.Updated,
	}
	if d.PlayerHead != "" {
		out.PlayerHead = &d.PlayerHead
	}
	return layering.Clone(out)
}

// readOverlay collects every inheritable field declared on the node at path.
func readOverlay(node Section, path string) buttonOverlay {
	raw := readPlacement(node, path)
	raw.Permanent = lookupBool(node, joinPath(path, "isPermanent"))
	raw.UpdateOnClick = lookupBool(node, joinPath(path, "updateOnClick"))
	raw.CloseInventory = lookupBool(node, joinPath(path, "closeInventory"))
	raw.RefreshOnClick = lookupBool(node, joinPath(path, "refreshOnClick"))
	raw.Updated = lookupBool(node, joinPath(path, "update"))
	if head, ok := node.LookupString(joinPath(path, "playerHead")); ok {
		raw.PlayerHead = &head
	} else if head, ok := node.LookupString(joinPath(path, "item", "playerHead")); ok {
		raw.PlayerHead = &head
	}
	return raw
}

// inherit layers the node's declared fields over defaults.
func inherit(node Section, path string, defaults DefaultButtonValue) inherited {
	merged := layering.MergeLayers(readOverlay(node, path), defaults.overlay())
	out := inherited{
		RelativeSlot:   deref(merged.Slot),
		Page:           deref(merged.Page),
		Slots:          merged.Slots,
		Permanent:      deref(merged.Permanent),
		UpdateOnClick:  deref(merged.UpdateOnClick),
		CloseInventory: deref(merged.CloseInventory),
		RefreshOnClick: deref(merged.RefreshOnClick),
		Updated:        deref(merged.Updated),
		PlayerHead:     deref(merged.PlayerHead),
		HasPlayerHead:  merged.PlayerHead != nil,
	}
	if out.Page < 1 {
		out.Page = 1
	}
	return out
}

func lookupBool(node Section, path string) *bool {
	value, ok := node.LookupString(path)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &parsed
}

func deref[T any](value *T) T {
	var zero T
	if value == nil {
		return zero
	}
	return *value
}
