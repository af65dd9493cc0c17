package activity

import (
	"strings"
	"time"
)

// Verbs recorded for menu activity.
const (
	VerbButtonLoaded = "menu.button.loaded"
	VerbPanelLoaded  = "menu.panel.loaded"
)

// ButtonEventInput describes a resolved button for audit purposes.
type ButtonEventInput struct {
	ActorID    string
	TenantID   string
	File       string
	Path       string
	Name       string
	Type       string
	Slot       int
	Page       int
	HasElse    bool
	IsBranch   bool
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildButtonLoadedEvent constructs an activity event for a resolved button.
// The object id is "<file>#<path>" so branches of the same button stay
// distinguishable.
func BuildButtonLoadedEvent(input ButtonEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadata["path"] = input.Path
	metadata["slot"] = input.Slot
	metadata["page"] = input.Page
	metadata["has_else"] = input.HasElse
	metadata["is_branch"] = input.IsBranch
	if input.Name != "" {
		metadata["name"] = input.Name
	}
	if input.Type != "" {
		metadata["type"] = input.Type
	}

	objectID := strings.TrimSpace(input.Path)
	if file := strings.TrimSpace(input.File); file != "" {
		objectID = file + "#" + objectID
	}
	if objectID == "" {
		objectID = "button"
	}

	return Event{
		Verb:       VerbButtonLoaded,
		ActorID:    strings.TrimSpace(input.ActorID),
		TenantID:   strings.TrimSpace(input.TenantID),
		ObjectType: ObjectTypeButton,
		ObjectID:   objectID,
		Panel:      strings.TrimSpace(input.File),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

// BuildPanelLoadedEvent constructs an activity event for a fully resolved
// panel.
func BuildPanelLoadedEvent(file string, buttons int, occurredAt time.Time) Event {
	objectID := strings.TrimSpace(file)
	if objectID == "" {
		objectID = "panel"
	}
	return Event{
		Verb:       VerbPanelLoaded,
		ObjectType: ObjectTypePanel,
		ObjectID:   objectID,
		Panel:      strings.TrimSpace(file),
		Metadata:   map[string]any{"buttons": buttons},
		OccurredAt: occurredAt,
	}
}
