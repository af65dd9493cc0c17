package activity

import (
	"context"
	"strings"
)

// DefaultChannel is used when Config.Channel is empty.
const DefaultChannel = "menu"

// Object types stamped on menu events.
const (
	ObjectTypeButton = "menu.button"
	ObjectTypePanel  = "menu.panel"
)

// Config controls which menu events are emitted and how they are stamped.
type Config struct {
	Enabled bool
	Channel string
	// ActorID is stamped on events that do not name an actor, usually the
	// server or plugin doing the loading.
	ActorID string
	// Panels limits emission to events from these configuration files. Empty
	// means every panel.
	Panels []string
}

// Emitter fans out menu events to hooks.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
	actorID string
	panels  map[string]struct{}
}

// NewEmitter constructs an emitter from hooks and configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = DefaultChannel
	}
	var panels map[string]struct{}
	for _, panel := range cfg.Panels {
		panel = strings.TrimSpace(panel)
		if panel == "" {
			continue
		}
		if panels == nil {
			panels = make(map[string]struct{}, len(cfg.Panels))
		}
		panels[panel] = struct{}{}
	}
	normalizedHooks := cloneHooks(hooks)
	return &Emitter{
		hooks:   normalizedHooks,
		enabled: cfg.Enabled && len(normalizedHooks) > 0,
		channel: channel,
		actorID: strings.TrimSpace(cfg.ActorID),
		panels:  panels,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && len(e.hooks) > 0
}

// Emit stamps channel, actor and object type where missing and forwards the
// event to all hooks. Events from panels outside the configured set are
// dropped.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() || !e.tracksPanel(event.Panel) {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" {
		event.Channel = e.channel
	}
	if strings.TrimSpace(event.ActorID) == "" {
		event.ActorID = e.actorID
	}
	if strings.TrimSpace(event.ObjectType) == "" {
		event.ObjectType = objectTypeForVerb(event.Verb)
	}
	return e.hooks.Notify(ctx, event)
}

func (e *Emitter) tracksPanel(panel string) bool {
	if len(e.panels) == 0 {
		return true
	}
	_, ok := e.panels[strings.TrimSpace(panel)]
	return ok
}

func objectTypeForVerb(verb string) string {
	switch strings.TrimSpace(verb) {
	case VerbButtonLoaded:
		return ObjectTypeButton
	case VerbPanelLoaded:
		return ObjectTypePanel
	}
	return ""
}

func cloneHooks(hooks Hooks) Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]ActivityHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	return Hooks(normalized)
}
