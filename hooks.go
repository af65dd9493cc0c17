package menu

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-menu/pkg/activity"
)

// ButtonLoadEvent is published once per resolved button, after its else
// branches are linked and before Resolve returns. Listeners may modify
// Button in place.
type ButtonLoadEvent struct {
	Section  Section
	File     string
	Path     string
	Registry *TypeRegistry
	Loader   ButtonLoader
	Button   *Button
}

// ButtonListener receives button load events.
type ButtonListener interface {
	OnButtonLoad(ctx context.Context, event *ButtonLoadEvent) error
}

// ButtonListenerFunc allows plain functions to satisfy ButtonListener.
type ButtonListenerFunc func(ctx context.Context, event *ButtonLoadEvent) error

// OnButtonLoad dispatches to the underlying function.
func (fn ButtonListenerFunc) OnButtonLoad(ctx context.Context, event *ButtonLoadEvent) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// Broadcaster delivers an event synchronously to every subscriber.
type Broadcaster interface {
	Broadcast(ctx context.Context, event *ButtonLoadEvent) error
}

// EventBus is the default Broadcaster. Besides its subscribers it records
// an audit event for every load through an optional activity emitter.
type EventBus struct {
	mu        sync.RWMutex
	listeners []ButtonListener
	emitter   *activity.Emitter
}

// NewEventBus constructs a bus. emitter may be nil.
func NewEventBus(emitter *activity.Emitter) *EventBus {
	return &EventBus{emitter: emitter}
}

// Subscribe appends listener; listeners run in subscription order.
func (b *EventBus) Subscribe(listener ButtonListener) {
	if listener == nil {
		return
	}
	b.mu.Lock()
	b.listeners = append(b.listeners, listener)
	b.mu.Unlock()
}

// Broadcast implements Broadcaster, returning a joined error if any
// listener or the emitter fails.
func (b *EventBus) Broadcast(ctx context.Context, event *ButtonLoadEvent) error {
	b.mu.RLock()
	listeners := append([]ButtonListener(nil), b.listeners...)
	b.mu.RUnlock()

	err := notifyListeners(ctx, listeners, event)
	if b.emitter.Enabled() && event != nil && event.Button != nil {
		if emitErr := b.emitter.Emit(ctx, buttonActivity(event)); emitErr != nil {
			err = errors.Join(err, emitErr)
		}
	}
	return err
}

func notifyListeners(ctx context.Context, listeners []ButtonListener, event *ButtonLoadEvent) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		if err := listener.OnButtonLoad(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buttonActivity(event *ButtonLoadEvent) activity.Event {
	button := event.Button
	return activity.BuildButtonLoadedEvent(activity.ButtonEventInput{
		File:     event.File,
		Path:     event.Path,
		Name:     button.Name,
		Type:     button.Type,
		Slot:     button.Slot,
		Page:     button.Page,
		HasElse:  button.HasElse(),
		IsBranch: button.Parent() != nil,
	})
}
