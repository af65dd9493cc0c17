package menu

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownActionType is wrapped by ActionError when no factory matches.
var ErrUnknownActionType = errors.New("menu: unknown action type")

// Action is a loaded click action. Its execution belongs to the caller.
type Action interface {
	Type() string
}

// ActionLoader turns the sub-node at path into an Action.
type ActionLoader interface {
	LoadAction(node Section, path string) (Action, error)
}

// ActionLoaderFunc adapts a function to ActionLoader.
type ActionLoaderFunc func(node Section, path string) (Action, error)

// LoadAction implements ActionLoader.
func (f ActionLoaderFunc) LoadAction(node Section, path string) (Action, error) {
	if f == nil {
		return nil, fmt.Errorf("menu: action loader is nil")
	}
	return f(node, path)
}

// ActionError describes an action that could not be loaded.
type ActionError struct {
	Path string
	Err  error
}

func (e *ActionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("menu: action %s: %v", e.Path, e.Err)
}

func (e *ActionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ActionResult is the outcome of loading one declared action.
type ActionResult struct {
	Key    string
	Action Action
	Err    error
}

// LoadActions loads every child of the mapping at path in declared order.
// One result is returned per key; failures do not stop later keys.
func LoadActions(loader ActionLoader, node Section, path string) []ActionResult {
	keys := node.Keys(path)
	if len(keys) == 0 {
		return nil
	}
	results := make([]ActionResult, 0, len(keys))
	for _, key := range keys {
		actionPath := joinPath(path, key)
		action, err := loader.LoadAction(node, actionPath)
		if err == nil && action == nil {
			err = fmt.Errorf("loader returned no action")
		}
		if err != nil {
			var actionErr *ActionError
			if !errors.As(err, &actionErr) {
				err = &ActionError{Path: actionPath, Err: err}
			}
			results = append(results, ActionResult{Key: key, Err: err})
			continue
		}
		results = append(results, ActionResult{Key: key, Action: action})
	}
	return results
}

// actionListBuilder loads action lists for one button and reports failures
// through the logger.
type actionListBuilder struct {
	loader ActionLoader
	node   Section
	button string
	logger *slog.Logger
}

func (b *actionListBuilder) build(path string) []Action {
	if b.loader == nil {
		return nil
	}
	var actions []Action
	for _, result := range LoadActions(b.loader, b.node, path) {
		if result.Err != nil {
			b.logger.Error("failed to load action",
				slog.String("button", b.button),
				slog.String("action", result.Key),
				slog.Any("error", result.Err),
			)
			continue
		}
		actions = append(actions, result.Action)
	}
	return actions
}

// ActionFactory builds an action of one type from its sub-node.
type ActionFactory func(node Section, path string) (Action, error)

// ActionRegistry is an ActionLoader dispatching on each action's `type` key.
type ActionRegistry struct {
	mu        sync.RWMutex
	factories map[string]ActionFactory
}

// NewActionRegistry constructs an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{factories: map[string]ActionFactory{}}
}

// Register stores factory under the action type name.
func (r *ActionRegistry) Register(name string, factory ActionFactory) error {
	if factory == nil {
		return fmt.Errorf("menu: action factory %q is nil", name)
	}
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return fmt.Errorf("menu: action type name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.factories == nil {
		r.factories = map[string]ActionFactory{}
	}
	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("menu: action type %q already registered", name)
	}
	r.factories[key] = factory
	return nil
}

// MustRegister is Register for static setup code.
func (r *ActionRegistry) MustRegister(name string, factory ActionFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Names returns the registered action types sorted alphabetically.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadAction implements ActionLoader.
func (r *ActionRegistry) LoadAction(node Section, path string) (Action, error) {
	if !node.IsSection(path) {
		return nil, &ActionError{Path: path, Err: fmt.Errorf("action must be a section")}
	}
	name, ok := node.LookupString(joinPath(path, "type"))
	if !ok || strings.TrimSpace(name) == "" {
		return nil, &ActionError{Path: path, Err: fmt.Errorf("action type is required")}
	}
	r.mu.RLock()
	factory := r.factories[strings.ToLower(strings.TrimSpace(name))]
	r.mu.RUnlock()
	if factory == nil {
		return nil, &ActionError{Path: path, Err: fmt.Errorf("%w %q", ErrUnknownActionType, name)}
	}
	action, err := factory(node, path)
	if err != nil {
		return nil, &ActionError{Path: path, Err: err}
	}
	return action, nil
}
