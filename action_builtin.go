package menu

import (
	"fmt"
	"strings"
)

// Built-in action type names.
const (
	ActionMessage        = "message"
	ActionPlayerCommand  = "player_command"
	ActionConsoleCommand = "console_command"
	ActionClose          = "close"
	ActionRefresh        = "refresh"
	ActionData           = "data"
)

// MessageAction sends chat lines to the viewer.
type MessageAction struct {
	Messages []string
}

func (MessageAction) Type() string { return ActionMessage }

// CommandAction runs commands as the viewer or as the console.
type CommandAction struct {
	Commands []string
	Console  bool
}

func (a CommandAction) Type() string {
	if a.Console {
		return ActionConsoleCommand
	}
	return ActionPlayerCommand
}

// CloseAction closes the inventory.
type CloseAction struct{}

func (CloseAction) Type() string { return ActionClose }

// RefreshAction re-renders the inventory.
type RefreshAction struct{}

func (RefreshAction) Type() string { return ActionRefresh }

// DataAction modifies stored player data.
type DataAction struct {
	Data PlayerDataAction
}

func (DataAction) Type() string { return ActionData }

// DefaultActionRegistry returns a registry with the built-in action types.
func DefaultActionRegistry() *ActionRegistry {
	registry := NewActionRegistry()
	registry.MustRegister(ActionMessage, func(node Section, path string) (Action, error) {
		messages := node.GetStringList(joinPath(path, "messages"))
		if len(messages) == 0 {
			return nil, fmt.Errorf("message action requires messages")
		}
		return MessageAction{Messages: messages}, nil
	})
	registry.MustRegister(ActionPlayerCommand, commandFactory(false))
	registry.MustRegister(ActionConsoleCommand, commandFactory(true))
	registry.MustRegister(ActionClose, func(Section, string) (Action, error) {
		return CloseAction{}, nil
	})
	registry.MustRegister(ActionRefresh, func(Section, string) (Action, error) {
		return RefreshAction{}, nil
	})
	registry.MustRegister(ActionData, func(node Section, path string) (Action, error) {
		data, err := loadPlayerData(node, path)
		if err != nil {
			return nil, err
		}
		return DataAction{Data: data}, nil
	})
	return registry
}

func commandFactory(console bool) ActionFactory {
	return func(node Section, path string) (Action, error) {
		commands := node.GetStringList(joinPath(path, "commands"))
		if len(commands) == 0 {
			return nil, fmt.Errorf("command action requires commands")
		}
		return CommandAction{Commands: commands, Console: console}, nil
	}
}

// loadPlayerData reads one player data entry. The key is required; the
// modification kind defaults to SET.
func loadPlayerData(node Section, path string) (PlayerDataAction, error) {
	key := strings.TrimSpace(node.GetString(joinPath(path, "key"), ""))
	if key == "" {
		return PlayerDataAction{}, fmt.Errorf("player data at %s requires a key", path)
	}
	kind := PlayerDataKind(strings.ToUpper(strings.TrimSpace(node.GetString(joinPath(path, "action"), string(PlayerDataSet)))))
	switch kind {
	case PlayerDataSet, PlayerDataAdd, PlayerDataRemove:
	default:
		return PlayerDataAction{}, fmt.Errorf("player data at %s has unknown action %q", path, kind)
	}
	return PlayerDataAction{
		Key:     key,
		Value:   node.GetString(joinPath(path, "value"), ""),
		Kind:    kind,
		Seconds: node.GetInt(joinPath(path, "seconds"), 0),
	}, nil
}
