package menu

import (
	"errors"
	"reflect"
	"testing"
)

const actionsFixture = `
button:
  actions:
    first:
      type: player_command
      commands: [spawn]
    second:
      type: fly
    third:
      type: data
      key: visits
      action: add
      value: "1"
    fourth: not-a-section
    fifth:
      type: console_command
`

func TestLoadActionsKeepsDeclaredOrder(t *testing.T) {
	doc := parseSection(t, actionsFixture)
	results := LoadActions(DefaultActionRegistry(), doc, "button.actions")

	keys := make([]string, 0, len(results))
	for _, result := range results {
		keys = append(keys, result.Key)
	}
	if !reflect.DeepEqual(keys, []string{"first", "second", "third", "fourth", "fifth"}) {
		t.Fatalf("unexpected key order %v", keys)
	}

	if results[0].Err != nil || results[0].Action.Type() != ActionPlayerCommand {
		t.Fatalf("unexpected first result %+v", results[0])
	}
	var actionErr *ActionError
	if !errors.As(results[1].Err, &actionErr) || actionErr.Path != "button.actions.second" {
		t.Fatalf("expected ActionError for second, got %v", results[1].Err)
	}
	if !errors.Is(results[1].Err, ErrUnknownActionType) {
		t.Fatalf("expected ErrUnknownActionType, got %v", results[1].Err)
	}
	data, ok := results[2].Action.(DataAction)
	if !ok || data.Data.Kind != PlayerDataAdd || data.Data.Key != "visits" {
		t.Fatalf("unexpected data action %+v", results[2])
	}
	if results[3].Err == nil || results[4].Err == nil {
		t.Fatalf("expected failures for fourth and fifth")
	}
}

func TestActionListBuilderLogsAndSkipsFailures(t *testing.T) {
	doc := parseSection(t, `
button:
  actions:
    a:
      type: message
      messages: [hi]
    b:
      type: teleport
    c:
      type: refresh
`)
	logger, logs := newTestLogger()
	builder := &actionListBuilder{loader: DefaultActionRegistry(), node: doc, button: "button", logger: logger}
	actions := builder.build("button.actions")

	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[0].Type() != ActionMessage || actions[1].Type() != ActionRefresh {
		t.Fatalf("unexpected action types %s %s", actions[0].Type(), actions[1].Type())
	}
	if got := logs.count("failed to load action"); got != 1 {
		t.Fatalf("expected one failure logged, got %d", got)
	}
}

func TestActionListBuilderWithoutActions(t *testing.T) {
	doc := parseSection(t, "button: {}\n")
	logger, _ := newTestLogger()
	builder := &actionListBuilder{loader: DefaultActionRegistry(), node: doc, button: "button", logger: logger}
	if actions := builder.build("button.actions"); actions != nil {
		t.Fatalf("expected nil, got %v", actions)
	}
}

func TestActionRegistryRejectsDuplicates(t *testing.T) {
	registry := DefaultActionRegistry()
	if err := registry.Register("Message", func(Section, string) (Action, error) { return CloseAction{}, nil }); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(" ", func(Section, string) (Action, error) { return CloseAction{}, nil }); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register("noop", nil); err == nil {
		t.Fatalf("expected nil factory error")
	}
	want := []string{ActionClose, ActionConsoleCommand, ActionData, ActionMessage, ActionPlayerCommand, ActionRefresh}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestLoadPlayerDataValidation(t *testing.T) {
	doc := parseSection(t, `
ok:
  key: coins
missing:
  value: "3"
bad:
  key: coins
  action: multiply
`)
	data, err := loadPlayerData(doc, "ok")
	if err != nil || data.Kind != PlayerDataSet {
		t.Fatalf("expected SET default, got %+v %v", data, err)
	}
	if _, err := loadPlayerData(doc, "missing"); err == nil {
		t.Fatalf("expected missing key error")
	}
	if _, err := loadPlayerData(doc, "bad"); err == nil {
		t.Fatalf("expected unknown action error")
	}
}

func TestActionRegistryMustRegisterPanicsOnDuplicate(t *testing.T) {
	registry := DefaultActionRegistry()
	if got := len(registry.Names()); got != 6 {
		t.Fatalf("expected 6 built-in actions, got %d", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	registry.MustRegister(ActionClose, func(Section, string) (Action, error) {
		return CloseAction{}, nil
	})
}
