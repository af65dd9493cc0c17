package menu

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-menu/pkg/activity"
)

func TestResolveShopButton(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	logger, logs := newTestLogger()
	engine := NewEngine(WithLogger(logger))

	button, err := engine.Resolve(context.Background(), Request{
		Root:          doc,
		File:          "panel.yml",
		Path:          "buttons.shop",
		Defaults:      NewDefaultButtonValue(),
		InventorySize: 9,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if button.Type != DefaultButtonType || button.Name != "shop" || button.Path != "buttons.shop" {
		t.Fatalf("unexpected identity %q %q %q", button.Type, button.Name, button.Path)
	}
	if button.Page != 3 || button.RelativeSlot != 5 || button.Slot != 23 {
		t.Fatalf("expected page 3 slot 5 absolute 23, got page %d slot %d absolute %d", button.Page, button.RelativeSlot, button.Slot)
	}
	if !button.Permanent || !button.CloseInventory || button.UpdateOnClick {
		t.Fatalf("unexpected flags %+v", button)
	}
	if button.Item == nil || button.Item.Material != "DIAMOND" || button.Item.Name != "&bShop" {
		t.Fatalf("unexpected item %+v", button.Item)
	}
	if button.Sound == nil || button.Sound.Sound != "UI_BUTTON_CLICK" || button.Sound.Pitch != 1.5 || button.Sound.Volume != 1 {
		t.Fatalf("unexpected sound %+v", button.Sound)
	}
	if !reflect.DeepEqual(button.Messages, []string{"&aOpening shop"}) {
		t.Fatalf("unexpected messages %v", button.Messages)
	}
	if !reflect.DeepEqual(button.Commands, []string{"shop open"}) || len(button.ConsoleCommands) != 1 {
		t.Fatalf("unexpected commands %v %v", button.Commands, button.ConsoleCommands)
	}

	if len(button.Placeholders) != 2 {
		t.Fatalf("expected 2 placeholders, got %+v", button.Placeholders)
	}
	if button.Placeholders[0].Placeholder != "%player_level%" || button.Placeholders[1].Action != PlaceholderSuperior {
		t.Fatalf("placeholder order not kept: %+v", button.Placeholders)
	}
	if got := logs.count("invalid placeholder in button placeholder list"); got != 1 {
		t.Fatalf("expected one placeholder warning, got %d", got)
	}

	if len(button.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(button.Actions))
	}
	if button.Actions[0].Type() != ActionMessage || button.Actions[1].Type() != ActionClose {
		t.Fatalf("unexpected action order %s %s", button.Actions[0].Type(), button.Actions[1].Type())
	}
	if got := logs.count("failed to load action"); got != 1 {
		t.Fatalf("expected one action failure, got %d", got)
	}

	perms := button.Requirements.Permissions
	if len(perms) != 1 || perms[0].Permission() != "vip.use" || !perms[0].IsReverse() {
		t.Fatalf("unexpected permissions %+v", perms)
	}
	if !button.Requirements.Allows(permissions{}) {
		t.Fatalf("viewer without vip.use should pass")
	}
	if button.Requirements.Allows(permissions{"vip.use": true}) {
		t.Fatalf("viewer with vip.use should fail")
	}
}

func TestResolveElseChain(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	engine := NewEngine()

	button, err := engine.Resolve(context.Background(), Request{
		Root:          doc,
		Path:          "buttons.shop",
		Defaults:      NewDefaultButtonValue(),
		InventorySize: 9,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if button.Parent() != nil {
		t.Fatalf("primary button should have no parent")
	}
	first := button.Else()
	if first == nil {
		t.Fatalf("expected else branch")
	}
	second := first.Else()
	if second == nil {
		t.Fatalf("expected nested else branch")
	}
	if second.HasElse() || second.Else() != nil {
		t.Fatalf("chain should stop at depth 3")
	}
	if first.Parent() != button || second.Parent() != first {
		t.Fatalf("parent links not set")
	}
	if button.Chain() != first.Chain() || button.Chain().Len() != 3 || button.Chain().Root() != button {
		t.Fatalf("buttons should share one chain")
	}

	if first.Name != "shop.else" || second.Name != "shop.else.else" {
		t.Fatalf("unexpected branch names %q %q", first.Name, second.Name)
	}
	if first.Page != 3 || first.RelativeSlot != 5 || first.Slot != 23 {
		t.Fatalf("else branch should inherit placement, got page %d slot %d", first.Page, first.RelativeSlot)
	}
	if !first.Permanent || first.CloseInventory {
		t.Fatalf("else branch should inherit permanence only, got %+v", first)
	}
	if first.Item == nil || first.Item.Material != "BARRIER" {
		t.Fatalf("unexpected else item %+v", first.Item)
	}
	if len(first.Requirements.Permissions) != 1 || first.Requirements.Permissions[0].Permission() != "shop.locked" {
		t.Fatalf("unexpected else permissions %+v", first.Requirements.Permissions)
	}
	if len(first.Actions) != 0 || len(first.Placeholders) != 0 || first.Sound != nil {
		t.Fatalf("else branch should not inherit actions, placeholders or sound")
	}
	if second.Page != 3 || second.RelativeSlot != 8 || second.Slot != 26 || !second.Permanent {
		t.Fatalf("unexpected nested placement page %d slot %d absolute %d", second.Page, second.RelativeSlot, second.Slot)
	}
}

func TestResolveRequirementsAndPlayerHead(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	logger, logs := newTestLogger()
	engine := NewEngine(WithLogger(logger))

	button, err := engine.Resolve(context.Background(), Request{
		Root:     doc,
		Path:     "buttons.locked",
		Defaults: NewDefaultButtonValue(),
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if button.Type != TypeInventory {
		t.Fatalf("expected INVENTORY type, got %q", button.Type)
	}
	payload, ok := button.Payload.(NavigationPayload)
	if !ok || payload.Inventory != "ranks" {
		t.Fatalf("unexpected payload %#v", button.Payload)
	}
	if button.Slot != 10 || button.Page != 1 {
		t.Fatalf("unexpected placement %d page %d", button.Slot, button.Page)
	}
	if button.PlayerHead != "%player%" || button.Item == nil || button.Item.Material != MaterialPlayerHead {
		t.Fatalf("expected player head item, got %q %+v", button.PlayerHead, button.Item)
	}

	if got := logs.count("permission requirement has no permission"); got != 1 {
		t.Fatalf("expected exactly one warning, got %d\n%s", got, logs.String())
	}
	requirements := button.Requirements.Requirements
	if len(requirements) != 1 {
		t.Fatalf("expected 1 valid requirement, got %d", len(requirements))
	}
	if requirements[0].Permission() != "rank.gold" || len(requirements[0].DenyActions()) != 1 || len(requirements[0].SuccessActions()) != 1 {
		t.Fatalf("unexpected requirement %+v", requirements[0])
	}
	if len(button.Requirements.OrPermissions) != 2 {
		t.Fatalf("expected 2 or-permissions, got %d", len(button.Requirements.OrPermissions))
	}
	if !button.Requirements.Allows(permissions{"rank.gold": true, "rank.bronze": true}) {
		t.Fatalf("gold and bronze should pass")
	}
	if button.Requirements.Allows(permissions{"rank.gold": true}) {
		t.Fatalf("missing every or-permission should fail")
	}
}

func TestResolveLegacyPlayerHead(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	engine := NewEngine(WithSettings(Settings{LegacyMaterials: true}))

	button, err := engine.Resolve(context.Background(), Request{Root: doc, Path: "buttons.locked"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if button.Item.Material != MaterialLegacySkull || button.Item.Data != 3 {
		t.Fatalf("expected legacy skull, got %+v", button.Item)
	}
	if button.Slot != 10 {
		t.Fatalf("zero defaults should clamp page to 1, got slot %d", button.Slot)
	}
}

func TestResolveUnknownTypeInBranchIsFatal(t *testing.T) {
	doc := parseSection(t, `
buttons:
  x:
    slot: 1
    else:
      type: warp
`)
	engine := NewEngine()
	_, err := engine.Resolve(context.Background(), Request{Root: doc, File: "test.yml", Path: "buttons.x"})
	if !errors.Is(err, ErrUnknownButtonType) {
		t.Fatalf("expected ErrUnknownButtonType, got %v", err)
	}
	var typeErr *ButtonTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected ButtonTypeError, got %T", err)
	}
	if typeErr.File != "test.yml" || typeErr.Path != "buttons.x.else" || typeErr.Type != "warp" {
		t.Fatalf("unexpected error fields %+v", typeErr)
	}
}

func TestResolveNilSection(t *testing.T) {
	if _, err := NewEngine().Resolve(context.Background(), Request{}); !errors.Is(err, ErrNilSection) {
		t.Fatalf("expected ErrNilSection, got %v", err)
	}
}

func TestResolveCustomType(t *testing.T) {
	registry := DefaultTypeRegistry()
	registry.MustRegister("warp", ButtonLoaderFunc(func(node Section, path string, _ DefaultButtonValue) (*Button, error) {
		return &Button{Payload: node.GetString(joinPath(path, "target"), "")}, nil
	}))
	doc := parseSection(t, `
warp:
  type: Warp
  target: spawn
`)
	button, err := NewEngine(WithTypeRegistry(registry)).Resolve(context.Background(), Request{Root: doc, Path: "warp"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if button.Type != "WARP" || button.Payload != "spawn" {
		t.Fatalf("unexpected custom button %q %v", button.Type, button.Payload)
	}
}

func TestResolveFastEventListeners(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	var paths []string
	listener := ButtonListenerFunc(func(_ context.Context, event *ButtonLoadEvent) error {
		paths = append(paths, event.Path)
		if event.Registry == nil || event.Loader == nil || event.Section == nil {
			t.Fatalf("event missing collaborators: %+v", event)
		}
		if event.Path == "buttons.shop" {
			event.Button.Messages = append(event.Button.Messages, "added")
		}
		return nil
	})
	failing := ButtonListenerFunc(func(context.Context, *ButtonLoadEvent) error {
		return errors.New("listener down")
	})
	bus := NewEventBus(nil)
	var broadcasts int
	bus.Subscribe(ButtonListenerFunc(func(context.Context, *ButtonLoadEvent) error {
		broadcasts++
		return nil
	}))
	logger, logs := newTestLogger()

	engine := NewEngine(
		WithSettings(Settings{EnableFastEvent: true}),
		WithListeners(listener, failing),
		WithBroadcaster(bus),
		WithLogger(logger),
	)
	button, err := engine.Resolve(context.Background(), Request{Root: doc, Path: "buttons.shop"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	want := []string{"buttons.shop.else.else", "buttons.shop.else", "buttons.shop"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("unexpected publish order %v", paths)
	}
	if broadcasts != 0 {
		t.Fatalf("broadcaster should be bypassed with fast events")
	}
	if got := button.Messages[len(button.Messages)-1]; got != "added" {
		t.Fatalf("listener mutation not visible, got %v", button.Messages)
	}
	if got := logs.count("button load listener failed"); got != 3 {
		t.Fatalf("expected listener failure logged per button, got %d", got)
	}
}

func TestResolveBroadcasterMode(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	capture := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{capture}, activity.Config{Enabled: true})
	var listenerCalls int

	engine := NewEngine(
		WithListeners(ButtonListenerFunc(func(context.Context, *ButtonLoadEvent) error {
			listenerCalls++
			return nil
		})),
		WithActivity(emitter),
	)
	buttons, err := engine.ResolvePanel(context.Background(), Request{
		Root:     doc,
		File:     "panel.yml",
		Path:     "buttons",
		Defaults: NewDefaultButtonValue(),
	})
	if err != nil {
		t.Fatalf("resolve panel: %v", err)
	}
	if len(buttons) != 2 || buttons[0].Name != "shop" || buttons[1].Name != "locked" {
		t.Fatalf("unexpected panel buttons %d", len(buttons))
	}
	if listenerCalls != 0 {
		t.Fatalf("listeners should only run with fast events")
	}

	if len(capture.Events) != 5 {
		t.Fatalf("expected 4 button events and 1 panel event, got %d", len(capture.Events))
	}
	first := capture.Events[0]
	if first.Verb != activity.VerbButtonLoaded || first.ObjectID != "panel.yml#buttons.shop.else.else" || first.Channel != "menu" {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.Metadata["is_branch"] != true {
		t.Fatalf("expected branch metadata, got %+v", first.Metadata)
	}
	last := capture.Events[4]
	if last.Verb != activity.VerbPanelLoaded || last.Metadata["buttons"] != 2 {
		t.Fatalf("unexpected panel event %+v", last)
	}
}

func TestResolveCanceledContext(t *testing.T) {
	doc := loadFixture(t, "panel.yml")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEngine().Resolve(ctx, Request{Root: doc, Path: "buttons.shop"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestResolveElseChainOfDepthThree(t *testing.T) {
	doc := parseSection(t, `
root:
  slot: 2-7
  isPermanent: true
  else:
    isPermanent: false
    else:
      slot: 4
      else:
        messages: [last]
`)
	button, err := NewEngine().Resolve(context.Background(), Request{
		Root:          doc,
		Path:          "root",
		Defaults:      NewDefaultButtonValue(),
		InventorySize: 9,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	nodes := button.Chain().Buttons()
	if len(nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(nodes))
	}
	var walked []*Button
	for current := button; current != nil; current = current.Else() {
		walked = append(walked, current)
	}
	if !reflect.DeepEqual(walked, nodes) {
		t.Fatalf("Else() walk should match chain order")
	}
	for i, node := range nodes {
		if i == 0 {
			if node.Parent() != nil {
				t.Fatalf("root must not have a parent")
			}
			continue
		}
		if node.Parent() != nodes[i-1] {
			t.Fatalf("node %d parent mismatch", i)
		}
	}

	type placement struct {
		slot, page, absolute int
		permanent            bool
	}
	want := []placement{
		{slot: 7, page: 2, absolute: 16, permanent: true},
		{slot: 7, page: 2, absolute: 16, permanent: false},
		{slot: 4, page: 2, absolute: 13, permanent: false},
		{slot: 4, page: 2, absolute: 13, permanent: false},
	}
	for i, node := range nodes {
		got := placement{node.RelativeSlot, node.Page, node.Slot, node.Permanent}
		if got != want[i] {
			t.Fatalf("node %d placement %+v, want %+v", i, got, want[i])
		}
	}
	if !reflect.DeepEqual(nodes[3].Messages, []string{"last"}) || nodes[3].HasElse() {
		t.Fatalf("unexpected last node %+v", nodes[3])
	}
}

func TestResolveSelfAliasedElseEndsChain(t *testing.T) {
	doc := parseSection(t, `
buttons:
  loop: &loop
    slot: 1
    else: *loop
`)
	button, err := NewEngine().Resolve(context.Background(), Request{
		Root:          doc,
		Path:          "buttons.loop",
		Defaults:      NewDefaultButtonValue(),
		InventorySize: 9,
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if button.HasElse() || len(button.Chain().Buttons()) != 1 {
		t.Fatalf("expected a single node chain, got %d nodes", len(button.Chain().Buttons()))
	}
	if button.Slot != 1 {
		t.Fatalf("expected slot 1, got %d", button.Slot)
	}
}

func TestResolveEmptyPlayerHeadStillMakesSkull(t *testing.T) {
	doc := parseSection(t, `
declared:
  playerHead: ""
absent:
  slot: 2
`)
	engine := NewEngine()

	button, err := engine.Resolve(context.Background(), Request{Root: doc, Path: "declared", Defaults: NewDefaultButtonValue()})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if button.Item == nil || button.Item.Material != MaterialPlayerHead || button.PlayerHead != "" {
		t.Fatalf("expected skull item for declared empty head, got %+v", button.Item)
	}

	button, err = engine.Resolve(context.Background(), Request{Root: doc, Path: "absent", Defaults: NewDefaultButtonValue()})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if button.Item != nil {
		t.Fatalf("expected no item without playerHead, got %+v", button.Item)
	}
}
