package menu

// DefaultButtonType is the type tag used when a button omits `type`.
const DefaultButtonType = "NONE"

// Button is a fully resolved button definition. It is built once per panel
// load and must be treated as read-only once Engine.Resolve returns.
type Button struct {
	Type string
	Name string
	Path string

	// Slot is the absolute slot: RelativeSlot + (Page-1) * inventory size.
	Slot         int
	RelativeSlot int
	Page         int
	Slots        []int

	Item       *MenuItem
	PlayerHead string

	Permanent      bool
	UpdateOnClick  bool
	CloseInventory bool
	RefreshOnClick bool
	Updated        bool

	Messages []string
	Sound    *SoundOption
	OpenLink *OpenLink
	Datas    []PlayerDataAction

	Commands                  []string
	ConsoleCommands           []string
	ConsoleRightCommands      []string
	ConsoleLeftCommands       []string
	ConsolePermissionCommands []string
	ConsolePermission         string

	Actions      []Action
	Placeholders []PlaceholderRule
	Requirements RequirementSet

	// Payload carries the partial definition produced by the type loader.
	Payload any

	chain  *Chain
	parent nodeRef
	branch nodeRef
}

// Else returns the fallback branch, or nil when none was configured.
func (b *Button) Else() *Button {
	if b == nil {
		return nil
	}
	return b.chain.at(b.branch)
}

// Parent returns the button this branch is the fallback of, or nil for the
// primary button of a chain.
func (b *Button) Parent() *Button {
	if b == nil {
		return nil
	}
	return b.chain.at(b.parent)
}

// HasElse reports whether an else branch is attached.
func (b *Button) HasElse() bool {
	return b != nil && b.branch != noNode
}

// Chain returns the arena owning b and its branches.
func (b *Button) Chain() *Chain {
	if b == nil {
		return nil
	}
	return b.chain
}

// DefaultButtonValue holds the values a button inherits for every field its
// configuration omits.
type DefaultButtonValue struct {
	Slot           int
	Slots          []int
	Page           int
	Permanent      bool
	UpdateOnClick  bool
	CloseInventory bool
	RefreshOnClick bool
	Updated        bool
	PlayerHead     string
}

// NewDefaultButtonValue returns the defaults applied to a top level button.
func NewDefaultButtonValue() DefaultButtonValue {
	return DefaultButtonValue{Page: 1}
}

// ForElse derives the defaults for the else branch of resolved. Only the
// placement and permanence are carried over, using the resolved values
// rather than the defaults resolved itself started from.
func (d DefaultButtonValue) ForElse(resolved *Button) DefaultButtonValue {
	next := NewDefaultButtonValue()
	if resolved == nil {
		return next
	}
	next.Slot = resolved.RelativeSlot
	next.Slots = append([]int(nil), resolved.Slots...)
	next.Page = resolved.Page
	next.Permanent = resolved.Permanent
	return next
}

// MenuItem is the visual payload of a button.
type MenuItem struct {
	Material string
	Data     int
	Amount   int
	Name     string
	Lore     []string
}

// SoundOption is played when the button is clicked.
type SoundOption struct {
	Sound  string
	Pitch  float32
	Volume float32
}

// OpenLink sends a clickable chat link to the viewer.
type OpenLink struct {
	Action  string
	Message string
	Link    string
	Replace string
	Hover   []string
}

// PlayerDataKind selects how a player data entry is modified.
type PlayerDataKind string

const (
	PlayerDataSet    PlayerDataKind = "SET"
	PlayerDataAdd    PlayerDataKind = "ADD"
	PlayerDataRemove PlayerDataKind = "REMOVE"
)

// PlayerDataAction updates a stored player value when the button is clicked.
type PlayerDataAction struct {
	Key     string
	Value   string
	Kind    PlayerDataKind
	Seconds int
}

// NavigationPayload is attached by the navigation button types.
type NavigationPayload struct {
	Kind      string
	Inventory string
	Plugin    string
	Arguments []string
}

// Permissible is anything whose permissions can be checked, usually a player.
type Permissible interface {
	HasPermission(permission string) bool
}

// PermissibleFunc adapts a function to Permissible.
type PermissibleFunc func(permission string) bool

// HasPermission implements Permissible.
func (f PermissibleFunc) HasPermission(permission string) bool {
	if f == nil {
		return false
	}
	return f(permission)
}
