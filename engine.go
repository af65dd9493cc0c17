package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-menu/pkg/activity"
)

var (
	// ErrUnknownButtonType is wrapped by ButtonTypeError.
	ErrUnknownButtonType = errors.New("menu: unknown button type")
	// ErrNilSection is returned when a request carries no configuration.
	ErrNilSection = errors.New("menu: request section is nil")
)

// ButtonTypeError reports a button whose type tag has no registered loader.
type ButtonTypeError struct {
	File string
	Path string
	Type string
}

func (e *ButtonTypeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	file := e.File
	if file == "" {
		file = "<unknown>"
	}
	return fmt.Sprintf("menu: unknown button type %q for button %s in %s", e.Type, e.Path, file)
}

func (e *ButtonTypeError) Unwrap() error {
	return ErrUnknownButtonType
}

// Request describes one button to resolve.
type Request struct {
	Root Section
	// File names the panel for error messages and events.
	File string
	Path string
	Name string
	// Defaults are inherited for every field the node omits.
	Defaults DefaultButtonValue
	// InventorySize overrides Settings.InventorySize when positive.
	InventorySize int
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	settings    Settings
	types       *TypeRegistry
	actions     ActionLoader
	items       ItemBuilder
	sounds      SoundCatalog
	listeners   []ButtonListener
	broadcaster Broadcaster
	emitter     *activity.Emitter
	logger      *slog.Logger
}

// WithSettings replaces the default settings.
func WithSettings(settings Settings) Option {
	return func(cfg *engineConfig) {
		cfg.settings = settings
	}
}

// WithTypeRegistry replaces the built-in button types.
func WithTypeRegistry(registry *TypeRegistry) Option {
	return func(cfg *engineConfig) {
		cfg.types = registry
	}
}

// WithActionLoader replaces the built-in action registry.
func WithActionLoader(loader ActionLoader) Option {
	return func(cfg *engineConfig) {
		cfg.actions = loader
	}
}

// WithItemBuilder replaces SectionItemBuilder.
func WithItemBuilder(builder ItemBuilder) Option {
	return func(cfg *engineConfig) {
		cfg.items = builder
	}
}

// WithSoundCatalog restricts sounds to the ones the catalog knows.
func WithSoundCatalog(catalog SoundCatalog) Option {
	return func(cfg *engineConfig) {
		cfg.sounds = catalog
	}
}

// WithListeners appends listeners used when fast events are enabled.
func WithListeners(listeners ...ButtonListener) Option {
	return func(cfg *engineConfig) {
		cfg.listeners = append(cfg.listeners, listeners...)
	}
}

// WithBroadcaster sets the broadcaster used when fast events are disabled.
func WithBroadcaster(broadcaster Broadcaster) Option {
	return func(cfg *engineConfig) {
		cfg.broadcaster = broadcaster
	}
}

// WithActivity records panel loads, and button loads on the default
// broadcaster, through emitter.
func WithActivity(emitter *activity.Emitter) Option {
	return func(cfg *engineConfig) {
		cfg.emitter = emitter
	}
}

// WithLogger sets the logger for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *engineConfig) {
		cfg.logger = logger
	}
}

func applyEngineOptions(opts []Option) engineConfig {
	cfg := engineConfig{settings: DefaultSettings()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.types == nil {
		cfg.types = DefaultTypeRegistry()
	}
	if cfg.actions == nil {
		cfg.actions = DefaultActionRegistry()
	}
	if cfg.items == nil {
		cfg.items = SectionItemBuilder{}
	}
	if cfg.sounds == nil {
		cfg.sounds = AnySound{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.broadcaster == nil {
		cfg.broadcaster = NewEventBus(cfg.emitter)
	}
	if cfg.settings.InventorySize <= 0 {
		cfg.settings.InventorySize = DefaultInventorySize
	}
	return cfg
}

// Engine resolves button configuration into Button definitions. It holds no
// per-load state and may be shared between goroutines.
type Engine struct {
	cfg engineConfig
}

// NewEngine constructs an engine.
func NewEngine(opts ...Option) *Engine {
	return &Engine{cfg: applyEngineOptions(opts)}
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() Settings {
	return e.cfg.settings
}

// Types returns the button type registry.
func (e *Engine) Types() *TypeRegistry {
	return e.cfg.types
}

// Resolve builds the button at req.Path together with its else branches.
// An unknown type anywhere in the chain aborts with a *ButtonTypeError.
func (e *Engine) Resolve(ctx context.Context, req Request) (*Button, error) {
	if req.Root == nil {
		return nil, ErrNilSection
	}
	if ctx == nil {
		ctx = context.Background()
	}
	size := req.InventorySize
	if size <= 0 {
		size = e.cfg.settings.InventorySize
	}
	name := req.Name
	if name == "" {
		name = lastSegment(req.Path)
	}
	run := &resolution{
		engine: e,
		node:   req.Root,
		file:   req.File,
		size:   size,
		chain:  &Chain{},
	}
	return run.resolve(ctx, req.Path, name, req.Defaults, noNode)
}

// ResolvePanel resolves every child of req.Path in declared order, using the
// child key as the button name.
func (e *Engine) ResolvePanel(ctx context.Context, req Request) ([]*Button, error) {
	if req.Root == nil {
		return nil, ErrNilSection
	}
	if ctx == nil {
		ctx = context.Background()
	}
	keys := req.Root.Keys(req.Path)
	buttons := make([]*Button, 0, len(keys))
	for _, key := range keys {
		child := req
		child.Path = joinPath(req.Path, key)
		child.Name = key
		button, err := e.Resolve(ctx, child)
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, button)
	}
	if e.cfg.emitter.Enabled() {
		event := activity.BuildPanelLoadedEvent(req.File, len(buttons), time.Now())
		if err := e.cfg.emitter.Emit(ctx, event); err != nil {
			e.cfg.logger.Warn("failed to record panel activity",
				slog.String("file", req.File),
				slog.Any("error", err),
			)
		}
	}
	return buttons, nil
}

// resolution carries the state of a single Resolve call.
type resolution struct {
	engine *Engine
	node   Section
	file   string
	size   int
	chain  *Chain
}

// resolve builds the button at path and, recursively, its else branch.
// parent is linked before any hook fires so listeners observe the chain.
func (r *resolution) resolve(ctx context.Context, path, name string, defaults DefaultButtonValue, parent nodeRef) (*Button, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := &r.engine.cfg

	typeName := strings.TrimSpace(r.node.GetString(joinPath(path, "type"), DefaultButtonType))
	if typeName == "" {
		typeName = DefaultButtonType
	}
	loader, ok := cfg.types.Lookup(typeName)
	if !ok {
		return nil, &ButtonTypeError{File: r.file, Path: path, Type: typeName}
	}
	button, err := loader.Load(r.node, path, defaults)
	if err != nil {
		return nil, fmt.Errorf("menu: load %s button %s: %w", normalizeTypeName(typeName), path, err)
	}
	if button == nil {
		button = &Button{}
	}
	button.Type = normalizeTypeName(typeName)
	button.Name = name
	button.Path = path
	ref := r.chain.add(button)
	if parent != noNode {
		r.chain.link(parent, ref)
	}

	r.applyFields(button, path, defaults)

	elsePath := joinPath(path, "else")
	if r.node.Contains(elsePath) {
		if _, err := r.resolve(ctx, elsePath, name+".else", defaults.ForElse(button), ref); err != nil {
			return nil, err
		}
	}

	r.publish(ctx, &ButtonLoadEvent{
		Section:  r.node,
		File:     r.file,
		Path:     path,
		Registry: cfg.types,
		Loader:   loader,
		Button:   button,
	})
	return button, nil
}

func (r *resolution) publish(ctx context.Context, event *ButtonLoadEvent) {
	cfg := &r.engine.cfg
	var err error
	if cfg.settings.EnableFastEvent {
		err = notifyListeners(ctx, cfg.listeners, event)
	} else if cfg.broadcaster != nil {
		err = cfg.broadcaster.Broadcast(ctx, event)
	}
	if err != nil {
		cfg.logger.Warn("button load listener failed",
			slog.String("button", event.Path),
			slog.Any("error", err),
		)
	}
}

func lastSegment(path string) string {
	if index := strings.LastIndex(path, "."); index >= 0 {
		return path[index+1:]
	}
	return path
}
