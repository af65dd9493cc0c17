package menu

import (
	"log/slog"
	"strings"
)

// applyFields fills every common field of button from the node at path.
func (r *resolution) applyFields(button *Button, path string, defaults DefaultButtonValue) {
	cfg := &r.engine.cfg
	logger := cfg.logger

	values := inherit(r.node, path, defaults)
	button.RelativeSlot = values.RelativeSlot
	button.Page = values.Page
	button.Slot = AbsoluteSlot(values.RelativeSlot, values.Page, r.size)
	button.Slots = values.Slots
	button.Permanent = values.Permanent
	button.UpdateOnClick = values.UpdateOnClick
	button.CloseInventory = values.CloseInventory
	button.RefreshOnClick = values.RefreshOnClick
	button.Updated = values.Updated
	button.PlayerHead = values.PlayerHead

	button.Item = r.buildItem(path, values.HasPlayerHead)
	button.Messages = r.node.GetStringList(joinPath(path, "messages"))
	button.Sound = r.readSound(path)
	button.OpenLink = readOpenLink(r.node, path)
	button.Datas = r.readDatas(path)
	r.readCommands(button, path)

	actions := &actionListBuilder{
		loader: cfg.actions,
		node:   r.node,
		button: path,
		logger: logger,
	}
	button.Placeholders = buildPlaceholders(r.node, path, logger)
	button.Actions = actions.build(joinPath(path, "actions"))
	button.Requirements = requirementBuilder{
		node:    r.node,
		path:    path,
		actions: actions,
		logger:  logger,
	}.build()
}

// buildItem delegates to the item builder. Builder failures leave the button
// without an item. A declared playerHead turns the item into a skull even when
// the owner is empty.
func (r *resolution) buildItem(path string, hasHead bool) *MenuItem {
	cfg := &r.engine.cfg
	itemPath := joinPath(path, "item")

	var item *MenuItem
	if r.node.IsSection(itemPath) {
		built, err := cfg.items.BuildItem(r.node, itemPath)
		if err != nil {
			cfg.logger.Warn("failed to build button item",
				slog.String("button", path),
				slog.Any("error", err),
			)
		} else {
			item = built
		}
	}
	if hasHead {
		if item == nil {
			item = &MenuItem{Amount: 1}
		}
		applyPlayerHead(item, cfg.settings.LegacyMaterials)
	}
	return item
}

// readSound resolves the click sound. Unknown ids leave the button silent.
func (r *resolution) readSound(path string) *SoundOption {
	cfg := &r.engine.cfg
	id, ok := r.node.LookupString(joinPath(path, "sound"))
	if !ok || strings.TrimSpace(id) == "" {
		return nil
	}
	sound, ok := cfg.sounds.MatchSound(id)
	if !ok {
		cfg.logger.Warn("unknown button sound",
			slog.String("button", path),
			slog.String("sound", id),
		)
		return nil
	}
	return &SoundOption{
		Sound:  sound,
		Pitch:  parseSoundFloat(r.node.GetString(joinPath(path, "pitch"), "1.0"), 1),
		Volume: parseSoundFloat(r.node.GetString(joinPath(path, "volume"), "1.0"), 1),
	}
}

func readOpenLink(node Section, path string) *OpenLink {
	linkPath := joinPath(path, "openLink")
	if !node.IsSection(linkPath) {
		return nil
	}
	return &OpenLink{
		Action:  node.GetString(joinPath(linkPath, "action"), ""),
		Message: node.GetString(joinPath(linkPath, "message"), ""),
		Link:    node.GetString(joinPath(linkPath, "link"), ""),
		Replace: node.GetString(joinPath(linkPath, "replace"), ""),
		Hover:   node.GetStringList(joinPath(linkPath, "hover")),
	}
}

// readDatas loads the `datas` sub-section, skipping malformed entries.
func (r *resolution) readDatas(path string) []PlayerDataAction {
	datasPath := joinPath(path, "datas")
	var datas []PlayerDataAction
	for _, key := range r.node.Keys(datasPath) {
		data, err := loadPlayerData(r.node, joinPath(datasPath, key))
		if err != nil {
			r.engine.cfg.logger.Warn("invalid player data",
				slog.String("button", path),
				slog.String("data", key),
				slog.Any("error", err),
			)
			continue
		}
		datas = append(datas, data)
	}
	return datas
}

func (r *resolution) readCommands(button *Button, path string) {
	commands := r.node.GetStringList(joinPath(path, "commands"))
	if len(commands) == 0 {
		commands = r.node.GetStringList(joinPath(path, "playerCommands"))
	}
	button.Commands = commands
	button.ConsoleCommands = r.node.GetStringList(joinPath(path, "consoleCommands"))
	button.ConsoleRightCommands = r.node.GetStringList(joinPath(path, "consoleRightCommands"))
	button.ConsoleLeftCommands = r.node.GetStringList(joinPath(path, "consoleLeftCommands"))
	button.ConsolePermissionCommands = r.node.GetStringList(joinPath(path, "consolePermissionCommands"))
	button.ConsolePermission = r.node.GetString(joinPath(path, "consolePermission"), "")
}
