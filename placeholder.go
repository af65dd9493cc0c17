package menu

import (
	"fmt"
	"log/slog"
	"strings"
)

// PlaceholderAction is the comparison a placeholder rule performs between
// the resolved placeholder and its target value.
type PlaceholderAction string

const (
	PlaceholderBoolean                PlaceholderAction = "BOOLEAN"
	PlaceholderEqualsString           PlaceholderAction = "EQUALS_STRING"
	PlaceholderEqualsStringIgnoreCase PlaceholderAction = "EQUALS_STRING_IGNORE_CASE"
	PlaceholderContainsString         PlaceholderAction = "CONTAINS_STRING"
	PlaceholderEqualTo                PlaceholderAction = "EQUAL_TO"
	PlaceholderSuperior               PlaceholderAction = "SUPERIOR"
	PlaceholderSuperiorOrEqual        PlaceholderAction = "SUPERIOR_OR_EQUAL"
	PlaceholderLower                  PlaceholderAction = "LOWER"
	PlaceholderLowerOrEqual           PlaceholderAction = "LOWER_OR_EQUAL"
)

var placeholderActionAliases = map[string]PlaceholderAction{
	"==": PlaceholderEqualTo,
	">":  PlaceholderSuperior,
	">=": PlaceholderSuperiorOrEqual,
	"<":  PlaceholderLower,
	"<=": PlaceholderLowerOrEqual,
}

var placeholderActions = []PlaceholderAction{
	PlaceholderBoolean,
	PlaceholderEqualsString,
	PlaceholderEqualsStringIgnoreCase,
	PlaceholderContainsString,
	PlaceholderEqualTo,
	PlaceholderSuperior,
	PlaceholderSuperiorOrEqual,
	PlaceholderLower,
	PlaceholderLowerOrEqual,
}

// ParsePlaceholderAction matches an action by name (case-insensitive) or by
// its symbolic alias.
func ParsePlaceholderAction(value string) (PlaceholderAction, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if action, ok := placeholderActionAliases[value]; ok {
		return action, true
	}
	for _, action := range placeholderActions {
		if strings.EqualFold(string(action), value) {
			return action, true
		}
	}
	return "", false
}

// Numeric reports whether the action compares numbers.
func (a PlaceholderAction) Numeric() bool {
	switch a {
	case PlaceholderEqualTo, PlaceholderSuperior, PlaceholderSuperiorOrEqual, PlaceholderLower, PlaceholderLowerOrEqual:
		return true
	default:
		return false
	}
}

// PlaceholderRule gates a button on the value a placeholder resolves to.
type PlaceholderRule struct {
	Action      PlaceholderAction
	Placeholder string
	Value       string
}

// IsValid reports whether action, placeholder and value are all present.
func (r PlaceholderRule) IsValid() bool {
	return r.Action != "" && r.Placeholder != "" && r.Value != ""
}

func placeholderFromMap(entry map[string]any) PlaceholderRule {
	rule := PlaceholderRule{
		Placeholder: stringValue(entry["placeHolder"]),
		Value:       stringValue(entry["value"]),
	}
	if rule.Placeholder == "" {
		rule.Placeholder = stringValue(entry["placeholder"])
	}
	if action, ok := ParsePlaceholderAction(stringValue(entry["action"])); ok {
		rule.Action = action
	}
	return rule
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	default:
		return fmt.Sprint(typed)
	}
}

// buildPlaceholders converts the `placeholders` list of the node at path and
// appends the single shorthand rule when it is fully declared.
func buildPlaceholders(node Section, path string, logger *slog.Logger) []PlaceholderRule {
	entries := node.GetMapList(joinPath(path, "placeholders"))
	rules := make([]PlaceholderRule, 0, len(entries)+1)
	for _, entry := range entries {
		rule := placeholderFromMap(entry)
		if !rule.IsValid() {
			logger.Warn("invalid placeholder in button placeholder list", slog.String("button", path))
			continue
		}
		rules = append(rules, rule)
	}

	placeholder, ok := node.LookupString(joinPath(path, "placeHolder"))
	if !ok {
		placeholder, _ = node.LookupString(joinPath(path, "placeholder"))
	}
	action, _ := ParsePlaceholderAction(node.GetString(joinPath(path, "action"), ""))
	value := node.GetString(joinPath(path, "value"), "")
	if shorthand := (PlaceholderRule{Action: action, Placeholder: placeholder, Value: value}); shorthand.IsValid() {
		rules = append(rules, shorthand)
	}
	if len(rules) == 0 {
		return nil
	}
	return rules
}
