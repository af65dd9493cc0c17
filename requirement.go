package menu

import (
	"log/slog"
	"strings"
)

// negationMarker prefixes a permission that must be absent.
const negationMarker = "!"

// PermissionRequirement gates a button on a single permission node. The
// negation marker is stripped once at construction.
type PermissionRequirement struct {
	permission     string
	reverse        bool
	denyActions    []Action
	successActions []Action
}

// NewPermissionRequirement builds a requirement for permission. A leading
// "!" inverts the check.
func NewPermissionRequirement(permission string, denyActions, successActions []Action) PermissionRequirement {
	reverse := strings.HasPrefix(permission, negationMarker)
	if reverse {
		permission = strings.TrimPrefix(permission, negationMarker)
	}
	return PermissionRequirement{
		permission:     permission,
		reverse:        reverse,
		denyActions:    denyActions,
		successActions: successActions,
	}
}

// Permission returns the permission node without the negation marker.
func (r PermissionRequirement) Permission() string {
	return r.permission
}

// IsReverse reports whether the permission must be absent.
func (r PermissionRequirement) IsReverse() bool {
	return r.reverse
}

// IsValid reports whether a permission node was supplied.
func (r PermissionRequirement) IsValid() bool {
	return r.permission != ""
}

// HasPermission reports whether p satisfies the requirement.
func (r PermissionRequirement) HasPermission(p Permissible) bool {
	actual := p != nil && p.HasPermission(r.permission)
	return r.reverse != actual
}

// DenyActions returns the actions to run when the requirement fails.
func (r PermissionRequirement) DenyActions() []Action {
	return r.denyActions
}

// SuccessActions returns the actions to run when the requirement passes.
func (r PermissionRequirement) SuccessActions() []Action {
	return r.successActions
}

// RequirementSet is every permission gate declared on a button.
type RequirementSet struct {
	// Permissions must all pass.
	Permissions []PermissionRequirement
	// OrPermissions pass when any one of them does.
	OrPermissions []PermissionRequirement
	// Requirements must all pass and carry their own deny/success actions.
	Requirements []PermissionRequirement
}

// Empty reports whether the set gates nothing.
func (s RequirementSet) Empty() bool {
	return len(s.Permissions) == 0 && len(s.OrPermissions) == 0 && len(s.Requirements) == 0
}

// Allows reports whether p passes every gate in the set.
func (s RequirementSet) Allows(p Permissible) bool {
	for _, requirement := range s.Permissions {
		if !requirement.HasPermission(p) {
			return false
		}
	}
	for _, requirement := range s.Requirements {
		if !requirement.HasPermission(p) {
			return false
		}
	}
	if len(s.OrPermissions) == 0 {
		return true
	}
	for _, requirement := range s.OrPermissions {
		if requirement.HasPermission(p) {
			return true
		}
	}
	return false
}

// requirementBuilder assembles the requirement set of one button.
type requirementBuilder struct {
	node    Section
	path    string
	actions *actionListBuilder
	logger  *slog.Logger
}

func (b requirementBuilder) build() RequirementSet {
	var permissions []string
	if single, ok := b.node.LookupString(joinPath(b.path, "permission")); ok {
		permissions = append(permissions, single)
	}
	permissions = append(permissions, b.node.GetStringList(joinPath(b.path, "permission"))...)

	set := RequirementSet{
		Permissions:   b.keepValid(fromPermissions(permissions)),
		OrPermissions: b.keepValid(fromPermissions(b.node.GetStringList(joinPath(b.path, "orPermission")))),
	}

	requirementsPath := joinPath(b.path, "requirements")
	var declared []PermissionRequirement
	for _, key := range b.node.Keys(requirementsPath) {
		entry := joinPath(requirementsPath, key)
		permission, _ := b.node.LookupString(joinPath(entry, "permission"))
		deny := b.actions.build(joinPath(entry, "deny"))
		success := b.actions.build(joinPath(entry, "success"))
		declared = append(declared, NewPermissionRequirement(permission, deny, success))
	}
	set.Requirements = b.keepValid(declared)
	return set
}

// keepValid drops invalid candidates, warning once for each.
func (b requirementBuilder) keepValid(candidates []PermissionRequirement) []PermissionRequirement {
	if len(candidates) == 0 {
		return nil
	}
	valid := make([]PermissionRequirement, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.IsValid() {
			b.logger.Warn("permission requirement has no permission", slog.String("button", b.path))
			continue
		}
		valid = append(valid, candidate)
	}
	if len(valid) == 0 {
		return nil
	}
	return valid
}

func fromPermissions(permissions []string) []PermissionRequirement {
	out := make([]PermissionRequirement, 0, len(permissions))
	for _, permission := range permissions {
		out = append(out, NewPermissionRequirement(permission, nil, nil))
	}
	return out
}
