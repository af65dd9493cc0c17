package menu

import "strings"

// Section is a read-only view over a hierarchical configuration document.
// Paths are dot separated and relative to the document root. Every getter
// returns the supplied default when the path is absent or holds a value of
// the wrong shape.
type Section interface {
	Contains(path string) bool
	IsSection(path string) bool
	GetString(path, def string) string
	LookupString(path string) (string, bool)
	GetInt(path string, def int) int
	GetBool(path string, def bool) bool
	GetStringList(path string) []string
	// Keys lists the direct children of a mapping in declared order.
	Keys(path string) []string
	GetMapList(path string) []map[string]any
}

func joinPath(prefix string, segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if prefix != "" {
		parts = append(parts, prefix)
	}
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, ".")
}
