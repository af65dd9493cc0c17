// Package yamlsection provides a YAML backed configuration document with
// typed, dot-path reads. Mapping keys keep their declared order so callers can
// iterate sub-sections the way they were written.
package yamlsection

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping indicates the document root is not a mapping.
var ErrNotMapping = errors.New("yamlsection: document root must be a mapping")

// Document is an immutable, parsed configuration tree.
type Document struct {
	name string
	root *yaml.Node
}

// Parse decodes YAML (or JSON, which is a YAML subset) into a Document.
func Parse(data []byte) (*Document, error) {
	return parseNamed("", data)
}

// ParseJSONC strips comments and trailing commas before parsing.
func ParseJSONC(data []byte) (*Document, error) {
	return parseNamed("", jsonc.ToJSON(data))
}

// Load reads path from disk, selecting the JSONC parser for .json and .jsonc
// files and the YAML parser otherwise.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlsection: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	doc, err := parseNamed(path, data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func parseNamed(name string, data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("yamlsection: parse %s: %w", describe(name), err)
	}
	root := &node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		} else {
			root = root.Content[0]
		}
	}
	if root.Kind == 0 {
		root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	if resolveAlias(root).Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s", ErrNotMapping, describe(name))
	}
	return &Document{name: name, root: root}, nil
}

func describe(name string) string {
	if name == "" {
		return "<inline>"
	}
	return name
}

// Name returns the file the document was loaded from, if any.
func (d *Document) Name() string {
	if d == nil {
		return ""
	}
	return d.name
}

// Contains reports whether path resolves to any node.
func (d *Document) Contains(path string) bool {
	return d.lookup(path) != nil
}

// IsSection reports whether path resolves to a mapping.
func (d *Document) IsSection(path string) bool {
	node := d.lookup(path)
	return node != nil && node.Kind == yaml.MappingNode
}

// GetString returns the scalar at path or def.
func (d *Document) GetString(path, def string) string {
	if value, ok := d.LookupString(path); ok {
		return value
	}
	return def
}

// LookupString returns the scalar at path and whether it was present.
func (d *Document) LookupString(path string) (string, bool) {
	node := d.lookup(path)
	if !isValueScalar(node) {
		return "", false
	}
	return node.Value, true
}

// GetInt returns the integer at path or def when absent or not numeric.
func (d *Document) GetInt(path string, def int) int {
	node := d.lookup(path)
	if !isValueScalar(node) {
		return def
	}
	value, err := strconv.Atoi(strings.TrimSpace(node.Value))
	if err != nil {
		return def
	}
	return value
}

// GetBool returns the boolean at path or def.
func (d *Document) GetBool(path string, def bool) bool {
	node := d.lookup(path)
	if !isValueScalar(node) {
		return def
	}
	var value bool
	if err := node.Decode(&value); err != nil {
		return def
	}
	return value
}

// GetStringList returns the scalar items of the sequence at path. Nested
// collections inside the sequence are skipped.
func (d *Document) GetStringList(path string) []string {
	node := d.lookup(path)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if isValueScalar(item) {
			out = append(out, item.Value)
		}
	}
	return out
}

// Keys lists the keys of the mapping at path in declared order.
func (d *Document) Keys(path string) []string {
	node := d.lookup(path)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// GetMapList decodes every mapping item of the sequence at path.
func (d *Document) GetMapList(path string) []map[string]any {
	node := d.lookup(path)
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]map[string]any, 0, len(node.Content))
	for _, item := range node.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			continue
		}
		var entry map[string]any
		if err := item.Decode(&entry); err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out
}

func (d *Document) lookup(path string) *yaml.Node {
	if d == nil || d.root == nil {
		return nil
	}
	current := resolveAlias(d.root)
	if path == "" {
		return current
	}
	// An alias back into the walked path would repeat forever; treat it as absent.
	ancestors := map[*yaml.Node]struct{}{current: {}}
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			continue
		}
		if current.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(current.Content); i += 2 {
			if current.Content[i].Value == segment {
				next = current.Content[i+1]
				break
			}
		}
		if next == nil {
			return nil
		}
		current = resolveAlias(next)
		if _, seen := ancestors[current]; seen {
			return nil
		}
		ancestors[current] = struct{}{}
	}
	return current
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func isValueScalar(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.Tag != "!!null"
}
