package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/blvp/json-ls/internal/position"
)

// Node is a handle to a schema subtree plus the root it belongs to, so
// fragment $refs resolve without refetching.
type Node struct {
	Value any
	Root  any
}

// NewNode wraps a schema subtree.
func NewNode(value, root any) *Node {
	return &Node{Value: value, Root: root}
}

// Navigate walks the schema along a document path and returns the subtree
// governing that location, or nil when no step resolves. It terminates on
// cyclic $ref graphs: nodes are tracked by the identity of their underlying
// value and revisits stop the walk.
func (n *Node) Navigate(path position.Path) *Node {
	if n == nil {
		return nil
	}
	return navigate(n.Value, n.Root, path, map[uintptr]struct{}{})
}

func navigate(schema, root any, path position.Path, visited map[uintptr]struct{}) *Node {
	if id, ok := identity(schema); ok {
		if _, seen := visited[id]; seen {
			return nil
		}
		visited[id] = struct{}{}
	}

	schema = resolveRef(schema, root, visited)

	if len(path) == 0 {
		return &Node{Value: schema, Root: root}
	}

	seg, rest := path[0], path[1:]
	if child := childFor(schema, seg); child != nil {
		return navigate(child, root, rest, visited)
	}

	// The segment may be declared inside a composition member.
	if obj, ok := schema.(map[string]any); ok {
		for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
			arr, ok := obj[kw].([]any)
			if !ok {
				continue
			}
			for _, sub := range arr {
				if node := navigate(sub, root, path, visited); node != nil {
					return node
				}
			}
		}
	}

	return nil
}

func childFor(schema any, seg position.Segment) any {
	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	if seg.IsKey() {
		if props, ok := obj["properties"].(map[string]any); ok {
			if child, ok := props[seg.Name]; ok {
				return child
			}
		}
		if patterns, ok := obj["patternProperties"].(map[string]any); ok {
			for _, pattern := range sortedKeys(patterns) {
				re, err := regexp.Compile(pattern)
				if err != nil {
					continue
				}
				if re.MatchString(seg.Name) {
					return patterns[pattern]
				}
			}
		}
		if ap, ok := obj["additionalProperties"].(map[string]any); ok {
			return ap
		}
		return nil
	}

	if prefix, ok := obj["prefixItems"].([]any); ok && seg.Index < len(prefix) {
		return prefix[seg.Index]
	}
	switch items := obj["items"].(type) {
	case map[string]any:
		return items
	case []any:
		if seg.Index < len(items) {
			return items[seg.Index]
		}
	}
	return nil
}

// resolveRef chases fragment-only $refs ("#/..." JSON Pointers into root).
// Cross-document refs and unresolvable pointers return the node unchanged;
// so do revisits of an already-seen target.
func resolveRef(schema, root any, visited map[uintptr]struct{}) any {
	obj, ok := schema.(map[string]any)
	if !ok {
		return schema
	}
	refStr, ok := obj["$ref"].(string)
	if !ok {
		return schema
	}
	frag, ok := strings.CutPrefix(refStr, "#")
	if !ok {
		return schema
	}

	var resolved any
	if frag == "" {
		resolved = root
	} else {
		ptr, err := jsonpointer.New(frag)
		if err != nil {
			return schema
		}
		v, _, err := ptr.Get(root)
		if err != nil {
			return schema
		}
		resolved = v
	}

	if id, ok := identity(resolved); ok {
		if _, seen := visited[id]; seen {
			return schema
		}
		visited[id] = struct{}{}
	}
	return resolveRef(resolved, root, visited)
}

// identity keys a schema value by the address of its underlying map or
// slice, for cycle detection.
func identity(v any) (uintptr, bool) {
	switch v.(type) {
	case map[string]any, []any:
		return reflect.ValueOf(v).Pointer(), true
	}
	return 0, false
}

func (n *Node) resolved() any {
	return resolveRef(n.Value, n.Root, map[uintptr]struct{}{})
}

// PropertyNames returns all declared property names, unioned across allOf,
// anyOf, and oneOf members, sorted and deduplicated.
func (n *Node) PropertyNames() []string {
	names := collectPropertyNames(n.Value, n.Root, map[uintptr]struct{}{})
	sort.Strings(names)
	out := names[:0]
	for i, name := range names {
		if i == 0 || name != names[i-1] {
			out = append(out, name)
		}
	}
	return out
}

func collectPropertyNames(schema, root any, visited map[uintptr]struct{}) []string {
	if id, ok := identity(schema); ok {
		if _, seen := visited[id]; seen {
			return nil
		}
		visited[id] = struct{}{}
	}
	schema = resolveRef(schema, root, visited)

	obj, ok := schema.(map[string]any)
	if !ok {
		return nil
	}

	var names []string
	if props, ok := obj["properties"].(map[string]any); ok {
		for name := range props {
			names = append(names, name)
		}
	}
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		if arr, ok := obj[kw].([]any); ok {
			for _, sub := range arr {
				names = append(names, collectPropertyNames(sub, root, visited)...)
			}
		}
	}
	return names
}

// EnumValues returns the enum members in literal JSON form (strings keep
// their quotes), or nil when the schema has no enum.
func (n *Node) EnumValues() []string {
	obj, ok := n.resolved().(map[string]any)
	if !ok {
		return nil
	}
	arr, ok := obj["enum"].([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(arr))
	for _, v := range arr {
		values = append(values, literal(v))
	}
	return values
}

// Type returns the schema type as a string; type arrays join as "a | b".
func (n *Node) Type() string {
	obj, ok := n.resolved().(map[string]any)
	if !ok {
		return ""
	}
	switch t := obj["type"].(type) {
	case string:
		return t
	case []any:
		var parts []string
		for _, v := range t {
			if s, ok := v.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	}
	return ""
}

// Info is the documentation extracted from a schema node for display.
type Info struct {
	Description string
	Type        string
	Default     string
	Enum        []string
	Examples    []string
}

// Info extracts display documentation from the node.
func (n *Node) Info() Info {
	info := Info{Type: n.Type(), Enum: n.EnumValues()}

	obj, ok := n.resolved().(map[string]any)
	if !ok {
		return info
	}

	if desc, ok := obj["description"].(string); ok {
		info.Description = desc
	} else if title, ok := obj["title"].(string); ok {
		info.Description = title
	}
	if def, ok := obj["default"]; ok {
		info.Default = literal(def)
	}
	if examples, ok := obj["examples"].([]any); ok {
		for _, e := range examples {
			info.Examples = append(info.Examples, literal(e))
		}
	}
	return info
}

// Markdown renders the info as a hover body: description, type, default,
// allowed values, and examples, each omitted when absent.
func (i Info) Markdown() string {
	var parts []string

	if i.Description != "" {
		parts = append(parts, i.Description)
	}
	if i.Type != "" {
		parts = append(parts, fmt.Sprintf("**Type:** `%s`", i.Type))
	}
	if i.Default != "" {
		parts = append(parts, fmt.Sprintf("**Default:** `%s`", i.Default))
	}
	if len(i.Enum) > 0 {
		parts = append(parts, "**Allowed values:** "+codeList(i.Enum))
	}
	if len(i.Examples) > 0 {
		parts = append(parts, "**Examples:** "+codeList(i.Examples))
	}

	return strings.Join(parts, "\n\n")
}

func codeList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "`" + v + "`"
	}
	return strings.Join(quoted, ", ")
}

// literal renders a schema value the way it would appear in a document.
func literal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
