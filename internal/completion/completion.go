// Package completion suggests keys and values from the governing schema.
package completion

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/position"
	"github.com/blvp/json-ls/internal/schema"
)

// Resolve returns completion items for pos. Key slots complete property
// names declared by the schema, minus members the object already has; value
// slots complete enum members or a type-shaped placeholder. A cursor with no
// classifiable slot or no governing schema yields nothing.
func Resolve(text document.Text, pos protocol.Position, loaded *schema.Loaded) []protocol.CompletionItem {
	ctx := position.Analyze(text.String(), text.OffsetAt(pos))

	switch ctx.Kind {
	case position.ContextKeyStart:
		return propertyItems(text, ctx.Path, "", loaded, true)

	case position.ContextKey:
		// The cursor sits inside an existing quoted key; its opening quote
		// is already in the buffer, and the path's last segment is the
		// partial key itself.
		parent := ctx.Path[:len(ctx.Path)-1]
		typing := ctx.Path[len(ctx.Path)-1].Name
		return propertyItems(text, parent, typing, loaded, false)

	case position.ContextValue, position.ContextValueStart:
		node := loaded.Root.Navigate(ctx.Path)
		if node == nil {
			return nil
		}
		return valueItems(node)
	}

	return nil
}

func propertyItems(text document.Text, parentPath position.Path, typing string, loaded *schema.Loaded, includeQuote bool) []protocol.CompletionItem {
	parent := loaded.Root.Navigate(parentPath)
	if parent == nil {
		return nil
	}

	existing := make(map[string]bool)
	for _, key := range position.ObjectKeys(text.String(), parentPath) {
		existing[key] = true
	}
	if typing != "" {
		delete(existing, typing)
	}

	kind := protocol.CompletionItemKindProperty
	format := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range parent.PropertyNames() {
		if existing[name] {
			continue
		}

		insert := "\"" + name + "\": $0"
		if !includeQuote {
			insert = name + "\": $0"
		}

		item := protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &insert,
			InsertTextFormat: &format,
		}

		if child := parent.Navigate(position.Path{position.Key(name)}); child != nil {
			info := child.Info()
			if info.Type != "" {
				detail := info.Type
				item.Detail = &detail
			}
			if info.Description != "" {
				item.Documentation = protocol.MarkupContent{
					Kind:  protocol.MarkupKindMarkdown,
					Value: info.Description,
				}
			}
		}

		items = append(items, item)
	}
	return items
}

func valueItems(node *schema.Node) []protocol.CompletionItem {
	if enums := node.EnumValues(); len(enums) > 0 {
		kind := protocol.CompletionItemKindValue
		format := protocol.InsertTextFormatPlainText
		items := make([]protocol.CompletionItem, 0, len(enums))
		for _, value := range enums {
			insert := value
			items = append(items, protocol.CompletionItem{
				Label:            value,
				Kind:             &kind,
				InsertText:       &insert,
				InsertTextFormat: &format,
			})
		}
		return items
	}

	switch node.Type() {
	case "string":
		return []protocol.CompletionItem{snippetItem(`""`, `"$0"`)}
	case "number", "integer":
		return []protocol.CompletionItem{plainItem("0")}
	case "boolean":
		return []protocol.CompletionItem{plainItem("true"), plainItem("false")}
	case "array":
		return []protocol.CompletionItem{snippetItem("[]", "[$0]")}
	case "object":
		return []protocol.CompletionItem{snippetItem("{}", "{$0}")}
	case "null":
		return []protocol.CompletionItem{plainItem("null")}
	}
	return nil
}

func snippetItem(label, insert string) protocol.CompletionItem {
	kind := protocol.CompletionItemKindValue
	format := protocol.InsertTextFormatSnippet
	return protocol.CompletionItem{
		Label:            label,
		Kind:             &kind,
		InsertText:       &insert,
		InsertTextFormat: &format,
	}
}

func plainItem(value string) protocol.CompletionItem {
	kind := protocol.CompletionItemKindValue
	format := protocol.InsertTextFormatPlainText
	insert := value
	return protocol.CompletionItem{
		Label:            value,
		Kind:             &kind,
		InsertText:       &insert,
		InsertTextFormat: &format,
	}
}
