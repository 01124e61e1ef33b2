// Package diagnostics validates documents against their declared schema.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/xeipuuv/gojsonschema"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/position"
	"github.com/blvp/json-ls/internal/schema"
)

const source = "json-ls"

var log = commonlog.GetLogger("diagnostics")

// Validate checks text against the loaded schema. An unparseable document
// yields a single diagnostic at the parser's error location; schema
// violations yield one diagnostic each, ranged over the offending value.
func Validate(text document.Text, loaded *schema.Loaded) []protocol.Diagnostic {
	var instance any
	if err := json.Unmarshal([]byte(text.String()), &instance); err != nil {
		return []protocol.Diagnostic{parseDiagnostic(text, err)}
	}

	result, err := loaded.Compiled.Validate(gojsonschema.NewGoLoader(instance))
	if err != nil {
		log.Warningf("validation failed: %s", err.Error())
		return nil
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		diagnostics = append(diagnostics, violationDiagnostic(text, violation))
	}
	return diagnostics
}

func parseDiagnostic(text document.Text, err error) protocol.Diagnostic {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	}

	start := text.PositionAt(int(offset))
	end := start
	if int(offset) < text.Len() {
		end = text.PositionAt(int(offset) + 1)
	}

	return diagnostic(
		protocol.Range{Start: start, End: end},
		fmt.Sprintf("JSON syntax error: %s", err),
	)
}

func violationDiagnostic(text document.Text, violation gojsonschema.ResultError) protocol.Diagnostic {
	return diagnostic(
		rangeForPath(text, fieldPath(violation.Field())),
		violation.String(),
	)
}

func diagnostic(rng protocol.Range, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	src := source
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Source:   &src,
		Message:  message,
	}
}

// rangeForPath spans the value at path, falling back to the start of the
// document when the path cannot be located in the raw text.
func rangeForPath(text document.Text, path position.Path) protocol.Range {
	if start, end, ok := position.PathSpan(text.String(), path); ok {
		return protocol.Range{
			Start: text.PositionAt(start),
			End:   text.PositionAt(end),
		}
	}
	return protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 0, Character: 1},
	}
}

// fieldPath converts a validator field reference ("(root)", "name",
// "items.2.id") into a document path.
func fieldPath(field string) position.Path {
	if field == "" || field == "(root)" {
		return nil
	}

	var path position.Path
	for _, part := range strings.Split(field, ".") {
		if index, err := strconv.Atoi(part); err == nil && index >= 0 {
			path = append(path, position.Index(index))
		} else {
			path = append(path, position.Key(part))
		}
	}
	return path
}
