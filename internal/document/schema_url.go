package document

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/blvp/json-ls/internal/position"
)

// $schema conventionally appears within the first few members, so only the
// head of the document is scanned.
const schemaScanLimit = 4096

// ExtractSchemaURL returns the string value of the first top-level "$schema"
// member, or "" when the top-level value is not an object, the member is
// absent or not a string, or the document is malformed before the member.
// Relative URLs resolve against docURI.
func ExtractSchemaURL(docURI, text string) string {
	head := text
	if len(head) > schemaScanLimit {
		head = head[:schemaScanLimit]
	}

	start, end, ok := position.PathSpan(head, position.Path{position.Key("$schema")})
	if !ok || head[start] != '"' {
		return ""
	}

	raw, err := strconv.Unquote(head[start:end])
	if err != nil {
		// Tolerate partially edited values: strip the quotes and take the
		// content as-is.
		raw = strings.TrimSuffix(strings.TrimPrefix(head[start:end], "\""), "\"")
	}
	if raw == "" {
		return ""
	}
	return resolveSchemaURL(docURI, raw)
}

func resolveSchemaURL(docURI, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return raw
	}
	base, err := url.Parse(docURI)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
