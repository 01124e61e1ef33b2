package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/blvp/json-ls/internal/completion"
	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/hover"
	"github.com/blvp/json-ls/internal/schema"
)

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	loaded, text, ok := s.schemaFor(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return hover.Resolve(text, params.Position, loaded), nil
}

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	loaded, text, ok := s.schemaFor(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	items := completion.Resolve(text, params.Position, loaded)
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

// schemaFor reads a document snapshot and its governing schema. Any failure
// along the way degrades to a no-result feature response.
func (s *Server) schemaFor(uri string) (*schema.Loaded, document.Text, bool) {
	snap, ok := s.documents.Snapshot(uri)
	if !ok || snap.SchemaURL == "" || s.schemas == nil {
		return nil, document.Text{}, false
	}
	loaded, err := s.schemas.GetOrLoad(snap.SchemaURL)
	if err != nil {
		return nil, document.Text{}, false
	}
	return loaded, snap.Text, true
}
