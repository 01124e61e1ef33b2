package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/blvp/json-ls/internal/diagnostics"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	version := params.TextDocument.Version
	s.documents.Open(uri, params.TextDocument.Text, version)

	// Warm the cache so the first hover or completion does not wait on the
	// network. This runs outside the debouncer and is never cancelled by
	// subsequent edits; a result that arrives late still populates the cache.
	if snap, ok := s.documents.Snapshot(uri); ok && snap.SchemaURL != "" && s.schemas != nil {
		go func(url string) {
			_, _ = s.schemas.GetOrLoad(url)
		}(snap.SchemaURL)
	}

	s.runDiagnostics(context, uri, version)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	version := params.TextDocument.Version

	if err := s.documents.Change(uri, version, params.ContentChanges); err != nil {
		return err
	}

	s.debounce.Schedule(uri, func() {
		s.runDiagnostics(context, uri, version)
	})
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	s.debounce.Cancel(uri)
	s.documents.Close(uri)
	publishDiagnostics(context, uri, nil)
	return nil
}

// runDiagnostics validates the document as of the captured version and
// publishes the result. If the document has moved on in the meantime the
// pass is discarded; a stale pass must never overwrite a newer one.
func (s *Server) runDiagnostics(context *glsp.Context, uri string, captured int32) {
	snap, ok := s.documents.Snapshot(uri)
	if !ok || snap.Version != captured {
		return
	}

	diags := []protocol.Diagnostic{}
	if snap.SchemaURL != "" && s.schemas != nil {
		loaded, err := s.schemas.GetOrLoad(snap.SchemaURL)
		if err != nil {
			log.Debugf("no schema for %s: %s", uri, err.Error())
		} else {
			diags = diagnostics.Validate(snap.Text, loaded)
		}
	}

	if current, ok := s.documents.Version(uri); !ok || current != captured {
		return
	}
	publishDiagnostics(context, uri, diags)
}
