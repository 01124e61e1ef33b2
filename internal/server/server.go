// Package server wires the language server handlers onto the LSP transport.
package server

import (
	"time"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/blvp/json-ls/internal/document"
	"github.com/blvp/json-ls/internal/scheduler"
	"github.com/blvp/json-ls/internal/schema"
)

const (
	lsName = "json-ls"

	// debounceDelay is how long after the last edit a validation pass runs.
	debounceDelay = 300 * time.Millisecond
)

var log = commonlog.GetLogger("server")

// Server holds all mutable language-server state. Handlers may run
// concurrently; the document store, schema cache, and debouncer synchronize
// internally.
type Server struct {
	handler   *protocol.Handler
	documents *document.Store
	schemas   *schema.Cache // created during initialize, once config is known
	debounce  *scheduler.Debouncer
	version   string
}

// NewServer creates the LSP server for stdio.
func NewServer(version string) *glspserver.Server {
	ls := &Server{
		documents: document.NewStore(),
		debounce:  scheduler.NewDebouncer(debounceDelay),
		version:   version,
	}

	ls.handler = &protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		Exit:                   ls.exit,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	return glspserver.NewServer(ls.handler, lsName, false)
}
