package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/blvp/json-ls/internal/config"
	"github.com/blvp/json-ls/internal/schema"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	cfg, err := config.Load(params.InitializationOptions)
	if err != nil {
		log.Warningf("bad initialization options, using defaults: %s", err.Error())
		cfg = config.Default()
	}
	log.Infof("initializing with ttl=%ds capacity=%d", cfg.SchemaTTLSecs, cfg.SchemaCacheCapacity)

	loader := schema.NewLoader()
	s.schemas = schema.NewCache(loader.Load, cfg.SchemaTTL(), cfg.SchemaCacheCapacity)

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"\"", ":", ","},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	log.Info("shutting down")
	s.debounce.CancelAll()
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) exit(context *glsp.Context) error {
	s.debounce.CancelAll()
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}
