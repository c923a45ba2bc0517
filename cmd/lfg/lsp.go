package main

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/lfgparse/lfg/annot"
	"github.com/lfgparse/lfg/cfg"
	"github.com/lfgparse/lfg/lexicon"
)

// Server is a minimal grammar-diagnostics language server: it treats
// each open document as one sentence per line and reports, as LSP
// diagnostics, any line the demo grammar cannot parse — grounded on the
// document store / publishDiagnostics shape of the teacher's tony-lsp
// (package cmd/tony-lsp), adapted from syntax errors in a document
// format to parse failures against an LFG grammar.
type Server struct {
	conn jsonrpc2.Conn
	docs documentStore

	grammar *annot.Grammar
	lexicon *lexicon.Lexicon
}

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

func (ds *documentStore) put(uri, content string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if ds.docs == nil {
		ds.docs = make(map[string]string)
	}
	ds.docs[uri] = content
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func NewServer(conn jsonrpc2.Conn) (*Server, error) {
	g, lex, err := demoGrammar()
	if err != nil {
		return nil, err
	}
	return &Server{conn: conn, grammar: g, lexicon: lex}, nil
}

// Handle dispatches one incoming jsonrpc2 request by method name.
func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, &protocol.InitializeResult{
			Capabilities: protocol.ServerCapabilities{
				TextDocumentSync: protocol.TextDocumentSyncKindFull,
			},
		}, nil)
	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text)
		s.publishDiagnostics(ctx, string(params.TextDocument.URI))
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		if len(params.ContentChanges) > 0 {
			s.docs.put(string(params.TextDocument.URI), params.ContentChanges[len(params.ContentChanges)-1].Text)
		}
		s.publishDiagnostics(ctx, string(params.TextDocument.URI))
		return reply(ctx, nil, nil)
	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := unmarshalParams(req, &params); err != nil {
			return reply(ctx, nil, err)
		}
		s.docs.remove(string(params.TextDocument.URI))
		return reply(ctx, nil, nil)
	default:
		return reply(ctx, nil, jsonrpc2.NewError(jsonrpc2.MethodNotFound, req.Method()+" not supported"))
	}
}

func unmarshalParams(req jsonrpc2.Request, v any) error {
	return json.Unmarshal(req.Params(), v)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	s.docs.mu.RLock()
	content := s.docs.docs[uri]
	s.docs.mu.RUnlock()

	var diagnostics []protocol.Diagnostic
	for line, text := range strings.Split(content, "\n") {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		tokens := strings.Fields(text)
		parser := cfg.NewChartParser(s.grammar, s.lexicon.Symbols)
		if _, err := parser.Parse(tokens); err != nil {
			diagnostics = append(diagnostics, protocol.Diagnostic{
				Range: protocol.Range{
					Start: protocol.Position{Line: uint32(line), Character: 0},
					End:   protocol.Position{Line: uint32(line), Character: uint32(len(text))},
				},
				Severity: protocol.DiagnosticSeverityWarning,
				Message:  err.Error(),
				Source:   "lfg",
			})
		}
	}

	_ = s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	})
}
