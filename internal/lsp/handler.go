// Package lsp implements a language server for OCL documents on top of
// glsp: diagnostics, semantic tokens, keyword completion and document
// symbols.
package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"ocl/ast"
	"ocl/internal/parser"
	"ocl/token"
)

var log = commonlog.GetLogger("ocl.lsp")

// document is the analysed state of one source text.
type document struct {
	text   string
	tokens []token.Token
	ast    *ast.Document
	err    error
}

func analyze(text string, opts parser.Options) *document {
	doc := &document{text: text}
	tokens, err := parser.Lex(text)
	if err != nil {
		doc.err = err
		return doc
	}
	doc.tokens = tokens
	doc.ast, doc.err = parser.ParseDocument(text, opts)
	return doc
}

// OCLHandler implements the LSP server handlers for OCL documents.
type OCLHandler struct {
	mu        sync.RWMutex
	documents map[protocol.DocumentUri]*document
	options   parser.Options
}

// NewOCLHandler creates a handler parsing with opts.
func NewOCLHandler(opts parser.Options) *OCLHandler {
	return &OCLHandler{
		documents: make(map[protocol.DocumentUri]*document),
		options:   opts,
	}
}

// Initialize advertises the server's capabilities.
func (h *OCLHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider:   ptrBool(false),
				TriggerCharacters: []string{">"},
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
			DocumentSymbolProvider: true,
		},
	}, nil
}

func (h *OCLHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("initialized")
	return nil
}

func (h *OCLHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (h *OCLHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyses the opened text and publishes its diagnostics.
func (h *OCLHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("opened %s", params.TextDocument.URI)
	h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

// TextDocumentDidChange applies the content changes in order and
// re-analyses the result.
func (h *OCLHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debugf("changed %s", uri)

	h.mu.RLock()
	var text string
	if doc, ok := h.documents[uri]; ok {
		text = doc.text
	}
	h.mu.RUnlock()

	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			from, to := c.Range.IndexesIn(text)
			text = text[:from] + c.Text + text[to:]
		default:
			return fmt.Errorf("unsupported content change %T", change)
		}
	}

	h.update(ctx, uri, text)
	return nil
}

// TextDocumentDidClose forgets the document and clears its diagnostics.
func (h *OCLHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("closed %s", params.TextDocument.URI)

	h.mu.Lock()
	delete(h.documents, params.TextDocument.URI)
	h.mu.Unlock()

	publishDiagnostics(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

// TextDocumentCompletion proposes keywords, collection kinds and, after
// '->', collection operations.
func (h *OCLHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	offset := newLineIndex(doc.text).offset(params.Position)
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(doc.text, offset),
	}, nil
}

// TextDocumentSemanticTokensFull classifies every token of the document.
// Identifiers are refined by the syntax tree when the document parses.
func (h *OCLHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	tokens := collectSemanticTokens(doc.text, doc.tokens, doc.ast)
	return &protocol.SemanticTokens{Data: encodeSemanticTokens(tokens)}, nil
}

// TextDocumentDocumentSymbol outlines packages, contexts and constraints.
func (h *OCLHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.get(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return documentSymbols(doc.text, doc.ast), nil
}

func (h *OCLHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) *document {
	doc := analyze(text, h.options)

	h.mu.Lock()
	h.documents[uri] = doc
	h.mu.Unlock()

	publishDiagnostics(ctx, uri, ConvertError(text, doc.err))
	return doc
}

// get returns the analysed document, loading it from disk when the client
// never opened it.
func (h *OCLHandler) get(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.documents[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return h.update(ctx, uri, string(content)), nil
}

// uriToPath converts a file URI to a platform-local path.
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// /C:/dir on Windows
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	log.Debugf("publishing %d diagnostics for %s", len(diagnostics), uri)
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
