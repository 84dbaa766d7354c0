package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"

	"src.pcomb.sh/pkg/comb"
	"src.pcomb.sh/pkg/rules"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

const noRuleApplies = "no rule applies here"

type server struct {
	rule    string
	node    comb.Node
	content map[lsp.DocumentURI]string
}

func newServer(rule string) *server {
	node, _ := rules.Lookup(rule)
	return &server{rule, node, make(map[lsp.DocumentURI]string)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":             s.initialize,
		"textDocument/didOpen":   s.didOpen,
		"textDocument/didChange": s.didChange,
		"textDocument/didClose":  s.didClose,
		"textDocument/hover":     s.hover,

		"initialized": noop,
		"shutdown":    noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		if req.Method == "exit" {
			return nil, conn.Close()
		}
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Handler implementations. These are all called synchronously, so diagnostics
// are published in the order the document changed.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider: true,
		},
	}, nil
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}

	uri, content := params.TextDocument.URI, params.TextDocument.Text
	s.content[uri] = content
	s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}

	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	uri, content := params.TextDocument.URI, params.ContentChanges[0].Text
	s.content[uri] = content
	s.publishDiagnostics(ctx, conn, uri, content)
	return nil, nil
}

func (s *server) didClose(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.content, params.TextDocument.URI)
	return nil, nil
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return lsp.Hover{Contents: []lsp.MarkedString{
		{Language: "text", Value: "rule " + s.rule + "\n" + s.node.String()},
	}}, nil
}

func (s *server) publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) {
	err := conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diagnostics(s.node, content)})
	if err != nil {
		logger.Println("publishing diagnostics:", err)
	}
}

// Each non-empty line must be matched completely. Lines end with \n, and a \r
// before it is not part of the line.
func diagnostics(node comb.Node, content string) []lsp.Diagnostic {
	diags := []lsp.Diagnostic{}
	for start := 0; start < len(content); {
		line, _, _ := strings.Cut(content[start:], "\n")
		next := start + len(line) + 1
		line = strings.TrimSuffix(line, "\r")
		if line != "" {
			if d, ok := diagnose(node, content, start, line); ok {
				diags = append(diags, d)
			}
		}
		start = next
	}
	return diags
}

func diagnose(node comb.Node, content string, start int, line string) (lsp.Diagnostic, bool) {
	_, err := comb.ParseAll(node, line)
	if err == nil {
		return lsp.Diagnostic{}, false
	}
	from, msg := start, err.Error()
	var mismatch *comb.MismatchError
	if errors.As(err, &mismatch) && len(mismatch.Rest) <= len(line) {
		from, msg = start+len(line)-len(mismatch.Rest), noRuleApplies
	}
	return lsp.Diagnostic{
		Range: lsp.Range{
			Start: lspPositionFromIdx(content, from),
			End:   lspPositionFromIdx(content, start+len(line)),
		},
		Severity: lsp.Error,
		Source:   "pcomb",
		Message:  msg,
	}, true
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if lastCR {
				// Ignore \n if it's part of a \r\n sequence
			} else {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
