package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/source"
	"github.com/liancheng/joule/workspace"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the language server over stdio",
		Long: `serve speaks the Language Server Protocol on stdin/stdout, as a
child process of an editor. It implements go-to-definition, find-references,
document symbols, document highlight, inlay hints, folding ranges, and
rename over the Jsonnet files in whatever workspace "initialize" names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }

func runServe(ctx context.Context) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream := jsonrpc2.NewStream(stdio{os.Stdin, os.Stdout})
	conn := jsonrpc2.NewConn(stream)
	client := protocol.ClientDispatcher(conn, logger.Named("client"))

	srv := &server{client: client, logger: logger, cancel: cancel}
	conn.Go(ctx, protocol.ServerHandler(srv, jsonrpc2.MethodNotFoundHandler))

	select {
	case <-ctx.Done():
		_ = conn.Close()
		return ctx.Err()
	case <-conn.Done():
		if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
}

// server implements protocol.Server. Embedding the (nil) interface
// satisfies the rest of its large method set; the capabilities
// returned from Initialize only ever advertise the handful of requests
// actually overridden below. Any other method call goes to the nil
// embedded interface and panics.
type server struct {
	protocol.Server

	client protocol.Client
	logger *zap.Logger
	cancel context.CancelFunc

	mu  sync.Mutex
	svc *workspace.Service
}

func rootFromParams(params *protocol.InitializeParams) uri.URI {
	for _, f := range params.WorkspaceFolders {
		return uri.URI(f.URI)
	}
	if params.RootURI != "" {
		return uri.URI(params.RootURI)
	}
	cwd, _ := os.Getwd()
	return uri.File(cwd)
}

func (s *server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	root := rootFromParams(params)
	store := source.FSStore{}
	cfg, err := config.Load(root.Filename())
	if err != nil {
		s.logger.Warn("failed to load workspace config, using defaults", zap.Error(err))
		cfg = config.Default()
	}

	s.mu.Lock()
	s.svc = workspace.New(store, root, cfg)
	s.mu.Unlock()

	return &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: "joule"},
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			DefinitionProvider:        true,
			ReferencesProvider:        true,
			DocumentSymbolProvider:    true,
			DocumentHighlightProvider: true,
			InlayHintProvider:         true,
			FoldingRangeProvider:      true,
			RenameProvider:            &protocol.RenameOptions{PrepareProvider: true},
		},
	}, nil
}

func (s *server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *server) Shutdown(ctx context.Context) error { return nil }

func (s *server) Exit(ctx context.Context) error {
	s.cancel()
	return nil
}

func (s *server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.svc.DidOpen(uri.URI(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (s *server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	s.svc.DidChange(uri.URI(params.TextDocument.URI), params.ContentChanges[len(params.ContentChanges)-1].Text)
	return nil
}

func (s *server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.svc.DidClose(uri.URI(params.TextDocument.URI))
	return nil
}

func (s *server) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	return s.svc.Definition(uri.URI(params.TextDocument.URI), params.Position), nil
}

func (s *server) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	return s.svc.References(uri.URI(params.TextDocument.URI), params.Position, params.Context.IncludeDeclaration), nil
}

func (s *server) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	syms := s.svc.DocumentSymbol(uri.URI(params.TextDocument.URI))
	out := make([]interface{}, len(syms))
	for i, sym := range syms {
		out[i] = sym
	}
	return out, nil
}

func (s *server) DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	hs := s.svc.DocumentHighlight(uri.URI(params.TextDocument.URI), params.Position)
	out := make([]protocol.DocumentHighlight, len(hs))
	for i, h := range hs {
		out[i] = protocol.DocumentHighlight{Range: h.Range, Kind: protocol.DocumentHighlightKind(h.Kind)}
	}
	return out, nil
}

func (s *server) InlayHint(ctx context.Context, params *protocol.InlayHintParams) ([]protocol.InlayHint, error) {
	hints := s.svc.InlayHint(uri.URI(params.TextDocument.URI))
	out := make([]protocol.InlayHint, len(hints))
	for i, h := range hints {
		out[i] = protocol.InlayHint{Position: h.Position, Label: h.Label}
	}
	return out, nil
}

func (s *server) FoldingRange(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	frs := s.svc.FoldingRange(uri.URI(params.TextDocument.URI))
	out := make([]protocol.FoldingRange, len(frs))
	for i, fr := range frs {
		out[i] = protocol.FoldingRange{StartLine: fr.StartLine, EndLine: fr.EndLine}
	}
	return out, nil
}

func (s *server) PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error) {
	res, ok := s.svc.PrepareRename(uri.URI(params.TextDocument.URI), params.Position)
	if !ok {
		return nil, nil
	}
	return &res.Range, nil
}

func (s *server) Rename(ctx context.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	edit, ok := s.svc.Rename(uri.URI(params.TextDocument.URI), params.Position, params.NewName)
	if !ok {
		return nil, nil
	}
	changes := make(map[protocol.DocumentURI][]protocol.TextEdit, len(edit.Changes))
	for u, edits := range edit.Changes {
		changes[protocol.DocumentURI(u)] = edits
	}
	return &protocol.WorkspaceEdit{Changes: changes}, nil
}
