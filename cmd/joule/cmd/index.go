package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.lsp.dev/uri"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/config"
	"github.com/liancheng/joule/loader"
	"github.com/liancheng/joule/source"
)

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index <workspace-root>",
		Short: "load every file in a workspace and report what parsed",
		Long: `index walks a workspace root, loading and scope-resolving every
recognized file, and prints one line per file: its top-level field names,
or "failed to read" when the file cannot be loaded. Parse errors are not
reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args[0])
		},
	}
}

func runIndex(cmd *cobra.Command, root string) error {
	cfg, err := config.Load(root)
	if err != nil {
		cfg = config.Default()
	}
	store := source.FSStore{}
	rootURI := uri.File(root)
	l := loader.New(store, rootURI, cfg)

	files, err := l.Walk()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		doc := l.Get(f)
		if doc == nil {
			fmt.Fprintf(out, "%s: failed to read\n", f)
			continue
		}
		fmt.Fprintf(out, "%s: %v\n", f, topLevelFields(doc))
	}
	return nil
}

// topLevelFields lists the field names of doc's root object, or nil if
// its body isn't a plain object (a function module, an import alias, and
// so on all report no fields).
func topLevelFields(doc *ast.Document) []string {
	obj, ok := doc.Body.(*ast.Object)
	if !ok || obj.FieldScope == nil {
		return nil
	}
	names := make([]string, 0, len(obj.FieldScope.Bindings))
	for _, b := range obj.FieldScope.Bindings {
		names = append(names, b.Name)
	}
	return names
}
