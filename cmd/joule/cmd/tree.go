package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.lsp.dev/uri"

	"github.com/liancheng/joule/ast"
	"github.com/liancheng/joule/cst"
	"github.com/liancheng/joule/internal/prettytree"
	"github.com/liancheng/joule/scope"
)

var treeKind string

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <path>",
		Short: "print a Jsonnet file's tree in one of three views",
		Long: `tree parses a single file and prints it as indented ASCII art, in
one of three views selected with -t:

  j  the bound Jsonnet AST (default)
  t  the raw concrete syntax tree
  s  the AST annotated with variable scope bindings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0])
		},
	}
	cmd.Flags().StringVarP(&treeKind, "type", "t", "j", "tree view: j, t, or s")
	return cmd
}

func runTree(cmd *cobra.Command, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	root := cst.Parse(string(src))
	u := uri.File(path)

	var view prettytree.Node
	switch treeKind {
	case "t":
		view = prettytree.CST{N: root}
	case "j":
		doc := ast.Build(u, root)
		view = prettytree.AST{N: doc}
	case "s":
		doc := ast.Build(u, root)
		scope.Resolve(doc)
		view = prettytree.Scope{N: doc}
	default:
		return fmt.Errorf("unknown tree view %q: want j, t, or s", treeKind)
	}

	fmt.Fprintln(cmd.OutOrStdout(), prettytree.Render(view))
	return nil
}
