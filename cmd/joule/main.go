// Command joule is a Jsonnet language server: go-to-definition,
// find-references, document symbols, document highlight, inlay hints,
// folding ranges, and rename over a workspace of .jsonnet/.libsonnet
// files, spoken over the Language Server Protocol.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/liancheng/joule/cmd/joule/cmd"
)

func main() {
	if err := cmd.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
