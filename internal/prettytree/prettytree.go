// Package prettytree renders tree-shaped values (a concrete syntax tree,
// a bound AST, a variable scope tree) as the indented ASCII art the
// joule tree CLI command prints, grounded on the same branch-drawing
// recursion original_source's PrettyTree base class used.
package prettytree

import "strings"

// Node is anything prettytree can render: a single-line label plus its
// ordered children.
type Node interface {
	NodeText() string
	Children() []Node
}

// Render returns n's indented tree rendering.
func Render(n Node) string {
	if n == nil {
		return "<nil>"
	}
	lines := []string{n.NodeText()}
	grow(&lines, n.Children(), "")
	return strings.Join(lines, "\n")
}

func grow(lines *[]string, nodes []Node, branches string) {
	for i, node := range nodes {
		last := i == len(nodes)-1
		fork, newBranch := "|-- ", "|   "
		if last {
			fork, newBranch = "`-- ", ".   "
		}
		*lines = append(*lines, branches+fork+node.NodeText())
		grow(lines, node.Children(), branches+newBranch)
	}
}
