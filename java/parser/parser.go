// Package parser produces syntax trees for Java source files.
//
// Parsing itself is delegated to tree-sitter with the bundled Java grammar;
// this package only wraps the result so that callers can classify nodes,
// read source spans, and slice raw text without touching tree-sitter
// directly.
package parser

import (
	"context"
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// ErrSyntax is returned when the grammar could not produce a clean tree for
// the input. Callers treat this as a per-file failure and move on.
var ErrSyntax = errors.New("source contains syntax errors")

// Tree is one parsed compilation unit plus the source it was parsed from.
// Node positions and text are only meaningful together with Source.
type Tree struct {
	Source []byte
	root   *sitter.Node

	// keeps the underlying tree alive for as long as nodes are in use
	tree *sitter.Tree
}

// Parse parses a single Java compilation unit. The returned tree is
// exclusively owned by the caller; Parse creates a fresh tree-sitter parser
// per call so concurrent parses never share state.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root == nil {
		return nil, ErrSyntax
	}
	if root.HasError() {
		return nil, ErrSyntax
	}

	return &Tree{Source: source, root: root, tree: tree}, nil
}

// Root returns the compilation unit node.
func (t *Tree) Root() *sitter.Node {
	return t.root
}

// Text returns the raw source text covered by node.
func (t *Tree) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(t.Source)
}

// StartLine returns the 1-based first source line of node, or -1 when the
// node carries no position.
func (t *Tree) StartLine(node *sitter.Node) int {
	if node == nil {
		return -1
	}
	return int(node.StartPoint().Row) + 1
}

// EndLine returns the 1-based last source line of node, or -1 when the node
// carries no position.
func (t *Tree) EndLine(node *sitter.Node) int {
	if node == nil {
		return -1
	}
	return int(node.EndPoint().Row) + 1
}
