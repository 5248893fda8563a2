package parsers

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/stencil/internal/extraction"
)

// treeSitterParser provides common tree-sitter parsing functionality.
type treeSitterParser struct {
	language *sitter.Language
	lang     string
}

// newTreeSitterParser creates a new tree-sitter parser for the given language.
func newTreeSitterParser(language *sitter.Language, lang string) *treeSitterParser {
	return &treeSitterParser{
		language: language,
		lang:     lang,
	}
}

// parse parses source into a syntax tree. tree-sitter recovers from syntax errors
// by inserting ERROR and MISSING nodes, so only a nil tree is treated as failure.
// The caller owns the returned tree and must Close it.
func (p *treeSitterParser) parse(source []byte) (*sitter.Tree, error) {
	if p.language == nil {
		return nil, &extraction.ParseError{Language: p.lang, Err: fmt.Errorf("grammar not loaded")}
	}

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(p.language); err != nil {
		return nil, &extraction.ParseError{Language: p.lang, Err: err}
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, &extraction.ParseError{Language: p.lang}
	}
	return tree, nil
}

// extractNodeText extracts the text content of a tree-sitter node.
func extractNodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// walkTree recursively walks a tree-sitter tree and calls the visitor for each node.
// Returning false from the visitor skips the node's children.
func walkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		walkTree(child, visitor)
	}
}

// findChildByType finds the first child node with the given type.
func findChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// findChildrenByType finds all child nodes with the given type.
func findChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}

// firstNamedChild returns the first named child that is not a comment.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(uint(i))
		if child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

// annotationText returns the type text of a type_annotation-like node with the
// leading colon removed, e.g. ": Promise<void>" -> "Promise<void>".
func annotationText(node *sitter.Node, source []byte) string {
	text := extractNodeText(node, source)
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, ":")
	return strings.TrimSpace(text)
}
