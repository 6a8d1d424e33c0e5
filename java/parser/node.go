package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node kind tags as emitted by the Java grammar. The extraction core
// dispatches on these instead of comparing raw strings everywhere.
const (
	KindPackageDecl   = "package_declaration"
	KindImportDecl    = "import_declaration"
	KindClassDecl     = "class_declaration"
	KindInterfaceDecl = "interface_declaration"
	KindEnumDecl      = "enum_declaration"
	KindRecordDecl    = "record_declaration"
	KindFieldDecl     = "field_declaration"
	KindMethodDecl    = "method_declaration"
	KindCallExpr      = "method_invocation"
	KindNewExpr       = "object_creation_expression"
	KindReturnStmt    = "return_statement"

	KindModifiers        = "modifiers"
	KindAnnotation       = "annotation"
	KindMarkerAnnotation = "marker_annotation"
	KindSuperclass       = "superclass"
	KindSuperInterfaces  = "super_interfaces"
	KindExtendsIfaces    = "extends_interfaces"
	KindTypeList         = "type_list"
	KindFormalParam      = "formal_parameter"
	KindSpreadParam      = "spread_parameter"
	KindVarDeclarator    = "variable_declarator"
	KindElementValuePair = "element_value_pair"
	KindScopedIdentifier = "scoped_identifier"
	KindIdentifier       = "identifier"
)

// IsTypeDecl reports whether kind names one of the four type declaration
// forms the extractor models.
func IsTypeDecl(kind string) bool {
	switch kind {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl, KindRecordDecl:
		return true
	}
	return false
}

// NamedChildren returns the named children of node in document order.
func NamedChildren(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.NamedChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.NamedChild(i))
	}
	return children
}

// Children returns all children of node, anonymous tokens included. Needed
// for constructs the grammar exposes without field names, such as the
// `static` keyword inside import declarations.
func Children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	count := int(node.ChildCount())
	children := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		children = append(children, node.Child(i))
	}
	return children
}

// FirstChildOfKind returns the first named child with the given kind tag.
func FirstChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	for _, child := range NamedChildren(node) {
		if child.Type() == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind returns every named child with the given kind tag.
func ChildrenOfKind(node *sitter.Node, kind string) []*sitter.Node {
	var result []*sitter.Node
	for _, child := range NamedChildren(node) {
		if child.Type() == kind {
			result = append(result, child)
		}
	}
	return result
}

// Unquote strips double quotes from an annotation literal. The grammar hands
// string literals through verbatim, quotes included.
func Unquote(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
