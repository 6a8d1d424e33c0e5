package java

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/javamap/java/parser"
)

// TypeModelsFromSource parses one Java compilation unit and extracts one
// TypeModel per top-level type declaration. Nested declarations are returned
// inside their enclosing model, never hoisted.
func TypeModelsFromSource(ctx context.Context, source []byte, relPath string) ([]*TypeModel, error) {
	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	return TypeModelsFromTree(tree, relPath), nil
}

// TypeModelsFromTree extracts type models from an already parsed tree.
func TypeModelsFromTree(tree *parser.Tree, relPath string) []*TypeModel {
	fc := &fileContext{
		tree: tree,
		path: filepath.ToSlash(relPath),
	}

	var models []*TypeModel
	for _, child := range parser.NamedChildren(tree.Root()) {
		switch {
		case child.Type() == parser.KindPackageDecl:
			fc.pkg = packageNameFromDecl(tree, child)
		case child.Type() == parser.KindImportDecl:
			if imp := importNameFromDecl(tree, child); imp != "" {
				fc.imports = appendUnique(fc.imports, imp)
			}
		case parser.IsTypeDecl(child.Type()):
			models = append(models, extractType(child, fc))
		}
	}
	return models
}

// fileContext carries the per-file state threaded through the recursive
// extraction: the parsed tree, the package name, and the import set visible
// to every type in the file.
type fileContext struct {
	tree    *parser.Tree
	pkg     string
	imports []string
	path    string
}

// methodDecl pairs an extracted method with its declaration node; the node
// is needed again for call resolution and return-statement inspection.
type methodDecl struct {
	model *MethodModel
	node  *sitter.Node
}

// extractType turns one type declaration node into a TypeModel, recursing
// into nested type declarations. The traversal context is explicit, so
// extraction of independent files can run in parallel.
func extractType(node *sitter.Node, fc *fileContext) *TypeModel {
	tree := fc.tree

	model := &TypeModel{
		Kind:     typeKindOf(node.Type()),
		Package:  fc.pkg,
		Access:   "package",
		Imports:  fc.imports,
		Code:     tree.Text(node),
		FilePath: fc.path,
	}

	if name := node.ChildByFieldName("name"); name != nil {
		model.Name = tree.Text(name)
	}

	modifiers := parser.FirstChildOfKind(node, parser.KindModifiers)
	if modifiers != nil {
		model.Access = accessFromModifiers(tree, modifiers)
		model.Annotations = annotationsFromModifiers(tree, modifiers)
	}

	extractSupertypes(node, model, tree)

	var decls []methodDecl
	body := node.ChildByFieldName("body")
	for _, member := range typeBodyMembers(body) {
		switch {
		case member.Type() == parser.KindFieldDecl:
			fields := fieldModelsFromDecl(member, tree)
			model.Fields = append(model.Fields, fields...)
			for _, f := range fields {
				for _, ann := range f.Annotations {
					model.FieldAnnotations = append(model.FieldAnnotations, ann)
				}
			}
			model.Persistence = append(model.Persistence, persistenceFromField(member, fields, tree)...)
		case member.Type() == parser.KindMethodDecl:
			decl := methodDecl{model: methodModelFromDecl(member, tree), node: member}
			decls = upsertMethod(decls, decl)
		case parser.IsTypeDecl(member.Type()):
			model.Nested = append(model.Nested, extractType(member, fc))
		}
	}

	for _, d := range decls {
		model.Methods = append(model.Methods, d.model)
	}

	model.ObjectCreations = objectCreationsIn(node, tree)

	res := newResolver(model, fc)
	for _, d := range decls {
		resolveCallsInMethod(d, res, tree)
		model.Persistence = append(model.Persistence, persistenceFromCalls(d.model)...)
	}

	synthesizeEndpoints(model, node, decls, tree)
	model.ScheduledTasks = scheduledTasksFrom(decls, tree)

	sort.Strings(model.Interfaces)
	return model
}

func typeKindOf(nodeKind string) TypeKind {
	switch nodeKind {
	case parser.KindInterfaceDecl:
		return TypeKindInterface
	case parser.KindEnumDecl:
		return TypeKindEnum
	case parser.KindRecordDecl:
		return TypeKindRecord
	default:
		return TypeKindClass
	}
}

// extractSupertypes captures at most one superclass (the first listed
// supertype) and the set of implemented interfaces.
func extractSupertypes(node *sitter.Node, model *TypeModel, tree *parser.Tree) {
	if sc := parser.FirstChildOfKind(node, parser.KindSuperclass); sc != nil {
		for _, child := range parser.NamedChildren(sc) {
			model.SuperClass = declaredTypeName(tree.Text(child))
			break
		}
	}

	// Interfaces extending other interfaces list them in an extends
	// clause; the first one takes the superclass slot, the rest are not
	// modeled (single-inheritance assumption upstream).
	if ext := parser.FirstChildOfKind(node, parser.KindExtendsIfaces); ext != nil {
		if list := parser.FirstChildOfKind(ext, parser.KindTypeList); list != nil {
			for _, t := range parser.NamedChildren(list) {
				model.SuperClass = declaredTypeName(tree.Text(t))
				break
			}
		}
	}

	if impl := parser.FirstChildOfKind(node, parser.KindSuperInterfaces); impl != nil {
		if list := parser.FirstChildOfKind(impl, parser.KindTypeList); list != nil {
			for _, t := range parser.NamedChildren(list) {
				model.Interfaces = appendUnique(model.Interfaces, declaredTypeName(tree.Text(t)))
			}
		}
	}
}

// typeBodyMembers flattens a type body into its member declarations. Enum
// bodies keep methods and fields inside an enum_body_declarations wrapper;
// enum constants themselves are not members.
func typeBodyMembers(body *sitter.Node) []*sitter.Node {
	var members []*sitter.Node
	for _, child := range parser.NamedChildren(body) {
		if child.Type() == "enum_body_declarations" {
			members = append(members, parser.NamedChildren(child)...)
			continue
		}
		members = append(members, child)
	}
	return members
}

// upsertMethod keeps methods keyed by name: a later overload replaces the
// details of an earlier one but keeps its list position.
func upsertMethod(decls []methodDecl, decl methodDecl) []methodDecl {
	for i := range decls {
		if decls[i].model.Name == decl.model.Name {
			decls[i] = decl
			return decls
		}
	}
	return append(decls, decl)
}

// fieldModelsFromDecl emits one FieldModel per declared variable; `int a, b;`
// yields two entries sharing type, access, and annotations.
func fieldModelsFromDecl(node *sitter.Node, tree *parser.Tree) []FieldModel {
	base := FieldModel{Access: "package"}

	if t := node.ChildByFieldName("type"); t != nil {
		base.Type = tree.Text(t)
	}
	if modifiers := parser.FirstChildOfKind(node, parser.KindModifiers); modifiers != nil {
		base.Access = accessFromModifiers(tree, modifiers)
		base.Annotations = annotationsFromModifiers(tree, modifiers)
	}

	var fields []FieldModel
	for _, declarator := range parser.ChildrenOfKind(node, parser.KindVarDeclarator) {
		field := base
		if name := declarator.ChildByFieldName("name"); name != nil {
			field.Name = tree.Text(name)
		}
		fields = append(fields, field)
	}
	return fields
}

func methodModelFromDecl(node *sitter.Node, tree *parser.Tree) *MethodModel {
	model := &MethodModel{
		Access:    "package",
		StartLine: tree.StartLine(node),
		EndLine:   tree.EndLine(node),
		Code:      tree.Text(node),
	}

	if name := node.ChildByFieldName("name"); name != nil {
		model.Name = tree.Text(name)
	}
	if ret := node.ChildByFieldName("type"); ret != nil {
		model.ReturnType = tree.Text(ret)
	}
	if modifiers := parser.FirstChildOfKind(node, parser.KindModifiers); modifiers != nil {
		model.Access = accessFromModifiers(tree, modifiers)
		model.Annotations = annotationsFromModifiers(tree, modifiers)
	}

	params := node.ChildByFieldName("parameters")
	for _, p := range parser.NamedChildren(params) {
		if p.Type() != parser.KindFormalParam && p.Type() != parser.KindSpreadParam {
			continue
		}
		param := parameterFromNode(p, tree)
		if hasAnnotationNamed(p, "RequestBody", tree) {
			model.RequestBodyParams = append(model.RequestBodyParams, param)
			continue
		}
		model.Parameters = append(model.Parameters, param)
	}

	// The conventional entry point keeps its parameter as a flat list so
	// it cannot collide with the general name→type shape.
	if model.Name == "main" && len(model.Parameters) == 1 && model.Parameters[0].Type == "String[]" {
		p := model.Parameters[0]
		model.EntryPointParams = []string{p.Type + " " + p.Name}
		model.Parameters = nil
	}

	return model
}

func parameterFromNode(node *sitter.Node, tree *parser.Tree) Parameter {
	var param Parameter

	// spread_parameter carries no field names: the type is the first named
	// child besides modifiers and declarator, the name sits in the declarator
	if node.Type() == parser.KindSpreadParam {
		for _, child := range parser.NamedChildren(node) {
			if child.Type() == parser.KindModifiers || child.Type() == parser.KindVarDeclarator {
				continue
			}
			param.Type = tree.Text(child) + "..."
			break
		}
		if d := parser.FirstChildOfKind(node, parser.KindVarDeclarator); d != nil {
			if name := d.ChildByFieldName("name"); name != nil {
				param.Name = tree.Text(name)
			}
		}
		return param
	}

	if t := node.ChildByFieldName("type"); t != nil {
		param.Type = tree.Text(t)
	}
	if name := node.ChildByFieldName("name"); name != nil {
		param.Name = tree.Text(name)
	}
	return param
}

// objectCreationsIn collects the type names of every object-creation
// expression in the declaration body, skipping nested type declarations,
// which own their creations exclusively.
func objectCreationsIn(node *sitter.Node, tree *parser.Tree) []string {
	var creations []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for _, child := range parser.NamedChildren(n) {
			if parser.IsTypeDecl(child.Type()) {
				continue
			}
			if child.Type() == parser.KindNewExpr {
				if t := child.ChildByFieldName("type"); t != nil {
					creations = appendUnique(creations, declaredTypeName(tree.Text(t)))
				}
			}
			walk(child)
		}
	}
	if body := node.ChildByFieldName("body"); body != nil {
		walk(body)
	}
	return creations
}

func accessFromModifiers(tree *parser.Tree, modifiers *sitter.Node) string {
	for _, child := range parser.Children(modifiers) {
		switch tree.Text(child) {
		case "public", "protected", "private":
			return tree.Text(child)
		}
	}
	return "package"
}

func annotationsFromModifiers(tree *parser.Tree, modifiers *sitter.Node) []Annotation {
	var annotations []Annotation
	for _, child := range parser.NamedChildren(modifiers) {
		if child.Type() != parser.KindAnnotation && child.Type() != parser.KindMarkerAnnotation {
			continue
		}
		annotations = append(annotations, Annotation{
			Name: annotationName(tree, child),
			Raw:  tree.Text(child),
		})
	}
	return annotations
}

func annotationName(tree *parser.Tree, node *sitter.Node) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return simpleName(tree.Text(name))
}

func hasAnnotationNamed(param *sitter.Node, name string, tree *parser.Tree) bool {
	modifiers := parser.FirstChildOfKind(param, parser.KindModifiers)
	if modifiers == nil {
		return false
	}
	for _, ann := range annotationsFromModifiers(tree, modifiers) {
		if ann.Name == name {
			return true
		}
	}
	return false
}

func packageNameFromDecl(tree *parser.Tree, node *sitter.Node) string {
	for _, child := range parser.NamedChildren(node) {
		switch child.Type() {
		case parser.KindScopedIdentifier, parser.KindIdentifier:
			return tree.Text(child)
		}
	}
	return ""
}

// importNameFromDecl returns the imported name, with any `static` keyword
// dropped and wildcard imports recorded with their trailing `.*` removed.
func importNameFromDecl(tree *parser.Tree, node *sitter.Node) string {
	for _, child := range parser.NamedChildren(node) {
		switch child.Type() {
		case parser.KindScopedIdentifier, parser.KindIdentifier:
			return tree.Text(child)
		}
	}
	return ""
}

// declaredTypeName normalizes a supertype or creation reference to the bare
// type name: generics stripped, package qualifier dropped.
func declaredTypeName(text string) string {
	if i := strings.Index(text, "<"); i >= 0 {
		text = text[:i]
	}
	return simpleName(text)
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
