package java

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/javamap/java/parser"
)

// routingAnnotations names every annotation that declares a route on a
// method. The verb table is total: the four specific mappings get their
// verb, anything else routes as the generic REQUEST.
var routingAnnotations = map[string]bool{
	"GetMapping":     true,
	"PostMapping":    true,
	"PutMapping":     true,
	"DeleteMapping":  true,
	"RequestMapping": true,
}

func verbFor(annotation string) string {
	switch annotation {
	case "GetMapping":
		return "GET"
	case "PostMapping":
		return "POST"
	case "PutMapping":
		return "PUT"
	case "DeleteMapping":
		return "DELETE"
	}
	return "REQUEST"
}

// synthesizeEndpoints derives one Endpoint per routing annotation on the
// type's methods, composing the type-level base path with each method path.
func synthesizeEndpoints(model *TypeModel, typeNode *sitter.Node, decls []methodDecl, tree *parser.Tree) {
	basePath := ""
	for _, ann := range annotationNodes(typeNode) {
		if annotationName(tree, ann) == "RequestMapping" {
			basePath = annotationPathValue(ann, tree)
		}
	}

	for _, d := range decls {
		for _, ann := range annotationNodes(d.node) {
			name := annotationName(tree, ann)
			if !routingAnnotations[name] {
				continue
			}
			endpoint := Endpoint{
				Method:      d.model.Name,
				Annotation:  name,
				Verb:        verbFor(name),
				Path:        CombinePaths(basePath, annotationPathValue(ann, tree)),
				Parameters:  d.model.Parameters,
				RequestBody: d.model.RequestBodyParams,
			}

			endpoint.ResponseType = d.model.ReturnType
			if generic := genericTypeOf(d.model.ReturnType); generic != "" {
				endpoint.ResponseGenericType = generic
				endpoint.ResponsePackage = resolveFromImports(generic, model.Imports)
			} else {
				endpoint.ResponsePackage = resolveFromImports(d.model.ReturnType, model.Imports)
			}

			endpoint.ReturnedBody = returnedBodyOf(d.node, tree)
			endpoint.ReturnedBodyPackage = resolveFromImports(endpoint.ReturnedBody, model.Imports)

			model.Endpoints = append(model.Endpoints, endpoint)
		}
	}
}

// annotationNodes returns the annotation nodes attached to a declaration,
// marker form included.
func annotationNodes(decl *sitter.Node) []*sitter.Node {
	modifiers := parser.FirstChildOfKind(decl, parser.KindModifiers)
	if modifiers == nil {
		return nil
	}
	var nodes []*sitter.Node
	for _, child := range parser.NamedChildren(modifiers) {
		if child.Type() == parser.KindAnnotation || child.Type() == parser.KindMarkerAnnotation {
			nodes = append(nodes, child)
		}
	}
	return nodes
}

// annotationPathValue extracts the route literal from an annotation's
// argument list: the single member value, or the value/path member of a
// named pair list; empty for marker annotations. The grammar distinguishes
// bare values from element_value_pair nodes, so a literal containing "=" or
// "," never misparses.
func annotationPathValue(ann *sitter.Node, tree *parser.Tree) string {
	args := ann.ChildByFieldName("arguments")
	for _, child := range parser.NamedChildren(args) {
		if child.Type() != parser.KindElementValuePair {
			// single-member form
			return parser.Unquote(tree.Text(child))
		}
		key := tree.Text(child.ChildByFieldName("key"))
		if key == "value" || key == "path" {
			return parser.Unquote(tree.Text(child.ChildByFieldName("value")))
		}
	}
	return ""
}

// CombinePaths joins a base path and a method path: both sides are
// normalized to start with "/" and the base loses any trailing "/".
func CombinePaths(basePath, methodPath string) string {
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimSuffix(basePath, "/")
	if !strings.HasPrefix(methodPath, "/") {
		methodPath = "/" + methodPath
	}
	return basePath + methodPath
}

// genericTypeOf returns the text inside the angle brackets of a generic
// type, or "" when the type has no type argument.
func genericTypeOf(typeName string) string {
	open := strings.Index(typeName, "<")
	close := strings.LastIndex(typeName, ">")
	if open < 0 || close < open {
		return ""
	}
	return typeName[open+1 : close]
}

// returnedBodyOf classifies the first return statement in the method body:
// an object creation reports its type name, a call reports the called name,
// anything else falls back to the raw expression text.
func returnedBodyOf(method *sitter.Node, tree *parser.Tree) string {
	body := method.ChildByFieldName("body")
	ret := firstReturn(body)
	if ret == nil {
		return ""
	}

	var expr *sitter.Node
	for _, child := range parser.NamedChildren(ret) {
		expr = child
		break
	}
	if expr == nil {
		return ""
	}

	switch expr.Type() {
	case parser.KindNewExpr:
		if t := expr.ChildByFieldName("type"); t != nil {
			return declaredTypeName(tree.Text(t))
		}
	case parser.KindCallExpr:
		if name := expr.ChildByFieldName("name"); name != nil {
			return tree.Text(name)
		}
	}
	return tree.Text(expr)
}

func firstReturn(n *sitter.Node) *sitter.Node {
	for _, child := range parser.NamedChildren(n) {
		if child.Type() == parser.KindReturnStmt {
			return child
		}
		if found := firstReturn(child); found != nil {
			return found
		}
	}
	return nil
}

// resolveFromImports finds the first import equal to name or ending in
// ".name", degrading to the UnknownPackage sentinel.
func resolveFromImports(name string, imports []string) string {
	if name == "" {
		return UnknownPackage
	}
	for _, imp := range imports {
		if imp == name || strings.HasSuffix(imp, "."+name) {
			return imp
		}
	}
	return UnknownPackage
}

// scheduledTasksFrom collects methods carrying a Scheduled annotation; the
// cron member is taken from the annotation's named pairs when present.
func scheduledTasksFrom(decls []methodDecl, tree *parser.Tree) []ScheduledTask {
	var tasks []ScheduledTask
	for _, d := range decls {
		for _, ann := range annotationNodes(d.node) {
			if annotationName(tree, ann) != "Scheduled" {
				continue
			}
			tasks = append(tasks, ScheduledTask{
				Method: d.model.Name,
				Cron:   annotationMemberValue(ann, "cron", tree),
			})
		}
	}
	return tasks
}

func annotationMemberValue(ann *sitter.Node, member string, tree *parser.Tree) string {
	args := ann.ChildByFieldName("arguments")
	for _, child := range parser.NamedChildren(args) {
		if child.Type() != parser.KindElementValuePair {
			continue
		}
		if tree.Text(child.ChildByFieldName("key")) == member {
			return parser.Unquote(tree.Text(child.ChildByFieldName("value")))
		}
	}
	return ""
}
