package java

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/javamap/java/parser"
)

// persistenceCalls is the closed set of statement/transaction-style call
// names classified as database operations. Matching is exact: a name like
// executeBatchJob must not fire.
var persistenceCalls = map[string]bool{
	"executeQuery":     true,
	"executeUpdate":    true,
	"execute":          true,
	"prepareStatement": true,
	"createStatement":  true,
	"setAutoCommit":    true,
	"commit":           true,
	"rollback":         true,
	"close":            true,
}

// persistenceAnnotations is the closed set of field annotations that imply
// persistence-layer usage independent of any call.
var persistenceAnnotations = map[string]bool{
	"Id":                 true,
	"Column":             true,
	"JoinColumn":         true,
	"GeneratedValue":     true,
	"OneToOne":           true,
	"OneToMany":          true,
	"ManyToOne":          true,
	"ManyToMany":         true,
	"Embedded":           true,
	"EmbeddedId":         true,
	"PersistenceContext": true,
}

func isPersistenceCall(name string) bool {
	return persistenceCalls[name]
}

// persistenceFromCalls lifts the method's persistence-flagged call edges
// into PersistenceOperation records.
func persistenceFromCalls(method *MethodModel) []PersistenceOperation {
	var ops []PersistenceOperation
	for _, call := range method.Calls {
		if !call.Persistence {
			continue
		}
		ops = append(ops, PersistenceOperation{
			Operation: call.Method,
			Method:    method.Name,
			Line:      call.Line,
			Details:   call.Raw,
		})
	}
	return ops
}

// persistenceFromField synthesizes operations from persistence-related
// annotations on a field declaration; the field name fills the Method slot.
func persistenceFromField(node *sitter.Node, fields []FieldModel, tree *parser.Tree) []PersistenceOperation {
	var ops []PersistenceOperation
	line := tree.StartLine(node)
	for _, field := range fields {
		for _, ann := range field.Annotations {
			if !persistenceAnnotations[ann.Name] {
				continue
			}
			ops = append(ops, PersistenceOperation{
				Operation: ann.Name,
				Method:    field.Name,
				Line:      line,
				Details:   ann.Raw,
			})
		}
	}
	return ops
}
