package java

type TypeKind string

const (
	TypeKindClass     TypeKind = "Class"
	TypeKindInterface TypeKind = "Interface"
	TypeKindEnum      TypeKind = "Enum"
	TypeKindRecord    TypeKind = "Record"
)

// Sentinels reported when best-effort resolution finds nothing. Lookups
// degrade to these instead of failing the extraction.
const (
	UnknownClass   = "Unknown"
	UnknownPackage = "Unknown Package"
	NoParent       = "None"
)

// Annotation is one annotation occurrence: its simple name plus the raw
// source form, for example ("GetMapping", `@GetMapping("/users")`).
type Annotation struct {
	Name string
	Raw  string
}

// TypeModel is the extracted representation of one class, interface, enum,
// or record declaration. Nested declarations are owned exclusively by their
// enclosing TypeModel; nothing is shared between siblings.
type TypeModel struct {
	Kind       TypeKind
	Name       string
	Package    string
	Access     string
	SuperClass string
	Interfaces []string // deduplicated, sorted

	Annotations      []Annotation
	Fields           []FieldModel
	Methods          []*MethodModel
	Nested           []*TypeModel
	ObjectCreations  []string
	Imports          []string
	FieldAnnotations []Annotation

	Persistence    []PersistenceOperation
	Endpoints      []Endpoint
	ScheduledTasks []ScheduledTask

	Code     string
	FilePath string
}

// ParentType derives the parent of the type: the superclass when present,
// else the first implemented interface, else the NoParent sentinel.
func (t *TypeModel) ParentType() string {
	if t.SuperClass != "" {
		return t.SuperClass
	}
	if len(t.Interfaces) > 0 {
		return t.Interfaces[0]
	}
	return NoParent
}

// FieldModel is one declared variable. A declaration listing several
// variables produces one FieldModel per variable, sharing type, access, and
// annotations.
type FieldModel struct {
	Name        string
	Type        string
	Access      string
	Annotations []Annotation
}

// Parameter is one name/type pair from a method's parameter list, in
// declaration order.
type Parameter struct {
	Name string
	Type string
}

// MethodModel is one method declaration. Methods are keyed by name, so
// overloads collapse; the last declaration visited wins.
type MethodModel struct {
	Name       string
	ReturnType string
	Access     string
	Parameters []Parameter

	// RequestBodyParams holds parameters bound from a request body; they
	// are excluded from Parameters.
	RequestBodyParams []Parameter

	// EntryPointParams is set instead of Parameters for the conventional
	// `main(String[] args)` shape, preserved as flat "type name" strings.
	EntryPointParams []string

	StartLine   int
	EndLine     int
	Code        string
	Annotations []Annotation
	Calls       []CallEdge
}

// CallEdge is one call expression inside a method body plus its best-effort
// resolved origin.
type CallEdge struct {
	Method      string
	Scope       string // receiver expression text, or "this" when unscoped
	FromClass   string // UnknownClass when resolution fails
	FromPackage string // empty when unresolved
	Line        int
	Raw         string // full call expression text
	Persistence bool
}

// PersistenceOperation is a call or field annotation classified as
// database/transaction-related by name. For annotation-derived entries the
// Method slot carries the field name.
type PersistenceOperation struct {
	Operation string
	Method    string
	Line      int
	Details   string
}

// Endpoint is a synthesized HTTP route derived from routing annotations on
// the type and one of its methods.
type Endpoint struct {
	Method      string
	Annotation  string
	Verb        string
	Path        string
	Parameters  []Parameter
	RequestBody []Parameter

	ResponseType        string
	ResponseGenericType string
	ResponsePackage     string
	ReturnedBody        string
	ReturnedBodyPackage string
}

// ScheduledTask is a method carrying a Scheduled annotation; Cron is the
// annotation's cron member, empty when absent.
type ScheduledTask struct {
	Method string
	Cron   string
}
