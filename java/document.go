package java

import "sort"

// Document is the serialized form of one extracted type. Key names and
// nesting are the external contract; downstream tools depend on them
// exactly as declared here.
type Document struct {
	StructType       string                `json:"structType"`
	ClassName        string                `json:"className"`
	PackageName      string                `json:"packageName"`
	ClassAccess      string                `json:"classAccess"`
	Extend           string                `json:"extend,omitempty"`
	ImplementList    []string              `json:"implementList,omitempty"`
	ImportList       []string              `json:"importList"`
	ClassAnnotations []string              `json:"ClassAnnotations"`
	FieldAnnotations []string              `json:"FieldAnnotations"`
	FieldList        map[string]FieldEntry `json:"fieldList"`
	MethodList       []MethodEntry         `json:"methodList"`
	ObjectCreations  []string              `json:"ObjectCreations"`
	DatabaseOps      []DatabaseOperation   `json:"DatabaseOperations"`
	Endpoints        []EndpointEntry       `json:"Endpoints"`
	ScheduledTasks   []ScheduledTaskEntry  `json:"ScheduledTasks"`
	InnerClassList   []*Document           `json:"innerClassList"`
	Code             string                `json:"Code"`
	FilePath         string                `json:"FilePath"`
	ParentClass      string                `json:"parent_class"`
}

type FieldEntry struct {
	Type        string   `json:"type"`
	Access      string   `json:"access"`
	Annotations []string `json:"annotations"`
}

type MethodEntry struct {
	MethodName string        `json:"MethodName"`
	ReturnType string        `json:"ReturnType"`
	Details    MethodDetails `json:"Details"`
}

type MethodDetails struct {
	MethodAccess string `json:"methodAccess"`
	ReturnType   string `json:"ReturnType"`
	StartLine    int    `json:"StartLine"`
	EndLine      int    `json:"EndLine"`
	Code         string `json:"Code"`

	// MethodParameters is a name→type map, except for the conventional
	// entry point, whose parameter list stays a flat string list.
	MethodParameters any         `json:"methodParameters"`
	Annotations      []string    `json:"Annotations"`
	MethodCalls      []CallEntry `json:"MethodCalls"`
}

type CallEntry struct {
	MethodName  string `json:"MethodName"`
	Scope       string `json:"Scope"`
	FromClass   string `json:"FromClass"`
	FromPackage string `json:"FromPackage,omitempty"`
	Line        int    `json:"Line"`
}

type DatabaseOperation struct {
	Operation string `json:"Operation"`
	Method    string `json:"Method"`
	Line      int    `json:"Line"`
	Details   string `json:"Details"`
}

type EndpointEntry struct {
	MethodName            string            `json:"MethodName"`
	Annotation            string            `json:"Annotation"`
	Path                  string            `json:"Path"`
	HTTPMethod            string            `json:"HTTPMethod"`
	Parameters            map[string]string `json:"Parameters"`
	RequestBodyParameters map[string]string `json:"RequestBodyParameters"`
	ResponseType          string            `json:"ResponseType"`
	ResponseGenericType   string            `json:"ResponseGenericType,omitempty"`
	ResponsePackage       string            `json:"ResponsePackage"`
	ReturnedBody          string            `json:"ReturnedBody,omitempty"`
	ReturnedBodyPackage   string            `json:"ReturnedBodyPackage"`
}

type ScheduledTaskEntry struct {
	Method string `json:"Method"`
	Cron   string `json:"Cron"`
}

// BuildDocument assembles the final per-type document, recursively
// including nested types. Set-valued collections are deduplicated and
// sorted so repeated runs serialize byte-identically; method and endpoint
// lists keep source declaration order.
func BuildDocument(t *TypeModel) *Document {
	doc := &Document{
		StructType:       string(t.Kind),
		ClassName:        t.Name,
		PackageName:      t.Package,
		ClassAccess:      t.Access,
		Extend:           t.SuperClass,
		ImplementList:    sortedStrings(t.Interfaces),
		ImportList:       sortedStrings(t.Imports),
		ClassAnnotations: annotationStrings(t.Annotations),
		FieldAnnotations: annotationStrings(t.FieldAnnotations),
		FieldList:        make(map[string]FieldEntry, len(t.Fields)),
		MethodList:       []MethodEntry{},
		ObjectCreations:  sortedStrings(t.ObjectCreations),
		Endpoints:        []EndpointEntry{},
		ScheduledTasks:   []ScheduledTaskEntry{},
		InnerClassList:   []*Document{},
		DatabaseOps:      databaseOperations(t.Persistence),
		Code:             t.Code,
		FilePath:         t.FilePath,
		ParentClass:      t.ParentType(),
	}

	for _, f := range t.Fields {
		doc.FieldList[f.Name] = FieldEntry{
			Type:        f.Type,
			Access:      f.Access,
			Annotations: annotationStrings(f.Annotations),
		}
	}

	for _, m := range t.Methods {
		doc.MethodList = append(doc.MethodList, methodEntry(m))
	}

	for _, e := range t.Endpoints {
		doc.Endpoints = append(doc.Endpoints, EndpointEntry{
			MethodName:            e.Method,
			Annotation:            e.Annotation,
			Path:                  e.Path,
			HTTPMethod:            e.Verb,
			Parameters:            parameterMap(e.Parameters),
			RequestBodyParameters: parameterMap(e.RequestBody),
			ResponseType:          e.ResponseType,
			ResponseGenericType:   e.ResponseGenericType,
			ResponsePackage:       e.ResponsePackage,
			ReturnedBody:          e.ReturnedBody,
			ReturnedBodyPackage:   e.ReturnedBodyPackage,
		})
	}

	for _, task := range t.ScheduledTasks {
		doc.ScheduledTasks = append(doc.ScheduledTasks, ScheduledTaskEntry{
			Method: task.Method,
			Cron:   task.Cron,
		})
	}

	for _, nested := range t.Nested {
		doc.InnerClassList = append(doc.InnerClassList, BuildDocument(nested))
	}

	return doc
}

func methodEntry(m *MethodModel) MethodEntry {
	var params any
	if m.EntryPointParams != nil {
		params = m.EntryPointParams
	} else {
		params = parameterMap(m.Parameters)
	}

	return MethodEntry{
		MethodName: m.Name,
		ReturnType: m.ReturnType,
		Details: MethodDetails{
			MethodAccess:     m.Access,
			ReturnType:       m.ReturnType,
			StartLine:        m.StartLine,
			EndLine:          m.EndLine,
			Code:             m.Code,
			MethodParameters: params,
			Annotations:      annotationStrings(m.Annotations),
			MethodCalls:      callEntries(m.Calls),
		},
	}
}

func parameterMap(params []Parameter) map[string]string {
	result := make(map[string]string, len(params))
	for _, p := range params {
		result[p.Name] = p.Type
	}
	return result
}

// annotationStrings flattens annotations to their raw source forms, the
// shape downstream consumers expect, deduplicated and sorted.
func annotationStrings(annotations []Annotation) []string {
	entries := make([]string, 0, len(annotations))
	seen := make(map[string]bool, len(annotations))
	for _, a := range annotations {
		if seen[a.Raw] {
			continue
		}
		seen[a.Raw] = true
		entries = append(entries, a.Raw)
	}
	sort.Strings(entries)
	return entries
}

func callEntries(calls []CallEdge) []CallEntry {
	entries := make([]CallEntry, 0, len(calls))
	seen := make(map[CallEntry]bool, len(calls))
	for _, c := range calls {
		entry := CallEntry{
			MethodName:  c.Method,
			Scope:       c.Scope,
			FromClass:   c.FromClass,
			FromPackage: c.FromPackage,
			Line:        c.Line,
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Line != entries[j].Line {
			return entries[i].Line < entries[j].Line
		}
		if entries[i].MethodName != entries[j].MethodName {
			return entries[i].MethodName < entries[j].MethodName
		}
		return entries[i].Scope < entries[j].Scope
	})
	return entries
}

func databaseOperations(ops []PersistenceOperation) []DatabaseOperation {
	entries := make([]DatabaseOperation, 0, len(ops))
	seen := make(map[DatabaseOperation]bool, len(ops))
	for _, op := range ops {
		entry := DatabaseOperation{
			Operation: op.Operation,
			Method:    op.Method,
			Line:      op.Line,
			Details:   op.Details,
		}
		if seen[entry] {
			continue
		}
		seen[entry] = true
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Line != entries[j].Line {
			return entries[i].Line < entries[j].Line
		}
		if entries[i].Operation != entries[j].Operation {
			return entries[i].Operation < entries[j].Operation
		}
		return entries[i].Method < entries[j].Method
	})
	return entries
}

// sortedStrings copies and sorts a string set. Empty sets come back as an
// empty slice so they serialize as [] rather than null.
func sortedStrings(values []string) []string {
	result := make([]string, len(values))
	copy(result, values)
	sort.Strings(result)
	return result
}
