package java

import (
	"context"
	"errors"
	"testing"

	"github.com/dhamidi/javamap/java/parser"
)

func mustExtract(t *testing.T, source string) []*TypeModel {
	t.Helper()
	models, err := TypeModelsFromSource(context.Background(), []byte(source), "Test.java")
	if err != nil {
		t.Fatalf("Failed to extract source: %v", err)
	}
	return models
}

func TestTopLevelTypes(t *testing.T) {
	models := mustExtract(t, `package com.example;

import java.util.List;
import java.util.Map;

public class First {
}

interface Second {
}
`)

	if len(models) != 2 {
		t.Fatalf("Expected 2 type models, got %d", len(models))
	}

	t.Run("class identity", func(t *testing.T) {
		first := models[0]
		if first.Kind != TypeKindClass {
			t.Errorf("Expected kind Class, got %s", first.Kind)
		}
		if first.Name != "First" {
			t.Errorf("Expected name First, got %s", first.Name)
		}
		if first.Package != "com.example" {
			t.Errorf("Expected package com.example, got %s", first.Package)
		}
		if first.Access != "public" {
			t.Errorf("Expected access public, got %s", first.Access)
		}
	})

	t.Run("default access is package", func(t *testing.T) {
		second := models[1]
		if second.Kind != TypeKindInterface {
			t.Errorf("Expected kind Interface, got %s", second.Kind)
		}
		if second.Access != "package" {
			t.Errorf("Expected access package, got %s", second.Access)
		}
	})

	t.Run("imports visible to every type", func(t *testing.T) {
		for _, m := range models {
			if len(m.Imports) != 2 {
				t.Fatalf("Expected 2 imports on %s, got %v", m.Name, m.Imports)
			}
			if m.Imports[0] != "java.util.List" || m.Imports[1] != "java.util.Map" {
				t.Errorf("Unexpected imports: %v", m.Imports)
			}
		}
	})
}

func TestTypeKinds(t *testing.T) {
	models := mustExtract(t, `public enum Color { RED, GREEN }
record Point(int x, int y) {}
`)

	if len(models) != 2 {
		t.Fatalf("Expected 2 type models, got %d", len(models))
	}
	if models[0].Kind != TypeKindEnum {
		t.Errorf("Expected Enum, got %s", models[0].Kind)
	}
	if models[1].Kind != TypeKindRecord {
		t.Errorf("Expected Record, got %s", models[1].Kind)
	}
}

func TestNestedTypeOwnership(t *testing.T) {
	models := mustExtract(t, `public class Outer {
    private int count;

    public class Inner {
        public void make() {
            Object o = new Object();
        }
    }

    public void run() {
        String s = new String();
    }
}
`)

	if len(models) != 1 {
		t.Fatalf("Expected 1 top-level model, got %d", len(models))
	}
	outer := models[0]

	t.Run("inner type nested, not hoisted", func(t *testing.T) {
		if len(outer.Nested) != 1 {
			t.Fatalf("Expected 1 nested type, got %d", len(outer.Nested))
		}
		if outer.Nested[0].Name != "Inner" {
			t.Errorf("Expected nested type Inner, got %s", outer.Nested[0].Name)
		}
	})

	t.Run("inner creations stay with the inner type", func(t *testing.T) {
		for _, c := range outer.ObjectCreations {
			if c == "Object" {
				t.Errorf("Outer must not own Inner's creation: %v", outer.ObjectCreations)
			}
		}
		if len(outer.ObjectCreations) != 1 || outer.ObjectCreations[0] != "String" {
			t.Errorf("Expected outer creations [String], got %v", outer.ObjectCreations)
		}
		inner := outer.Nested[0]
		if len(inner.ObjectCreations) != 1 || inner.ObjectCreations[0] != "Object" {
			t.Errorf("Expected inner creations [Object], got %v", inner.ObjectCreations)
		}
	})

	t.Run("inner methods stay with the inner type", func(t *testing.T) {
		if len(outer.Methods) != 1 || outer.Methods[0].Name != "run" {
			t.Errorf("Expected outer methods [run], got %d", len(outer.Methods))
		}
		if len(outer.Nested[0].Methods) != 1 || outer.Nested[0].Methods[0].Name != "make" {
			t.Errorf("Expected inner methods [make]")
		}
	})
}

func TestMultiVariableFieldDeclaration(t *testing.T) {
	models := mustExtract(t, `public class Pair {
    private int a, b;
}
`)

	fields := models[0].Fields
	if len(fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(fields))
	}
	for i, name := range []string{"a", "b"} {
		if fields[i].Name != name {
			t.Errorf("Expected field %s, got %s", name, fields[i].Name)
		}
		if fields[i].Type != "int" {
			t.Errorf("Expected type int, got %s", fields[i].Type)
		}
		if fields[i].Access != "private" {
			t.Errorf("Expected access private, got %s", fields[i].Access)
		}
	}
}

func TestParentType(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "superclass wins",
			source: `public class A extends Base implements Runnable {}`,
			want:   "Base",
		},
		{
			name:   "first interface of the sorted set",
			source: `public class A implements Zeta, Alpha {}`,
			want:   "Alpha",
		},
		{
			name:   "no parent",
			source: `public class A {}`,
			want:   "None",
		},
		{
			name:   "interface extends",
			source: `public interface A extends Comparable {}`,
			want:   "Comparable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := mustExtract(t, tt.source)
			if got := models[0].ParentType(); got != tt.want {
				t.Errorf("Expected parent %q, got %q", tt.want, got)
			}
		})
	}
}

func TestGenericSupertypeNormalized(t *testing.T) {
	models := mustExtract(t, `public class Handler extends AbstractHandler<String> implements java.util.Comparator<String> {}`)

	m := models[0]
	if m.SuperClass != "AbstractHandler" {
		t.Errorf("Expected superclass AbstractHandler, got %s", m.SuperClass)
	}
	if len(m.Interfaces) != 1 || m.Interfaces[0] != "Comparator" {
		t.Errorf("Expected interfaces [Comparator], got %v", m.Interfaces)
	}
}

func TestEntryPointParameters(t *testing.T) {
	models := mustExtract(t, `public class App {
    public static void main(String[] args) {
        System.out.println("hi");
    }

    public void main(int code) {
    }
}
`)

	// the overload replaces the entry point; extract a clean one too
	clean := mustExtract(t, `public class App {
    public static void main(String[] args) {}
}
`)

	t.Run("entry point keeps a flat parameter list", func(t *testing.T) {
		m := clean[0].Methods[0]
		if m.Parameters != nil {
			t.Errorf("Expected no keyed parameters, got %v", m.Parameters)
		}
		if len(m.EntryPointParams) != 1 || m.EntryPointParams[0] != "String[] args" {
			t.Errorf("Expected [String[] args], got %v", m.EntryPointParams)
		}
	})

	t.Run("overloads collapse to the last declaration", func(t *testing.T) {
		if len(models[0].Methods) != 1 {
			t.Fatalf("Expected 1 method after collapse, got %d", len(models[0].Methods))
		}
		m := models[0].Methods[0]
		if len(m.Parameters) != 1 || m.Parameters[0].Type != "int" {
			t.Errorf("Expected last overload to win, got %+v", m.Parameters)
		}
	})
}

func TestVarargsParameter(t *testing.T) {
	models := mustExtract(t, `public class Log {
    public void info(String fmt, Object... args) {}

    public void audit(final String... entries) {}
}
`)

	t.Run("type and name survive the spread form", func(t *testing.T) {
		params := findMethod(t, models[0], "info").Parameters
		if len(params) != 2 {
			t.Fatalf("Expected 2 parameters, got %d", len(params))
		}
		if params[1].Type != "Object..." || params[1].Name != "args" {
			t.Errorf("Expected Object... args, got %q %q", params[1].Type, params[1].Name)
		}
	})

	t.Run("modifiers do not shadow the type", func(t *testing.T) {
		params := findMethod(t, models[0], "audit").Parameters
		if len(params) != 1 {
			t.Fatalf("Expected 1 parameter, got %d", len(params))
		}
		if params[0].Type != "String..." || params[0].Name != "entries" {
			t.Errorf("Expected String... entries, got %q %q", params[0].Type, params[0].Name)
		}
	})
}

func TestMethodPositionsAndCode(t *testing.T) {
	models := mustExtract(t, `public class T {
    public int value() {
        return 42;
    }
}
`)

	m := models[0].Methods[0]
	if m.StartLine != 2 {
		t.Errorf("Expected start line 2, got %d", m.StartLine)
	}
	if m.EndLine != 4 {
		t.Errorf("Expected end line 4, got %d", m.EndLine)
	}
	if m.Code == "" {
		t.Error("Expected method code to be captured")
	}
}

func TestClassAnnotations(t *testing.T) {
	models := mustExtract(t, `@Service
@RequestMapping("/api")
public class Api {}
`)

	anns := models[0].Annotations
	if len(anns) != 2 {
		t.Fatalf("Expected 2 annotations, got %d", len(anns))
	}
	if anns[0].Name != "Service" || anns[0].Raw != "@Service" {
		t.Errorf("Unexpected annotation: %+v", anns[0])
	}
	if anns[1].Name != "RequestMapping" || anns[1].Raw != `@RequestMapping("/api")` {
		t.Errorf("Unexpected annotation: %+v", anns[1])
	}
}

func TestEnumMembers(t *testing.T) {
	models := mustExtract(t, `public enum Status {
    OPEN, CLOSED;

    private String label;

    public String label() {
        return label;
    }
}
`)

	m := models[0]
	if len(m.Fields) != 1 || m.Fields[0].Name != "label" {
		t.Errorf("Expected enum field label, got %v", m.Fields)
	}
	if len(m.Methods) != 1 || m.Methods[0].Name != "label" {
		t.Errorf("Expected enum method label, got %d methods", len(m.Methods))
	}
}

func TestSyntaxErrorRejected(t *testing.T) {
	_, err := TypeModelsFromSource(context.Background(), []byte(`public class Broken {`), "Broken.java")
	if !errors.Is(err, parser.ErrSyntax) {
		t.Fatalf("Expected ErrSyntax, got %v", err)
	}
}
