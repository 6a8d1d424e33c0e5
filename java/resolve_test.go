package java

import (
	"testing"
)

func findMethod(t *testing.T, model *TypeModel, name string) *MethodModel {
	t.Helper()
	for _, m := range model.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("Expected to find method %s", name)
	return nil
}

func findCall(t *testing.T, method *MethodModel, name string) CallEdge {
	t.Helper()
	for _, c := range method.Calls {
		if c.Method == name {
			return c
		}
	}
	t.Fatalf("Expected to find call %s in %s", name, method.Name)
	return CallEdge{}
}

func TestCallResolution(t *testing.T) {
	models := mustExtract(t, `package com.example.web;

import com.example.repo.UserRepository;
import com.example.model.User;
import org.apache.commons.lang3.StringUtils;
import static java.util.Collections.emptyList;

public class UserService {
    private UserRepository repo;

    public void viaField() {
        repo.save(null);
    }

    public void viaImport() {
        StringUtils.isEmpty("");
    }

    public void viaParam(User user) {
        user.getName();
    }

    public void viaThis() {
        this.helper();
    }

    public void viaOwnMethod() {
        helper();
    }

    public void viaStaticImport() {
        emptyList();
    }

    public Object viaFactory() {
        return ok(null);
    }

    public void unresolved() {
        mystery.poke();
    }

    public void helper() {
    }
}
`)

	model := models[0]

	t.Run("field type wins for scoped calls", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaField"), "save")
		if call.Scope != "repo" {
			t.Errorf("Expected scope repo, got %s", call.Scope)
		}
		if call.FromClass != "UserRepository" {
			t.Errorf("Expected FromClass UserRepository, got %s", call.FromClass)
		}
		if call.FromPackage != "com.example.repo" {
			t.Errorf("Expected FromPackage com.example.repo, got %s", call.FromPackage)
		}
	})

	t.Run("import resolves a scoped static call", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaImport"), "isEmpty")
		if call.FromClass != "StringUtils" {
			t.Errorf("Expected FromClass StringUtils, got %s", call.FromClass)
		}
		if call.FromPackage != "org.apache.commons.lang3" {
			t.Errorf("Expected FromPackage org.apache.commons.lang3, got %s", call.FromPackage)
		}
	})

	t.Run("parameter type resolves the receiver", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaParam"), "getName")
		if call.FromClass != "User" {
			t.Errorf("Expected FromClass User, got %s", call.FromClass)
		}
		if call.FromPackage != "com.example.model" {
			t.Errorf("Expected FromPackage com.example.model, got %s", call.FromPackage)
		}
	})

	t.Run("this receiver resolves to the enclosing type", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaThis"), "helper")
		if call.Scope != "this" {
			t.Errorf("Expected scope this, got %s", call.Scope)
		}
		if call.FromClass != "UserService" || call.FromPackage != "com.example.web" {
			t.Errorf("Expected UserService/com.example.web, got %s/%s", call.FromClass, call.FromPackage)
		}
	})

	t.Run("unscoped call to an own method", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaOwnMethod"), "helper")
		if call.Scope != "this" {
			t.Errorf("Expected default scope this, got %s", call.Scope)
		}
		if call.FromClass != "UserService" || call.FromPackage != "com.example.web" {
			t.Errorf("Expected UserService/com.example.web, got %s/%s", call.FromClass, call.FromPackage)
		}
	})

	t.Run("static import suffix resolves the owner", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaStaticImport"), "emptyList")
		if call.FromClass != "Collections" {
			t.Errorf("Expected FromClass Collections, got %s", call.FromClass)
		}
		if call.FromPackage != "java.util" {
			t.Errorf("Expected FromPackage java.util, got %s", call.FromPackage)
		}
	})

	t.Run("well-known response factory", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "viaFactory"), "ok")
		if call.FromClass != "ResponseEntity" {
			t.Errorf("Expected FromClass ResponseEntity, got %s", call.FromClass)
		}
		if call.FromPackage != "" {
			t.Errorf("Expected empty FromPackage, got %s", call.FromPackage)
		}
	})

	t.Run("unresolvable receiver degrades to Unknown", func(t *testing.T) {
		call := findCall(t, findMethod(t, model, "unresolved"), "poke")
		if call.FromClass != UnknownClass {
			t.Errorf("Expected FromClass %s, got %s", UnknownClass, call.FromClass)
		}
		if call.FromPackage != "" {
			t.Errorf("Expected empty FromPackage, got %s", call.FromPackage)
		}
	})
}

func TestCallEdgeDetails(t *testing.T) {
	models := mustExtract(t, `public class T {
    public void run() {
        helper(1, 2);
    }
    public void helper(int a, int b) {}
}
`)

	call := findCall(t, findMethod(t, models[0], "run"), "helper")
	if call.Line != 3 {
		t.Errorf("Expected line 3, got %d", call.Line)
	}
	if call.Raw != "helper(1, 2)" {
		t.Errorf("Expected raw call text, got %q", call.Raw)
	}
}

func TestLocalTypeCallsNotAttributed(t *testing.T) {
	models := mustExtract(t, `public class Outer {
    public void run() {
        class Local {
            void inner() {
                secret();
            }
        }
    }
}
`)

	run := findMethod(t, models[0], "run")
	for _, c := range run.Calls {
		if c.Method == "secret" {
			t.Errorf("Call inside a local type must not be attributed to the enclosing method")
		}
	}
}
