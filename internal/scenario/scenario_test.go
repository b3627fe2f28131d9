package scenario

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlScenario = `name: friends
description: two members connect
steps:
  - run: add-user alice likes chess
    expect: alice
  - run: connect alice bob
  - run: remove-user
    expect_error: true
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	sc, err := Load(writeFile(t, "s.yaml", yamlScenario))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if sc.Name != "friends" {
		t.Errorf("expected name 'friends', got %q", sc.Name)
	}
	if len(sc.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[0].Expect != "alice" {
		t.Errorf("expected expectation 'alice', got %q", sc.Steps[0].Expect)
	}
	if !sc.Steps[2].ExpectError {
		t.Error("expected third step to expect an error")
	}
}

func TestLoad_JSON(t *testing.T) {
	content := `{"name":"j","steps":[{"run":"users"}]}`
	sc, err := Load(writeFile(t, "s.json", content))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sc.Steps) != 1 || sc.Steps[0].Run != "users" {
		t.Errorf("unexpected steps: %+v", sc.Steps)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
	t.Run("unsupported extension", func(t *testing.T) {
		if _, err := Load(writeFile(t, "s.txt", "steps: []")); err == nil {
			t.Error("expected error for .txt")
		}
	})
	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := Load(writeFile(t, "s.yml", "steps: [")); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}

func TestValidate(t *testing.T) {
	known := func(name string) bool { return name == "users" || name == "feed" }

	t.Run("valid", func(t *testing.T) {
		res := Validate(Scenario{Name: "ok", Steps: []Step{{Run: "users"}}}, known)
		if !res.Valid {
			t.Errorf("expected valid, got errors %v", res.Errors)
		}
		if len(res.Warnings) != 0 {
			t.Errorf("expected no warnings, got %v", res.Warnings)
		}
	})

	t.Run("no steps", func(t *testing.T) {
		res := Validate(Scenario{Name: "empty"}, known)
		if res.Valid {
			t.Error("expected invalid scenario without steps")
		}
	})

	t.Run("blank and unknown commands", func(t *testing.T) {
		res := Validate(Scenario{Steps: []Step{{Run: "  "}, {Run: "dance now"}}}, known)
		if res.Valid {
			t.Error("expected invalid scenario")
		}
		if len(res.Errors) != 2 {
			t.Errorf("expected 2 errors, got %v", res.Errors)
		}
		if len(res.Warnings) != 1 {
			t.Errorf("expected missing-name warning, got %v", res.Warnings)
		}
	})

	t.Run("nil lookup skips command check", func(t *testing.T) {
		res := Validate(Scenario{Name: "x", Steps: []Step{{Run: "dance"}}}, nil)
		if !res.Valid {
			t.Errorf("expected valid, got %v", res.Errors)
		}
	})

	t.Run("expect with expect_error is allowed", func(t *testing.T) {
		res := Validate(Scenario{Name: "x", Steps: []Step{{Run: "feed", Expect: "a", ExpectError: true}}}, known)
		if !res.Valid || len(res.Warnings) != 0 {
			t.Errorf("expected valid without warnings, got %v %v", res.Errors, res.Warnings)
		}
	})
}
