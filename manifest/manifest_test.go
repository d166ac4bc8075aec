package manifest_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danpasecinic/loom"
	"github.com/danpasecinic/loom/manifest"
)

const sample = `
modules:
  - name: storage
    exports: ["*"]
    dependencies:
      - name: dsn
        strategy: constant
        value: postgres://db
      - name: db
        strategy: singleton
        constructor: open-db
  - name: app
    imports: [storage]
    exports: [handler]
    dependencies:
      - name: primary
        strategy: alias
        target: db
      - name: handler
        strategy: singleton
        constructor: new-handler
`

func sampleCtors() map[string]loom.Constructor {
	return map[string]loom.Constructor{
		"open-db": {
			Requires: []string{"dsn"},
			New: func(args ...any) (any, error) {
				return "conn:" + args[0].(string), nil
			},
		},
		"new-handler": {
			Requires: []string{"primary"},
			New: func(args ...any) (any, error) {
				return "handler(" + args[0].(string) + ")", nil
			},
		},
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	f, err := manifest.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(f.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(f.Modules))
	}
	if f.Modules[0].Name != "storage" || f.Modules[1].Name != "app" {
		t.Errorf("unexpected module names: %+v", f.Modules)
	}
	if f.Modules[1].Imports[0] != "storage" {
		t.Errorf("unexpected imports: %v", f.Modules[1].Imports)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Parse([]byte("  \n ")); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestParse_DefaultsToValueStrategy(t *testing.T) {
	t.Parallel()

	f, err := manifest.Parse([]byte(`
modules:
  - name: app
    dependencies:
      - name: port
        value: 8080
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Modules[0].Dependencies[0].Strategy != string(loom.Value) {
		t.Errorf("expected value strategy, got %s", f.Modules[0].Dependencies[0].Strategy)
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name: "unknown strategy",
			payload: `
modules:
  - name: app
    dependencies:
      - name: x
        strategy: lazy
`,
			want: "unknown strategy",
		},
		{
			name: "provider in yaml",
			payload: `
modules:
  - name: app
    dependencies:
      - name: x
        strategy: provider
`,
			want: "providers cannot be declared in YAML",
		},
		{
			name: "alias without target",
			payload: `
modules:
  - name: app
    dependencies:
      - name: x
        strategy: alias
`,
			want: "no target",
		},
		{
			name: "singleton without constructor",
			payload: `
modules:
  - name: app
    dependencies:
      - name: x
        strategy: singleton
`,
			want: "names no constructor slot",
		},
		{
			name: "import before definition",
			payload: `
modules:
  - name: app
    imports: [storage]
  - name: storage
`,
			want: "not defined before it",
		},
		{
			name: "duplicate module",
			payload: `
modules:
  - name: app
  - name: app
`,
			want: "duplicate module",
		},
		{
			name: "duplicate dependency",
			payload: `
modules:
  - name: app
    dependencies:
      - name: x
        value: 1
      - name: x
        value: 2
`,
			want: "declares x twice",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := manifest.Parse([]byte(tc.payload))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected %q in error, got: %v", tc.want, err)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	f, err := manifest.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	modules, err := f.Build(sampleCtors())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	app, ok := modules["app"]
	if !ok {
		t.Fatal("expected app module")
	}

	v, err := app.Resolve("handler")
	if err != nil {
		t.Fatalf("failed to resolve handler: %v", err)
	}
	if v != "handler(conn:postgres://db)" {
		t.Errorf("unexpected handler: %v", v)
	}

	// Explicit allow-list: only the locally-declared handler exports.
	exports := app.Exports()
	if len(exports) != 1 {
		t.Errorf("expected only handler exported, got %v", exports)
	}
}

func TestBuild_MissingConstructorSlot(t *testing.T) {
	t.Parallel()

	f, err := manifest.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = f.Build(map[string]loom.Constructor{})
	if err == nil || !strings.Contains(err.Error(), "no constructor bound") {
		t.Fatalf("expected missing slot error, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "wiring.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	f, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(f.Modules) != 2 {
		t.Errorf("expected 2 modules, got %d", len(f.Modules))
	}
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	if _, err := manifest.Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("expected directory error, got %v", err)
	}
}
