package loom_test

import (
	"strings"
	"testing"

	"github.com/danpasecinic/loom"
)

func debugInjector(t *testing.T) *loom.Injector {
	t.Helper()

	inj := loom.New("app")
	err := inj.Register(
		loom.ValueOf("config", 1),
		loom.SingletonOf("db", loom.Constructor{
			Requires: []string{"config"},
			New:      func(args ...any) (any, error) { return "db", nil },
		}),
		loom.AliasOf("database", "db"),
	)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return inj
}

func TestGraph_Structure(t *testing.T) {
	t.Parallel()

	inj := debugInjector(t)
	info := inj.Graph()

	if len(info.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(info.Entries))
	}

	byName := make(map[string]loom.EntryInfo, len(info.Entries))
	for _, entry := range info.Entries {
		byName[entry.Name] = entry
	}

	db := byName["db"]
	if db.Strategy != loom.Singleton || db.Owner != "app" {
		t.Errorf("unexpected db entry: %+v", db)
	}
	if len(db.Requires) != 1 || db.Requires[0] != "config" {
		t.Errorf("unexpected db requires: %v", db.Requires)
	}
	if len(db.Dependents) != 1 || db.Dependents[0] != "database" {
		t.Errorf("unexpected db dependents: %v", db.Dependents)
	}
	if db.Cached {
		t.Error("db must not be cached before resolve")
	}

	inj.MustResolve("db")
	if !findEntry(inj, "db").Cached {
		t.Error("db must show cached after resolve")
	}
}

func findEntry(inj *loom.Injector, name string) loom.EntryInfo {
	for _, entry := range inj.Graph().Entries {
		if entry.Name == name {
			return entry
		}
	}
	return loom.EntryInfo{}
}

func TestSprintGraph(t *testing.T) {
	t.Parallel()

	inj := debugInjector(t)
	out := inj.SprintGraph()

	if !strings.Contains(out, "db [singleton, app]") {
		t.Errorf("expected strategy and owner in output:\n%s", out)
	}
	if !strings.Contains(out, "← config") {
		t.Errorf("expected dependency arrow in output:\n%s", out)
	}
}

func TestSprintGraph_Empty(t *testing.T) {
	t.Parallel()

	inj := loom.New("app")
	if !strings.Contains(inj.SprintGraph(), "(empty injector)") {
		t.Error("expected empty marker")
	}
}

func TestSprintGraphDOT(t *testing.T) {
	t.Parallel()

	inj := debugInjector(t)
	out := inj.SprintGraphDOT()

	if !strings.HasPrefix(out, "digraph dependencies {") {
		t.Errorf("expected DOT header:\n%s", out)
	}
	if !strings.Contains(out, `"db" -> "config";`) {
		t.Errorf("expected edge in DOT output:\n%s", out)
	}
	if !strings.Contains(out, `"database" -> "db";`) {
		t.Errorf("expected alias edge in DOT output:\n%s", out)
	}
}
