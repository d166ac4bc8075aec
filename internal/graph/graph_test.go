package graph

import (
	"sort"
	"testing"
)

func TestGraph_AddAndQuery(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("server", []string{"config", "db"})
	g.AddNode("config", nil)
	g.AddNode("db", []string{"config"})

	if !g.HasNode("server") {
		t.Error("expected server node")
	}

	deps := g.Dependencies("server")
	if len(deps) != 2 || deps[0] != "config" || deps[1] != "db" {
		t.Errorf("unexpected dependencies: %v", deps)
	}

	dependents := g.Dependents("config")
	sort.Strings(dependents)
	if len(dependents) != 2 || dependents[0] != "db" || dependents[1] != "server" {
		t.Errorf("unexpected dependents: %v", dependents)
	}
}

func TestGraph_RemoveNode(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a", []string{"b"})
	g.AddNode("b", nil)
	g.RemoveNode("a")

	if g.HasNode("a") {
		t.Error("expected a removed")
	}
	if len(g.Dependents("b")) != 0 {
		t.Error("expected no dependents after removal")
	}
}

func TestGraph_Missing(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("server", []string{"config", "db"})
	g.AddNode("config", nil)

	missing := g.Missing()
	if len(missing) != 1 || missing[0] != "db" {
		t.Errorf("unexpected missing: %v", missing)
	}
}

func TestGraph_NoCycle(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a", []string{"b"})
	g.AddNode("b", []string{"c"})
	g.AddNode("c", nil)

	if g.HasCycle() {
		t.Error("expected no cycle")
	}
}

func TestGraph_SelfCycle(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a", []string{"a"})

	cycles := g.Cycles()
	if len(cycles) != 1 || len(cycles[0]) != 1 || cycles[0][0] != "a" {
		t.Errorf("unexpected cycles: %v", cycles)
	}
}

func TestGraph_ChainedCycle(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a", []string{"b"})
	g.AddNode("b", []string{"c"})
	g.AddNode("c", []string{"a"})
	g.AddNode("standalone", nil)

	cycles := g.Cycles()
	if len(cycles) != 1 {
		t.Fatalf("expected one cycle, got %v", cycles)
	}

	members := append([]string(nil), cycles[0]...)
	sort.Strings(members)
	if len(members) != 3 || members[0] != "a" || members[1] != "b" || members[2] != "c" {
		t.Errorf("unexpected cycle members: %v", members)
	}
}

func TestGraph_EdgeToMissingNodeIsNotCycle(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("a", []string{"ghost"})

	if g.HasCycle() {
		t.Error("dangling edge must not count as a cycle")
	}
}
