// Package graph holds the static view of a registry's dependency edges,
// used for eager validation and debug output. The lazy, resolution-time
// cycle detection lives in the resolve package.
package graph

import "sort"

// Graph is a directed dependency graph keyed by config name. Not
// synchronized; the owning injector is single-threaded by contract.
type Graph struct {
	nodes map[string]struct{}
	edges map[string][]string
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string][]string),
	}
}

func (g *Graph) AddNode(id string, dependencies []string) {
	g.nodes[id] = struct{}{}
	deps := make([]string, len(dependencies))
	copy(deps, dependencies)
	g.edges[id] = deps
}

func (g *Graph) RemoveNode(id string) {
	delete(g.nodes, id)
	delete(g.edges, id)
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *Graph) Dependencies(id string) []string {
	deps := make([]string, len(g.edges[id]))
	copy(deps, g.edges[id])
	return deps
}

func (g *Graph) Dependents(id string) []string {
	var dependents []string
	for node, deps := range g.edges {
		for _, dep := range deps {
			if dep == id {
				dependents = append(dependents, node)
				break
			}
		}
	}
	sort.Strings(dependents)
	return dependents
}

// Missing returns edges pointing at names with no node, sorted.
func (g *Graph) Missing() []string {
	seen := make(map[string]struct{})
	for _, deps := range g.edges {
		for _, dep := range deps {
			if _, ok := g.nodes[dep]; !ok {
				seen[dep] = struct{}{}
			}
		}
	}

	missing := make([]string, 0, len(seen))
	for dep := range seen {
		missing = append(missing, dep)
	}
	sort.Strings(missing)
	return missing
}
