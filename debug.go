package loom

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type GraphInfo struct {
	Entries []EntryInfo
}

type EntryInfo struct {
	Name       string
	Strategy   Strategy
	Owner      string
	Requires   []string
	Dependents []string
	Cached     bool
}

func (i *Injector) Graph() GraphInfo {
	keys := i.Keys()
	sort.Strings(keys)

	g := i.buildGraph()
	entries := make([]EntryInfo, 0, len(keys))

	for _, name := range keys {
		cfg, _ := i.reg.Get(name)

		entries = append(
			entries, EntryInfo{
				Name:       name,
				Strategy:   Strategy(cfg.Strategy),
				Owner:      cfg.Owner,
				Requires:   g.Dependencies(name),
				Dependents: g.Dependents(name),
				Cached:     i.engine.Cached(name),
			},
		)
	}

	return GraphInfo{Entries: entries}
}

func (i *Injector) PrintGraph() {
	i.FprintGraph(os.Stdout)
}

func (i *Injector) FprintGraph(w io.Writer) {
	info := i.Graph()

	if len(info.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "(empty injector)")
		return
	}

	for _, entry := range info.Entries {
		status := "○"
		if entry.Cached {
			status = "●"
		}

		label := fmt.Sprintf("%s [%s, %s]", entry.Name, entry.Strategy, entry.Owner)
		if len(entry.Requires) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s\n", status, label)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s ← %s\n", status, label, strings.Join(entry.Requires, ", "))
		}
	}
}

func (i *Injector) SprintGraph() string {
	var sb strings.Builder
	i.FprintGraph(&sb)
	return sb.String()
}

func (i *Injector) PrintGraphDOT() {
	i.FprintGraphDOT(os.Stdout)
}

func (i *Injector) FprintGraphDOT(w io.Writer) {
	info := i.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, entry := range info.Entries {
		label := fmt.Sprintf("%s\\n%s @ %s", entry.Name, entry.Strategy, entry.Owner)
		style := ""
		if entry.Cached {
			style = ", style=filled, fillcolor=lightblue"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=\"%s\"%s];\n", entry.Name, label, style)
	}

	_, _ = fmt.Fprintln(w)

	for _, entry := range info.Entries {
		for _, dep := range entry.Requires {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", entry.Name, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (i *Injector) SprintGraphDOT() string {
	var sb strings.Builder
	i.FprintGraphDOT(&sb)
	return sb.String()
}
