// Package wiretest provides test helpers for wiring loom injectors in
// fixtures.
package wiretest

import (
	"errors"

	"github.com/danpasecinic/loom"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
}

// TestInjector wraps an Injector with fail-fast helpers.
type TestInjector struct {
	*loom.Injector
	tb TB
}

func New(tb TB, module string, opts ...loom.Option) *TestInjector {
	tb.Helper()

	return &TestInjector{
		Injector: loom.New(module, opts...),
		tb:       tb,
	}
}

func (ti *TestInjector) MustRegister(configs ...loom.Config) {
	ti.tb.Helper()

	if err := ti.Register(configs...); err != nil {
		ti.tb.Fatalf("failed to register: %v", err)
	}
}

func (ti *TestInjector) MustAddImports(exported map[string]loom.Config) {
	ti.tb.Helper()

	if err := ti.AddImports(exported); err != nil {
		ti.tb.Fatalf("failed to add imports: %v", err)
	}
}

func (ti *TestInjector) MustResolve(name string) any {
	ti.tb.Helper()

	v, err := ti.Resolve(name)
	if err != nil {
		ti.tb.Fatalf("failed to resolve %s: %v", name, err)
	}
	return v
}

func (ti *TestInjector) RequireValidate() {
	ti.tb.Helper()

	if err := ti.Validate(); err != nil {
		ti.tb.Fatalf("injector validation failed: %v", err)
	}
}

func (ti *TestInjector) AssertHas(name string) {
	ti.tb.Helper()

	if !ti.Has(name) {
		ti.tb.Fatalf("expected injector to have %s", name)
	}
}

func (ti *TestInjector) AssertNotHas(name string) {
	ti.tb.Helper()

	if ti.Has(name) {
		ti.tb.Fatalf("expected injector to not have %s", name)
	}
}

// AssertCycle resolves name and fails unless it hits a cycle with exactly
// the given owner-qualified path message.
func (ti *TestInjector) AssertCycle(name, wantMessage string) {
	ti.tb.Helper()

	_, err := ti.Resolve(name)
	if err == nil {
		ti.tb.Fatalf("expected cycle resolving %s, got none", name)
	}
	if !loom.IsCircularDependency(err) {
		ti.tb.Fatalf("expected cycle resolving %s, got: %v", name, err)
	}

	var loomErr *loom.Error
	if !errors.As(err, &loomErr) || loomErr.Message != wantMessage {
		ti.tb.Fatalf("cycle path mismatch for %s: want %q, got %v", name, wantMessage, err)
	}
}

// Replace overwrites a registration unconditionally, constants included.
// Fixture substitution only; production code goes through Register.
func Replace(ti *TestInjector, cfg loom.Config) {
	ti.tb.Helper()

	if err := loom.ReplaceConfig(ti.Injector, cfg); err != nil {
		ti.tb.Fatalf("failed to replace %s: %v", cfg.Name, err)
	}
}

// ReplaceValue overwrites name with a plain value config.
func ReplaceValue(ti *TestInjector, name string, value any) {
	ti.tb.Helper()

	Replace(ti, loom.ValueOf(name, value))
}
