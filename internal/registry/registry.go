// Package registry stores named dependency configurations for one injector.
package registry

import (
	"fmt"
	"sort"
)

// Strategy selects how a registered name is turned into a value.
type Strategy string

const (
	Singleton Strategy = "singleton"
	Factory   Strategy = "factory"
	Value     Strategy = "value"
	Constant  Strategy = "constant"
	Alias     Strategy = "alias"
	Provider  Strategy = "provider"
)

func (s Strategy) Valid() bool {
	switch s {
	case Singleton, Factory, Value, Constant, Alias, Provider:
		return true
	}
	return false
}

// CtorFunc builds an instance from the resolved dependency values, in the
// order declared by Config.Requires, followed by Config.Params.
type CtorFunc func(args ...any) (any, error)

// ProviderFunc produces a fresh config at registration time.
type ProviderFunc func() Config

// Config is one registered dependency. Exactly one of Ctor, Value, Target
// or Provider is meaningful, selected by Strategy.
type Config struct {
	Name     string
	Strategy Strategy
	Ctor     CtorFunc
	Requires []string
	Value    any
	Target   string
	Provider ProviderFunc
	Owner    string
	Params   []any
}

// Edges returns the statically known dependency edges of the config.
func (c Config) Edges() []string {
	switch c.Strategy {
	case Singleton, Factory:
		edges := make([]string, len(c.Requires))
		copy(edges, c.Requires)
		return edges
	case Alias:
		return []string{c.Target}
	}
	return nil
}

type UnknownStrategyError struct {
	Name     string
	Strategy Strategy
}

func (e *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q for %s", string(e.Strategy), e.Name)
}

type ConstantRedefinedError struct {
	Name string
}

func (e *ConstantRedefinedError) Error() string {
	return fmt.Sprintf("constant already defined: %s", e.Name)
}

type NestedProviderError struct {
	Name string
}

func (e *NestedProviderError) Error() string {
	return fmt.Sprintf("provider for %s produced another provider", e.Name)
}

type InvalidConfigError struct {
	Name   string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config for %s: %s", e.Name, e.Reason)
}

// Registry maps names to configs for a single owning module. Access is not
// synchronized; callers serialize externally.
type Registry struct {
	owner   string
	entries map[string]Config
}

func New(owner string) *Registry {
	return &Registry{
		owner:   owner,
		entries: make(map[string]Config),
	}
}

func (r *Registry) Owner() string {
	return r.owner
}

// Register validates and stores one config. Provider configs are consumed
// here: the producer runs once and the config it returns is stored in its
// place. Constants are write-once; every other strategy overwrites silently.
func (r *Registry) Register(cfg Config) error {
	if cfg.Name == "" {
		return &InvalidConfigError{Name: "(unnamed)", Reason: "empty name"}
	}
	if !cfg.Strategy.Valid() {
		return &UnknownStrategyError{Name: cfg.Name, Strategy: cfg.Strategy}
	}

	if cfg.Strategy == Provider {
		if cfg.Provider == nil {
			return &InvalidConfigError{Name: cfg.Name, Reason: "nil provider func"}
		}
		produced := cfg.Provider()
		if produced.Strategy == Provider {
			return &NestedProviderError{Name: cfg.Name}
		}
		return r.Register(produced)
	}

	switch cfg.Strategy {
	case Singleton, Factory:
		if cfg.Ctor == nil {
			return &InvalidConfigError{Name: cfg.Name, Reason: "nil constructor"}
		}
	case Alias:
		if cfg.Target == "" {
			return &InvalidConfigError{Name: cfg.Name, Reason: "empty alias target"}
		}
	}

	if err := r.checkConstant(cfg); err != nil {
		return err
	}

	if cfg.Owner == "" {
		cfg.Owner = r.owner
	}
	r.entries[cfg.Name] = cfg
	return nil
}

// AddImports merges exported configs from another module. Owner tags are
// preserved so cycle reports can attribute the declaring module. Collision
// rules match Register: constants stay write-once, the rest overwrite.
func (r *Registry) AddImports(exported map[string]Config) error {
	names := make([]string, 0, len(exported))
	for name := range exported {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg := exported[name]
		if err := r.checkConstant(cfg); err != nil {
			return err
		}
		r.entries[name] = cfg
	}
	return nil
}

func (r *Registry) checkConstant(cfg Config) error {
	if cfg.Strategy != Constant {
		return nil
	}
	if existing, ok := r.entries[cfg.Name]; ok && existing.Strategy == Constant {
		return &ConstantRedefinedError{Name: cfg.Name}
	}
	return nil
}

// Replace overwrites unconditionally, constants included. Test fixtures and
// debug tooling only.
func (r *Registry) Replace(cfg Config) error {
	delete(r.entries, cfg.Name)
	return r.Register(cfg)
}

func (r *Registry) Get(name string) (Config, bool) {
	cfg, ok := r.entries[name]
	return cfg, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for name := range r.entries {
		keys = append(keys, name)
	}
	return keys
}

func (r *Registry) Size() int {
	return len(r.entries)
}

// All returns a copy of the entry map, used for export computation.
func (r *Registry) All() map[string]Config {
	out := make(map[string]Config, len(r.entries))
	for name, cfg := range r.entries {
		out[name] = cfg
	}
	return out
}
