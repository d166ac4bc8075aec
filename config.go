package loom

import (
	"github.com/danpasecinic/loom/internal/registry"
)

// Strategy selects how a registered name produces a value at resolve time.
type Strategy string

const (
	// Singleton constructs once on first resolve and caches the instance.
	Singleton Strategy = "singleton"
	// Factory constructs a fresh instance on every resolve.
	Factory Strategy = "factory"
	// Value returns the stored value as-is.
	Value Strategy = "value"
	// Constant behaves like Value but is write-once at registration.
	Constant Strategy = "constant"
	// Alias transparently resolves another registered name.
	Alias Strategy = "alias"
	// Provider runs at registration time and is replaced by the config it
	// produces. It never participates in resolution.
	Provider Strategy = "provider"
)

// Constructor is a construction target together with the names it needs.
// Requires is resolved in order and passed positionally to New, followed by
// the config's Params.
type Constructor struct {
	Requires []string
	New      func(args ...any) (any, error)
}

// Config describes one named dependency. The type of Value depends on
// Strategy: a Constructor for Singleton and Factory, any value for Value
// and Constant, a target name string for Alias, and a func() Config for
// Provider.
//
// BelongsTo is the module that declared the config. It is filled in at
// registration when empty and preserved across imports, so cycle reports
// can always name the declaring module.
type Config struct {
	Name      string
	Strategy  Strategy
	Value     any
	BelongsTo string
	Params    []any
}

// SingletonOf declares a cached construction target.
func SingletonOf(name string, ctor Constructor) Config {
	return Config{Name: name, Strategy: Singleton, Value: ctor}
}

// FactoryOf declares a construction target instantiated on every resolve.
func FactoryOf(name string, ctor Constructor) Config {
	return Config{Name: name, Strategy: Factory, Value: ctor}
}

// ValueOf declares a plain stored value.
func ValueOf(name string, value any) Config {
	return Config{Name: name, Strategy: Value, Value: value}
}

// ConstantOf declares a write-once stored value.
func ConstantOf(name string, value any) Config {
	return Config{Name: name, Strategy: Constant, Value: value}
}

// AliasOf declares a transparent indirection to target.
func AliasOf(name, target string) Config {
	return Config{Name: name, Strategy: Alias, Value: target}
}

// ProviderOf declares a deferred registration: produce runs once inside
// Register and the config it returns is registered in its place.
func ProviderOf(name string, produce func() Config) Config {
	return Config{Name: name, Strategy: Provider, Value: produce}
}

func toInternal(cfg Config) (registry.Config, error) {
	rc := registry.Config{
		Name:     cfg.Name,
		Strategy: registry.Strategy(cfg.Strategy),
		Owner:    cfg.BelongsTo,
		Params:   cfg.Params,
	}

	switch cfg.Strategy {
	case Singleton, Factory:
		ctor, ok := cfg.Value.(Constructor)
		if !ok {
			return registry.Config{}, errInvalidConfig(cfg.Name, "value must be a loom.Constructor")
		}
		rc.Ctor = registry.CtorFunc(ctor.New)
		rc.Requires = ctor.Requires
	case Value, Constant:
		rc.Value = cfg.Value
	case Alias:
		target, ok := cfg.Value.(string)
		if !ok {
			return registry.Config{}, errInvalidConfig(cfg.Name, "alias value must be a target name string")
		}
		rc.Target = target
	}

	return rc, nil
}

func fromInternal(rc registry.Config) Config {
	cfg := Config{
		Name:      rc.Name,
		Strategy:  Strategy(rc.Strategy),
		BelongsTo: rc.Owner,
		Params:    rc.Params,
	}

	switch rc.Strategy {
	case registry.Singleton, registry.Factory:
		cfg.Value = Constructor{Requires: rc.Requires, New: rc.Ctor}
	case registry.Value, registry.Constant:
		cfg.Value = rc.Value
	case registry.Alias:
		cfg.Value = rc.Target
	}

	return cfg
}
