package loom

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danpasecinic/loom/internal/graph"
	"github.com/danpasecinic/loom/internal/registry"
	"github.com/danpasecinic/loom/internal/resolve"
)

// Injector owns the registry and resolution engine for one module.
//
// An Injector is single-threaded by contract: Register, AddImports and
// Resolve run synchronously with no internal locking. Callers sharing one
// Injector across goroutines must serialize externally.
type Injector struct {
	module string
	reg    *registry.Registry
	engine *resolve.Engine
	config *injectorConfig
}

type injectorConfig struct {
	logger     *slog.Logger
	onResolve  []ResolveHook
	onRegister []RegisterHook
}

// New creates an empty Injector owned by the named module.
func New(module string, opts ...Option) *Injector {
	cfg := &injectorConfig{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	reg := registry.New(module)
	return &Injector{
		module: module,
		reg:    reg,
		engine: resolve.New(reg),
		config: cfg,
	}
}

// Module returns the owning module name.
func (i *Injector) Module() string {
	return i.module
}

// Register validates and stores the given configs in order. The first
// failure stops the call; configs processed before it stay registered.
func (i *Injector) Register(configs ...Config) error {
	for _, cfg := range configs {
		if err := i.register(cfg); err != nil {
			return err
		}
	}
	return nil
}

func (i *Injector) register(cfg Config) error {
	if cfg.Strategy == Provider {
		produce, ok := cfg.Value.(func() Config)
		if !ok {
			return errInvalidConfig(cfg.Name, "provider value must be a func() loom.Config")
		}
		produced := produce()
		if produced.Strategy == Provider {
			return errNestedProvider(cfg.Name)
		}
		return i.register(produced)
	}

	rc, err := toInternal(cfg)
	if err != nil {
		return err
	}

	if err := i.reg.Register(rc); err != nil {
		return wrapRegisterErr(err)
	}

	i.config.logger.Debug(
		"registered dependency",
		"name", cfg.Name,
		"strategy", string(cfg.Strategy),
		"module", i.module,
	)

	for _, hook := range i.config.onRegister {
		hook(cfg.Name, cfg.Strategy)
	}

	return nil
}

// AddImports merges exported configs from another module's Injector. The
// BelongsTo tag of each config is preserved so ownership survives the
// import boundary. Collision rules match Register.
func (i *Injector) AddImports(exported map[string]Config) error {
	internal := make(map[string]registry.Config, len(exported))
	for name, cfg := range exported {
		rc, err := toInternal(cfg)
		if err != nil {
			return err
		}
		internal[name] = rc
	}

	if err := i.reg.AddImports(internal); err != nil {
		return wrapRegisterErr(err)
	}
	return nil
}

func (i *Injector) addInternalImports(exported map[string]registry.Config) error {
	if err := i.reg.AddImports(exported); err != nil {
		return wrapRegisterErr(err)
	}
	return nil
}

// Resolve produces the value for name according to its strategy, resolving
// declared dependencies depth-first. A loop on the active resolution path
// fails with a CIRCULAR_DEPENDENCY error carrying the owner-qualified
// minimal cycle path.
func (i *Injector) Resolve(name string) (any, error) {
	start := time.Now()

	instance, err := i.engine.Resolve(name)
	if err != nil {
		err = wrapResolveErr(name, err)
	}

	for _, hook := range i.config.onResolve {
		hook(name, time.Since(start), err)
	}

	if err != nil {
		i.config.logger.Debug("resolution failed", "name", name, "error", err)
		return nil, err
	}
	return instance, nil
}

// MustResolve panics on resolution failure.
func (i *Injector) MustResolve(name string) any {
	v, err := i.Resolve(name)
	if err != nil {
		panic(err)
	}
	return v
}

// ConfigOf returns the stored config for name. Introspection only; the
// resolution path never goes through it.
func (i *Injector) ConfigOf(name string) (Config, bool) {
	rc, ok := i.reg.Get(name)
	if !ok {
		return Config{}, false
	}
	return fromInternal(rc), true
}

func (i *Injector) Has(name string) bool {
	return i.reg.Has(name)
}

func (i *Injector) Keys() []string {
	return i.reg.Keys()
}

func (i *Injector) Size() int {
	return i.reg.Size()
}

// Validate eagerly checks the whole registered graph: every statically
// declared dependency must exist and no cycles may be present. Resolve
// itself stays lazy; Validate is for callers wanting registration-time
// strictness.
func (i *Injector) Validate() error {
	g := i.buildGraph()

	if missing := g.Missing(); len(missing) > 0 {
		return errValidationFailed(fmt.Errorf("missing dependencies: %v", missing))
	}

	if cycles := g.Cycles(); len(cycles) > 0 {
		return errValidationFailed(fmt.Errorf("circular dependencies detected: %v", cycles))
	}

	return nil
}

func (i *Injector) buildGraph() *graph.Graph {
	g := graph.New()
	for name, cfg := range i.reg.All() {
		g.AddNode(name, cfg.Edges())
	}
	return g
}

// Internal exposes the resolution engine for test tooling in wiretest.
func (i *Injector) Internal() *resolve.Engine {
	return i.engine
}
