package loom

import (
	"github.com/danpasecinic/loom/internal/registry"
)

// ExportAll is the wildcard export spec: every name visible to the module,
// imported ones included, lands in the export map.
const ExportAll = "*"

// Module binds an Injector to a name, seeds it from imported modules'
// exports, registers its own declarations, and computes its export set.
type Module struct {
	name     string
	injector *Injector
	exports  []string
	wildcard bool
}

type ModuleOption func(*moduleConfig)

type moduleConfig struct {
	imports      []*Module
	declarations []Config
	exports      []string
	injectorOpts []Option
}

// WithImports merges the listed modules' exports before local declarations
// are registered, so local names override imported ones.
func WithImports(modules ...*Module) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.imports = append(cfg.imports, modules...)
	}
}

func WithDeclarations(configs ...Config) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.declarations = append(cfg.declarations, configs...)
	}
}

// WithExports sets the export spec: loom.ExportAll for everything visible,
// or an explicit list filtered to locally-declared names.
func WithExports(names ...string) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.exports = append(cfg.exports, names...)
	}
}

func WithInjectorOptions(opts ...Option) ModuleOption {
	return func(cfg *moduleConfig) {
		cfg.injectorOpts = append(cfg.injectorOpts, opts...)
	}
}

// NewModule builds a module: fresh Injector, imports first, then local
// declarations. Any registration failure aborts construction.
func NewModule(name string, opts ...ModuleOption) (*Module, error) {
	cfg := &moduleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	injector := New(name, cfg.injectorOpts...)

	for _, imported := range cfg.imports {
		if err := injector.addInternalImports(imported.exportSet()); err != nil {
			return nil, errModuleBuildFailed(name, err)
		}
	}

	if err := injector.Register(cfg.declarations...); err != nil {
		return nil, errModuleBuildFailed(name, err)
	}

	wildcard := len(cfg.exports) == 1 && cfg.exports[0] == ExportAll

	return &Module{
		name:     name,
		injector: injector,
		exports:  cfg.exports,
		wildcard: wildcard,
	}, nil
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) Injector() *Injector {
	return m.injector
}

func (m *Module) Resolve(name string) (any, error) {
	return m.injector.Resolve(name)
}

func (m *Module) MustResolve(name string) any {
	return m.injector.MustResolve(name)
}

// exportSet keeps configs in their internal form so imports lose nothing
// across module boundaries.
func (m *Module) exportSet() map[string]registry.Config {
	all := m.injector.reg.All()

	if m.wildcard {
		return all
	}

	out := make(map[string]registry.Config, len(m.exports))
	for _, name := range m.exports {
		cfg, ok := all[name]
		if !ok || cfg.Owner != m.name {
			// Imported or unknown names are never re-exported from an
			// explicit allow-list.
			continue
		}
		out[name] = cfg
	}
	return out
}

// Exports returns the module's export map: every visible name under the
// wildcard spec, or only locally-declared names under an explicit list.
func (m *Module) Exports() map[string]Config {
	internal := m.exportSet()
	out := make(map[string]Config, len(internal))
	for name, rc := range internal {
		out[name] = fromInternal(rc)
	}
	return out
}
