// Package manifest loads loom module wiring from YAML manifests.
//
// Manifests declare modules, their import/export boundaries, and data-only
// dependencies (value, constant, alias). Construction targets cannot live
// in YAML; singleton and factory entries name a constructor slot bound from
// Go code at build time.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danpasecinic/loom"
)

// File is one parsed manifest.
type File struct {
	Modules []ModuleDef `yaml:"modules"`
}

// ModuleDef declares one module: its imports (by module name, defined
// earlier in the same manifest), its export spec, and its dependencies.
type ModuleDef struct {
	Name         string   `yaml:"name"`
	Imports      []string `yaml:"imports"`
	Exports      []string `yaml:"exports"`
	Dependencies []DepDef `yaml:"dependencies"`
}

// DepDef declares one dependency. Strategy decides which fields apply:
// value/constant read Value, alias reads Target, singleton/factory read
// Constructor (a slot name bound via Build) and Params.
type DepDef struct {
	Name        string `yaml:"name"`
	Strategy    string `yaml:"strategy"`
	Value       any    `yaml:"value"`
	Target      string `yaml:"target"`
	Constructor string `yaml:"constructor"`
	Params      []any  `yaml:"params"`
}

// Parse decodes and validates a single manifest payload.
func Parse(data []byte) (File, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return File{}, fmt.Errorf("manifest: payload is empty")
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("manifest: decode: %w", err)
	}

	f = f.normalized()
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads a YAML manifest from disk.
func Load(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("manifest: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("manifest: %s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("manifest: %s: %w", filepath.Clean(path), err)
	}
	return f, nil
}

func (f File) normalized() File {
	for mi := range f.Modules {
		m := &f.Modules[mi]
		m.Name = strings.TrimSpace(m.Name)
		for i := range m.Imports {
			m.Imports[i] = strings.TrimSpace(m.Imports[i])
		}
		for i := range m.Exports {
			m.Exports[i] = strings.TrimSpace(m.Exports[i])
		}
		for di := range m.Dependencies {
			d := &m.Dependencies[di]
			d.Name = strings.TrimSpace(d.Name)
			d.Strategy = strings.ToLower(strings.TrimSpace(d.Strategy))
			if d.Strategy == "" {
				d.Strategy = string(loom.Value)
			}
		}
	}
	return f
}

// Validate checks structural rules before any module is built: unique
// module names, imports referencing earlier modules, and per-dependency
// strategy requirements. Providers are a code-level construct and are
// rejected here.
func (f File) Validate() error {
	if len(f.Modules) == 0 {
		return fmt.Errorf("manifest: no modules declared")
	}

	defined := make(map[string]bool, len(f.Modules))
	for _, m := range f.Modules {
		if m.Name == "" {
			return fmt.Errorf("manifest: module with empty name")
		}
		if defined[m.Name] {
			return fmt.Errorf("manifest: duplicate module %s", m.Name)
		}

		for _, imp := range m.Imports {
			if !defined[imp] {
				return fmt.Errorf("manifest: module %s imports %s, which is not defined before it", m.Name, imp)
			}
		}

		if err := validateExports(m); err != nil {
			return err
		}
		if err := validateDependencies(m); err != nil {
			return err
		}

		defined[m.Name] = true
	}
	return nil
}

func validateExports(m ModuleDef) error {
	for _, name := range m.Exports {
		if name == "" {
			return fmt.Errorf("manifest: module %s has an empty export name", m.Name)
		}
		if name == loom.ExportAll && len(m.Exports) > 1 {
			return fmt.Errorf("manifest: module %s mixes %q with explicit exports", m.Name, loom.ExportAll)
		}
	}
	return nil
}

func validateDependencies(m ModuleDef) error {
	seen := make(map[string]bool, len(m.Dependencies))
	for _, d := range m.Dependencies {
		if d.Name == "" {
			return fmt.Errorf("manifest: module %s has a dependency with empty name", m.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("manifest: module %s declares %s twice", m.Name, d.Name)
		}
		seen[d.Name] = true

		switch loom.Strategy(d.Strategy) {
		case loom.Value, loom.Constant:
		case loom.Alias:
			if strings.TrimSpace(d.Target) == "" {
				return fmt.Errorf("manifest: alias %s in module %s has no target", d.Name, m.Name)
			}
		case loom.Singleton, loom.Factory:
			if strings.TrimSpace(d.Constructor) == "" {
				return fmt.Errorf("manifest: %s %s in module %s names no constructor slot", d.Strategy, d.Name, m.Name)
			}
		case loom.Provider:
			return fmt.Errorf("manifest: %s in module %s: providers cannot be declared in YAML", d.Name, m.Name)
		default:
			return fmt.Errorf("manifest: %s in module %s has unknown strategy %q", d.Name, m.Name, d.Strategy)
		}
	}
	return nil
}

// Build instantiates every declared module in manifest order, binding
// singleton/factory entries to constructor slots from ctors. The returned
// map is keyed by module name.
func (f File) Build(ctors map[string]loom.Constructor, opts ...loom.Option) (map[string]*loom.Module, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	built := make(map[string]*loom.Module, len(f.Modules))

	for _, def := range f.Modules {
		configs := make([]loom.Config, 0, len(def.Dependencies))
		for _, d := range def.Dependencies {
			cfg, err := d.config(def.Name, ctors)
			if err != nil {
				return nil, err
			}
			configs = append(configs, cfg)
		}

		imports := make([]*loom.Module, 0, len(def.Imports))
		for _, imp := range def.Imports {
			imports = append(imports, built[imp])
		}

		m, err := loom.NewModule(
			def.Name,
			loom.WithImports(imports...),
			loom.WithDeclarations(configs...),
			loom.WithExports(def.Exports...),
			loom.WithInjectorOptions(opts...),
		)
		if err != nil {
			return nil, fmt.Errorf("manifest: build module %s: %w", def.Name, err)
		}
		built[def.Name] = m
	}

	return built, nil
}

func (d DepDef) config(moduleName string, ctors map[string]loom.Constructor) (loom.Config, error) {
	switch loom.Strategy(d.Strategy) {
	case loom.Value:
		return loom.ValueOf(d.Name, d.Value), nil
	case loom.Constant:
		return loom.ConstantOf(d.Name, d.Value), nil
	case loom.Alias:
		return loom.AliasOf(d.Name, d.Target), nil
	case loom.Singleton, loom.Factory:
		ctor, ok := ctors[d.Constructor]
		if !ok {
			return loom.Config{}, fmt.Errorf("manifest: %s in module %s: no constructor bound for slot %q", d.Name, moduleName, d.Constructor)
		}
		cfg := loom.Config{Name: d.Name, Strategy: loom.Strategy(d.Strategy), Value: ctor, Params: d.Params}
		return cfg, nil
	}
	return loom.Config{}, fmt.Errorf("manifest: %s in module %s has unknown strategy %q", d.Name, moduleName, d.Strategy)
}
