// Package resolve walks dependency graphs and instantiates configs.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danpasecinic/loom/internal/registry"
)

// CycleError reports a dependency loop found on the active resolution path.
// Owner is the module that declared the first node of the cycle segment,
// Path the minimal segment closed with the repeated name.
type CycleError struct {
	Owner string
	Path  []string
}

func (e *CycleError) Error() string {
	return e.Owner + ": " + strings.Join(e.Path, " -> ")
}

// NotFoundError reports a name with no registered config.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no config registered for %s", e.Name)
}

// frame is one node on the active resolution path. The owner rides along so
// a cycle can be attributed to the module that declared its entry point.
type frame struct {
	name  string
	owner string
}

// Engine resolves names against one registry, memoizing singletons.
// Not safe for concurrent use; callers serialize externally.
type Engine struct {
	reg       *registry.Registry
	singleton map[string]any
}

func New(reg *registry.Registry) *Engine {
	return &Engine{
		reg:       reg,
		singleton: make(map[string]any),
	}
}

func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Cached reports whether a singleton instance exists for name.
func (e *Engine) Cached(name string) bool {
	_, ok := e.singleton[name]
	return ok
}

// Forget drops the memoized singleton for name, if any. Used when a
// registration is replaced out from under the cache.
func (e *Engine) Forget(name string) {
	delete(e.singleton, name)
}

func (e *Engine) Resolve(name string) (any, error) {
	return e.resolve(name, nil)
}

func (e *Engine) resolve(name string, path []frame) (any, error) {
	for i, f := range path {
		if f.name == name {
			return nil, cycleAt(path, i, name)
		}
	}

	cfg, ok := e.reg.Get(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	switch cfg.Strategy {
	case registry.Value, registry.Constant:
		return cfg.Value, nil

	case registry.Alias:
		return e.resolve(cfg.Target, append(path, frame{name: name, owner: cfg.Owner}))

	case registry.Singleton:
		if instance, ok := e.singleton[name]; ok {
			return instance, nil
		}
		instance, err := e.construct(cfg, path)
		if err != nil {
			return nil, err
		}
		// Cached only after the whole subtree resolved; an aborted
		// resolve leaves no partial instance behind.
		e.singleton[name] = instance
		return instance, nil

	case registry.Factory:
		return e.construct(cfg, path)
	}

	// Providers are expanded at registration; reaching one here means the
	// registry was mutated behind our back.
	return nil, fmt.Errorf("unresolvable strategy %q for %s", string(cfg.Strategy), name)
}

func (e *Engine) construct(cfg registry.Config, path []frame) (any, error) {
	path = append(path, frame{name: cfg.Name, owner: cfg.Owner})

	args := make([]any, 0, len(cfg.Requires)+len(cfg.Params))
	for _, dep := range cfg.Requires {
		v, err := e.resolve(dep, path)
		if err != nil {
			var cycle *CycleError
			if errors.As(err, &cycle) {
				return nil, err
			}
			return nil, fmt.Errorf("failed to resolve dependency %s for %s: %w", dep, cfg.Name, err)
		}
		args = append(args, v)
	}
	args = append(args, cfg.Params...)

	instance, err := cfg.Ctor(args...)
	if err != nil {
		return nil, fmt.Errorf("constructor failed for %s: %w", cfg.Name, err)
	}
	return instance, nil
}

// cycleAt builds the minimal cycle segment: from the first occurrence of
// name through the path tail, closed by repeating name.
func cycleAt(path []frame, first int, name string) *CycleError {
	segment := path[first:]
	names := make([]string, 0, len(segment)+1)
	for _, f := range segment {
		names = append(names, f.name)
	}
	names = append(names, name)

	return &CycleError{
		Owner: segment[0].owner,
		Path:  names,
	}
}
