// Package loom is a name-keyed dependency injection container with module
// composition.
//
// Loom maps string names to construction strategies, resolves transitive
// dependency graphs on demand, and composes named modules through explicit
// import/export boundaries. Application code declares collaborators by name
// instead of constructing them directly.
//
// # Quick Start
//
// Create an injector for a module and register configs:
//
//	inj := loom.New("app")
//
//	err := inj.Register(
//	    loom.ValueOf("dsn", "postgres://localhost/app"),
//	    loom.SingletonOf("db", loom.Constructor{
//	        Requires: []string{"dsn"},
//	        New: func(args ...any) (any, error) {
//	            return OpenDB(args[0].(string))
//	        },
//	    }),
//	)
//
//	db, err := inj.Resolve("db")
//
// # Strategies
//
// Six strategies control how a name produces a value:
//
//	loom.SingletonOf(name, ctor)   // construct once, cache forever
//	loom.FactoryOf(name, ctor)     // construct on every resolve
//	loom.ValueOf(name, v)          // return v as-is
//	loom.ConstantOf(name, v)       // like value, but write-once
//	loom.AliasOf(name, target)     // transparent indirection
//	loom.ProviderOf(name, produce) // produce() runs once at registration
//
// Constants are the only write-once strategy: registering a constant name
// twice is a configuration error. Every other strategy overwrites silently,
// last write wins.
//
// A provider defers the final config to registration time: the producer
// runs once inside Register and the config it returns is registered in its
// place. Producers must not return another provider.
//
// # Constructors
//
// Construction targets declare the names they need explicitly:
//
//	loom.Constructor{
//	    Requires: []string{"config", "logger"},
//	    New: func(args ...any) (any, error) { ... },
//	}
//
// Requires is resolved depth-first and passed positionally to New, followed
// by the config's Params.
//
// # Modules
//
// Modules bind an injector to a name and wire import/export boundaries:
//
//	db, _ := loom.NewModule("db",
//	    loom.WithDeclarations(dbConfigs...),
//	    loom.WithExports(loom.ExportAll),
//	)
//
//	app, err := loom.NewModule("app",
//	    loom.WithImports(db),
//	    loom.WithDeclarations(appConfigs...),
//	    loom.WithExports("handler"),
//	)
//
// Imports merge before local declarations, so local names override imported
// ones. An explicit export list only ever exports locally-declared names;
// the ExportAll wildcard exports everything visible, imports included.
//
// # Cycle Detection
//
// Resolution tracks the active path. Revisiting a name on that path fails
// with a CIRCULAR_DEPENDENCY error whose message is the minimal cycle
// qualified by the module that declared its entry point:
//
//	accounts: session -> user -> session
//
// Detection is lazy: registering a cyclic graph is legal until a resolve
// walks into it, and no partially-constructed singleton is cached when a
// cycle aborts a resolve. Callers wanting registration-time strictness run
// the eager whole-graph check instead:
//
//	if err := inj.Validate(); err != nil { ... }
//
// # Errors
//
// Every failure is a *loom.Error with an ErrorCode, matchable via errors.As
// or the predicate helpers:
//
//	if loom.IsCircularDependency(err) { ... }
//	if loom.IsConfiguration(err) { ... }
//	if loom.IsNotFound(err) { ... }
//
// # Observability
//
// Observe injector operations through options:
//
//	inj := loom.New("app",
//	    loom.WithLogger(logger),
//	    loom.WithResolveObserver(func(name string, d time.Duration, err error) { ... }),
//	    loom.WithRegisterObserver(func(name string, s loom.Strategy) { ... }),
//	)
//
// # Debug Visualization
//
// Print the registered graph for debugging:
//
//	inj.PrintGraph()     // ASCII to stdout
//	inj.PrintGraphDOT()  // Graphviz DOT
//	info := inj.Graph()  // structured GraphInfo
//
// # Concurrency
//
// An Injector is single-threaded: no internal locking, no suspension
// points. Callers sharing one across goroutines serialize externally.
// Singleton caches live for the injector's lifetime and are never evicted.
//
// # Companions
//
// The manifest package loads module wiring from YAML manifests; the
// ginregistry package registers gin routes whose handlers are resolved by
// name; the wiretest package holds test helpers including fixture
// replacement.
package loom
