// Package ginregistry wires gin route registration to a loom resolver.
//
// Handlers are declared as references instead of constructed values: a
// registered name, a {controller, action} pair, or a plain gin handler.
// References are resolved once, at registration time, so a misconfigured
// route fails at bootstrap rather than on first request.
package ginregistry

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Resolver is the only surface consumed from the container. Both
// *loom.Injector and *loom.Module satisfy it.
type Resolver interface {
	Resolve(name string) (any, error)
}

// Action is one controller endpoint. Middleware actions call c.Next() to
// continue the chain.
type Action func(c *gin.Context, params ...any)

// Controller exposes named actions for Ref-based routing.
type Controller interface {
	Actions() map[string]Action
}

// Ref points at an action of a resolved controller. Params are forwarded
// to the action on every request.
type Ref struct {
	Controller string
	Action     string
	Params     []any
}

// Router wraps a gin engine so route and middleware registration accepts
// handler references.
type Router struct {
	engine   *gin.Engine
	resolver Resolver
}

func New(engine *gin.Engine, resolver Resolver) *Router {
	return &Router{
		engine:   engine,
		resolver: resolver,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Use registers middleware references on the engine.
func (r *Router) Use(refs ...any) error {
	handlers, err := r.handlers(refs)
	if err != nil {
		return err
	}
	r.engine.Use(handlers...)
	return nil
}

// Handle registers a route whose handler chain may mix plain handlers,
// registered names and controller refs.
func (r *Router) Handle(method, path string, refs ...any) error {
	handlers, err := r.handlers(refs)
	if err != nil {
		return fmt.Errorf("ginregistry: %s %s: %w", method, path, err)
	}
	r.engine.Handle(method, path, handlers...)
	return nil
}

func (r *Router) GET(path string, refs ...any) error {
	return r.Handle("GET", path, refs...)
}

func (r *Router) POST(path string, refs ...any) error {
	return r.Handle("POST", path, refs...)
}

func (r *Router) PUT(path string, refs ...any) error {
	return r.Handle("PUT", path, refs...)
}

func (r *Router) PATCH(path string, refs ...any) error {
	return r.Handle("PATCH", path, refs...)
}

func (r *Router) DELETE(path string, refs ...any) error {
	return r.Handle("DELETE", path, refs...)
}

func (r *Router) handlers(refs []any) ([]gin.HandlerFunc, error) {
	handlers := make([]gin.HandlerFunc, 0, len(refs))
	for _, ref := range refs {
		h, err := r.handler(ref)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, h)
	}
	return handlers, nil
}

func (r *Router) handler(ref any) (gin.HandlerFunc, error) {
	switch v := ref.(type) {
	case gin.HandlerFunc:
		return v, nil
	case func(*gin.Context):
		return v, nil
	case string:
		resolved, err := r.resolver.Resolve(v)
		if err != nil {
			return nil, fmt.Errorf("resolve handler %q: %w", v, err)
		}
		h, err := asHandler(resolved)
		if err != nil {
			return nil, fmt.Errorf("handler %q: %w", v, err)
		}
		return h, nil
	case Ref:
		return r.controllerHandler(v)
	case *Ref:
		return r.controllerHandler(*v)
	}
	return nil, fmt.Errorf("unsupported handler reference %T", ref)
}

func (r *Router) controllerHandler(ref Ref) (gin.HandlerFunc, error) {
	resolved, err := r.resolver.Resolve(ref.Controller)
	if err != nil {
		return nil, fmt.Errorf("resolve controller %q: %w", ref.Controller, err)
	}

	controller, ok := resolved.(Controller)
	if !ok {
		return nil, fmt.Errorf("controller %q: %T does not implement ginregistry.Controller", ref.Controller, resolved)
	}

	action, ok := controller.Actions()[ref.Action]
	if !ok {
		return nil, fmt.Errorf("controller %q has no action %q", ref.Controller, ref.Action)
	}

	return func(c *gin.Context) {
		action(c, ref.Params...)
	}, nil
}

func asHandler(resolved any) (gin.HandlerFunc, error) {
	switch h := resolved.(type) {
	case gin.HandlerFunc:
		return h, nil
	case func(*gin.Context):
		return h, nil
	case Action:
		return func(c *gin.Context) {
			h(c)
		}, nil
	}
	return nil, fmt.Errorf("resolved to %T, want a gin handler", resolved)
}
