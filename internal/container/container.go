// Package container wires application components explicitly and drives their lifecycle.
//
// Components are registered as named factories, either one by one or by scanning catalog
// packages. Start constructs every component in registration order, then hands the
// lifecycle to an fx application: each component contributes one fx hook (Init on start,
// Destroy on stop) and a final hook invokes every runner once with the process arguments.
// Runners are those added with AddRunner followed by components that implement Runner.
// fx rolls back started hooks when a later one fails, and Close stops them in reverse order.
package container

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// ErrAlreadyStarted is returned when the container is modified or started after Start.
var ErrAlreadyStarted = errors.New("container: already started")

// Provider is a named component factory. The factory may look up components
// registered before it.
type Provider struct {
	Name string
	New  func(c *Container) (any, error)
}

// Package groups the providers discoverable under one import path.
type Package struct {
	Path      string
	Providers []Provider
}

// Initializer is implemented by components that need a hook after every component
// has been constructed.
type Initializer interface {
	Init(ctx context.Context) error
}

// Destroyer is implemented by components that release resources on shutdown.
type Destroyer interface {
	Destroy(ctx context.Context) error
}

// Runner is an action invoked once after startup with the raw process arguments.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, args []string) error

// Run calls f(ctx, args).
func (f RunnerFunc) Run(ctx context.Context, args []string) error { return f(ctx, args) }

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.log = l
		}
	}
}

// WithCatalog makes packages available to Scan.
func WithCatalog(pkgs ...Package) Option {
	return func(c *Container) {
		c.catalog = append(c.catalog, pkgs...)
	}
}

// Container holds registered providers and the components built from them.
type Container struct {
	log     *zap.Logger
	catalog []Package

	providers []Provider
	runners   []Runner
	scanned   map[string]bool

	mu         sync.RWMutex
	components map[string]any
	order      []string
	app        *fx.App
	started    bool
	closed     bool
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		log:        zap.NewNop(),
		scanned:    make(map[string]bool),
		components: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scan registers the providers of every catalog package whose path equals one of
// basePackages or is nested below it. Blank entries are ignored. A package selected
// by an earlier call is not registered again.
func (c *Container) Scan(basePackages ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}

	selected := make(map[string]bool)
	for _, base := range basePackages {
		base = strings.TrimSuffix(strings.TrimSpace(base), "/")
		if base == "" {
			continue
		}
		found := false
		for _, pkg := range c.catalog {
			if pkg.Path == base || strings.HasPrefix(pkg.Path, base+"/") {
				selected[pkg.Path] = true
				found = true
			}
		}
		if !found {
			return UnknownPackageError{Path: base}
		}
	}

	// Catalog order, not base package order, decides registration order.
	for _, pkg := range c.catalog {
		if !selected[pkg.Path] || c.scanned[pkg.Path] {
			continue
		}
		c.scanned[pkg.Path] = true
		c.log.Debug("scanned package",
			zap.String("package", pkg.Path),
			zap.Int("providers", len(pkg.Providers)),
		)
		c.providers = append(c.providers, pkg.Providers...)
	}
	return nil
}

// Register adds providers outside of scanning.
func (c *Container) Register(providers ...Provider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	c.providers = append(c.providers, providers...)
	return nil
}

// AddRunner registers an action to invoke after startup.
func (c *Container) AddRunner(r Runner) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return ErrAlreadyStarted
	}
	if r != nil {
		c.runners = append(c.runners, r)
	}
	return nil
}

// Start constructs and initializes all components, then invokes each runner once
// with args. If initialization or a runner fails, components that were already
// initialized are destroyed before the error is returned.
func (c *Container) Start(ctx context.Context, args []string) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	providers := append([]Provider(nil), c.providers...)
	runners := append([]Runner(nil), c.runners...)
	c.mu.Unlock()

	// Factories run without the lock held so they can Lookup earlier components.
	for _, p := range providers {
		if err := c.construct(p); err != nil {
			return err
		}
	}

	// Components that are runners go after the explicitly added ones.
	names := c.Names()
	for _, name := range names {
		if r, ok := c.get(name).(Runner); ok {
			runners = append(runners, r)
		}
	}

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger { return &fxevent.ZapLogger{Logger: c.log.Named("fx")} }),
		fx.Invoke(func(lc fx.Lifecycle) {
			for _, name := range names {
				lc.Append(c.hook(name))
			}
			lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
				for i, r := range runners {
					if err := r.Run(ctx, args); err != nil {
						return fmt.Errorf("runner %d: %w", i, err)
					}
				}
				return nil
			}})
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.app = app
	c.mu.Unlock()

	c.log.Info("container starting", zap.Int("components", len(names)), zap.Int("runners", len(runners)))

	if err := app.Start(ctx); err != nil {
		// fx has already stopped the hooks that started.
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		return err
	}
	return nil
}

// hook maps the optional Init and Destroy methods of a component onto an fx hook.
func (c *Container) hook(name string) fx.Hook {
	v := c.get(name)
	var h fx.Hook
	if in, ok := v.(Initializer); ok {
		h.OnStart = func(ctx context.Context) error {
			if err := in.Init(ctx); err != nil {
				return fmt.Errorf("init %s: %w", name, err)
			}
			return nil
		}
	}
	if d, ok := v.(Destroyer); ok {
		h.OnStop = func(ctx context.Context) error {
			if err := d.Destroy(ctx); err != nil {
				c.log.Error("destroy failed", zap.String("component", name), zap.Error(err))
				return fmt.Errorf("destroy %s: %w", name, err)
			}
			return nil
		}
	}
	return h
}

func (c *Container) construct(p Provider) error {
	if p.New == nil {
		return NilFactoryError{Name: p.Name}
	}
	c.mu.RLock()
	_, exists := c.components[p.Name]
	c.mu.RUnlock()
	if exists {
		return DuplicateComponentError{Name: p.Name}
	}

	v, err := p.New(c)
	if err != nil {
		return fmt.Errorf("construct %s: %w", p.Name, err)
	}
	if v == nil {
		return NilFactoryError{Name: p.Name}
	}

	c.mu.Lock()
	c.components[p.Name] = v
	c.order = append(c.order, p.Name)
	c.mu.Unlock()

	c.log.Debug("component constructed", zap.String("component", p.Name), zap.String("type", fmt.Sprintf("%T", v)))
	return nil
}

// Close destroys initialized components in reverse order. It is safe to call more
// than once; only the first call runs the hooks. Every hook runs even if an earlier
// one fails.
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.app == nil || c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	app := c.app
	c.mu.Unlock()

	err := app.Stop(ctx)
	c.log.Info("container closed", zap.Error(err))
	return err
}

func (c *Container) get(name string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.components[name]
}

// Names returns the constructed component names in construction order.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Lookup returns the component registered under name as a T.
func Lookup[T any](c *Container, name string) (T, error) {
	var zero T
	raw := c.get(name)
	if raw == nil {
		return zero, NotFoundError{Name: name}
	}
	v, ok := raw.(T)
	if !ok {
		return zero, WrongTypeError{Name: name, Got: fmt.Sprintf("%T", raw), Want: reflect.TypeOf((*T)(nil)).Elem().String()}
	}
	return v, nil
}
