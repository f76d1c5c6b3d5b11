package theme

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"sync"
)

var (
	// ErrComponentExists is returned when a component name is registered twice
	ErrComponentExists = errors.New("component already registered")

	// ErrUnknownComponent is returned when rendering an unregistered component
	ErrUnknownComponent = errors.New("unknown component")

	// ErrAlreadyProvided is returned when a context key is provided twice
	ErrAlreadyProvided = errors.New("context value already provided")

	// ErrInvalidComponent is returned for an empty name or nil component
	ErrInvalidComponent = errors.New("invalid component")
)

// App is the registration surface a rendering engine hands to theme
// extensions at startup.
type App interface {
	// Component registers a presentational component under name
	Component(name string, c Component) error
	// Provide publishes a value that components look up by key
	Provide(key string, value any) error
}

// RenderContext gives components access to provided values
type RenderContext interface {
	Inject(key string) (any, bool)
}

// Component renders props into an HTML fragment
type Component interface {
	Render(rc RenderContext, props any) (template.HTML, error)
}

// ComponentFunc adapts a function to Component
type ComponentFunc func(rc RenderContext, props any) (template.HTML, error)

// Render calls f
func (f ComponentFunc) Render(rc RenderContext, props any) (template.HTML, error) {
	return f(rc, props)
}

// Engine is an html/template based App. Registration happens once at startup;
// afterwards rendering only reads shared state.
type Engine struct {
	mu         sync.RWMutex
	components map[string]Component
	provided   map[string]any
}

// NewEngine creates an empty engine
func NewEngine() *Engine {
	return &Engine{
		components: make(map[string]Component),
		provided:   make(map[string]any),
	}
}

// Component registers c under name. Registering a name twice fails.
func (e *Engine) Component(name string, c Component) error {
	if name == "" || c == nil {
		return fmt.Errorf("%w: %q", ErrInvalidComponent, name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.components[name]; exists {
		return fmt.Errorf("%w: %s", ErrComponentExists, name)
	}
	e.components[name] = c
	return nil
}

// Provide publishes value under key. Providing a key twice fails.
func (e *Engine) Provide(key string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.provided[key]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyProvided, key)
	}
	e.provided[key] = value
	return nil
}

// Inject returns the value provided under key
func (e *Engine) Inject(key string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	v, ok := e.provided[key]
	return v, ok
}

// HasComponent reports whether name is registered
func (e *Engine) HasComponent(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.components[name]
	return ok
}

// Components returns registered component names, sorted
func (e *Engine) Components() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.components))
	for name := range e.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render renders the named component
func (e *Engine) Render(name string, props any) (template.HTML, error) {
	e.mu.RLock()
	c, ok := e.components[name]
	e.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	return c.Render(e, props)
}

// FuncMap exposes the engine to page templates: {{ component "ApiEndpoint" . }}
// renders a component and {{ inject "api-base-url" }} looks up a value.
func (e *Engine) FuncMap() template.FuncMap {
	return template.FuncMap{
		"component": e.Render,
		"inject": func(key string) any {
			v, _ := e.Inject(key)
			return v
		},
	}
}

// ExecutePage parses a page template with the engine's funcs and executes it
func (e *Engine) ExecutePage(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(e.FuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse page %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute page %s: %w", name, err)
	}
	return buf.String(), nil
}

type renderContextKey struct{}

// NewContext attaches rc to ctx for handlers that render components
func NewContext(ctx context.Context, rc RenderContext) context.Context {
	return context.WithValue(ctx, renderContextKey{}, rc)
}

// FromContext returns the render context attached by NewContext
func FromContext(ctx context.Context) (RenderContext, bool) {
	rc, ok := ctx.Value(renderContextKey{}).(RenderContext)
	return rc, ok
}
