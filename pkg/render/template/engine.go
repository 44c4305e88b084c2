package template

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	name      string
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
	filters   map[string]pongo2.FilterFunction
}

// WithBaseDir loads templates from a directory on disk. Templates found there
// take precedence over those supplied through WithFS.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the default template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// WithGlobals seeds values available to every template.
func WithGlobals(data map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[strings.TrimSpace(key)] = value
		}
	}
}

// WithFilter registers a pongo2 filter when it is not already defined.
func WithFilter(name string, fn pongo2.FilterFunction) Option {
	return func(cfg *config) {
		if cfg.filters == nil {
			cfg.filters = make(map[string]pongo2.FilterFunction)
		}
		cfg.filters[strings.TrimSpace(name)] = fn
	}
}

// Engine satisfies TemplateRenderer using a pongo2 template set. Parsed
// templates are cached by path.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

var _ TemplateRenderer = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{name: "docschema", extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("template: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("template: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	set := pongo2.NewSet(cfg.name, loaders...)
	if len(cfg.globals) > 0 {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(pongo2.Context(cfg.globals))
	}
	for name, fn := range cfg.filters {
		if name == "" || fn == nil || pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("template: register filter %q: %w", name, err)
		}
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// RenderTemplate executes the named template, appending the configured
// extension when missing.
func (e *Engine) RenderTemplate(name string, data map[string]any, out io.Writer) error {
	if e == nil || e.set == nil {
		return errors.New("template: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(pongo2.Context(data), out); err != nil {
		return fmt.Errorf("template: execute %q: %w", path, err)
	}
	return nil
}

// RenderString parses and executes an inline template.
func (e *Engine) RenderString(content string, data map[string]any, out io.Writer) error {
	if e == nil || e.set == nil {
		return errors.New("template: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return fmt.Errorf("template: parse string: %w", err)
	}
	if err := tmpl.ExecuteWriter(pongo2.Context(data), out); err != nil {
		return fmt.Errorf("template: execute string: %w", err)
	}
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: load %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
