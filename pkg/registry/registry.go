// Package registry keeps the set of document types known to a process.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gosimple/slug"

	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
)

var (
	// ErrNotFound is returned when a document type is not registered.
	ErrNotFound = errors.New("registry: document type not found")
	// ErrDuplicate is returned when a document type name is already taken.
	ErrDuplicate = errors.New("registry: document type already registered")
)

// Registry stores validated document types by name. Stored trees are cloned on
// the way in and out so callers never share mutable state with the registry.
type Registry struct {
	mu    sync.RWMutex
	types map[string]schema.FieldDescriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]schema.FieldDescriptor)}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry preloaded with the built-in
// document types.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		defaultRegistry.MustRegister(car.Schema())
	})
	return defaultRegistry
}

// Register validates and stores a document type under its name.
func (r *Registry) Register(doc schema.FieldDescriptor) error {
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("registry: register %q: %w", doc.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[doc.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, doc.Name)
	}
	r.types[doc.Name] = doc.Clone()
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(doc schema.FieldDescriptor) {
	if err := r.Register(doc); err != nil {
		panic(err)
	}
}

// Replace stores doc, overwriting any previous declaration with the same name.
func (r *Registry) Replace(doc schema.FieldDescriptor) error {
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("registry: replace %q: %w", doc.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[doc.Name] = doc.Clone()
	return nil
}

// Get resolves a document type by name. Lookups fall back to slug matching so
// "Car", " car " and "car" resolve to the same entry.
func (r *Registry) Get(name string) (schema.FieldDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if doc, ok := r.types[name]; ok {
		return doc.Clone(), nil
	}
	key := Slug(name)
	for registered, doc := range r.types {
		if Slug(registered) == key {
			return doc.Clone(), nil
		}
	}
	return schema.FieldDescriptor{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// MustGet panics if the document type is missing.
func (r *Registry) MustGet(name string) schema.FieldDescriptor {
	doc, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return doc
}

// Has reports whether a document type is registered.
func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

// List returns the registered names sorted lexically.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports how many document types are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Slug normalises a document type name for lookups and file names.
func Slug(name string) string {
	return slug.Make(strings.TrimSpace(name))
}
