// Package loader reads document type declarations from JSON or YAML files.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/schema"
)

// FileError ties a load failure to the file that caused it.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("loader: %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Loaded pairs a decoded document type with the file it came from.
type Loaded struct {
	Path     string
	Document schema.FieldDescriptor
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger routes load diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithoutSanitizer keeps titles verbatim instead of stripping markup.
func WithoutSanitizer() Option {
	return func(l *Loader) {
		l.sanitize = false
	}
}

// Loader decodes, sanitises and validates descriptor files.
type Loader struct {
	logger   *slog.Logger
	sanitize bool
}

// New constructs a Loader.
func New(options ...Option) *Loader {
	l := &Loader{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		sanitize: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LoadFS walks fsys and loads every .json/.yaml/.yml file. A document type
// declared twice is an error naming both files.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS) ([]Loaded, error) {
	if fsys == nil {
		return nil, errors.New("loader: filesystem is required")
	}

	var out []Loaded
	origins := make(map[string]string)

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return &FileError{Path: path, Err: err}
		}
		doc, err := l.decode(path, data)
		if err != nil {
			return err
		}
		if previous, exists := origins[doc.Name]; exists {
			return &FileError{Path: path, Err: fmt.Errorf("document type %q already declared in %s", doc.Name, previous)}
		}
		origins[doc.Name] = path
		out = append(out, Loaded{Path: path, Document: doc})
		l.logger.Debug("loaded document type", "path", path, "document", doc.Name, "fields", len(schema.Paths(doc)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LoadDir loads every descriptor file below dir.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]Loaded, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("loader: %s is not a directory", dir)
	}
	return l.LoadFS(ctx, os.DirFS(dir))
}

// LoadFile loads a single descriptor file from disk.
func (l *Loader) LoadFile(ctx context.Context, path string) (schema.FieldDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return schema.FieldDescriptor{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.FieldDescriptor{}, &FileError{Path: path, Err: err}
	}
	return l.decode(path, data)
}

// Register loads fsys and registers every document type it declares. It
// returns how many types were added.
func (l *Loader) Register(ctx context.Context, reg *registry.Registry, fsys fs.FS) (int, error) {
	if reg == nil {
		return 0, errors.New("loader: registry is required")
	}
	docs, err := l.LoadFS(ctx, fsys)
	if err != nil {
		return 0, err
	}
	for idx, loaded := range docs {
		if err := reg.Register(loaded.Document); err != nil {
			return idx, &FileError{Path: loaded.Path, Err: err}
		}
	}
	return len(docs), nil
}

func (l *Loader) decode(path string, data []byte) (schema.FieldDescriptor, error) {
	var (
		doc schema.FieldDescriptor
		err error
	)
	if format, ferr := schema.ParseFormat(filepath.Ext(path)); ferr == nil && format == schema.FormatJSON {
		doc, err = schema.DecodeJSON(data)
	} else {
		doc, err = schema.Decode(data)
	}
	if err != nil {
		return schema.FieldDescriptor{}, &FileError{Path: path, Err: err}
	}

	if l.sanitize {
		if changed := sanitizeTitles(&doc); len(changed) > 0 {
			l.logger.Warn("stripped markup from titles", "path", path, "fields", changed)
		}
	}

	if err := schema.Validate(doc); err != nil {
		return schema.FieldDescriptor{}, &FileError{Path: path, Err: err}
	}
	return doc, nil
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
