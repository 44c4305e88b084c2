package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/internal/config"
	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/openapi"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/renderers/html"
	"github.com/goliatone/go-docschema/pkg/schema"
)

type sessionKey struct{}

// Session carries what every command needs once configuration is loaded.
type Session struct {
	Config   *config.Config
	Logger   *slog.Logger
	Registry *registry.Registry
	Loader   *loader.Loader
}

// newSession loads the configured schema directories on top of the
// built-in document types.
func newSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	reg := registry.New()
	builtin := registry.Default()
	for _, name := range builtin.List() {
		if err := reg.Register(builtin.MustGet(name)); err != nil {
			return nil, err
		}
	}

	opts := []loader.Option{loader.WithLogger(logger)}
	if !cfg.SanitizeTitles {
		opts = append(opts, loader.WithoutSanitizer())
	}
	l := loader.New(opts...)
	for _, dir := range cfg.SchemasDirs {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("schemas dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("schemas dir %s is not a directory", dir)
		}
		n, err := l.Register(ctx, reg, os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("load document types from %s: %w", dir, err)
		}
		logger.Debug("registered document types", "dir", dir, "count", n)
	}

	return &Session{Config: cfg, Logger: logger, Registry: reg, Loader: l}, nil
}

// GetSession retrieves the session stored by the root command.
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return nil
}

func sessionFrom(cmd *cobra.Command) (*Session, error) {
	if s := GetSession(cmd.Context()); s != nil {
		return s, nil
	}
	return nil, errors.New("configuration was not loaded")
}

// Document resolves the named document type, falling back to the configured
// default when name is empty.
func (s *Session) Document(name string) (schema.FieldDescriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.Config.DefaultType
	}
	if name == "" {
		return schema.FieldDescriptor{}, fmt.Errorf("no document type given and default_type is not set (known: %s)", strings.Join(s.Registry.List(), ", "))
	}
	return s.Registry.Get(name)
}

// Form builds the decorated form model for doc, applying the configured
// preset.
func (s *Session) Form(ctx context.Context, doc schema.FieldDescriptor) (model.FormModel, error) {
	o, err := s.pipeline(render.NewRegistry())
	if err != nil {
		return model.FormModel{}, err
	}
	return o.Form(ctx, orchestrator.Request{Document: &doc})
}

// OpenAPIInfo maps the openapi config section.
func (s *Session) OpenAPIInfo() openapi.Info {
	return openapi.Info{Title: s.Config.OpenAPI.Title, Version: s.Config.OpenAPI.Version}
}

// Theme converts the render.theme config section into the go-theme shape the
// HTML renderer consumes. Tokens double as CSS custom properties.
func (s *Session) Theme() *theme.RendererConfig {
	cfg := s.Config.Render
	t := cfg.Theme
	out := &theme.RendererConfig{
		Theme:    t.Name,
		Variant:  t.Variant,
		Tokens:   copyStringMap(t.Tokens),
		Partials: copyStringMap(t.Partials),
	}
	if len(t.Tokens) > 0 {
		out.CSSVars = make(map[string]string, len(t.Tokens))
		for key, value := range t.Tokens {
			out.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
		}
	}
	if prefix := strings.TrimRight(strings.TrimSpace(cfg.AssetPrefix), "/"); prefix != "" {
		out.AssetURL = func(key string) string {
			switch key {
			case "":
				return ""
			case html.StylesheetAsset:
				return prefix + "/" + html.StylesheetName
			default:
				return prefix + "/" + key
			}
		}
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

// readInput reads path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}

// readRecord decodes a JSON content record from path.
func readRecord(cmd *cobra.Command, path string) (map[string]any, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}
	return openapi.DecodeRecord(data)
}
