// Package config loads CLI configuration from defaults, a docschema.yaml
// file, DOCSCHEMA_* environment variables and explicitly set flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	SchemasDirs    []string         `koanf:"schemas_dirs"`
	DefaultType    string           `koanf:"default_type"`
	Output         string           `koanf:"output"`
	SanitizeTitles bool             `koanf:"sanitize_titles"`
	Log            LogConfig        `koanf:"log"`
	Render         RenderConfig     `koanf:"render"`
	OpenAPI        OpenAPIConfig    `koanf:"openapi"`
	JSONSchema     JSONSchemaConfig `koanf:"jsonschema"`

	// ConfigFile is the file the configuration was read from, if any.
	ConfigFile string `koanf:"-"`
}

// LogConfig selects the slog handler built by the CLI.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RenderConfig drives the HTML and prompt renderers.
type RenderConfig struct {
	TemplatesDir string      `koanf:"templates_dir"`
	SubmitLabel  string      `koanf:"submit_label"`
	Action       string      `koanf:"action"`
	Method       string      `koanf:"method"`
	InlineStyles bool        `koanf:"inline_styles"`
	AssetPrefix  string      `koanf:"asset_prefix"`
	Preset       string      `koanf:"preset"`
	Theme        ThemeConfig `koanf:"theme"`
}

// ThemeConfig is turned into a go-theme RendererConfig by the CLI.
type ThemeConfig struct {
	Name     string            `koanf:"name"`
	Variant  string            `koanf:"variant"`
	Tokens   map[string]string `koanf:"tokens"`
	Partials map[string]string `koanf:"partials"`
}

// OpenAPIConfig fills the info block of exported OpenAPI documents.
type OpenAPIConfig struct {
	Title   string `koanf:"title"`
	Version string `koanf:"version"`
}

// JSONSchemaConfig tunes JSON Schema export.
type JSONSchemaConfig struct {
	BaseURI              string `koanf:"base_uri"`
	AdditionalProperties bool   `koanf:"additional_properties"`
}
