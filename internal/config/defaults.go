package config

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	DefaultOutput      = "table"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultSubmitLabel = "Save"
	DefaultMethod      = "post"
	DefaultThemeName   = "default"
	DefaultVariant     = "light"
	DefaultAPITitle    = "Document types"
	DefaultAPIVersion  = "1.0.0"

	// EnvPrefix namespaces environment overrides.
	EnvPrefix = "DOCSCHEMA_"
)

// ConfigFileNames are searched in order when no --config flag is given.
var ConfigFileNames = []string{"docschema.yaml", "docschema.yml"}

// Supported values for enumerated settings.
var (
	OutputFormats = []string{"table", "json", "yaml"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
	LogFormats    = []string{"text", "json"}
)

func defaults() map[string]any {
	return map[string]any{
		"schemas_dirs":         []string{},
		"default_type":         "",
		"output":               DefaultOutput,
		"sanitize_titles":      true,
		"log.level":            DefaultLogLevel,
		"log.format":           DefaultLogFormat,
		"render.submit_label":  DefaultSubmitLabel,
		"render.method":        DefaultMethod,
		"render.inline_styles": true,
		"render.theme.name":    DefaultThemeName,
		"render.theme.variant": DefaultVariant,
		"openapi.title":        DefaultAPITitle,
		"openapi.version":      DefaultAPIVersion,
	}
}

// Default returns the configuration built from defaults alone.
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults(), "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}
