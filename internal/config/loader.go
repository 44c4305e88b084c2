package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// flagKeys maps CLI flag names onto configuration keys. Flags missing from
// the table never reach the configuration.
var flagKeys = map[string]string{
	"schemas-dir":   "schemas_dirs",
	"default-type":  "default_type",
	"output":        "output",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"templates-dir": "render.templates_dir",
	"submit-label":  "render.submit_label",
	"action":        "render.action",
	"theme":         "render.theme.name",
	"variant":       "render.theme.variant",
	"asset-prefix":  "render.asset_prefix",
	"preset":        "render.preset",
	"base-uri":      "jsonschema.base_uri",
	"api-title":     "openapi.title",
	"api-version":   "openapi.version",
}

// findConfigFile returns the explicit path or the first docschema.yaml found
// in the working directory.
func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// envKey transforms DOCSCHEMA_RENDER__SUBMIT_LABEL into render.submit_label.
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Load reads configuration with the precedence
// flags > environment > config file > defaults.
// Only flags that were explicitly set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path, err := findConfigFile(cfgFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}
	fileDirs := k.Strings("schemas_dirs")
	fileTemplates := k.String("render.templates_dir")
	filePreset := k.String("render.preset")

	// 3. Environment (DOCSCHEMA_ prefix)
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFile = path

	// Paths that came from the file are relative to the file.
	if path != "" {
		base := filepath.Dir(path)
		if slices.Equal(cfg.SchemasDirs, fileDirs) {
			for i, dir := range cfg.SchemasDirs {
				cfg.SchemasDirs[i] = resolvePathRelativeTo(dir, base)
			}
		}
		if cfg.Render.TemplatesDir == fileTemplates {
			cfg.Render.TemplatesDir = resolvePathRelativeTo(cfg.Render.TemplatesDir, base)
		}
		if cfg.Render.Preset == filePreset {
			cfg.Render.Preset = resolvePathRelativeTo(cfg.Render.Preset, base)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
