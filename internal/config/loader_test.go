package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
schemas_dirs:
  - types
output: json
log:
  level: debug
render:
  submit_label: Publish
  templates_dir: templates
  preset: presets/car.yaml
  theme:
    name: admin
    tokens:
      brand: "#0055ff"
openapi:
  title: Garage API
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docschema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringSlice("schemas-dir", nil, "")
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	flags.String("submit-label", "", "")
	flags.String("unmapped", "", "")
	return flags
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.True(t, cfg.SanitizeTitles, "sanitize_titles default")
	assert.True(t, cfg.Render.InlineStyles, "render.inline_styles default")
	assert.Equal(t, DefaultSubmitLabel, cfg.Render.SubmitLabel)
	assert.Equal(t, DefaultThemeName, cfg.Render.Theme.Name)
	assert.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestLoad_FileResolvesRelativePaths(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	base := filepath.Dir(path)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, []string{filepath.Join(base, "types")}, cfg.SchemasDirs)
	assert.Equal(t, filepath.Join(base, "templates"), cfg.Render.TemplatesDir)
	assert.Equal(t, filepath.Join(base, "presets", "car.yaml"), cfg.Render.Preset)
	assert.Equal(t, "#0055ff", cfg.Render.Theme.Tokens["brand"])
	assert.Equal(t, DefaultVariant, cfg.Render.Theme.Variant)
	assert.Equal(t, "Garage API", cfg.OpenAPI.Title)
	assert.Equal(t, DefaultAPIVersion, cfg.OpenAPI.Version)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("DOCSCHEMA_OUTPUT", "yaml")
	t.Setenv("DOCSCHEMA_RENDER__SUBMIT_LABEL", "Store")
	t.Setenv("DOCSCHEMA_LOG__FORMAT", "json")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--log-level", "error", "--submit-label", "Send", "--unmapped", "x"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output, "env beats file")
	assert.Equal(t, "json", cfg.Log.Format, "env sets nested key")
	assert.Equal(t, "error", cfg.Log.Level, "flag beats file")
	assert.Equal(t, "Send", cfg.Render.SubmitLabel, "flag beats env")
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_FlagDirsStayRelativeToWorkingDir(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--schemas-dir", "a", "--schemas-dir", "b"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.SchemasDirs)
}

func TestLoad_DiscoversFileInWorkingDir(t *testing.T) {
	path := writeConfig(t, "output: yaml\n")
	t.Chdir(filepath.Dir(path))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "docschema.yaml", cfg.ConfigFile)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		explicit  string
		errSubstr string
	}{
		{name: "missing explicit file", explicit: "does-not-exist.yaml", errSubstr: "does-not-exist.yaml"},
		{name: "bad output", body: "output: xml\n", errSubstr: `output "xml"`},
		{name: "bad level", body: "log:\n  level: loud\n", errSubstr: `log.level "loud"`},
		{name: "bad method", body: "render:\n  method: put\n", errSubstr: "render.method"},
		{name: "malformed yaml", body: "output: [\n", errSubstr: "error reading config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.explicit
			if path == "" {
				path = writeConfig(t, tt.body)
			}
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"DOCSCHEMA_OUTPUT":               "output",
		"DOCSCHEMA_SCHEMAS_DIRS":         "schemas_dirs",
		"DOCSCHEMA_RENDER__THEME__NAME":  "render.theme.name",
		"DOCSCHEMA_JSONSCHEMA__BASE_URI": "jsonschema.base_uri",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), "envKey(%q)", in)
	}
}
