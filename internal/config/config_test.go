package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 256, cfg.MaxDepth)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "pretty", cfg.Format)
	assert.Equal(t, "native", cfg.Engine)
	assert.Equal(t, 0, cfg.LogVerbosity)
	assert.Empty(t, cfg.Path)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 256, cfg.ParserOptions().MaxDepth)
}

func TestLoadFileTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".ocl.toml", "max_depth = 64\ncolor = \"off\"\nengine = \"participle\"\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "off", cfg.Color)
	assert.Equal(t, "participle", cfg.Engine)
	assert.Equal(t, "pretty", cfg.Format, "unset keys keep defaults")
	assert.Equal(t, path, cfg.Path)
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".ocl.yaml", "format: json\nlog_verbosity: 2\n")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.LogVerbosity)
	assert.Equal(t, 256, cfg.MaxDepth)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadFileEmptyYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".ocl.yml", "")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	want := Default()
	want.Path = path
	assert.Equal(t, want, cfg)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"bad toml", ".ocl.toml", "max_depth = = 3", "failed to parse TOML"},
		{"unknown toml key", ".ocl.toml", "depth = 3", `unknown key "depth"`},
		{"bad yaml", ".ocl.yaml", "format: [json", "failed to parse YAML"},
		{"unknown yaml key", ".ocl.yaml", "colour: on", "failed to parse YAML"},
		{"bad color", ".ocl.toml", `color = "always"`, `color must be one of auto|on|off, got "always"`},
		{"bad format", ".ocl.yaml", "format: xml", `format must be one of pretty|json|msgpack, got "xml"`},
		{"bad engine", ".ocl.toml", `engine = "yacc"`, `engine must be one of native|participle, got "yacc"`},
		{"negative depth", ".ocl.toml", "max_depth = -1", "max_depth must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := writeFile(t, root, ".ocl.toml", "max_depth = 10\n")

	path, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxDepth)
}

func TestFindPrefersNearestAndTOML(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	writeFile(t, root, ".ocl.toml", "max_depth = 10\n")
	yamlPath := writeFile(t, inner, ".ocl.yaml", "max_depth: 20\n")

	path, ok, err := Find(inner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, yamlPath, path)

	tomlPath := writeFile(t, inner, ".ocl.toml", "max_depth = 30\n")
	path, ok, err = Find(inner)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tomlPath, path)
}

func TestFindIgnoresDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".ocl.toml"), 0o755))
	want := writeFile(t, root, ".ocl.yaml", "color: on\n")

	path, ok, err := Find(root)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, path)
}
