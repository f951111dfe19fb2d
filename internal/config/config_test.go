package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/sheet-scorer/internal/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"registry": {"29s1": "https://example.com/29s1.json"},
		"band_size": 30,
		"band_labels": ["Physics", "Chemistry", "Maths"],
		"mode": "strict",
		"timeout": "5s",
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://example.com/29s1.json", cfg.Registry["29s1"])
	assert.Equal(t, 30, cfg.BandSize)
	assert.Equal(t, admin.ModeStrict, cfg.ResolutionMode())
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout())
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	cfg, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_Default(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad registry url", func(c *Config) { c.Registry = map[string]string{"29s1": "not a url"} }, "Registry"},
		{"empty registry key", func(c *Config) { c.Registry = map[string]string{"": "https://example.com"} }, "Registry"},
		{"unknown mode", func(c *Config) { c.Mode = "relaxed" }, "Mode"},
		{"negative band size", func(c *Config) { c.BandSize = -1 }, "BandSize"},
		{"empty band label", func(c *Config) { c.BandLabels = []string{"Physics", ""} }, "BandLabels"},
		{"same header rows", func(c *Config) { c.DateRow, c.ShiftRow = 3, 3 }, "must differ"},
		{"bad timeout", func(c *Config) { c.Timeout = "soon" }, "timeout"},
		{"zero timeout", func(c *Config) { c.Timeout = "0s" }, "must be positive"},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "Port"},
		{"missing registry file", func(c *Config) { c.RegistryFile = "/nonexistent/registry.json" }, "registry file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Mode: "strict", BandSize: 20}
	merged := cfg.MergeWithDefaults(Default())

	assert.Equal(t, "strict", merged.Mode)
	assert.Equal(t, 20, merged.BandSize)
	assert.Equal(t, []string{"Physics", "Chemistry", "Mathematics"}, merged.BandLabels)
	assert.Equal(t, 3, merged.DateRow)
	assert.Equal(t, 4, merged.ShiftRow)
	assert.Equal(t, "--", merged.Sentinel)
	assert.Equal(t, 30*time.Second, merged.FetchTimeout())
	assert.Len(t, merged.Registry, len(DefaultRegistry()))
}

func TestResolvedRegistry_MergesFile(t *testing.T) {
	path := writeFile(t, "registry.json", `{"29s1": "https://mirror.example.com/29s1.json", "10s1": "https://example.com/10s1.json"}`)
	cfg := Config{
		Registry:     map[string]string{"29s1": "https://example.com/29s1.json", "29s2": "https://example.com/29s2.json"},
		RegistryFile: path,
	}

	registry, err := cfg.ResolvedRegistry()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"29s1": "https://mirror.example.com/29s1.json",
		"29s2": "https://example.com/29s2.json",
		"10s1": "https://example.com/10s1.json",
	}, registry)
	assert.Equal(t, "https://example.com/29s1.json", cfg.Registry["29s1"], "inline registry is not mutated")
}

func TestResolvedRegistry_RejectsBadFileEntries(t *testing.T) {
	cfg := Config{RegistryFile: writeFile(t, "registry.json", `{"29s1": "nope"}`)}
	_, err := cfg.ResolvedRegistry()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid URL")

	cfg = Config{RegistryFile: writeFile(t, "registry.json", `["29s1"]`)}
	_, err = cfg.ResolvedRegistry()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse registry JSON")
}

func TestDefaultRegistry_FreshCopy(t *testing.T) {
	a := DefaultRegistry()
	a["29s1"] = "mutated"
	assert.NotEqual(t, "mutated", DefaultRegistry()["29s1"])
	assert.Contains(t, DefaultRegistry(), "22s1")
}

func TestBandsAndLayout(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 25, cfg.Bands().Size)
	assert.Equal(t, admin.DefaultLayout(), cfg.HeaderLayout())
	assert.Equal(t, time.Duration(0), (&Config{Timeout: "bogus"}).FetchTimeout())
}
