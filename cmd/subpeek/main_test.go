package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sl4desec/subpeek/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.ConfigPathEnv, "")

	var stdout, stderr bytes.Buffer
	cmd := newCLI(&stdout, &stderr).command()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNormalizeDomain(t *testing.T) {
	tests := map[string]string{
		"example.com":      "example.com",
		"  Example.COM.  ": "example.com",
		"sub.example.com.": "sub.example.com",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeDomain(in), "input %q", in)
	}
}

func TestMissingDomain(t *testing.T) {
	stdout, stderr, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s), received 0")
	assert.Contains(t, stderr, "Usage:")
	assert.Empty(t, stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "subpeek version dev\n", stdout)
}

func TestInvalidFlagValueFailsValidation(t *testing.T) {
	stdout, _, err := execute(t, "example.com", "--dns-concurrency", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ResolverConfig.Concurrency")
	assert.Empty(t, stdout)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	stdout, _, err := execute(t, "example.com", "--config", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file does not exist")
	assert.Empty(t, stdout)
}

func TestOptionsApply(t *testing.T) {
	c := newCLI(&bytes.Buffer{}, &bytes.Buffer{})
	cmd := c.command()
	require.NoError(t, cmd.ParseFlags([]string{
		"--dns-concurrency", "10",
		"--http-concurrency", "5",
		"--timeout", "3",
		"--resolvers", "1.1.1.1, 9.9.9.9:53",
		"--sources", "crtsh,anubis",
		"--no-wildcard",
		"--log-level", "debug",
		"--parquet", "out.parquet",
		"--no-progress",
	}))

	cfg := config.NewDefaultGlobalConfig()
	c.opts.apply(cmd.Flags(), cfg)

	assert.Equal(t, 10, cfg.ResolverConfig.Concurrency)
	assert.Equal(t, 5, cfg.ProberConfig.Concurrency)
	assert.Equal(t, 3, cfg.ProberConfig.TimeoutSecs)
	assert.Equal(t, []string{"1.1.1.1", "9.9.9.9:53"}, cfg.ResolverConfig.Nameservers)
	assert.Equal(t, []string{"crtsh", "anubis"}, cfg.DiscoveryConfig.Sources)
	assert.False(t, cfg.WildcardConfig.Enabled)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, "out.parquet", cfg.ExportConfig.ParquetPath)
	assert.Empty(t, cfg.ExportConfig.SQLitePath)
	assert.False(t, cfg.ProgressConfig.EnableProgress)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestOptionsApply_UnsetFlagsKeepConfig(t *testing.T) {
	c := newCLI(&bytes.Buffer{}, &bytes.Buffer{})
	cmd := c.command()
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := config.NewDefaultGlobalConfig()
	cfg.ResolverConfig.Concurrency = 42
	c.opts.apply(cmd.Flags(), cfg)

	assert.Equal(t, 42, cfg.ResolverConfig.Concurrency)
	assert.True(t, cfg.WildcardConfig.Enabled)
}
