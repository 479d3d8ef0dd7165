package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultResolverConcurrency, cfg.ResolverConfig.Concurrency)
	assert.Equal(t, DefaultProberConcurrency, cfg.ProberConfig.Concurrency)
	assert.Equal(t, []string{"https", "http"}, cfg.ProberConfig.Schemes)
	assert.Equal(t, 3, cfg.ProberConfig.MaxRedirects)
	assert.True(t, cfg.ProberConfig.InsecureSkipVerify)
	assert.True(t, cfg.WildcardConfig.Enabled)
	assert.Equal(t, int64(50), cfg.WildcardConfig.LengthTolerance)
	assert.Len(t, cfg.DiscoveryConfig.Wordlist, 30)
	assert.Equal(t, DefaultSources, cfg.DiscoveryConfig.Sources)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestNewDefaultGlobalConfig_IndependentSlices(t *testing.T) {
	cfg := NewDefaultGlobalConfig()
	cfg.DiscoveryConfig.Wordlist[0] = "changed"

	assert.Equal(t, "www", DefaultWordlist[0])
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, DefaultProberTimeoutSecs, cfg.ProberConfig.TimeoutSecs)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {"log_level": "debug"},
		"resolver_config": {"concurrency": 50, "nameservers": ["1.1.1.1:53"]},
		"wildcard_config": {"enabled": false, "label_prefix": "probe"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 50, cfg.ResolverConfig.Concurrency)
	assert.Equal(t, []string{"1.1.1.1:53"}, cfg.ResolverConfig.Nameservers)
	assert.Equal(t, DefaultResolverTimeoutSecs, cfg.ResolverConfig.TimeoutSecs)
	assert.False(t, cfg.WildcardConfig.Enabled)
	assert.Equal(t, "probe", cfg.WildcardConfig.LabelPrefix)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
prober_config:
  concurrency: 10
  schemes: [http]
discovery_config:
  sources: [crtsh, anubis]
export_config:
  parquet_path: out.parquet
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.ProberConfig.Concurrency)
	assert.Equal(t, []string{"http"}, cfg.ProberConfig.Schemes)
	assert.Equal(t, []string{"crtsh", "anubis"}, cfg.DiscoveryConfig.Sources)
	assert.Equal(t, "out.parquet", cfg.ExportConfig.ParquetPath)
	assert.Equal(t, DefaultExportCompressionCodec, cfg.ExportConfig.CompressionCodec)
}

func TestLoadGlobalConfig_EnvPath(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "custom.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("resolver_config:\n  timeout_secs: 2\n"), 0644))
	t.Setenv(ConfigPathEnv, configFile)

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.ResolverConfig.TimeoutSecs)
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"log_config": {},}`), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
log_config: test
  invalid_indent: value
`
	require.NoError(t, os.WriteFile(configFile, []byte(invalidYAML), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestGetConfigPath_FlagWins(t *testing.T) {
	dir := t.TempDir()
	flagFile := filepath.Join(dir, "flag.yaml")
	envFile := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(flagFile, []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(envFile, []byte("{}"), 0644))
	t.Setenv(ConfigPathEnv, envFile)

	assert.Equal(t, flagFile, GetConfigPath(flagFile))
	assert.Equal(t, envFile, GetConfigPath(""))
}
