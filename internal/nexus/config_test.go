package nexus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Host    string        `yaml:"host" env:"NEXUS_TEST_HOST"`
	Port    int           `yaml:"port" env:"NEXUS_TEST_PORT" validate:"gte=1,lte=65535"`
	Timeout time.Duration `yaml:"timeout" env:"NEXUS_TEST_TIMEOUT"`
}

func TestLoaderRejectsNonPointer(t *testing.T) {
	err := NewLoader(WithDotEnv()).Load(testConfig{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeInvalidType, cfgErr.Code)
}

func TestLoaderReadsEnvironmentAndDefaults(t *testing.T) {
	t.Setenv("NEXUS_TEST_PORT", "9090")

	var cfg testConfig
	err := NewLoader(WithDotEnv(), WithDefaults(&testConfig{Host: "localhost", Port: 1, Timeout: 3 * time.Second})).Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoaderValidationFailure(t *testing.T) {
	t.Setenv("NEXUS_TEST_PORT", "0")

	var cfg testConfig
	err := NewLoader(WithDotEnv()).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeValidation, cfgErr.Code)
}

func TestLoaderReadsFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte("host: db.internal\nport: 5000\n"), 0o600))
	t.Setenv("NEXUS_TEST_PORT", "6000")

	var cfg testConfig
	err := NewLoader(WithDotEnv(), WithFileName(file)).Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, 6000, cfg.Port)
}

func TestLoaderMissingFile(t *testing.T) {
	var cfg testConfig
	err := NewLoader(WithDotEnv(), WithFileName("/does/not/exist.yml")).Load(&cfg)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, ErrCodeFileNotFound, cfgErr.Code)
}

func TestLoaderDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("NEXUS_TEST_DOTENV_PORT=7070\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("NEXUS_TEST_DOTENV_PORT") })

	var cfg struct {
		Port int `env:"NEXUS_TEST_DOTENV_PORT"`
	}
	err := NewLoader(WithDotEnv(file, filepath.Join(dir, "missing.env"))).Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}
