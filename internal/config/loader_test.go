package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuzuminami/Collatz/internal/collatz"
)

func TestLoadConfig_Default(t *testing.T) {
	// No collatz.yaml in the working directory
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	// Should return default values
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, collatz.DefaultMaxSteps, cfg.Limits.MaxSteps)
	assert.Equal(t, DefaultRequestsPerMinute, cfg.Limits.RequestsPerMinute)
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `server:
  port: 8080
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, DefaultConfigFile), []byte(configContent), 0o644))
	t.Chdir(tmpDir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_ValidFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configContent := `server:
  host: 127.0.0.1
  port: 8080
  debug: true
limits:
  max_steps: 500
  requests_per_minute: 10
`
	path := filepath.Join(tmpDir, "collatz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 500, cfg.Limits.MaxSteps)
	assert.Equal(t, 10, cfg.Limits.RequestsPerMinute)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// Only set the port, rest should keep defaults
	configContent := `server:
  port: 9000
`
	path := filepath.Join(tmpDir, "collatz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configContent), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, collatz.DefaultMaxSteps, cfg.Limits.MaxSteps)
	assert.Equal(t, DefaultRequestsPerMinute, cfg.Limits.RequestsPerMinute)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "collatz.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`server: [`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name: "empty host",
			content: `server:
  host: ""
`,
			field: "server.host",
		},
		{
			name: "negative port",
			content: `server:
  port: -1
`,
			field: "server.port",
		},
		{
			name: "port too large",
			content: `server:
  port: 70000
`,
			field: "server.port",
		},
		{
			name: "zero max_steps",
			content: `limits:
  max_steps: 0
`,
			field: "limits.max_steps",
		},
		{
			name: "negative requests_per_minute",
			content: `limits:
  requests_per_minute: -5
`,
			field: "limits.requests_per_minute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "collatz.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestApplyEnv_Overrides(t *testing.T) {
	t.Setenv(EnvHost, "127.0.0.1")
	t.Setenv(EnvPort, "8123")
	t.Setenv(EnvDebug, "true")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
}

func TestApplyEnv_Unset(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDebug, "")

	cfg := DefaultConfig()
	require.NoError(t, ApplyEnv(&cfg))

	// Empty variables leave defaults alone
	assert.Equal(t, DefaultHost, cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
}

func TestApplyEnv_InvalidPort(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")

	cfg := DefaultConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "COLLATZ_PORT")
}

func TestApplyEnv_InvalidDebug(t *testing.T) {
	t.Setenv(EnvDebug, "maybe")

	cfg := DefaultConfig()
	err := ApplyEnv(&cfg)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "COLLATZ_DEBUG")
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{
			name: "defaults",
			cfg:  DefaultServerConfig(),
			want: "0.0.0.0:5000",
		},
		{
			name: "loopback",
			cfg:  ServerConfig{Host: "127.0.0.1", Port: 8080},
			want: "127.0.0.1:8080",
		},
		{
			name: "ipv6",
			cfg:  ServerConfig{Host: "::1", Port: 5000},
			want: "[::1]:5000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.Addr())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	ve := ValidationError{Field: "test.field", Message: "must be valid"}
	assert.Equal(t, "validation error: test.field: must be valid", ve.Error())
}

func TestIsValidationError(t *testing.T) {
	t.Parallel()

	ve := ValidationError{Field: "test", Message: "test"}
	assert.True(t, IsValidationError(ve))
	assert.False(t, IsValidationError(os.ErrNotExist))
}
