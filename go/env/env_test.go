package env_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kodekoding/slackmate/go/env"
)

func TestSetFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nSLACKMATE_KEY1=value1\n\nSLACKMATE_KEY2=\"value2\"\nexport SLACKMATE_KEY3=a=b\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("SLACKMATE_KEY1")
		os.Unsetenv("SLACKMATE_KEY2")
		os.Unsetenv("SLACKMATE_KEY3")
	})

	require.NoError(t, env.SetFromEnvFile(path))
	require.Equal(t, "value1", os.Getenv("SLACKMATE_KEY1"))
	require.Equal(t, "value2", os.Getenv("SLACKMATE_KEY2"))
	require.Equal(t, "a=b", os.Getenv("SLACKMATE_KEY3"))
}

func TestSetFromEnvFile_NotExist(t *testing.T) {
	err := env.SetFromEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	require.True(t, os.IsNotExist(err))
}

func TestGet(t *testing.T) {
	t.Setenv("SLACKMATE_GET", "set")
	require.Equal(t, "set", env.Get("SLACKMATE_GET", "fallback"))
	require.Equal(t, "fallback", env.Get("SLACKMATE_GET_UNSET", "fallback"))
}

func TestServiceEnv(t *testing.T) {
	t.Setenv(env.Name, "")
	require.Equal(t, env.DevelopmentEnv, env.ServiceEnv())
	require.True(t, env.IsDevelopment())
	require.False(t, env.IsStaging())

	t.Setenv(env.Name, "staging")
	require.Equal(t, env.StagingEnv, env.ServiceEnv())
	require.False(t, env.IsDevelopment())
	require.True(t, env.IsStaging())

	t.Setenv(env.Name, "production")
	require.Equal(t, env.ProductionEnv, env.ServiceEnv())
	require.True(t, env.IsProduction())
	require.False(t, env.IsLocal())
}

func TestGoVersion(t *testing.T) {
	require.Equal(t, runtime.Version(), env.GoVersion())
}
