package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEnvironmentVariables(t *testing.T) {
	t.Run("loads the file for the environment", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.development"), []byte("BROKER_SESSION_TEST_VALUE=dev\n"), 0o600))
		t.Setenv("BROKER_SESSION_TEST_VALUE", "")
		os.Unsetenv("BROKER_SESSION_TEST_VALUE")

		require.NoError(t, InitEnvironmentVariables(dir, ""))

		value, err := GetEnv("BROKER_SESSION_TEST_VALUE")
		require.NoError(t, err)
		assert.Equal(t, "dev", value)
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		require.NoError(t, InitEnvironmentVariables(t.TempDir(), ProductionEnv))
	})
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BROKER_SESSION_EMPTY", "")

	_, err := GetEnv("BROKER_SESSION_EMPTY")
	require.Error(t, err)

	t.Setenv("BROKER_SESSION_SET", "x")
	value, err := GetEnv("BROKER_SESSION_SET")
	require.NoError(t, err)
	assert.Equal(t, "x", value)
}
