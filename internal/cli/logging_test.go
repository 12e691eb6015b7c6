// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/dcadec/internal/config"
)

func TestSetupLogging_StderrOnly(t *testing.T) {
	cm := config.NewManagerWithPaths(afero.NewMemMapFs(), config.StaticPaths{CacheDir: t.TempDir()})
	cfg := cm.Default()
	cfg.LogLevel = "info"

	var stderr bytes.Buffer
	logger, closer, err := setupLogging(cm, cfg, &stderr)
	require.NoError(t, err)
	assert.Nil(t, closer)

	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "msg=shown key=value")
}

func TestSetupLogging_DefaultFileLocation(t *testing.T) {
	cache := t.TempDir()
	cm := config.NewManagerWithPaths(afero.NewMemMapFs(), config.StaticPaths{CacheDir: cache})
	cfg := cm.Default()
	cfg.FileLogging.Enabled = true

	var stderr bytes.Buffer
	logger, closer, err := setupLogging(cm, cfg, &stderr)
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Warn("rotating", "n", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(cache, "logs", "dcadec.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=rotating n=1")
	assert.Contains(t, stderr.String(), "msg=rotating n=1")
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	cm := config.NewManagerWithPaths(afero.NewMemMapFs(), config.StaticPaths{})
	cfg := cm.Default()
	cfg.LogLevel = "shouty"

	_, _, err := setupLogging(cm, cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
