// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/formats/dca/dcatest"
	"github.com/ik5/dcadec/formats/wav"
	"github.com/ik5/dcadec/internal/audiotest"
	"github.com/ik5/dcadec/internal/config"
)

func init() {
	dca.RegisterCore("mock", dcatest.New)
}

type testCLI struct {
	*CLI
	fs afero.Fs
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()

	fs := afero.NewMemMapFs()
	cm := config.NewManagerWithPaths(fs, config.StaticPaths{
		ConfigDirs: []string{"/config"},
		CacheDir:   t.TempDir(),
	})
	return &testCLI{CLI: NewWithConfigManager(fs, cm), fs: fs}
}

func (c *testCLI) run(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := c.Run(context.Background(), append([]string{"dcadec"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func (c *testCLI) writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, afero.WriteFile(c.fs, name, data, 0o644))
}

func (c *testCLI) probeOutput(t *testing.T, name string) wav.Info {
	t.Helper()

	f, err := c.fs.Open(name)
	require.NoError(t, err)
	defer f.Close()

	info, err := wav.Probe(f)
	require.NoError(t, err)
	return info
}

func TestNew(t *testing.T) {
	c := New(afero.NewMemMapFs())
	require.NotNil(t, c)
	require.NotNil(t, c.rootCmd)
	assert.Equal(t, "dcadec", c.rootCmd.Use)

	var names []string
	for _, cmd := range c.rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Subset(t, names, []string{"info", "decode", "play", "version"})

	for _, flag := range []string{"config", "log-level", "log-file", "core", "gain", "no-dynrng", "no-level-adjust"} {
		assert.NotNil(t, c.rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	c := newTestCLI(t)

	code, stdout, _ := c.run("version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "dcadec version "+Version)
	assert.Contains(t, stdout, "mock")
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	c := newTestCLI(t)
	c.writeFile(t, "/config/config.json", []byte(`{broken`))

	code, _, _ := c.run("version")
	assert.Equal(t, 0, code)
}

func TestUnknownCommand(t *testing.T) {
	c := newTestCLI(t)

	code, _, stderr := c.run("transmogrify")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unknown command")
}

func TestConfig_FileSelectsCore(t *testing.T) {
	c := newTestCLI(t)
	c.writeFile(t, "/config/config.json", []byte(`{"core": "mock", "log_level": "debug"}`))
	c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(2))

	code, _, stderr := c.run("decode", "/in.dts", "/out.wav")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "configuration ready")
	assert.Contains(t, stderr, "core=mock")
}

func TestConfig_ExplicitFile(t *testing.T) {
	c := newTestCLI(t)
	c.writeFile(t, "/custom.json", []byte(`{"core": "mock"}`))
	c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(2))

	code, _, stderr := c.run("decode", "--config", "/custom.json", "/in.dts", "/out.wav")
	assert.Equal(t, 0, code, stderr)

	code, _, stderr = c.run("decode", "--config", "/missing.json", "/in.dts", "/out.wav")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "error loading config")
}

func TestConfig_EnvironmentCore(t *testing.T) {
	t.Setenv("DCADEC_CORE", "mock")

	c := newTestCLI(t)
	c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(2))

	code, _, stderr := c.run("decode", "/in.dts", "/out.wav")
	assert.Equal(t, 0, code, stderr)
}

func TestConfig_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("DCADEC_CORE", "nonexistent")

	c := newTestCLI(t)
	c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(2))

	code, _, stderr := c.run("decode", "--core", "mock", "/in.dts", "/out.wav")
	assert.Equal(t, 0, code, stderr)
}

func TestConfig_InvalidFlagValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero gain", []string{"--gain", "0"}, "gain must be positive"},
		{"log level", []string{"--log-level", "chatty"}, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(1))

			args := append([]string{"info"}, tt.args...)
			code, _, stderr := c.run(append(args, "/in.dts")...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestLogFile(t *testing.T) {
	c := newTestCLI(t)
	c.writeFile(t, "/in.dts", audiotest.Stereo48k.Stream(2))

	logPath := filepath.Join(t.TempDir(), "logs", "dcadec.log")

	code, _, stderr := c.run("decode", "--core", "mock", "--log-level", "info",
		"--log-file", logPath, "/in.dts", "/out.wav")
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "opened DTS stream")
	assert.Contains(t, string(data), "file=/in.dts")
	assert.Contains(t, stderr, "opened DTS stream", "stderr also gets the records")
}

func TestResolveCore(t *testing.T) {
	f, err := resolveCore("mock")
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = resolveCore("nonexistent")
	require.ErrorIs(t, err, dca.ErrNoCore)
	assert.Contains(t, err.Error(), "mock")
}
