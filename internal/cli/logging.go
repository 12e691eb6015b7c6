// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ik5/dcadec/internal/config"
)

// setupLogging builds the logger for one run: text records on stderr,
// tee'd into a rotating log file when file logging is enabled. The
// returned closer, if any, releases the file.
func setupLogging(cm *config.Manager, cfg *config.Config, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	writers := []io.Writer{stderr}
	var closer io.Closer

	if fl := cfg.FileLogging; fl != nil && fl.Enabled {
		path := cm.ResolveLogFilePath(fl.Filename)

		// lumberjack writes through the OS, not through afero
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		fileWriter := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    fl.MaxSizeMB,
			MaxBackups: fl.MaxBackups,
			MaxAge:     fl.MaxAgeDays,
			Compress:   fl.Compress,
		}
		writers = append(writers, fileWriter)
		closer = fileWriter
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)

	logger.Debug("logging setup completed",
		"level", level.String(),
		"writers", len(writers),
		"file_enabled", closer != nil)

	return logger, closer, nil
}
