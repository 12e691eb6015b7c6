// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ik5/dcadec/formats/dca"
	"github.com/ik5/dcadec/internal/config"
)

const Version = "0.1.0"

// CLI represents the command-line interface
type CLI struct {
	rootCmd       *cobra.Command
	fs            afero.Fs
	configManager *config.Manager

	// set by the root command before any subcommand runs
	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer
}

// New creates a CLI reading and writing files through fs
func New(fs afero.Fs) *CLI {
	return NewWithConfigManager(fs, config.NewManager(fs))
}

// NewWithConfigManager is New with a custom configuration manager
func NewWithConfigManager(fs afero.Fs, cm *config.Manager) *CLI {
	c := &CLI{
		fs:            fs,
		configManager: cm,
	}

	rootCmd := &cobra.Command{
		Use:           "dcadec",
		Short:         "DTS Coherent Acoustics decoder",
		Long:          "dcadec decodes DTS audio, raw or wrapped in WAV files, into 16-bit PCM.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.prepare(cmd)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file, rotated")
	rootCmd.PersistentFlags().String("core", "", "Decoding core to use")
	rootCmd.PersistentFlags().Float64("gain", 0, "Level multiplier applied by the core")
	rootCmd.PersistentFlags().Bool("no-dynrng", false, "Disable dynamic range compression")
	rootCmd.PersistentFlags().Bool("no-level-adjust", false, "Do not ask the core to apply the gain")

	rootCmd.AddCommand(
		c.newInfoCommand(),
		c.newDecodeCommand(),
		c.newPlayCommand(),
		c.newVersionCommand(),
	)

	c.rootCmd = rootCmd
	return c
}

// Run executes the command line in args (program name first) and returns
// the process exit code.
func (c *CLI) Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c.rootCmd.SetArgs(args[1:])
	c.rootCmd.SetOut(stdout)
	c.rootCmd.SetErr(stderr)

	defer func() {
		if c.closer != nil {
			c.closer.Close()
			c.closer = nil
		}
	}()

	if err := c.rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if c.logger != nil {
			c.logger.Error("command failed", "error", err)
		}
		return 1
	}
	return 0
}

// prepare loads configuration and sets up logging
func (c *CLI) prepare(cmd *cobra.Command) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, closer, err := setupLogging(c.configManager, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	c.logger = logger
	c.closer = closer

	c.logger.Debug("configuration ready",
		"command", cmd.Name(),
		"core", cfg.Core,
		"log_level", cfg.LogLevel,
		"gain", cfg.Gain)
	return nil
}

// loadConfig loads configuration from file, applies environment and
// command line overrides, and validates the result
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	var cfg *config.Config
	var err error
	if path, _ := flags.GetString("config"); path != "" {
		cfg, err = c.configManager.LoadFromFile(path)
	} else {
		cfg, err = c.configManager.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	cfg = c.configManager.ApplyEnvironmentOverrides(cfg)

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		name, _ := flags.GetString("log-file")
		if cfg.FileLogging == nil {
			cfg.FileLogging = c.configManager.Default().FileLogging
		}
		cfg.FileLogging.Enabled = name != ""
		cfg.FileLogging.Filename = name
	}
	if flags.Changed("core") {
		cfg.Core, _ = flags.GetString("core")
	}
	if flags.Changed("gain") {
		cfg.Gain, _ = flags.GetFloat64("gain")
	}
	if off, _ := flags.GetBool("no-dynrng"); off {
		cfg.DynamicRange = false
	}
	if off, _ := flags.GetBool("no-level-adjust"); off {
		cfg.LevelAdjust = false
	}

	if err := c.configManager.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveCore returns the factory registered as name
func resolveCore(name string) (dca.CoreFactory, error) {
	if f, ok := dca.LookupCore(name); ok {
		return f, nil
	}

	available := "none"
	if names := dca.Cores(); len(names) > 0 {
		available = strings.Join(names, ", ")
	}
	return nil, fmt.Errorf("%w: core %q (available: %s)", dca.ErrNoCore, name, available)
}

// openSession opens path and starts a decoding session on it. The session
// owns the file.
func (c *CLI) openSession(path string) (*dca.Session, error) {
	factory, err := resolveCore(c.cfg.Core)
	if err != nil {
		return nil, err
	}

	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}

	s, err := dca.Open(f, factory, c.cfg.DecoderOptions(c.logger.With("file", path))...)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (c *CLI) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// version needs neither configuration nor logging
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("dcadec version %s\n", Version)
			if cores := dca.Cores(); len(cores) > 0 {
				cmd.Printf("cores: %s\n", strings.Join(cores, ", "))
			} else {
				cmd.Println("cores: none (build with -tags libdca)")
			}
		},
	}
}
