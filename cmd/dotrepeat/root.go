package main

import (
	"fmt"
	"io"

	"github.com/dshills/dotrepeat/internal/config"
	"github.com/dshills/dotrepeat/internal/logging"
	"github.com/spf13/cobra"
)

// cli holds state shared by every subcommand.
type cli struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	logFile    string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *logging.Logger
}

func newRootCmd(out, errOut io.Writer) (*cobra.Command, *cli) {
	c := &cli{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "dotrepeat",
		Short: "Replay Vim-style insert sessions",
		Long: `dotrepeat runs YAML scripts of insert-mode sessions (i, a, o, cw, R, ...)
against an in-memory editor, captures what was typed and replays it with ".".`,
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "config file (.toml, .yaml or .yml)")
	flags.StringVar(&c.logFile, "log-file", "", "write logs to a rotated file instead of stderr")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(newRunCmd(c), newVariantsCmd(c))
	return root, c
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return c.fail(err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = c.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = c.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return c.fail(err)
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return c.fail(err)
	}

	c.cfg = cfg
	c.logger = logging.New(logging.Options{
		Level:  level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Output: c.errOut,
		Keep:   50,
	})
	return nil
}

// fail reports err on stderr and returns it.
func (c *cli) fail(err error) error {
	fmt.Fprintf(c.errOut, "Error: %v\n", err)
	return err
}

func (c *cli) close() {
	if c.logger != nil {
		_ = c.logger.Close()
	}
}
