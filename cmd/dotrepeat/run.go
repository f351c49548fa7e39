package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/dotrepeat/internal/config"
	"github.com/dshills/dotrepeat/internal/input/vim"
	"github.com/dshills/dotrepeat/internal/insert"
	"github.com/dshills/dotrepeat/internal/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type runOptions struct {
	diff            bool
	format          string
	systemClipboard bool
	trace           bool
	watch           bool
}

func newRunCmd(c *cli) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a scripted editing session",
		Long: `Run a scripted editing session and print the final text.

Examples:
  # Print the final text and state
  dotrepeat run session.yaml

  # Show what changed as a line diff
  dotrepeat run session.yaml --diff

  # Machine-readable result
  dotrepeat run session.yaml --format yaml

  # Re-run whenever the config file changes
  dotrepeat run session.yaml -c dotrepeat.toml --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := script.Load(args[0])
			if err != nil {
				return c.fail(err)
			}
			if opts.format != "text" && opts.format != "yaml" {
				return c.fail(fmt.Errorf("unknown format %q", opts.format))
			}
			if err := c.runOnce(cmd.Context(), sc, opts); err != nil {
				return c.fail(err)
			}
			if !opts.watch {
				return nil
			}
			if c.configPath == "" {
				return c.fail(errors.New("--watch needs --config"))
			}
			return c.watch(cmd.Context(), sc, opts)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.diff, "diff", false, "print a line diff instead of the final text")
	flags.StringVar(&opts.format, "format", "text", "output format: text or yaml")
	flags.BoolVar(&opts.systemClipboard, "system-clipboard", false, "back the + and * registers with the system clipboard")
	flags.BoolVar(&opts.trace, "trace", false, "log a span for every insert session")
	flags.BoolVar(&opts.watch, "watch", false, "re-run the script when the config file changes")
	return cmd
}

func (c *cli) runOnce(ctx context.Context, sc *script.Script, opts runOptions) error {
	runnerOpts := []script.Option{
		script.WithLogger(c.logger.Logger),
		script.WithSettings(c.cfg),
		script.WithAutoIndent(c.cfg.AutoIndent),
		script.WithMaxInsertionCount(c.cfg.MaxInsertionCount),
	}
	if opts.systemClipboard {
		if !vim.SystemClipboardAvailable() {
			return errors.New("no system clipboard available")
		}
		runnerOpts = append(runnerOpts, script.WithClipboard(vim.SystemClipboard{}))
	}
	if opts.trace {
		tp := newTracerProvider(c.logger.Logger)
		defer func() { _ = tp.Shutdown(context.Background()) }()
		runnerOpts = append(runnerOpts, script.WithTracer(tp.Tracer(insert.TracerName)))
	}

	res, runErr := script.NewRunner(runnerOpts...).Run(ctx, sc)
	if res == nil {
		return runErr
	}
	if err := c.print(sc, res, opts); err != nil {
		return err
	}
	return runErr
}

func (c *cli) print(sc *script.Script, res *script.Result, opts runOptions) error {
	if opts.format == "yaml" {
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	}

	if opts.diff {
		fmt.Fprint(c.out, script.Diff(sc.Text, res.Text))
	} else {
		fmt.Fprintln(c.out, res.Text)
	}
	fmt.Fprintln(c.out, "--")
	fmt.Fprintf(c.out, "mode: %s\n", res.Mode)
	for _, p := range res.Cursors {
		fmt.Fprintf(c.out, "cursor: %d:%d\n", p.Line, p.Col)
	}
	names := make([]string, 0, len(res.Registers))
	for name := range res.Registers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(c.out, "register %s: %q\n", name, res.Registers[name])
	}
	return nil
}

func (c *cli) watch(ctx context.Context, sc *script.Script, opts runOptions) error {
	c.logger.Info("watching config", "path", c.configPath)
	return config.NewWatcher(c.configPath).Run(ctx, func(cfg *config.Config, err error) {
		if err != nil {
			c.logger.Warn("config reload failed", "error", err)
			return
		}
		c.cfg = cfg
		if err := c.runOnce(ctx, sc, opts); err != nil {
			fmt.Fprintf(c.errOut, "Error: %v\n", err)
		}
	})
}
