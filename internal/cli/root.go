// Package cli holds the sortable-tree command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pstuifzand/sortable-tree/internal/app"
	"github.com/pstuifzand/sortable-tree/internal/config"
	"github.com/pstuifzand/sortable-tree/internal/dnd"
	"github.com/pstuifzand/sortable-tree/internal/model"
	"github.com/pstuifzand/sortable-tree/internal/printer"
	"github.com/pstuifzand/sortable-tree/internal/storage"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configPath  string
	logLevel    string
	inputFormat string
	output      string
	noColor     bool

	cfg    *config.Config
	logger *logrus.Logger
}

// Execute runs the root command with the process arguments
func Execute() error {
	return New().Execute()
}

// New creates the root command. Without a subcommand it opens the terminal
// UI on the given seed file, or on the demo forest.
func New() *cobra.Command {
	opts := &globalOptions{}
	var debug bool

	cmd := &cobra.Command{
		Use:   "sortable-tree [file]",
		Short: "Reorder and nest tree items by dragging them",
		Long: `Reorder and nest tree items by dragging them.

Seed files can be JSON, YAML, markdown bullets or indented text. Without a
file the demo forest is used. Edits are never written back.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			items, source, err := opts.loadItems(args)
			if err != nil {
				return err
			}

			logFile, err := opts.openLogFile()
			if err != nil {
				return err
			}
			if logFile != nil {
				defer logFile.Close()
				opts.logger.SetOutput(logFile)
			} else {
				opts.logger.SetOutput(io.Discard)
			}

			application, err := app.NewApp(items, source, opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			application.SetDebugMode(debug)
			return application.Run()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/sortable-tree/config.toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	flags.StringVarP(&opts.inputFormat, "input-format", "i", "auto", "seed file format: auto, json, yaml, markdown, indented")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format: table, json, yaml, markdown, text")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	cmd.Flags().BoolVar(&debug, "debug", false, "show key events in the status line")

	cmd.AddCommand(
		newFlattenCmd(opts),
		newProjectCmd(opts),
		newDropCmd(opts),
		newRemoveCmd(opts),
		newToggleCmd(opts),
		newCountCmd(opts),
		newShowCmd(opts),
	)
	return cmd
}

// setup loads the configuration and creates the logger
func (o *globalOptions) setup(logOut io.Writer) error {
	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFromFile(o.configPath)
	} else {
		o.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	o.logger = logrus.New()
	o.logger.SetOutput(logOut)
	o.logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level := o.logLevel
	if level == "" {
		level = o.cfg.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	o.logger.SetLevel(lvl)
	return nil
}

// openLogFile opens the configured log file for the terminal UI, which owns
// stderr while it runs.
func (o *globalOptions) openLogFile() (*os.File, error) {
	path, err := o.cfg.LogFilePath()
	if err != nil || path == "" {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	o.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return f, nil
}

// loadItems reads the seed file named by args, or the demo forest
func (o *globalOptions) loadItems(args []string) ([]*model.Item, string, error) {
	format, err := storage.ParseFormat(o.inputFormat)
	if err != nil {
		return nil, "", err
	}

	path := ""
	source := "sample"
	if len(args) > 0 {
		path = args[0]
		source = filepath.Base(path)
	}

	items, err := storage.LoadOrSample(path, format)
	if err != nil {
		return nil, "", err
	}
	o.logger.WithFields(logrus.Fields{"source": source, "format": format}).Debug("forest loaded")
	return items, source, nil
}

// treeOptions returns the configured drag options with flag overrides
func (o *globalOptions) treeOptions(cmd *cobra.Command, indentation int) (dnd.Options, error) {
	opts, err := o.cfg.TreeOptions()
	if err != nil {
		return opts, err
	}
	if cmd.Flags().Changed("indentation") {
		opts.IndentationWidth = indentation
	}
	return opts, nil
}

// printer creates the output printer for cmd
func (o *globalOptions) printer(cmd *cobra.Command) (*printer.Printer, error) {
	format, err := printer.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	p := printer.New(out, format)
	p.NoColor = o.noColor
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		p.RenderMarkdown = true
	} else {
		p.NoColor = true
	}
	return p, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
