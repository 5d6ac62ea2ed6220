// Package main is the entry point for the fsextra CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/darkawower/fsextra/internal/config"
	"github.com/darkawower/fsextra/internal/core"
	"github.com/darkawower/fsextra/internal/logging"
	"github.com/darkawower/fsextra/internal/metadata"
	"github.com/darkawower/fsextra/internal/platform"
	"github.com/darkawower/fsextra/internal/platform/stub"
	"github.com/darkawower/fsextra/internal/ui"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile string
	dryRun  bool
	verbose bool
	quiet   bool
	jsonOut bool

	// Global output
	out      *ui.Output
	logger   *zap.Logger
	recorder *stub.FileManager
)

func main() {
	rootCmd := newRootCmd()

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fsextra",
		Short: "Filesystem metadata and file manager helper",
		Long: `fsextra reports whether paths exist, whether they are files or
directories and how many bytes they hold (recursively for directories).
It can also reveal or open a path in the native file manager.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/fsextra/config.toml)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print file manager commands instead of running them")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output and debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print results as JSON")

	rootCmd.AddCommand(
		newInitCmd(),
		newMetadataCmd(),
		newViewCmd(),
		newOpenCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// initOutput initializes the output for cmd.
func initOutput(cmd *cobra.Command) {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && f == os.Stdout {
		out = ui.DefaultOutput()
	} else {
		out = ui.NewOutput(cmd.OutOrStdout())
		out.SetNoColor(true)
	}
	out.SetErrorWriter(cmd.ErrOrStderr())
	out.SetVerbose(verbose)
	out.SetQuiet(quiet)
}

// newEngine loads the config and creates an engine with current flags.
func newEngine() (*core.Engine, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logCfg := logging.Config{
		Level:      cfg.Log.Level,
		Format:     string(cfg.Log.Format),
		OutputPath: cfg.Log.Output,
	}
	if verbose {
		logCfg.Level = "debug"
	}

	logger, err = logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	opts := []core.Option{core.WithLogger(logger)}
	if dryRun {
		recorder = stub.New()
		if cfg.Reveal.Launcher != "" {
			launcher, _ := platform.LauncherFor(platform.Host())
			launcher.Program = cfg.Reveal.Launcher
			recorder.WithLauncher(launcher)
		}
		opts = append(opts, core.WithFileManager(recorder))
	}

	return core.New(cfg, opts...), nil
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput(cmd)

			configPath := cfgFile
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}

			if _, err := os.Stat(configPath); err == nil && !force {
				out.Warning("Configuration already exists at %s", configPath)
				out.Info("Use --force to overwrite")
				return nil
			}

			if err := config.DefaultConfig().Save(configPath); err != nil {
				out.Error("Failed to write config: %v", err)
				return err
			}

			out.Success("fsextra initialized")
			out.Field("Config", shortenPath(configPath))

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	return cmd
}

// newMetadataCmd creates the metadata command.
func newMetadataCmd() *cobra.Command {
	var rawBytes bool

	cmd := &cobra.Command{
		Use:     "metadata PATH...",
		Aliases: []string{"meta", "size"},
		Short:   "Show existence, type and size of paths",
		Long: `Reports whether each path exists, whether it is a file or a directory,
and its size. Directory sizes are the sum of all regular files below them;
symbolic links inside a directory are not followed.

A path that does not exist is reported, not treated as an error. A path that
exists but cannot be read completely fails without a partial size.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput(cmd)

			engine, err := newEngine()
			if err != nil {
				out.ErrorWithHint(err.Error(), "Check the config file or run 'fsextra init'")
				return err
			}

			human := engine.Config().Metadata.Human && !rawBytes

			var spinner *ui.Spinner
			if !jsonOut {
				spinner = ui.NewSpinner(out, "Measuring...")
				spinner.Start()
			}

			reports := engine.MetadataAll(cmd.Context(), args)

			if spinner != nil {
				spinner.Stop()
			}

			if jsonOut {
				if err := printReportsJSON(reports); err != nil {
					return err
				}
			} else {
				printReports(reports, human)
			}

			if s := core.Summarize(reports); s.Failed > 0 {
				return fmt.Errorf("%d of %d paths failed", s.Failed, len(reports))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rawBytes, "bytes", false, "print sizes in bytes")

	return cmd
}

// newViewCmd creates the view command.
func newViewCmd() *cobra.Command {
	var finder bool

	cmd := &cobra.Command{
		Use:     "view PATH",
		Aliases: []string{"reveal"},
		Short:   "Reveal a path in the file manager",
		Long: `Asks the native file manager to show PATH. With --finder (the default)
the path is selected inside its parent folder; with --finder=false it is
opened directly. The file manager is started in the background.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput(cmd)

			engine, err := newEngine()
			if err != nil {
				out.ErrorWithHint(err.Error(), "Check the config file or run 'fsextra init'")
				return err
			}

			useFinder := engine.DefaultFinder()
			if cmd.Flags().Changed("finder") {
				useFinder = finder
			}

			return runView(engine, args[0], useFinder)
		},
	}

	cmd.Flags().BoolVar(&finder, "finder", true, "select the path in its folder instead of opening it")

	return cmd
}

// newOpenCmd creates the open command.
func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open PATH",
		Short: "Open a path with its default application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput(cmd)

			engine, err := newEngine()
			if err != nil {
				out.ErrorWithHint(err.Error(), "Check the config file or run 'fsextra init'")
				return err
			}

			return runView(engine, args[0], false)
		},
	}
}

func runView(engine *core.Engine, path string, finder bool) error {
	if err := engine.View(path, finder); err != nil {
		out.Error("Failed to open file manager: %v", err)
		return err
	}

	if dryRun {
		for _, line := range recorder.Commands() {
			out.Info("Would run: %s", line)
		}
		return nil
	}

	if finder {
		out.Success("Revealed %s", shortenPath(path))
	} else {
		out.Success("Opened %s", shortenPath(path))
	}
	return nil
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			initOutput(cmd)
			out.Print("fsextra version %s", version)
		},
	}
}

// jsonReport is the JSON shape of one metadata report.
type jsonReport struct {
	Path string `json:"path"`
	metadata.Result
	Error string `json:"error,omitempty"`
}

func toJSONReports(reports []core.PathReport) []jsonReport {
	result := make([]jsonReport, len(reports))
	for i, r := range reports {
		result[i] = jsonReport{Path: r.Path, Result: r.Result}
		if r.Err != nil {
			result[i].Error = r.Err.Error()
		}
	}
	return result
}

// printReportsJSON prints a bare result for a single successful path and a
// list of reports otherwise.
func printReportsJSON(reports []core.PathReport) error {
	if len(reports) == 1 && !reports[0].Failed() {
		return out.JSON(reports[0].Result)
	}
	for _, r := range reports {
		if r.Failed() {
			out.Error("%s: %v", r.Path, r.Err)
		}
	}
	return out.JSON(toJSONReports(reports))
}

func printReports(reports []core.PathReport, human bool) {
	if len(reports) == 1 {
		printReport(reports[0], human)
		return
	}

	headers := []string{"Path", "Type", "Size"}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, reportRow(r, human))
	}

	out.Print("")
	out.Table(headers, rows)
	out.Print("")

	summary := core.Summarize(reports)
	out.Field("Total", ui.FormatSize(summary.Total, human))
	if summary.Missing > 0 {
		out.Field("Missing", fmt.Sprint(summary.Missing))
	}

	for _, r := range reports {
		if r.Failed() {
			out.Error("%s: %v", r.Path, r.Err)
		}
	}
}

func printReport(r core.PathReport, human bool) {
	if r.Failed() {
		out.Error("Failed to read %s: %v", r.Path, r.Err)
		return
	}

	if !r.Result.IsExist {
		out.Warning("%s does not exist", shortenPath(r.Path))
		return
	}

	out.Print("")
	out.Field("Path", shortenPath(r.Path))
	out.FieldColored("Type", string(core.KindOf(r.Result)), kindColor(core.KindOf(r.Result)))
	out.Field("Size", ui.FormatSize(r.Result.Size, human))
	out.Print("")
}

func reportRow(r core.PathReport, human bool) []string {
	path := shortenPath(r.Path)
	switch {
	case r.Failed():
		return []string{path, "error", "-"}
	case !r.Result.IsExist:
		return []string{path, string(core.KindMissing), "-"}
	default:
		return []string{path, string(core.KindOf(r.Result)), ui.FormatSize(r.Result.Size, human)}
	}
}

func kindColor(k core.Kind) string {
	switch k {
	case core.KindDirectory:
		return ui.Blue
	case core.KindFile:
		return ui.Green
	default:
		return ui.Yellow
	}
}

// shortenPath shortens a path for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) && len(path) > len(home) {
		return "~" + path[len(home):]
	}
	return path
}
