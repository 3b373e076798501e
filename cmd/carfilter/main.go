// Package main provides the CLI interface for carfilter.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sivchari/carfilter/internal/car"
	"github.com/sivchari/carfilter/internal/config"
	"github.com/sivchari/carfilter/internal/filter"
	"github.com/sivchari/carfilter/internal/logger"
	"github.com/sivchari/carfilter/internal/prompt"
	"github.com/sivchari/carfilter/pkg/carfilter"
)

const version = "0.1.0"

// Exit codes.
const (
	exitOK     = 0
	exitError  = 1
	exitSignal = 2
)

var (
	configFile string
	verbose    bool
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "carfilter",
	Short: "Generate a list of cars and filter it by model year",
	Long: `carfilter generates a random list of car records (or loads one from a file)
and selects the cars matching one of four criteria:

- oldest
- not older than YEAR
- youngest
- not younger than YEAR

Matches are either returned normally (mode R) or raised as a match
signal (mode W), which makes the process exit with status 2.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runFilter,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate cars and filter them",
	Args:  cobra.NoArgs,
	RunE:  runFilter,
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Ask for the car count, mode and criterion on the console",
	Args:  cobra.NoArgs,
	RunE:  runInteractive,
}

var versionCmd = &cobra.Command{
	Use:               "version",
	Short:             "Print version information",
	PersistentPreRunE: skipSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "carfilter version %s\n", version)
	},
}

// configCmd and its children load configuration files themselves, so a
// broken file is reported instead of failing setup.
var configCmd = &cobra.Command{
	Use:               "config",
	Short:             "Manage carfilter configuration",
	Long:              "Commands for managing carfilter configuration files",
	PersistentPreRunE: skipSetup,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new carfilter configuration file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		filename := config.DefaultFile

		// Check if file already exists
		if _, err := os.Stat(filename); err == nil && !force {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", filename)
		}

		if err := config.Default().Save(filename); err != nil {
			return err
		}

		logger.Debug("configuration written", "file", filename, "force", force)

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Created %s\n", filename)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := configFile
		if len(args) > 0 {
			filename = args[0]
		}

		loaded, err := config.Load(filename)
		if err == nil {
			err = loaded.Validate()
		}

		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "❌ Configuration validation failed: %v\n", err)

			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Configuration is valid")

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .carfilter.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().Int("count", 0, "number of cars to generate")
		cmd.Flags().String("mode", "", "delivery mode: R (return) or W (match signal)")
		cmd.Flags().String("criterion", "", `criterion: "oldest", "not older than", "youngest" or "not younger than"`)
		cmd.Flags().Int("year", 0, "year for the not older/younger than criteria")
		cmd.Flags().Uint64("seed", 0, "random seed (0 seeds from the clock)")
		cmd.Flags().String("input", "", "read cars from a JSON or YAML file instead of generating them")
		cmd.Flags().String("format", "", "output format (text, json)")
		cmd.Flags().String("output", "", "write the report to a file")
	}

	configInitCmd.Flags().Bool("force", false, "overwrite existing config file")
}

func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		loaded.Verbose = true
	}

	level, err := logger.ParseLevel(loaded.Log.Level)
	if err != nil {
		return err
	}

	if loaded.Verbose {
		level = slog.LevelDebug
	}

	logger.Setup(os.Stderr, level, loaded.Log.Format)

	cfg = loaded

	return nil
}

func skipSetup(_ *cobra.Command, _ []string) error {
	return nil
}

// applyFlags overrides config values with the flags the user set.
func applyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("count") {
		count, _ := flags.GetInt("count")
		cfg.Generator.Count = &count
	}

	if flags.Changed("mode") {
		cfg.Filter.Mode, _ = flags.GetString("mode")
	}

	if flags.Changed("criterion") {
		cfg.Filter.Criterion, _ = flags.GetString("criterion")
	}

	if flags.Changed("year") {
		year, _ := flags.GetInt("year")
		cfg.Filter.Year = &year
	}

	if flags.Changed("seed") {
		cfg.Generator.Seed, _ = flags.GetUint64("seed")
	}

	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}

	if flags.Changed("output") {
		cfg.Output.File, _ = flags.GetString("output")
	}

	return cfg.Validate()
}

func runFilter(cmd *cobra.Command, _ []string) error {
	if err := applyFlags(cmd); err != nil {
		return err
	}

	req, err := carfilter.RequestFromConfig(cfg)
	if err != nil {
		return err
	}

	if input, _ := cmd.Flags().GetString("input"); input != "" {
		logger.Debug("reading cars from file", "file", input)

		req.Source = car.FileSource{Path: input}
	}

	out, flush := reportWriter(cmd)

	engine, err := carfilter.NewEngine(cfg, out)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	_, err = engine.Run(cmd.Context(), req)

	return finish(err, flush)
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	count, err := p.Count()
	if err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}

	out, flush := reportWriter(cmd)

	engine, err := carfilter.NewEngine(cfg, out)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	cars, err := engine.Cars(cmd.Context(), carfilter.Request{Count: count})
	if err != nil {
		return err
	}

	// The listing is only useful on the console the questions are asked on.
	shown := cfg.Output.File == ""
	if shown {
		if err := engine.ShowCars(cars); err != nil {
			return fmt.Errorf("failed to list cars: %w", err)
		}
	}

	sel, err := p.Selection()
	if err != nil {
		return fmt.Errorf("interactive session failed: %w", err)
	}

	_, err = engine.Run(cmd.Context(), carfilter.Request{
		Source:    car.List(cars),
		Criterion: sel.Criterion,
		Mode:      sel.Mode,
		CarsShown: shown,
	})

	return finish(err, flush)
}

// reportWriter returns where the report goes. With an output file the report
// is buffered and flush writes it once the run is over.
func reportWriter(cmd *cobra.Command) (io.Writer, func() error) {
	filename := cfg.Output.File
	if filename == "" {
		return cmd.OutOrStdout(), func() error { return nil }
	}

	var buf bytes.Buffer

	return &buf, func() error {
		if err := os.WriteFile(filename, buf.Bytes(), 0600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}

		logger.Info("report written", "file", filename)

		return nil
	}
}

// finish flushes the report unless the run failed. A match signal still
// carries a complete report.
func finish(runErr error, flush func() error) error {
	if _, ok := carfilter.IsMatchSignal(runErr); runErr != nil && !ok {
		return runErr
	}

	if err := flush(); err != nil {
		return err
	}

	return runErr
}

// exitCode reports err on stderr and maps it to the process exit status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	if signal, ok := carfilter.IsMatchSignal(err); ok {
		logger.Debug("match signal raised", "matched", len(signal.Cars))

		fmt.Fprintf(stderr, "Match signal raised with %d car(s):\n", len(signal.Cars))

		for _, c := range signal.Cars {
			fmt.Fprintf(stderr, "  %s\n", c)
		}

		return exitSignal
	}

	logger.Debug("command failed", "error", err)

	if errors.Is(err, filter.ErrUnknownCriterion) || errors.Is(err, filter.ErrYearRequired) {
		fmt.Fprintf(stderr, "Error: %v\nRun 'carfilter --help' for the list of criteria.\n", err)

		return exitError
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return exitError
}

func main() {
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}
