package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/sclangfmt/internal/configloader"
	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
	_ "github.com/yaklabco/sclangfmt/pkg/format/rules" // Register built-in rules
	"github.com/yaklabco/sclangfmt/pkg/parser/sclang"
	"github.com/yaklabco/sclangfmt/pkg/reporter"
	"github.com/yaklabco/sclangfmt/pkg/runner"
)

// stdinPath names standard input in reports and logs.
const stdinPath = "<stdin>"

type formatFlags struct {
	write        bool
	check        bool
	diff         bool
	phase        string
	indentWidth  int
	tabs         bool
	maxWidth     int
	maxPasses    int
	jobs         int
	ignore       []string
	enable       []string
	disable      []string
	markdown     bool
	noBackups    bool
	outputFormat string
	ruleFormat   string
	showRules    bool
}

func newFormatCommand() *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Format SuperCollider files",
		Long:  formatLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format SuperCollider files.

Directories are searched for .scd and .sc files. Without --write, --check
or --diff the formatted text is printed to stdout. With no paths and piped
standard input, stdin is formatted instead; "-" names stdin explicitly.

Examples:
  sclangfmt format song.scd            # Print formatted song.scd
  sclangfmt format -w .                # Rewrite every file in place
  sclangfmt format --check src/        # Fail if anything would change
  sclangfmt format --diff src/         # Show what would change
  sclangfmt format --tabs x.scd        # Indent with tabs
  cat x.scd | sclangfmt                # Format stdin
  sclangfmt --markdown -w docs/        # Format code fences in Markdown`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the files")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report files that would change and exit 1 if any")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "print a unified diff of the changes")
	cmd.Flags().StringVar(&flags.phase, "phase", "", "rules to run: pre, inline, post, all (default inline)")
	cmd.Flags().IntVar(&flags.indentWidth, "indent-width", 0, "spaces per indentation level (default 4)")
	cmd.Flags().BoolVar(&flags.tabs, "tabs", false, "indent with tabs")
	cmd.Flags().IntVar(&flags.maxWidth, "max-width", 0, "column limit for layout decisions (default 80)")
	cmd.Flags().IntVar(&flags.maxPasses, "max-passes", 0, "maximum passes before giving up (default 10)")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.markdown, "markdown", false, "also format SuperCollider fences in Markdown files")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().StringVar(&flags.outputFormat, "output-format", "", "report format: text, json, diff (default text)")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "",
		"rule identifier format in output: name, id, or combined (default combined)")
	cmd.Flags().BoolVarP(&flags.showRules, "show-rules", "v", false, "list the rules that changed each file")

	setFlagGroup(cmd.Flags(), groupMode, "write", "check", "diff", "phase")
	setFlagGroup(cmd.Flags(), groupLayout, "indent-width", "tabs", "max-width", "max-passes")
	setFlagGroup(cmd.Flags(), groupRules, "enable", "disable")
	setFlagGroup(cmd.Flags(), groupFiles, "ignore", "markdown", "no-backups", "jobs")
	setFlagGroup(cmd.Flags(), groupOutput, "output-format", "rule-format", "show-rules")
}

// validate rejects flag combinations that cannot be honored.
func (f *formatFlags) validate() error {
	if f.write && f.check {
		return usageError("--write and --check cannot be combined")
	}
	if f.write && f.diff {
		return usageError("--write and --diff cannot be combined")
	}
	if f.outputFormat != "" && !config.OutputFormat(f.outputFormat).IsValid() {
		return usageError("unknown output format %q; valid formats: text, json, diff", f.outputFormat)
	}
	switch config.RuleFormat(f.ruleFormat) {
	case "", config.RuleFormatName, config.RuleFormatID, config.RuleFormatCombined:
	default:
		return usageError("unknown rule format %q; valid formats: name, id, combined", f.ruleFormat)
	}
	if f.indentWidth < 0 || f.maxWidth < 0 || f.maxPasses < 0 || f.jobs < 0 {
		return usageError("numeric flags must not be negative")
	}
	return nil
}

// toConfig maps flags to the highest-precedence configuration layer.
// Zero values leave lower layers untouched.
func (f *formatFlags) toConfig() *config.Config {
	cfg := &config.Config{
		Write:        f.write,
		Check:        f.check,
		Diff:         f.diff,
		Phase:        f.phase,
		MaxWidth:     f.maxWidth,
		MaxPasses:    f.maxPasses,
		Jobs:         f.jobs,
		Ignore:       f.ignore,
		EnableRules:  f.enable,
		DisableRules: f.disable,
		NoBackups:    f.noBackups,
		OutputFormat: config.OutputFormat(f.outputFormat),
		RuleFormat:   config.RuleFormat(f.ruleFormat),
	}
	cfg.Indent.Width = f.indentWidth
	if f.tabs {
		cfg.Indent.Style = config.IndentTabs
	}
	cfg.Markdown.Enabled = f.markdown
	return cfg
}

// loadConfig resolves the configuration for the working directory with
// cliCfg on top.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	logger := commandLogger(cmd)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldConfig, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPhase, cfg.Phase,
		logging.FieldIndent, cfg.Indent.Style,
		logging.FieldMaxWidth, cfg.MaxWidth,
		logging.FieldMaxPasses, cfg.MaxPasses,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

func newRunner() *runner.Runner {
	return runner.New(format.NewPipeline(sclang.New(), format.DefaultRegistry))
}

func runFormat(cmd *cobra.Command, args []string, flags *formatFlags) error {
	if err := flags.validate(); err != nil {
		return err
	}

	readStdin := (len(args) == 1 && args[0] == "-") ||
		(len(args) == 0 && isPiped(cmd.InOrStdin()))
	if readStdin && flags.write {
		return usageError("--write cannot be used with standard input")
	}

	cfg, workDir, err := loadConfig(cmd, flags.toConfig())
	if err != nil {
		return err
	}

	logger := commandLogger(cmd)
	ctx := logging.WithLogger(commandContext(cmd), logger)

	var result *runner.Result
	if readStdin {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read standard input: %w", err)
		}
		result, err = newRunner().FormatContent(ctx, stdinPath, content, cfg, cfg.Markdown.Enabled)
		if err != nil {
			return err
		}
	} else {
		opts := runner.OptionsFromConfig(cfg, args)
		opts.WorkingDir = workDir

		logger.Debug("starting format run",
			logging.FieldPaths, opts.Paths,
			logging.FieldWorkingDir, opts.WorkingDir,
			logging.FieldJobs, opts.Jobs,
		)

		result, err = newRunner().Run(ctx, opts)
		if errors.Is(err, runner.ErrNoFiles) {
			logger.Warn("no SuperCollider files found", logging.FieldPaths, args)
			return nil
		}
		if err != nil {
			return fmt.Errorf("format run failed: %w", err)
		}
	}

	if printsFormatted(cfg) {
		if err := writeFormatted(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		for _, file := range result.Files {
			if file.Error != nil {
				logger.Error("format failed", logging.FieldPath, file.Path, logging.FieldError, file.Error)
			}
		}
	} else if err := report(cmd, cfg, workDir, flags.showRules, result); err != nil {
		return err
	}

	return outcomeError(cfg, result)
}

// printsFormatted reports whether the formatted text itself is the output,
// as opposed to a report about it.
func printsFormatted(cfg *config.Config) bool {
	return !cfg.Write && !cfg.Check && !cfg.Diff &&
		(cfg.OutputFormat == "" || cfg.OutputFormat == config.FormatText)
}

// writeFormatted prints the formatted text of every file, in path order.
func writeFormatted(w io.Writer, result *runner.Result) error {
	for _, file := range result.Files {
		if file.Result == nil {
			continue
		}
		if _, err := w.Write(file.Result.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func report(cmd *cobra.Command, cfg *config.Config, workDir string, showRules bool, result *runner.Result) error {
	outputFormat := cfg.OutputFormat
	if cfg.Diff && outputFormat != config.FormatJSON {
		outputFormat = config.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      outputFormat,
		Color:       colorMode(cmd),
		ShowSummary: true,
		ShowRules:   showRules,
		Check:       cfg.Check,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(commandContext(cmd), result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

// outcomeError turns the run's outcome into the command's error, which
// decides the exit code.
func outcomeError(cfg *config.Config, result *runner.Result) error {
	var errs []error
	if cfg.Check && result.HasChanges() {
		errs = append(errs, ErrUnformatted)
	}
	if result.HasErrors() {
		errs = append(errs, ErrFilesFailed)
	}
	return errors.Join(errs...)
}

// isPiped reports whether in is something other than an interactive
// terminal. Readers that are not files are always piped.
func isPiped(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd()))
}
