package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/sclangfmt/internal/logging"
	"github.com/yaklabco/sclangfmt/pkg/config"
	"github.com/yaklabco/sclangfmt/pkg/format"
	"github.com/yaklabco/sclangfmt/pkg/fsutil"
	"github.com/yaklabco/sclangfmt/pkg/mdfence"
)

// Runner formats files with a format.Pipeline.
type Runner struct {
	Pipeline *format.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *format.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and formats them concurrently, each
// in its own Document. With opts.Config.Write set, changed files are
// written back. One file failing does not stop the others; its error is
// recorded in its FileOutcome. Outcomes are sorted by path.
//
// ErrNoFiles is returned with an empty result when nothing was found.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.effectiveConfig()

	fmtOpts, err := format.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, ErrNoFiles
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	job := fileJob{
		opts:     fmtOpts,
		cfg:      cfg,
		backups:  fsutil.BackupConfigFrom(cfg),
		markdown: opts.Markdown,
	}

	outcomes := make([]FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = r.processFile(ctx, path, job)
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}

	logging.FromContext(ctx).Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesFailed, result.Stats.FilesErrored)

	return result, nil
}

// fileJob is the per-run state shared by every file.
type fileJob struct {
	opts     format.Options
	cfg      *config.Config
	backups  fsutil.BackupConfig
	markdown bool
}

func (r *Runner) processFile(ctx context.Context, path string, job fileJob) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldPath, path)
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Original = content

	outcome.Markdown = job.markdown && IsMarkdownPath(path)
	if !r.formatInto(ctx, &outcome, content, job) {
		return outcome
	}

	if job.cfg.Write && outcome.Result.Changed {
		backedUp, err := fsutil.WriteFormatted(ctx, info, outcome.Result.Output, job.backups)
		outcome.BackedUp = backedUp
		if err != nil {
			outcome.Error = err
			return outcome
		}
		outcome.Written = true
		logger.Debug("file written")
	}

	return outcome
}

// FormatContent formats content that did not come from a file, such as
// standard input. With markdown set, only SuperCollider fences are
// formatted. Nothing is written; a formatting failure is recorded in the
// single FileOutcome of the result.
func (r *Runner) FormatContent(ctx context.Context, path string, content []byte, cfg *config.Config, markdown bool) (*Result, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	fmtOpts, err := format.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	outcome := FileOutcome{Path: path, Original: content, Markdown: markdown}
	r.formatInto(ctx, &outcome, content, fileJob{opts: fmtOpts, cfg: cfg, markdown: markdown})

	result := &Result{}
	result.Stats.FilesDiscovered = 1
	result.accumulate(outcome)
	return result, nil
}

// formatInto fills outcome.Result, or outcome.Error on failure, and
// reports whether formatting succeeded.
func (r *Runner) formatInto(ctx context.Context, outcome *FileOutcome, content []byte, job fileJob) bool {
	var err error
	if outcome.Markdown {
		outcome.Result, outcome.Fences, err = r.formatMarkdown(ctx, outcome.Path, content, job)
		logging.FromContext(ctx).Debug("markdown fences",
			logging.FieldPath, outcome.Path,
			logging.FieldFences, outcome.Fences)
	} else {
		outcome.Result, err = r.Pipeline.Run(ctx, outcome.Path, content, job.opts)
	}
	if err != nil {
		outcome.Error = fmt.Errorf("format %s: %w", outcome.Path, err)
		outcome.Result = nil
		return false
	}

	if !outcome.Result.Converged {
		logging.FromContext(ctx).Warn("formatting did not settle",
			logging.FieldPath, outcome.Path,
			logging.FieldPasses, outcome.Result.Passes)
	}
	return true
}

// formatMarkdown formats every SuperCollider fence of a Markdown document
// and folds the per-fence results into one.
func (r *Runner) formatMarkdown(ctx context.Context, path string, content []byte, job fileJob) (*format.Result, int, error) {
	combined := &format.Result{Path: path, Converged: true}

	fn := func(ctx context.Context, block mdfence.Block, code []byte) ([]byte, error) {
		res, err := r.Pipeline.Run(ctx, fmt.Sprintf("%s:%d", path, block.Line), code, job.opts)
		if err != nil {
			return nil, err
		}
		combined.Passes = max(combined.Passes, res.Passes)
		combined.Converged = combined.Converged && res.Converged
		combined.Rules = addRuleStats(combined.Rules, res.Rules)
		return res.Output, nil
	}

	md, err := mdfence.Format(ctx, content, job.cfg.Markdown.Languages, fn)
	if err != nil {
		return nil, 0, err
	}

	combined.Output = md.Output
	combined.Changed = md.Changed > 0
	return combined, md.Blocks, nil
}

// addRuleStats sums per-rule statistics of runs that used the same rules.
func addRuleStats(total, add []format.RuleStats) []format.RuleStats {
	if total == nil {
		return append([]format.RuleStats(nil), add...)
	}
	for i := range min(len(total), len(add)) {
		total[i].Add(add[i].ApplyStats)
	}
	return total
}
