package executor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	synthfsfs "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"
)

// Persist stores the mapping set. It is called right after a mapping is added.
type Persist func(set *mappings.Set) error

// Status is the outcome of one step.
type Status string

const (
	StatusApplied Status = "applied"
	StatusDryRun  Status = "dry_run"
)

// StepResult records one executed step.
type StepResult struct {
	Change   planner.Change
	Status   Status
	Duration time.Duration
}

// Options contains configuration for the executor
type Options struct {
	DryRun bool
	Logger *zerolog.Logger
	// FS copies trees when a move crosses devices; defaults to the OS filesystem
	FS filesystem.FS
	// Target is the filesystem synthfs operations run against; defaults to
	// the OS filesystem rooted at /
	Target synthfsfs.FullFileSystem
}

// Executor applies plans.
type Executor struct {
	dryRun bool
	logger zerolog.Logger
	fs     filesystem.FS
	target synthfsfs.FullFileSystem
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	target := opts.Target
	if target == nil {
		osfs := synthfsfs.NewOSFileSystem("/")
		target = synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()
	}

	return &Executor{
		dryRun: opts.DryRun,
		logger: logger,
		fs:     fs,
		target: target,
	}
}

// Apply runs the changes of plan in order. AddMapping adds the path to set
// and calls persist before the next step starts. The results of the steps
// that ran are returned even when a later step fails.
func (e *Executor) Apply(ctx context.Context, plan *planner.Plan, set *mappings.Set, persist Persist) ([]StepResult, error) {
	results := make([]StepResult, 0, len(plan.Changes))

	for i, change := range plan.Changes {
		e.logger.Debug().
			Int("step", i+1).
			Str("kind", change.Kind.String()).
			Str("change", change.Describe()).
			Msg("Applying change")

		if e.dryRun {
			e.logger.Info().Str("change", change.Describe()).Msg("Dry run, skipping")
			results = append(results, StepResult{Change: change, Status: StatusDryRun})
			continue
		}

		start := time.Now()
		if err := e.apply(ctx, change, set, persist); err != nil {
			e.logger.Error().
				Err(err).
				Int("step", i+1).
				Str("change", change.Describe()).
				Msg("Change failed")
			return results, errors.Wrapf(err, errors.ErrChangeExecute, "failed while %s", change.Describe()).
				WithDetail("step", i+1).
				WithDetail("kind", change.Kind.String())
		}
		results = append(results, StepResult{
			Change:   change,
			Status:   StatusApplied,
			Duration: time.Since(start),
		})
	}

	e.logger.Info().Int("steps", len(results)).Bool("dryRun", e.dryRun).Msg("Plan applied")
	return results, nil
}

func (e *Executor) apply(ctx context.Context, change planner.Change, set *mappings.Set, persist Persist) error {
	switch change.Kind {
	case planner.AddMapping:
		if err := set.Add(change.Path); err != nil {
			return err
		}
		if persist == nil {
			return nil
		}
		return persist(set)

	case planner.MoveFile:
		return e.run(ctx, change, errors.ErrFileMove, func(ctx context.Context, fs synthfsfs.FileSystem) error {
			if err := fs.MkdirAll(filepath.Dir(change.To), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "could not create directory %s", filepath.Dir(change.To))
			}
			err := fs.Rename(change.From, change.To)
			if filesystem.IsCrossDevice(err) {
				e.logger.Debug().
					Str("from", change.From).
					Str("to", change.To).
					Msg("Rename crosses devices, copying instead")
				return filesystem.Move(e.fs, change.From, change.To)
			}
			return err
		})

	case planner.CreateSymlink:
		return e.run(ctx, change, errors.ErrSymlinkCreate, func(ctx context.Context, fs synthfsfs.FileSystem) error {
			if err := fs.MkdirAll(filepath.Dir(change.From), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "could not create directory %s", filepath.Dir(change.From))
			}
			return fs.Symlink(change.To, change.From)
		})
	}

	return errors.Newf(errors.ErrInternal, "unknown change kind %d", change.Kind)
}

// run executes fn as a single synthfs operation.
func (e *Executor) run(ctx context.Context, change planner.Change, code errors.ErrorCode,
	fn func(ctx context.Context, fs synthfsfs.FileSystem) error) error {
	sfs := synthfs.New()
	id := fmt.Sprintf("%s_%s_%d", change.Kind, filepath.Base(change.From), time.Now().UnixNano())
	op := sfs.CustomOperationWithID(id, fn)

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	result, err := synthfs.RunWithOptions(ctx, e.target, options, op)
	if result != nil {
		e.logOperations(result)
	}
	if err != nil {
		return errors.Wrapf(err, code, "could not complete %s", change.Describe()).
			WithDetail("from", change.From).
			WithDetail("to", change.To)
	}
	return nil
}

func (e *Executor) logOperations(result *synthfs.Result) {
	for _, opResult := range result.GetOperations() {
		if r, ok := opResult.(synthfs.OperationResult); ok {
			e.logger.Trace().
				Str("operationID", string(r.OperationID)).
				Bool("success", r.Status == synthfs.StatusSuccess).
				Dur("duration", r.Duration).
				Msg("synthfs operation finished")
		}
	}
}
