// Package add implements the add command: bring one path under management
// by recording it as a mapping, moving it into the repository when it only
// lives in home, and linking it back from home.
package add

import (
	"context"
	"os"

	"github.com/arthur-debert/dotfiles/pkg/commands/internal"
	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/executor"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	"github.com/arthur-debert/dotfiles/pkg/paths"
	"github.com/arthur-debert/dotfiles/pkg/planner"
	"github.com/arthur-debert/dotfiles/pkg/ui/confirmations"
	"github.com/rs/zerolog"
)

// ContinuePrompt is the question asked before a plan is applied.
const ContinuePrompt = "Continue?"

// Options holds options for the add command
type Options struct {
	DotfilesRoot string
	HomeDir      string
	// Path is the file or directory to add, relative to Cwd unless absolute
	Path string
	// Cwd defaults to the process working directory
	Cwd string
	// AssumeYes answers every question with yes
	AssumeYes bool
	// DryRun shows the plan without applying it
	DryRun bool
	// Confirmer is asked before creating the mappings file and before applying
	Confirmer confirmations.Confirmer
	// Show is called with the plan before confirmation
	Show func(plan *planner.Plan)
	// FileSystem allows injecting a filesystem for testing
	FileSystem filesystem.FS
}

// Result is the outcome of an add run.
type Result struct {
	Candidate     string
	ConfigFile    string
	ConfigCreated bool
	Plan          *planner.Plan
	// Confirmed is set once the user accepted the plan; never in dry-run
	Confirmed bool
	DryRun    bool
	Steps     []executor.StepResult
}

// Run plans and, after confirmation, applies the changes for opts.Path.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")
	logger.Info().
		Str("dotfiles_root", opts.DotfilesRoot).
		Str("path", opts.Path).
		Bool("assume_yes", opts.AssumeYes).
		Bool("dry_run", opts.DryRun).
		Msg("Running add")

	defer logging.LogOperationStart(logger, "add")()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	var confirmer confirmations.Confirmer = confirmations.Always{Answer: true}
	if !opts.AssumeYes {
		confirmer = opts.Confirmer
		if confirmer == nil {
			confirmer = confirmations.NewConsoleConfirmer()
		}
	}

	candidate, err := resolveCandidate(fs, opts.Cwd, opts.Path)
	if err != nil {
		return nil, err
	}

	loc, err := paths.ResolveLocations(opts.DotfilesRoot, opts.HomeDir)
	if err != nil {
		return nil, err
	}

	mf, created, err := internal.LoadOrCreate(loc.ConfigFile, confirmer)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Compute(planner.Input{
		FS:           fs,
		Mappings:     mf.Mappings,
		DotfilesRoot: loc.DotfilesRoot,
		HomeDir:      loc.HomeDir,
		Candidate:    candidate,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		Candidate:     candidate,
		ConfigFile:    loc.ConfigFile,
		ConfigCreated: created,
		Plan:          plan,
		DryRun:        opts.DryRun,
	}

	if opts.Show != nil {
		opts.Show(plan)
	}
	if plan.IsEmpty() {
		logAdd(logger, result, nil)
		return result, nil
	}

	if !opts.DryRun {
		ok, err := confirmer.Confirm(ContinuePrompt, true)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "could not ask for confirmation")
		}
		if !ok {
			logger.Info().Msg("Plan declined")
			logAdd(logger, result, nil)
			return result, nil
		}
		result.Confirmed = true
	}

	ex := executor.New(executor.Options{DryRun: opts.DryRun, FS: fs})
	steps, err := ex.Apply(ctx, plan, mf.Mappings, func(*mappings.Set) error {
		return mf.Save()
	})
	result.Steps = steps
	logAdd(logger, result, err)
	if err != nil {
		return result, err
	}
	return result, nil
}

// resolveCandidate makes path absolute without resolving its last component
// and checks that something, possibly a dangling symlink, exists there.
func resolveCandidate(fs filesystem.FS, cwd, path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "a path to add is required")
	}
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrUserLocation, "could not find location: current directory")
		}
		cwd = wd
	}

	abs, err := paths.AbsNoResolve(cwd, path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "The given path %s does not exist", path).
			WithDetail("path", path)
	}

	exists, err := filesystem.Exists(fs, abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", abs).WithDetail("path", abs)
	}
	if !exists {
		return "", errors.Newf(errors.ErrInvalidInput, "The given path %s does not exist", abs).
			WithDetail("path", abs)
	}
	return abs, nil
}

func logAdd(logger zerolog.Logger, result *Result, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.
		Str("candidate", result.Candidate).
		Int("changes", len(result.Plan.Changes)).
		Int("applied", len(result.Steps)).
		Bool("confirmed", result.Confirmed).
		Bool("dry_run", result.DryRun).
		Msg("Add complete")
}
