// Package status implements the status command: a read-only report of every
// repository entry and how it relates to the home directory.
package status

import (
	"github.com/arthur-debert/dotfiles/pkg/commands/internal"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/linkstate"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/paths"
	"github.com/arthur-debert/dotfiles/pkg/ui/confirmations"
	"github.com/arthur-debert/dotfiles/pkg/walker"
	"github.com/rs/zerolog"
)

// Options holds options for the status command
type Options struct {
	DotfilesRoot string
	// HomeDir defaults to the current user's home directory
	HomeDir string
	// Ignore lists names never reported as unmapped
	Ignore []string
	// Confirmer is asked before creating a missing mappings file
	Confirmer confirmations.Confirmer
	// FileSystem allows injecting a filesystem for testing
	FileSystem filesystem.FS
}

// Row is one reported entry.
type Row struct {
	Path  paths.RelativePath
	Entry walker.EntryState
	Link  linkstate.State
}

// Result is the outcome of a status run.
type Result struct {
	DotfilesRoot  string
	HomeDir       string
	ConfigFile    string
	ConfigCreated bool
	Rows          []Row
	Counts        map[linkstate.Kind]int
}

// IsEmpty reports whether there is nothing to show.
func (r *Result) IsEmpty() bool {
	return len(r.Rows) == 0
}

// Run walks the repository and classifies every entry.
func Run(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.status")
	logger.Info().
		Str("dotfiles_root", opts.DotfilesRoot).
		Str("home", opts.HomeDir).
		Msg("Running status")

	defer logging.LogOperationStart(logger, "status")()

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	confirmer := opts.Confirmer
	if confirmer == nil {
		confirmer = confirmations.NewConsoleConfirmer()
	}

	loc, err := paths.ResolveLocations(opts.DotfilesRoot, opts.HomeDir)
	if err != nil {
		return nil, err
	}

	mf, created, err := internal.LoadOrCreate(loc.ConfigFile, confirmer)
	if err != nil {
		return nil, err
	}

	entries, err := walker.Walk(fs, loc.DotfilesRoot, mf.Mappings, walker.Options{Ignore: opts.Ignore})
	if err != nil {
		return nil, err
	}

	result := &Result{
		DotfilesRoot:  loc.DotfilesRoot,
		HomeDir:       loc.HomeDir,
		ConfigFile:    loc.ConfigFile,
		ConfigCreated: created,
		Rows:          make([]Row, 0, len(entries)),
		Counts:        make(map[linkstate.Kind]int),
	}

	classifier := linkstate.NewClassifier(fs, loc.DotfilesRoot, loc.HomeDir)
	for _, entry := range entries {
		state, err := classifier.Classify(entry)
		if err != nil {
			logStatus(logger, result, err)
			return nil, err
		}
		result.Rows = append(result.Rows, Row{Path: entry.Path, Entry: entry.State, Link: state})
		result.Counts[state.Kind]++
	}

	logStatus(logger, result, nil)
	return result, nil
}

func logStatus(logger zerolog.Logger, result *Result, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}
	event.
		Int("entries", len(result.Rows)).
		Int("linked", result.Counts[linkstate.Linked]).
		Int("unlinked", result.Counts[linkstate.Unlinked]).
		Int("conflicts", result.Counts[linkstate.ConflictNoLink]+result.Counts[linkstate.ConflictWrongTarget]).
		Int("invalid", result.Counts[linkstate.Invalid]).
		Int("unmapped", result.Counts[linkstate.Unmapped]).
		Msg("Status complete")
}
