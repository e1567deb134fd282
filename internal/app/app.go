// Package app implements the application layer for kumade.
package app

import (
	"cmp"
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/kumade/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, sched *scheduler.Scheduler, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		logger:       logger,
	}
}

// RunOptions configures a single run.
type RunOptions struct {
	// Dir is the working directory. Empty means the process working directory.
	Dir string
	// File is an explicit task file. Empty means discovery from Dir upward.
	File string
	// Targets are task names or target paths. Empty means the default task.
	Targets []string
	// Config overrides declared config items.
	Config map[string]string
}

// Run loads the task file and executes the requested targets.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	dir, err := workingDir(opts.Dir)
	if err != nil {
		return err
	}

	project, err := a.configLoader.Load(dir, opts.File, opts.Config)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	roots := resolveTargets(project.Tasks, dir, opts.Targets)
	if err := a.scheduler.Run(ctx, project.Tasks, roots); err != nil {
		return zerr.Wrap(err, "run failed")
	}

	a.logger.Debug("run completed")
	return nil
}

// resolveTargets maps targets that are not task names but match a file task's target path to
// that task's name. Anything else is passed through for the resolver to report.
func resolveTargets(registry *domain.Registry, dir string, targets []string) []string {
	roots := make([]string, 0, len(targets))
	for _, target := range targets {
		if _, err := registry.Lookup(target); err == nil {
			roots = append(roots, target)
			continue
		}

		path := target
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if task, ok := registry.LookupTarget(filepath.Clean(path)); ok {
			roots = append(roots, task.Name.String())
			continue
		}

		roots = append(roots, target)
	}
	return roots
}

// ListOptions configures the task listing.
type ListOptions struct {
	Dir  string
	File string
	// All includes tasks without help text.
	All bool
}

// Listing is the content of the task listing.
type Listing struct {
	Path    string
	Default string
	Config  []domain.ConfigItem
	Tasks   []domain.Task
}

// ListTasks loads the task file and returns its config items and tasks.
// Tasks with help text come first, then tasks are ordered by name.
func (a *App) ListTasks(opts ListOptions) (*Listing, error) {
	dir, err := workingDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	project, err := a.configLoader.Load(dir, opts.File, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	listing := &Listing{
		Path:   project.Path,
		Config: slices.Collect(project.Config.Items()),
	}
	if name, ok := project.Tasks.DefaultTask(); ok {
		listing.Default = name.String()
	}

	for task := range project.Tasks.Tasks() {
		if task.Help == "" && !opts.All {
			continue
		}
		listing.Tasks = append(listing.Tasks, task)
	}

	slices.SortFunc(listing.Tasks, func(a, b domain.Task) int {
		aHelp, bHelp := a.Help != "", b.Help != ""
		if aHelp != bHelp {
			if aHelp {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name.String(), b.Name.String())
	})

	return listing, nil
}

func workingDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "failed to get working directory")
	}
	return cwd, nil
}
