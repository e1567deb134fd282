// Package config provides the task file loader for kumade.
package config

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/kumade/internal/adapters/fs"
	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML task file.
type Loader struct {
	logger   ports.Logger
	executor ports.Executor
	resolver *fs.Resolver

	stdout io.Writer
	stderr io.Writer
}

// NewLoader creates a new Loader. Task commands write to the process stdout and stderr.
func NewLoader(logger ports.Logger, executor ports.Executor, resolver *fs.Resolver) *Loader {
	return &Loader{
		logger:   logger,
		executor: executor,
		resolver: resolver,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput redirects the output of task commands.
func (l *Loader) SetOutput(stdout, stderr io.Writer) {
	l.stdout = stdout
	l.stderr = stderr
}

// Load reads the task file and declares its config items and tasks.
func (l *Loader) Load(cwd, file string, overrides map[string]string) (*domain.Project, error) {
	path, err := locate(cwd, file)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read task file"), "path", path)
	}

	var kumadefile Kumadefile
	if err := yaml.Unmarshal(data, &kumadefile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse task file"), "path", path)
	}

	project := &domain.Project{
		Path:   path,
		Dir:    filepath.Dir(path),
		Tasks:  domain.NewRegistry(),
		Config: domain.NewConfigRegistry(),
	}

	for _, name := range slices.Sorted(maps.Keys(kumadefile.Config)) {
		item := kumadefile.Config[name]
		if err := project.Config.Add(domain.ConfigItem{Name: name, Default: item.Default, Help: item.Help}); err != nil {
			return nil, err
		}
	}

	project.Values, err = project.Config.Confirm(overrides)
	if err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(kumadefile.Tasks)) {
		task, err := l.buildTask(project, name, kumadefile.Tasks[name])
		if err != nil {
			return nil, zerr.With(err, "path", path)
		}
		if err := project.Tasks.Declare(task); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if kumadefile.Default != "" {
		if err := project.Tasks.SetDefault(expand(kumadefile.Default, project.Values)); err != nil {
			return nil, err
		}
	}

	l.logger.Debug(fmt.Sprintf("loaded %d tasks from %s", project.Tasks.Len(), path))
	return project, nil
}

// locate returns the absolute path of the task file, discovering it when file is empty.
func locate(cwd, file string) (string, error) {
	if file == "" {
		return Discover(cwd)
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(cwd, file)
	}
	return filepath.Clean(file), nil
}

func (l *Loader) buildTask(project *domain.Project, name string, dto TaskDTO) (*domain.Task, error) {
	if err := validateDTO(name, dto); err != nil {
		return nil, err
	}

	values := project.Values
	task := &domain.Task{
		Name:         domain.NewInternedString(name),
		Kind:         domain.KindAction,
		Dependencies: domain.InternAll(dto.Deps),
		Help:         dto.Help,
	}

	switch {
	case dto.File != "":
		target := resolvePath(project.Dir, dto.File, values)
		task.Kind = domain.KindFileProduct
		task.TargetPath = domain.NewInternedString(target)

		patterns := make([]string, len(dto.Sources))
		for i, source := range dto.Sources {
			patterns[i] = expand(source, values)
		}
		sources, err := l.resolver.ResolveSources(patterns, project.Dir)
		if err != nil {
			return nil, zerr.With(err, "task", name)
		}
		task.Sources = domain.InternAll(sources)

	case dto.Directory != "":
		target := resolvePath(project.Dir, dto.Directory, values)
		task.Kind = domain.KindFileProduct
		task.TargetPath = domain.NewInternedString(target)
		task.Action = func(context.Context) error {
			return fs.MkdirAll(target)
		}
		return task, nil

	case len(dto.Clean) > 0:
		paths := make([]string, len(dto.Clean))
		for i, p := range dto.Clean {
			paths[i] = resolvePath(project.Dir, p, values)
		}
		task.Action = func(context.Context) error {
			return fs.RemoveAll(paths...)
		}
		return task, nil
	}

	if len(dto.Cmd) > 0 {
		task.Action = l.commandAction(project.Dir, dto, values)
	}
	return task, nil
}

// validateDTO rejects field combinations the task kinds cannot express.
func validateDTO(name string, dto TaskDTO) error {
	kinds := 0
	for _, set := range []bool{dto.File != "", dto.Directory != "", len(dto.Clean) > 0} {
		if set {
			kinds++
		}
	}

	switch {
	case kinds > 1:
		return zerr.With(zerr.Wrap(domain.ErrInvalidTask, "file, directory and clean are mutually exclusive"), "task", name)
	case len(dto.Cmd) > 0 && (dto.Directory != "" || len(dto.Clean) > 0):
		return zerr.With(zerr.Wrap(domain.ErrInvalidTask, "cmd cannot be combined with directory or clean"), "task", name)
	case len(dto.Sources) > 0 && dto.File == "":
		return zerr.With(zerr.Wrap(domain.ErrInvalidTask, "sources require a file target"), "task", name)
	}
	return nil
}

func (l *Loader) commandAction(dir string, dto TaskDTO, values map[string]string) domain.Action {
	args := make([]string, len(dto.Cmd))
	for i, arg := range dto.Cmd {
		args[i] = expand(arg, values)
	}

	env := maps.Clone(values)
	if env == nil {
		env = make(map[string]string, len(dto.Env))
	}
	for key, value := range dto.Env {
		env[key] = expand(value, values)
	}

	cmd := domain.Command{Args: args, Dir: dir, Env: env}
	return func(ctx context.Context) error {
		return l.executor.Execute(ctx, cmd, l.stdout, l.stderr)
	}
}

// resolvePath expands p and makes it absolute against dir.
func resolvePath(dir, p string, values map[string]string) string {
	p = expand(p, values)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}

// expand replaces ${name} with the confirmed config value, falling back to the environment.
func expand(s string, values map[string]string) string {
	return os.Expand(s, func(name string) string {
		if value, ok := values[name]; ok {
			return value
		}
		return os.Getenv(name)
	})
}
