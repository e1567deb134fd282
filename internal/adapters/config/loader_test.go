package config_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kumade/internal/adapters/config"
	"go.trai.ch/kumade/internal/adapters/fs"
	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newLoader(t *testing.T) (*config.Loader, *mocks.MockExecutor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	executor := mocks.NewMockExecutor(ctrl)

	loader := config.NewLoader(log, executor, fs.NewResolver(fs.NewWalker()))
	loader.SetOutput(io.Discard, io.Discard)
	return loader, executor
}

const projectFile = `
default: build
config:
  mode:
    default: debug
    help: Build mode.
tasks:
  build:
    help: Build the binary.
    deps: [gen, dist]
    cmd: ["go", "build", "-tags", "${mode}", "-o", "dist/app", "."]
    env:
      CGO_ENABLED: "0"
  gen:
    file: gen/out.go
    sources: ["templates/*.tmpl", "schema.json"]
    cmd: ["sh", "-c", "generate"]
  dist:
    directory: dist
  clean:
    help: Remove build output.
    clean: [dist, gen]
`

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Kumadefile.yaml"), projectFile)
	writeFile(t, filepath.Join(dir, "templates", "a.tmpl"), "a")
	writeFile(t, filepath.Join(dir, "templates", "b.tmpl"), "b")

	loader, _ := newLoader(t)
	project, err := loader.Load(dir, "", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Kumadefile.yaml"), project.Path)
	assert.Equal(t, dir, project.Dir)
	assert.Equal(t, map[string]string{"mode": "debug"}, project.Values)
	assert.Equal(t, 1, project.Config.Len())
	assert.Equal(t, []string{"build", "clean", "dist", "gen"}, project.Tasks.AllNames())

	def, ok := project.Tasks.DefaultTask()
	require.True(t, ok)
	assert.Equal(t, "build", def.String())

	build, err := project.Tasks.Lookup("build")
	require.NoError(t, err)
	assert.Equal(t, domain.KindAction, build.Kind)
	assert.Equal(t, "Build the binary.", build.Help)
	assert.Equal(t, []string{"gen", "dist"}, domain.Strings(build.Dependencies))

	gen, err := project.Tasks.Lookup("gen")
	require.NoError(t, err)
	assert.Equal(t, domain.KindFileProduct, gen.Kind)
	assert.Equal(t, filepath.Join(dir, "gen", "out.go"), gen.TargetPath.String())
	assert.Equal(t, []string{
		filepath.Join(dir, "schema.json"),
		filepath.Join(dir, "templates", "a.tmpl"),
		filepath.Join(dir, "templates", "b.tmpl"),
	}, domain.Strings(gen.Sources))

	dist, err := project.Tasks.Lookup("dist")
	require.NoError(t, err)
	assert.Equal(t, domain.KindFileProduct, dist.Kind)
	assert.Equal(t, filepath.Join(dir, "dist"), dist.TargetPath.String())

	byTarget, ok := project.Tasks.LookupTarget(filepath.Join(dir, "gen", "out.go"))
	require.True(t, ok)
	assert.Equal(t, "gen", byTarget.Name.String())
}

func TestLoader_Load_CommandAction(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Kumadefile.yaml"), projectFile)

	loader, executor := newLoader(t)
	project, err := loader.Load(dir, "", map[string]string{"mode": "release"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"mode": "release"}, project.Values)

	executor.EXPECT().Execute(gomock.Any(), domain.Command{
		Args: []string{"go", "build", "-tags", "release", "-o", "dist/app", "."},
		Dir:  dir,
		Env:  map[string]string{"mode": "release", "CGO_ENABLED": "0"},
	}, io.Discard, io.Discard).Return(nil)

	build, err := project.Tasks.Lookup("build")
	require.NoError(t, err)
	require.NoError(t, build.Run(context.Background()))
}

func TestLoader_Load_DirectoryAndCleanActions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Kumadefile.yaml"), projectFile)
	writeFile(t, filepath.Join(dir, "gen", "out.go"), "package gen")

	loader, _ := newLoader(t)
	project, err := loader.Load(dir, "", nil)
	require.NoError(t, err)

	dist, err := project.Tasks.Lookup("dist")
	require.NoError(t, err)
	require.NoError(t, dist.Run(context.Background()))
	assert.DirExists(t, filepath.Join(dir, "dist"))

	clean, err := project.Tasks.Lookup("clean")
	require.NoError(t, err)
	require.NoError(t, clean.Run(context.Background()))
	assert.NoDirExists(t, filepath.Join(dir, "dist"))
	assert.NoDirExists(t, filepath.Join(dir, "gen"))

	require.NoError(t, clean.Run(context.Background()), "cleaning missing paths is not an error")
}

func TestLoader_Load_ExpandsEnvironmentFallback(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	t.Setenv("KUMADE_TEST_OUT", out)
	writeFile(t, filepath.Join(dir, "kumade.yaml"), `
tasks:
  report:
    file: ${KUMADE_TEST_OUT}/report.txt
`)

	loader, _ := newLoader(t)
	project, err := loader.Load(dir, "", nil)
	require.NoError(t, err)

	report, err := project.Tasks.Lookup("report")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "report.txt"), report.TargetPath.String())
}

func TestLoader_Load_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ci", "tasks.yaml"), `
tasks:
  lint:
    cmd: ["golangci-lint", "run"]
`)

	loader, _ := newLoader(t)
	project, err := loader.Load(dir, filepath.Join("ci", "tasks.yaml"), nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ci"), project.Dir)
	assert.Equal(t, []string{"lint"}, project.Tasks.AllNames())
	_, ok := project.Tasks.DefaultTask()
	assert.False(t, ok)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		overrides map[string]string
		wantErr   error
	}{
		{
			name:      "unknown override",
			content:   "config:\n  mode: {default: debug}\n",
			overrides: map[string]string{"target": "arm"},
			wantErr:   domain.ErrUnknownConfigItem,
		},
		{
			name:    "file and directory",
			content: "tasks:\n  x:\n    file: a\n    directory: b\n",
			wantErr: domain.ErrInvalidTask,
		},
		{
			name:    "cmd with clean",
			content: "tasks:\n  x:\n    clean: [a]\n    cmd: [rm, a]\n",
			wantErr: domain.ErrInvalidTask,
		},
		{
			name:    "sources without file",
			content: "tasks:\n  x:\n    sources: [a.c]\n",
			wantErr: domain.ErrInvalidTask,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "Kumadefile.yaml"), tt.content)

			loader, _ := newLoader(t)
			_, err := loader.Load(dir, "", tt.overrides)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Kumadefile.yaml"), "tasks: [not, a, map")

	loader, _ := newLoader(t)
	_, err := loader.Load(dir, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse task file")
}

func TestLoader_Load_MissingExplicitFile(t *testing.T) {
	loader, _ := newLoader(t)
	_, err := loader.Load(t.TempDir(), "nope.yaml", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
