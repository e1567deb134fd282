package app_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kumade/internal/adapters/logger"
	"go.trai.ch/kumade/internal/adapters/telemetry"
	"go.trai.ch/kumade/internal/adapters/telemetry/progrock"
	"go.trai.ch/kumade/internal/app"
	"go.trai.ch/kumade/internal/core/domain"
	"go.trai.ch/kumade/internal/core/ports/mocks"
	"go.trai.ch/kumade/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app    *app.App
	loader *mocks.MockConfigLoader
	fs     *mocks.MockFileSystem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		fs:     mocks.NewMockFileSystem(ctrl),
	}

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	sched := scheduler.NewScheduler(f.fs, progrock.New(), telemetry.NewNoOpTracer(), log)
	f.app = app.New(f.loader, sched, log)
	return f
}

func newProject(t *testing.T, dir string, declare func(reg *domain.Registry)) *domain.Project {
	t.Helper()

	project := &domain.Project{
		Path:   filepath.Join(dir, "Kumadefile.yaml"),
		Dir:    dir,
		Tasks:  domain.NewRegistry(),
		Config: domain.NewConfigRegistry(),
		Values: map[string]string{},
	}
	declare(project.Tasks)
	return project
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	var ran []string
	record := func(name string) domain.Action {
		return func(context.Context) error {
			ran = append(ran, name)
			return nil
		}
	}

	project := newProject(t, "/work", func(reg *domain.Registry) {
		require.NoError(t, reg.DeclareActionTask("build", record("build"), "fmt"))
		require.NoError(t, reg.DeclareActionTask("fmt", record("fmt")))
	})
	overrides := map[string]string{"mode": "release"}
	f.loader.EXPECT().Load("/work", "", overrides).Return(project, nil)

	err := f.app.Run(context.Background(), app.RunOptions{
		Dir:     "/work",
		Targets: []string{"build"},
		Config:  overrides,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"fmt", "build"}, ran)
}

func TestApp_Run_TargetPath(t *testing.T) {
	f := newFixture(t)
	produced := false

	project := newProject(t, "/work", func(reg *domain.Registry) {
		require.NoError(t, reg.DeclareFileTask("gen", "/work/gen/out.go", func(context.Context) error {
			produced = true
			return nil
		}))
	})
	f.loader.EXPECT().Load("/work", "Kumadefile.yaml", gomock.Nil()).Return(project, nil)
	f.fs.EXPECT().Exists("/work/gen/out.go").DoAndReturn(func(string) (bool, error) {
		return produced, nil
	}).Times(2)

	err := f.app.Run(context.Background(), app.RunOptions{
		Dir:     "/work",
		File:    "Kumadefile.yaml",
		Targets: []string{"gen/out.go"},
	})

	require.NoError(t, err)
	assert.True(t, produced)
}

func TestApp_Run_LoadFailure(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("/work", "", gomock.Any()).Return(nil, domain.ErrTaskfileNotFound)

	err := f.app.Run(context.Background(), app.RunOptions{Dir: "/work"})

	require.ErrorIs(t, err, domain.ErrTaskfileNotFound)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestApp_Run_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	project := newProject(t, "/work", func(reg *domain.Registry) {
		require.NoError(t, reg.DeclareActionTask("build", nil))
	})
	f.loader.EXPECT().Load("/work", "", gomock.Any()).Return(project, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Dir: "/work", Targets: []string{"deploy"}})

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestApp_Run_TaskFailure(t *testing.T) {
	f := newFixture(t)
	cause := errors.New("exit status 2")
	project := newProject(t, "/work", func(reg *domain.Registry) {
		require.NoError(t, reg.DeclareActionTask("test", func(context.Context) error { return cause }))
		require.NoError(t, reg.SetDefault("test"))
	})
	f.loader.EXPECT().Load("/work", "", gomock.Any()).Return(project, nil)

	err := f.app.Run(context.Background(), app.RunOptions{Dir: "/work"})

	require.ErrorIs(t, err, domain.ErrTaskExecutionFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, `run failed: task "test" (step 1) failed: exit status 2`, err.Error())
}

func TestApp_ListTasks(t *testing.T) {
	f := newFixture(t)
	project := newProject(t, "/work", func(reg *domain.Registry) {
		require.NoError(t, reg.Declare(&domain.Task{Name: domain.NewInternedString("zeta"), Help: "Last with help."}))
		require.NoError(t, reg.Declare(&domain.Task{Name: domain.NewInternedString("alpha")}))
		require.NoError(t, reg.Declare(&domain.Task{Name: domain.NewInternedString("build"), Help: "Build it."}))
		require.NoError(t, reg.SetDefault("build"))
	})
	require.NoError(t, project.Config.Add(domain.ConfigItem{Name: "mode", Default: "debug", Help: "Build mode."}))
	f.loader.EXPECT().Load("/work", "", gomock.Nil()).Return(project, nil).Times(2)

	listing, err := f.app.ListTasks(app.ListOptions{Dir: "/work"})
	require.NoError(t, err)
	assert.Equal(t, "build", listing.Default)
	assert.Equal(t, []string{"build", "zeta"}, taskNames(listing))
	require.Len(t, listing.Config, 1)
	assert.Equal(t, "mode", listing.Config[0].Name)

	listing, err = f.app.ListTasks(app.ListOptions{Dir: "/work", All: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "zeta", "alpha"}, taskNames(listing))
}

func taskNames(listing *app.Listing) []string {
	names := make([]string, len(listing.Tasks))
	for i, task := range listing.Tasks {
		names[i] = task.Name.String()
	}
	return names
}

func TestComponents_ConfigureLogging(t *testing.T) {
	log := logger.New()
	var buf bytes.Buffer
	log.SetOutput(&buf)

	components := app.NewComponents(nil, log, progrock.New())

	require.NoError(t, components.ConfigureLogging(true, app.LogFormatText))
	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")

	buf.Reset()
	require.NoError(t, components.ConfigureLogging(false, app.LogFormatJSON))
	log.Info("structured")
	assert.Contains(t, buf.String(), `"msg":"structured"`)

	err := components.ConfigureLogging(false, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")

	require.NoError(t, components.Close())
}
