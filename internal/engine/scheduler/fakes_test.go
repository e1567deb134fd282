package scheduler_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.trai.ch/kumade/internal/core/ports"
	"go.trai.ch/kumade/internal/core/ports/mocks"
	"go.trai.ch/kumade/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

// memFS is an in-memory file system driven by a logical clock that ticks once per write.
// Writing an entry bumps the mtime of its parent directory, as on a real file system.
type memFS struct {
	mu    sync.Mutex
	clock int64
	files map[string]time.Time
	dirs  map[string]bool
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string]time.Time), dirs: make(map[string]bool)}
}

func (m *memFS) touch(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.write(path)
}

func (m *memFS) mkdir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	m.write(path)
}

func (m *memFS) write(path string) {
	m.clock++
	now := time.Unix(m.clock, 0)
	m.files[path] = now
	if parent := filepath.Dir(path); m.dirs[parent] {
		m.files[parent] = now
	}
}

func (m *memFS) remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	delete(m.dirs, path)
}

func (m *memFS) IsDir(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok && m.dirs[path], nil
}

func (m *memFS) Exists(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok, nil
}

func (m *memFS) LastModified(path string) (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	modified, ok := m.files[path]
	if !ok {
		return time.Time{}, os.ErrNotExist
	}
	return modified, nil
}

// journal records the order in which actions ran.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(name string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, name)
}

func (j *journal) reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = nil
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type harness struct {
	sched   *scheduler.Scheduler
	logger  *mocks.MockLogger
	vertex  *mocks.MockVertex
	debugMu sync.Mutex
	debug   []string
}

func (h *harness) debugLines() []string {
	h.debugMu.Lock()
	defer h.debugMu.Unlock()
	return append([]string(nil), h.debug...)
}

// newHarness builds a scheduler over fs with permissive telemetry, tracing and logging mocks.
func newHarness(t *testing.T, fs ports.FileSystem) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := &harness{
		logger: mocks.NewMockLogger(ctrl),
		vertex: mocks.NewMockVertex(ctrl),
	}

	recorder := mocks.NewMockTelemetry(ctrl)
	recorder.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.VertexOption) (context.Context, ports.Vertex) {
			return ctx, h.vertex
		}).AnyTimes()
	h.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	h.vertex.EXPECT().Cached().AnyTimes()
	h.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any()).AnyTimes()

	h.logger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		h.debugMu.Lock()
		defer h.debugMu.Unlock()
		h.debug = append(h.debug, msg)
	}).AnyTimes()

	h.sched = scheduler.NewScheduler(fs, recorder, tracer, h.logger)
	return h
}
