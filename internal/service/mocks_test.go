package service

import (
	"context"
	"sync"
	"time"

	"pdf-book-reader/internal/domain"
)

// Mock logger for testing
type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	m.messages = append(m.messages, line)
	m.mu.Unlock()
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	if err == nil {
		m.record("ERROR: " + msg)
		return
	}
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

// manualScheduler queues callbacks until the test fires them.
type manualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
	// leakyStop makes Stop report success without preventing the callback,
	// like a timer that already fired.
	leakyStop bool
}

type manualTask struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
	s       *manualScheduler
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{}
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{delay: d, fn: f, s: s}
	s.tasks = append(s.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	if !t.s.leakyStop {
		t.stopped = true
	}
	return true
}

// FireNext runs the oldest pending callback and reports whether there was one.
func (s *manualScheduler) FireNext() bool {
	s.mu.Lock()
	var next *manualTask
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			next = t
			break
		}
	}
	if next != nil {
		next.fired = true
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}
	next.fn()
	return true
}

// RunAll fires callbacks until none are left.
func (s *manualScheduler) RunAll() int {
	n := 0
	for s.FireNext() {
		n++
	}
	return n
}

func (s *manualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (s *manualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t.delay)
	}
	return out
}

// recordingViewer is a DocumentViewer double that remembers every jump.
type recordingViewer struct {
	mu        sync.Mutex
	jumps     []int
	visible   int
	listeners []func(int)

	pages     int
	loadErr   error
	loaded    *domain.ResourceHandle
	unloads   int
	rendered  []int
	renderErr error
	blockLoad bool
}

func newRecordingViewer(pages int) *recordingViewer {
	return &recordingViewer{pages: pages}
}

func (v *recordingViewer) Load(ctx context.Context, handle *domain.ResourceHandle) (int, error) {
	if v.blockLoad {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loadErr != nil {
		return 0, v.loadErr
	}
	v.loaded = handle
	v.visible = 0
	return v.pages, nil
}

func (v *recordingViewer) Unload() {
	v.mu.Lock()
	v.loaded = nil
	v.unloads++
	v.mu.Unlock()
}

func (v *recordingViewer) JumpToPage(index int) {
	v.mu.Lock()
	v.jumps = append(v.jumps, index)
	v.visible = index
	listeners := append([]func(int){}, v.listeners...)
	v.mu.Unlock()
	for _, fn := range listeners {
		fn(index)
	}
}

func (v *recordingViewer) ReportVisiblePage(index int) {
	v.mu.Lock()
	v.visible = index
	listeners := append([]func(int){}, v.listeners...)
	v.mu.Unlock()
	for _, fn := range listeners {
		fn(index)
	}
}

func (v *recordingViewer) OnPageChange(fn func(int)) {
	v.mu.Lock()
	v.listeners = append(v.listeners, fn)
	v.mu.Unlock()
}

func (v *recordingViewer) RenderPage(ctx context.Context, index int) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.renderErr != nil {
		return nil, v.renderErr
	}
	v.rendered = append(v.rendered, index)
	return []byte("\x89PNG"), nil
}

func (v *recordingViewer) Jumps() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]int(nil), v.jumps...)
}
