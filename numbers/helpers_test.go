package numbers

import (
	"bytes"
	"errors"
	"log"
	"sync"
)

// memSink records appended lines.
type memSink struct {
	sync.Mutex
	lines  []string
	closed bool
	failAt int // fail the nth append (1-based); 0 never fails
}

func (m *memSink) Append(line []byte) error {
	m.Lock()
	defer m.Unlock()
	if m.failAt > 0 && len(m.lines)+1 == m.failAt {
		return errors.New("disk full")
	}
	m.lines = append(m.lines, string(line))
	return nil
}

func (m *memSink) Close() error {
	m.Lock()
	defer m.Unlock()
	m.closed = true
	return nil
}

func (m *memSink) Lines() []string {
	m.Lock()
	defer m.Unlock()
	return append([]string(nil), m.lines...)
}

// syncBuffer is a bytes.Buffer safe to read while a logger writes to it.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

// newPipeline builds a server with no listener, for driving stages directly.
func newPipeline(sink Sink, status *syncBuffer) *Server {
	cfg := Config{Status: log.New(status, "", 0)}.withDefaults()
	s := &Server{
		cfg:    cfg,
		seen:   NewSeenSet(),
		ingest: NewQueue[Number](),
		logq:   NewQueue[Number](),
		sink:   sink,
		done:   make(chan struct{}),
	}
	s.metrics = newMetrics(s)
	return s
}
