package sink

import (
	"bufio"
	"fmt"
	"os"
	"sync"
	"time"
)

const fileFlushInterval = 100 * time.Millisecond

// FileSink writes one line per Append to a file that is truncated on open.
// Writes are buffered and flushed at most every fileFlushInterval and on Close.
type FileSink struct {
	mu   sync.Mutex
	f    *os.File
	w    *bufio.Writer
	path string

	lastFlush time.Time
}

func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open number log: %w", err)
	}
	return &FileSink{f: f, w: bufio.NewWriterSize(f, 64*1024), path: path, lastFlush: time.Now()}, nil
}

func (s *FileSink) Append(line []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.Write(line); err != nil {
		return err
	}
	if time.Since(s.lastFlush) > fileFlushInterval {
		s.lastFlush = time.Now()
		return s.w.Flush()
	}
	return nil
}

func (s *FileSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFlush = time.Now()
	return s.w.Flush()
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ferr := s.w.Flush()
	if err := s.f.Close(); err != nil {
		return err
	}
	return ferr
}

func (s *FileSink) String() string {
	return "file:" + s.path
}
