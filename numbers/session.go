package numbers

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"sync"
)

// Session is one client connection. The server keeps track of every live session
// so that shutdown can close sockets whose reads would otherwise block forever.
type Session struct {
	c    net.Conn
	addr string

	closeOnce sync.Once
}

func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		sess.c.Close()
	})
}

// sessions is the set of live connections.
type sessions struct {
	sync.Mutex
	m map[*Session]struct{}
}

func (ss *sessions) add(sess *Session) {
	ss.Lock()
	defer ss.Unlock()
	if ss.m == nil {
		ss.m = map[*Session]struct{}{}
	}
	ss.m[sess] = struct{}{}
}

func (ss *sessions) remove(sess *Session) {
	ss.Lock()
	defer ss.Unlock()
	delete(ss.m, sess)
}

func (ss *sessions) closeAll() int {
	ss.Lock()
	open := make([]*Session, 0, len(ss.m))
	for sess := range ss.m {
		open = append(open, sess)
	}
	ss.Unlock()

	for _, sess := range open {
		sess.Close()
	}
	return len(open)
}

func (ss *sessions) Len() int {
	ss.Lock()
	defer ss.Unlock()
	return len(ss.m)
}

func (s *Server) handleConn(sess *Session) {
	defer func() {
		sess.Close()
		s.sessions.remove(sess)
		s.metrics.Connections.Dec()
	}()

	if s.flag.IsSet() {
		return
	}

	// Resolved here rather than on accept: behind a proxy this waits for the PROXY header
	sess.addr = sess.c.RemoteAddr().String()
	log.Printf("uniquenumbers at=handle-connection.start remote-addr=%q\n", sess.addr)

	err := s.readLines(sess)
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		log.Printf("uniquenumbers at=handle-connection.err remote-addr=%q err=%q\n", sess.addr, err)
	}

	log.Printf("uniquenumbers at=handle-connection.finish remote-addr=%q\n", sess.addr)
}

// readLines forwards numbers from one connection, in order, until the stream ends,
// a malformed line arrives, the sentinel arrives, or shutdown has begun.
func (s *Server) readLines(sess *Session) error {
	sc := bufio.NewScanner(sess.c)
	sc.Buffer(make([]byte, 0, 64), maxLineLength)

	for sc.Scan() {
		if s.flag.IsSet() {
			return nil
		}

		kind, n := ParseLine(sc.Text())
		switch kind {
		case LineNumber:
			s.ingest.Push(n)
		case LineTerminate:
			log.Printf("uniquenumbers at=handle-connection.terminate remote-addr=%q\n", sess.addr)
			s.flag.Set()
			return nil
		default:
			s.metrics.InvalidLines.Inc()
			log.Printf("uniquenumbers at=handle-connection.invalid remote-addr=%q line=%q\n", sess.addr, truncate(sc.Text(), 32))
			return nil
		}
	}
	return sc.Err()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
