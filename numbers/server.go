package numbers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	proxyproto "github.com/pires/go-proxyproto"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Addr   string
	l      net.Listener
	cancel context.CancelFunc
	cfg    Config

	flag     ShutdownFlag
	seen     *SeenSet
	counters Counters
	ingest   *Queue[Number]
	logq     *Queue[Number]
	sink     Sink
	metrics  *Metrics
	sessions sessions

	acceptDone chan struct{}
	handlers   errgroup.Group // bounded by cfg.Concurrency
	workers    errgroup.Group // dedup, writer, reporter
	httpServer *http.Server

	shutdownOnce sync.Once
	done         chan struct{}
}

// NewServer starts listening and launches every pipeline worker. Numbers that
// are seen for the first time are appended to sink, which the server closes
// during shutdown.
func NewServer(ctx context.Context, cfg Config, sink Sink) (*Server, error) {
	if sink == nil {
		return nil, errors.New("a sink is required")
	}
	cfg = cfg.withDefaults()
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)

	l, err := listen(ctx, "0.0.0.0:"+cfg.Port)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("listen on port %s: %w", cfg.Port, err)
	}

	// Wrap listener in a proxyproto listener
	l = &proxyproto.Listener{Listener: l}

	log.Printf("uniquenumbers at=server.listening addr=%q concurrency=%d\n", l.Addr().String(), cfg.Concurrency)
	s := &Server{
		Addr:       l.Addr().String(),
		l:          l,
		cancel:     cancel,
		cfg:        cfg,
		seen:       NewSeenSet(),
		ingest:     NewQueue[Number](),
		logq:       NewQueue[Number](),
		sink:       sink,
		acceptDone: make(chan struct{}),
		done:       make(chan struct{}),
	}
	s.metrics = newMetrics(s)
	s.handlers.SetLimit(cfg.Concurrency)

	if cfg.MetricsAddr != "" {
		if err := s.serveMetrics(cfg.MetricsAddr); err != nil {
			cancel()
			l.Close()
			return nil, err
		}
	}

	s.workers.Go(func() error { return s.dedupLoop(ctx) })
	s.workers.Go(func() error { return s.writeLoop(ctx) })
	s.workers.Go(func() error { return s.reportLoop(ctx) })

	go s.acceptLoop()
	go s.superviseLoop(parent)

	return s, nil
}

// Close shuts the server down as if a client had sent the sentinel, without
// waiting for the next supervisor tick.
func (s *Server) Close() error {
	s.flag.Set()
	s.shutdown()
	<-s.done
	return nil
}

// Terminate raises the shutdown flag. The supervisor tears everything down on
// its next tick.
func (s *Server) Terminate() {
	s.flag.Set()
}

// Done is closed once shutdown has finished and the sink is closed.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Seen is the set of every distinct number accepted so far.
func (s *Server) Seen() *SeenSet {
	return s.seen
}

// Counters are the per-interval counters, reset by each report.
func (s *Server) Counters() *Counters {
	return &s.counters
}

// QueueDepths reports how many numbers wait for the dedup stage and for the writer.
func (s *Server) QueueDepths() (ingest, logq int) {
	return s.ingest.Len(), s.logq.Len()
}

func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) acceptLoop() {
	defer close(s.acceptDone)

	for !s.flag.IsSet() {
		conn, err := s.l.Accept()
		if errors.Is(err, net.ErrClosed) {
			return
		}
		if err != nil {
			log.Printf("uniquenumbers at=accept err=%q\n", err)
			continue
		}
		if s.flag.IsSet() {
			conn.Close()
			return
		}

		// Track before dispatch so a connection waiting for a free handler
		// still gets closed on shutdown
		sess := &Session{c: conn}
		s.sessions.add(sess)
		s.metrics.Connections.Inc()

		s.handlers.Go(func() error {
			s.handleConn(sess)
			return nil
		})
	}
}

func (s *Server) serveMetrics(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	s.httpServer = &http.Server{Handler: mux}

	log.Printf("uniquenumbers at=metrics.listening addr=%q\n", l.Addr().String())
	go func() {
		if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("uniquenumbers at=metrics.err err=%q\n", err)
		}
	}()
	return nil
}
