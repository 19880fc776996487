package numbers

import (
	"context"
	"log"
	"time"
)

// superviseLoop turns the shutdown flag into a full teardown. Accept and socket
// reads never look at the flag, so they are unblocked by closing what they
// block on.
func (s *Server) superviseLoop(parent context.Context) {
	t := time.NewTicker(s.cfg.ShutdownPollInterval)
	defer t.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-parent.Done():
			s.flag.Set()
		case <-t.C:
		}

		if s.flag.IsSet() {
			s.shutdown()
			return
		}
	}
}

func (s *Server) shutdown() {
	s.shutdownOnce.Do(func() {
		log.Printf("uniquenumbers at=shutdown.start\n")

		n := s.sessions.closeAll()
		log.Printf("uniquenumbers at=shutdown.sessions-closed count=%d\n", n)

		s.l.Close()
		s.cancel()

		// The accept loop may be parked waiting for a free handler slot, so wait
		// for it before waiting on the handlers it dispatches to.
		<-s.acceptDone
		s.handlers.Wait()
		s.workers.Wait()

		if err := s.sink.Close(); err != nil {
			log.Printf("uniquenumbers at=shutdown.sink err=%q\n", err)
		}

		if s.httpServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			if err := s.httpServer.Shutdown(ctx); err != nil {
				log.Printf("uniquenumbers at=shutdown.metrics err=%q\n", err)
			}
			cancel()
		}

		log.Printf("uniquenumbers at=shutdown.finish seen=%d\n", s.seen.Len())
		close(s.done)
	})
}
