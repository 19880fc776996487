package numbers

import (
	"context"
	"log"
)

// Sink is where first-seen numbers are persisted, one line per Append, in call order.
type Sink interface {
	Append(line []byte) error
	Close() error
}

// writeLoop drains the log queue into the sink. A failed write stops it for good:
// there is nothing safe to do with a sink that no longer accepts data.
func (s *Server) writeLoop(ctx context.Context) error {
	log.Printf("uniquenumbers at=writer.start\n")
	defer log.Printf("uniquenumbers at=writer.finish\n")

	buf := make([]byte, 0, 16)
	for {
		n, ok := s.logq.Pop(ctx)
		if !ok {
			return nil
		}

		buf = AppendNumber(buf[:0], n)
		if err := s.sink.Append(buf); err != nil {
			s.metrics.SinkErrors.Inc()
			log.Printf("uniquenumbers at=writer.err number=%d err=%q\n", n, err)
			return nil
		}
	}
}
