package numbers

import (
	"context"
	"log"
)

// dedupLoop is the only consumer of the ingest queue. First sightings go on to
// the log queue; everything else is counted as a duplicate.
func (s *Server) dedupLoop(ctx context.Context) error {
	log.Printf("uniquenumbers at=dedup.start\n")
	defer log.Printf("uniquenumbers at=dedup.finish\n")

	for {
		n, ok := s.ingest.Pop(ctx)
		if !ok {
			return nil
		}
		s.dedup(n)
	}
}

func (s *Server) dedup(n Number) {
	if s.seen.Add(n) {
		s.counters.uniques.Add(1)
		s.metrics.Uniques.Inc()
		s.logq.Push(n)
		return
	}
	s.counters.duplicates.Add(1)
	s.metrics.Duplicates.Inc()
}
