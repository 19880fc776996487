package numbers

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/pbnjay/memory"
)

// Counters are per-interval aggregates. They never gate any decision.
type Counters struct {
	uniques    atomic.Int64
	duplicates atomic.Int64
}

// Swap returns both counters and resets them to zero. Each counter is exchanged
// atomically so concurrent increments land in exactly one interval.
func (c *Counters) Swap() (uniques, duplicates int64) {
	return c.uniques.Swap(0), c.duplicates.Swap(0)
}

func (c *Counters) Load() (uniques, duplicates int64) {
	return c.uniques.Load(), c.duplicates.Load()
}

// Report is what one reporter firing observed.
type Report struct {
	Uniques    int64
	Duplicates int64
	Total      int
}

func (r Report) String() string {
	return fmt.Sprintf("Received %d unique numbers, %d duplicates. Unique total: %d", r.Uniques, r.Duplicates, r.Total)
}

func (s *Server) reportLoop(ctx context.Context) error {
	t := time.NewTicker(s.cfg.ReportInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			s.report()
		}
	}
}

// report reads and resets the counters and writes the status line.
func (s *Server) report() Report {
	u, d := s.counters.Swap()
	r := Report{Uniques: u, Duplicates: d, Total: s.seen.Len()}
	s.cfg.Status.Print(r.String())

	if s.cfg.Debug {
		log.Printf("uniquenumbers at=reporter.backpressure connections=%d ingest-queue=%d log-queue=%d free-memory=%d\n",
			s.sessions.Len(), s.ingest.Len(), s.logq.Len(), memory.FreeMemory())
	}
	return r
}
