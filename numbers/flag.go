package numbers

import "sync/atomic"

// ShutdownFlag is the single process-wide stop signal. Once set it stays set.
type ShutdownFlag struct {
	v atomic.Bool
}

func (f *ShutdownFlag) Set() {
	f.v.Store(true)
}

func (f *ShutdownFlag) IsSet() bool {
	return f.v.Load()
}
