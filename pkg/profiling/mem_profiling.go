package profiling

import (
	"runtime"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	pprofWriteHeapProfile = pprof.WriteHeapProfile
	memProfilingInterval  = 10 * time.Second
)

// DoMemProfiling rewrites a heap profile to filename every memProfilingInterval.
// The returned function stops the background writer and writes a final profile.
func DoMemProfiling(filename string) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func(interval time.Duration) {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				writeHeapProfile(filename)
			case <-done:
				return
			}
		}
	}(memProfilingInterval)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			writeHeapProfile(filename)
		})
	}
}

func writeHeapProfile(filename string) {
	log := logrus.WithField("path", filename)
	f, err := osCreate(filename)
	if err != nil {
		log.WithError(err).Error("could not create memory profile")
		return
	}
	defer func() {
		_ = f.Close()
	}()
	runtime.GC()
	if err = pprofWriteHeapProfile(f); err != nil {
		log.WithError(err).Error("could not write memory profile")
	}
}
