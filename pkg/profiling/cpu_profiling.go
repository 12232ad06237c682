// Package profiling writes CPU and heap profiles requested on the command line.
package profiling

import (
	"os"
	"runtime/pprof"

	"github.com/sirupsen/logrus"
)

var (
	osCreate             = os.Create
	pprofStartCPUProfile = pprof.StartCPUProfile
	pprofStopCPUProfile  = pprof.StopCPUProfile
)

// DoCPUProfiling starts a CPU profile written to filename.
// The returned function stops it; it is a no-op when profiling could not start.
func DoCPUProfiling(filename string) (stop func()) {
	log := logrus.WithField("path", filename)
	f, err := osCreate(filename)
	if err != nil {
		log.WithError(err).Error("could not create CPU profile")
		return func() {}
	}
	if err = pprofStartCPUProfile(f); err != nil {
		log.WithError(err).Error("could not start CPU profile")
		_ = f.Close()
		return func() {}
	}
	return func() {
		pprofStopCPUProfile()
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("failed to close CPU profile")
		}
	}
}
