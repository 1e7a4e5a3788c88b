//go:build unix

package metrics

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// peakRSS returns ru_maxrss in bytes. Linux reports kibibytes, Darwin bytes.
func peakRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" && runtime.GOOS != "ios" {
		rss *= 1024
	}
	return rss, nil
}
