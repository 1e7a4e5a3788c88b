//go:build !unix

package metrics

import "errors"

func peakRSS() (uint64, error) {
	return 0, errors.New("peak RSS is not available on this platform")
}
