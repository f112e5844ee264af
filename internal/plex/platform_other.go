//go:build !unix

package plex

import "runtime"

// Non-unix platforms report the architecture in place of a kernel release.
func kernelRelease() (string, error) {
	return runtime.GOARCH, nil
}
