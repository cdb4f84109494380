//go:build !linux
// +build !linux

package pressure

import (
	"errors"
	"os"
)

var errUnsupported = errors.New("cgroup pressure files require linux")

// openDir always fails, so sources fall back to procfs.
func openDir(path string) (int, error) {
	return -1, errUnsupported
}

func closeDir(fd int) error {
	return nil
}

func openAt(dirFd int, name string) (*os.File, error) {
	return nil, errUnsupported
}

func vanished(err error) bool {
	return false
}
