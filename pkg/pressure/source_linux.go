//go:build linux

package pressure

import (
	"errors"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

func openDir(path string) (int, error) {
	return unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
}

func closeDir(fd int) error {
	return unix.Close(fd)
}

func openAt(dirFd int, name string) (*os.File, error) {
	fd, err := unix.Openat(dirFd, name, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &fs.PathError{Op: "openat", Path: name, Err: err}
	}
	return os.NewFile(uintptr(fd), name), nil
}

// vanished reports whether err means the slice directory went away,
// e.g. the user's cgroup was removed or remounted.
func vanished(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, unix.ENODEV) ||
		errors.Is(err, unix.ESTALE)
}
