package pressure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/prometheus/procfs"
)

// ErrDisabled is returned by Open when no pressure file exists for a resource.
var ErrDisabled = errors.New("no pressure file for resource")

// Reader yields the pressure lines of one resource, "some" first.
type Reader interface {
	Visit(fn func(Sample) bool) error
}

// Locator describes where pressure files are looked up.
type Locator struct {
	CgroupRoot string
	ProcRoot   string
	UID        int
}

// DefaultLocator looks at the current user's systemd-logind slice and /proc.
func DefaultLocator() Locator {
	return Locator{
		CgroupRoot: "/sys/fs/cgroup",
		ProcRoot:   procfs.DefaultMountPoint,
		UID:        os.Getuid(),
	}
}

// SeatDir is the cgroup directory of the current user's slice.
func (l Locator) SeatDir() string {
	return filepath.Join(l.CgroupRoot, "user.slice", fmt.Sprintf("user-%d.slice", l.UID))
}

// Source reads the pressure file of one resource. The file is opened for
// every Visit and closed before Visit returns.
type Source struct {
	Kind Kind

	locator Locator
	dirFd   int
	global  *procfs.FS
}

// Open locates the pressure file for kind, preferring the user's cgroup slice
// over the system-global /proc/pressure.
func Open(kind Kind, l Locator) (*Source, error) {
	s := &Source{Kind: kind, locator: l, dirFd: -1}

	if fd, err := openDir(l.SeatDir()); err == nil {
		if f, err := openAt(fd, s.cgroupFile()); err == nil {
			f.Close()
			s.dirFd = fd
			return s, nil
		}
		closeDir(fd)
	}

	if err := s.openGlobal(); err != nil {
		return nil, err
	}
	return s, nil
}

// UsingSeat reports whether pressures come from the user's cgroup slice.
func (s *Source) UsingSeat() bool {
	return s.dirFd >= 0
}

// Close releases the cgroup directory handle, if any.
func (s *Source) Close() error {
	if s.dirFd < 0 {
		return nil
	}
	fd := s.dirFd
	s.dirFd = -1
	return closeDir(fd)
}

// Visit feeds the "some" line and, for resources that have one, the "full"
// line to fn. fn returning false stops the visit early.
func (s *Source) Visit(fn func(Sample) bool) error {
	if s.dirFd >= 0 {
		f, err := openAt(s.dirFd, s.cgroupFile())
		if err == nil {
			defer f.Close()
			return s.scan(f, fn)
		}
		if !vanished(err) {
			return fmt.Errorf("opening %s: %w", s.cgroupFile(), err)
		}

		glog.Warningf("%s pressure file vanished (%s), relocating to system-global pressures", s.Kind.Label(), err.Error())
		s.Close()
		if err := s.openGlobal(); err != nil {
			return fmt.Errorf("relocating %s pressure: %w", s.Kind.Name(), err)
		}
	}

	if s.global == nil {
		if err := s.openGlobal(); err != nil {
			return err
		}
	}
	return s.visitGlobal(fn)
}

func (s *Source) cgroupFile() string {
	return s.Kind.Name() + ".pressure"
}

func (s *Source) globalFile() string {
	return filepath.Join(s.locator.ProcRoot, "pressure", s.Kind.Name())
}

func (s *Source) openGlobal() error {
	if _, err := os.Stat(s.globalFile()); err != nil {
		return fmt.Errorf("%w: %s", ErrDisabled, err.Error())
	}
	fs, err := procfs.NewFS(s.locator.ProcRoot)
	if err != nil {
		return err
	}
	s.global = &fs
	return nil
}

func (s *Source) lines() int {
	if s.Kind.HasFull() {
		return 2
	}
	return 1
}

func (s *Source) scan(r io.Reader, fn func(Sample) bool) error {
	sc := bufio.NewScanner(r)
	for i := 0; i < s.lines(); i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("reading %s: %w", s.cgroupFile(), err)
			}
			return fmt.Errorf("reading %s: expected %d pressure lines, got %d", s.cgroupFile(), s.lines(), i)
		}

		sample, err := ParseLine(sc.Text())
		if err != nil {
			return fmt.Errorf("can't parse pressures from %s: %w", s.cgroupFile(), err)
		}
		if !fn(sample) {
			return nil
		}
	}
	return nil
}

func (s *Source) visitGlobal(fn func(Sample) bool) error {
	stats, err := s.global.PSIStatsForResource(s.Kind.Name())
	if err != nil {
		return err
	}

	lines := []struct {
		class Class
		line  *procfs.PSILine
	}{{Some, stats.Some}, {Full, stats.Full}}

	for _, l := range lines[:s.lines()] {
		if l.line == nil {
			return fmt.Errorf("could not load %s %s pressure, got %v", s.Kind.Name(), l.class, stats)
		}
		sample := Sample{Class: l.class, Avg10: l.line.Avg10, Avg60: l.line.Avg60, Avg300: l.line.Avg300}
		if !fn(sample) {
			return nil
		}
	}
	return nil
}
