//go:build linux

package pressure

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = "some avg10=5.00 avg60=10.02 avg300=100.00 total=2000\n" +
	"full avg10=5.00 avg60=20.02 avg300=90.00 total=1000\n"

func testLocator(t *testing.T) Locator {
	t.Helper()
	root := t.TempDir()
	l := Locator{
		CgroupRoot: filepath.Join(root, "cgroup"),
		ProcRoot:   filepath.Join(root, "proc"),
		UID:        1000,
	}
	require.NoError(t, os.MkdirAll(l.SeatDir(), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(l.ProcRoot, "pressure"), 0o755))
	return l
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func collect(t *testing.T, s *Source) []Sample {
	t.Helper()
	var got []Sample
	require.NoError(t, s.Visit(func(sample Sample) bool {
		got = append(got, sample)
		return true
	}))
	return got
}

func TestOpenPrefersSeat(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.SeatDir(), "memory.pressure"), fixture)
	writeFile(t, filepath.Join(l.ProcRoot, "pressure", "memory"), fixture)

	s, err := Open(Memory, l)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.True(t, s.UsingSeat())
	got := collect(t, s)
	require.Len(t, got, 2)
	assert.Equal(t, Some, got[0].Class)
	assert.Equal(t, 100.00, got[0].Avg300)
	assert.Equal(t, Full, got[1].Class)
	assert.Equal(t, 20.02, got[1].Avg60)
}

func TestOpenFallsBackToGlobal(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.ProcRoot, "pressure", "io"), fixture)

	s, err := Open(IO, l)
	require.NoError(t, err)
	assert.False(t, s.UsingSeat())
	assert.Len(t, collect(t, s), 2)
}

func TestOpenDisabledWithoutAnyFile(t *testing.T) {
	l := testLocator(t)

	_, err := Open(CPU, l)
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestVisitCPUReadsOnlySome(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.SeatDir(), "cpu.pressure"), fixture)

	s, err := Open(CPU, l)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	got := collect(t, s)
	require.Len(t, got, 1)
	assert.Equal(t, Some, got[0].Class)
}

func TestVisitStopsEarly(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.SeatDir(), "memory.pressure"),
		"some avg10=5.00 avg60=10.02 avg300=100.00 total=2000\ngarbage\n")

	s, err := Open(Memory, l)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	calls := 0
	err = s.Visit(func(Sample) bool {
		calls++
		return false
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	err = s.Visit(func(Sample) bool { return true })
	assert.Error(t, err)
}

func TestVisitRelocatesOnceWhenSliceVanishes(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.SeatDir(), "memory.pressure"), fixture)
	writeFile(t, filepath.Join(l.ProcRoot, "pressure", "memory"),
		"some avg10=1.00 avg60=2.00 avg300=3.00 total=1\nfull avg10=0.00 avg60=0.00 avg300=0.00 total=0\n")

	s, err := Open(Memory, l)
	require.NoError(t, err)
	require.True(t, s.UsingSeat())

	require.NoError(t, os.RemoveAll(l.SeatDir()))

	got := collect(t, s)
	assert.False(t, s.UsingSeat())
	require.Len(t, got, 2)
	assert.Equal(t, 3.00, got[0].Avg300)
}

func TestVisitErrorsWhenRelocationFails(t *testing.T) {
	l := testLocator(t)
	writeFile(t, filepath.Join(l.SeatDir(), "io.pressure"), fixture)

	s, err := Open(IO, l)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(l.SeatDir()))

	err = s.Visit(func(Sample) bool { return true })
	assert.Error(t, err)

	writeFile(t, filepath.Join(l.ProcRoot, "pressure", "io"), fixture)
	assert.Len(t, collect(t, s), 2)
}
