package pressurenotify

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlDoubleExit(t *testing.T) {
	c := NewControl()
	var codes []int
	c.exit = func(code int) { codes = append(codes, code) }

	c.dispatch(syscall.SIGTERM)
	assert.False(t, c.Running())
	assert.Empty(t, codes)

	c.dispatch(syscall.SIGINT)
	assert.Equal(t, []int{128 + int(syscall.SIGINT)}, codes)
}

func TestControlReload(t *testing.T) {
	c := NewControl()

	c.dispatch(syscall.SIGHUP)
	assert.True(t, c.Running())
	assert.True(t, c.takeReload())
	assert.False(t, c.takeReload())
}

func TestHandleSignalsRequestsReloadOnHangup(t *testing.T) {
	c := NewControl()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c.HandleSignals(ctx)

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGHUP))

	require.Eventually(t, c.reload.Load, 5*time.Second, 10*time.Millisecond)
	assert.True(t, c.takeReload())
	assert.True(t, c.Running())
}
