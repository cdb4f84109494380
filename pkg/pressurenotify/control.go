package pressurenotify

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/golang/glog"
)

// Control carries reload and exit requests into the watcher loop. Requests
// only flip flags and poke the wake channel, so they never block.
type Control struct {
	reload  atomic.Bool
	stopped atomic.Bool
	wake    chan struct{}

	// exit is called on a second exit request.
	exit func(code int)
}

func NewControl() *Control {
	return &Control{
		wake: make(chan struct{}, 1),
		exit: os.Exit,
	}
}

// RequestReload asks for the config to be reloaded after the current tick.
func (c *Control) RequestReload() {
	c.reload.Store(true)
	c.poke()
}

// RequestExit stops the loop at its next check. Asked twice, it terminates
// the process with code without any teardown.
func (c *Control) RequestExit(code int) {
	if c.stopped.Swap(true) {
		c.exit(code)
		return
	}
	c.poke()
}

func (c *Control) Running() bool {
	return !c.stopped.Load()
}

// takeReload reports and clears a pending reload request.
func (c *Control) takeReload() bool {
	return c.reload.Swap(false)
}

func (c *Control) poke() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// drain drops a wakeup that was already served by the current tick.
func (c *Control) drain() {
	select {
	case <-c.wake:
	default:
	}
}

// HandleSignals maps SIGHUP to a reload and SIGTERM/SIGINT to an exit request
// until ctx is done.
func (c *Control) HandleSignals(ctx context.Context) {
	sigChan := make(chan os.Signal, 4)
	signal.Notify(sigChan, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)
		for {
			select {
			case s := <-sigChan:
				glog.Infof("received signal %s", s)
				c.dispatch(s)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Control) dispatch(s os.Signal) {
	if s == syscall.SIGHUP {
		c.RequestReload()
		return
	}

	code := 1
	if sig, ok := s.(syscall.Signal); ok {
		code = 128 + int(sig)
	}
	if !c.Running() {
		glog.Flush()
	}
	c.RequestExit(code)
}
