package pressurenotify

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/golang/glog"
)

// WatchdogGracePeriod is added to the update interval for WATCHDOG_USEC.
const WatchdogGracePeriod = 5

// Liveness reports progress to the service manager. It is purely
// observational; a nil *Liveness does nothing.
type Liveness struct {
	send func(state string) (bool, error)
}

func NewLiveness() *Liveness {
	return &Liveness{
		send: func(state string) (bool, error) {
			return daemon.SdNotify(false, state)
		},
	}
}

func (l *Liveness) notify(states ...string) {
	if l == nil {
		return
	}
	if _, err := l.send(strings.Join(states, "\n")); err != nil {
		glog.V(1).Infof("sd_notify failed: %s", err.Error())
	}
}

func (l *Liveness) checking() {
	l.notify(daemon.SdNotifyReady, daemon.SdNotifyWatchdog, "STATUS=Checking current pressures...")
}

func (l *Liveness) waiting() {
	l.notify("STATUS=Waiting for next interval.")
}

func (l *Liveness) reloading() {
	l.notify(daemon.SdNotifyReloading, "STATUS=Reloading config...")
}

func (l *Liveness) stopping() {
	l.notify(daemon.SdNotifyStopping, "STATUS=Tearing down...")
}

func (l *Liveness) watchdogInterval(interval int) {
	l.notify(fmt.Sprintf("WATCHDOG_USEC=%d", (interval+WatchdogGracePeriod)*1000000))
}
