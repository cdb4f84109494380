package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/werdnum/pressurenotify/pkg/config"
	"github.com/werdnum/pressurenotify/pkg/notify"
	"github.com/werdnum/pressurenotify/pkg/pressure"
	"github.com/werdnum/pressurenotify/pkg/pressurenotify"
)

func main() {
	var f config.StartupFlags

	defaults := pressure.DefaultLocator()

	flag.StringVar(&f.ConfigPath, "config", config.DefaultPath(), "file path to the psi-notify config")
	flag.StringVar(&f.Notifier, "notifier", "dbus", "where to show alerts: dbus or log")
	flag.StringVar(&f.MetricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file after every check")
	flag.BoolVar(&f.WatchConfig, "watch-config", false, "reload the config when the file changes")
	flag.StringVar(&f.ProcRoot, "proc-root", defaults.ProcRoot, "procfs mount point")
	flag.StringVar(&f.CgroupRoot, "cgroup-root", defaults.CgroupRoot, "cgroup2 mount point")
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s doesn't accept any arguments.\n", os.Args[0])
		os.Exit(1)
	}

	loader := config.FileLoader{Path: f.ConfigPath}
	cfg, err := loader.Load()
	if err != nil {
		glog.Fatalf("loading config: %s", err.Error())
	}

	locator := pressure.Locator{CgroupRoot: f.CgroupRoot, ProcRoot: f.ProcRoot, UID: defaults.UID}
	readers, usingSeat := openSources(locator)
	if usingSeat {
		glog.Infof("Using pressures from current user's systemd-logind seat.")
	} else {
		glog.Infof("Using system-global resource pressures.")
	}

	sink, err := newSink(f.Notifier)
	if err != nil {
		glog.Fatalf("%s", err.Error())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	control := pressurenotify.NewControl()
	control.HandleSignals(ctx)

	if f.WatchConfig {
		if err := config.Watch(ctx, f.ConfigPath, control.RequestReload); err != nil {
			glog.Warningf("not watching %s for changes: %s", f.ConfigPath, err.Error())
		}
	}

	w := pressurenotify.NewWatcher(cfg, loader, readers, sink, control, pressurenotify.NewMetrics(f.MetricsTextfile))
	w.Liveness = pressurenotify.NewLiveness()
	w.Run()
}

func openSources(l pressure.Locator) ([pressure.NumKinds]pressure.Reader, bool) {
	var readers [pressure.NumKinds]pressure.Reader
	usingSeat := false

	for _, k := range pressure.Kinds() {
		s, err := pressure.Open(k, l)
		if err != nil {
			if errors.Is(err, pressure.ErrDisabled) {
				glog.Warningf("Couldn't find any pressure file for resource %s, skipping", k.Name())
			} else {
				glog.Errorf("error while opening %s pressure: %s", k.Name(), err.Error())
			}
			continue
		}
		usingSeat = usingSeat || s.UsingSeat()
		readers[k] = s
	}

	return readers, usingSeat
}

func newSink(kind string) (notify.Sink, error) {
	switch kind {
	case "log":
		return &notify.LogSink{}, nil
	case "dbus":
		s, err := notify.NewDBusSink()
		if err != nil {
			glog.Warningf("desktop notifications unavailable, logging alerts instead: %s", err.Error())
			return &notify.LogSink{}, nil
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown -notifier %q", kind)
}
