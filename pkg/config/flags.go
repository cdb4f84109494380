package config

type StartupFlags struct {
	ConfigPath      string
	Notifier        string
	MetricsTextfile string
	WatchConfig     bool
	ProcRoot        string
	CgroupRoot      string
}
