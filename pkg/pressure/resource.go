package pressure

import "strings"

// Kind identifies one of the resources the kernel reports pressure for.
// Kinds are dense so they can index fixed-size arrays.
type Kind int

const (
	CPU Kind = iota
	Memory
	IO

	NumKinds
)

var kindInfo = [NumKinds]struct {
	name    string
	label   string
	hasFull bool
}{
	CPU:    {name: "cpu", label: "CPU", hasFull: false},
	Memory: {name: "memory", label: "memory", hasFull: true},
	IO:     {name: "io", label: "I/O", hasFull: true},
}

// Kinds returns every resource in evaluation order.
func Kinds() []Kind {
	return []Kind{CPU, Memory, IO}
}

// ParseKind maps a config/file name such as "memory" to its Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if kindInfo[k].name == name {
			return k, true
		}
	}
	return 0, false
}

// Name is the kernel file name and config file spelling.
func (k Kind) Name() string {
	return kindInfo[k].name
}

// Label is the human readable name used in alerts.
func (k Kind) Label() string {
	return kindInfo[k].label
}

// Title is Label with its first letter upper-cased, for log lines.
func (k Kind) Title() string {
	l := k.Label()
	return strings.ToUpper(l[:1]) + l[1:]
}

// HasFull reports whether the kernel exposes a meaningful "full" line.
func (k Kind) HasFull() bool {
	return kindInfo[k].hasFull
}

func (k Kind) String() string {
	if k < 0 || k >= NumKinds {
		return "unknown"
	}
	return k.Name()
}
