package population

import (
	"strings"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

// Hostnames events are attributed to.
var Hostnames = []string{
	"labpc-01", "labpc-02", "labpc-03", "labpc-04", "labpc-05",
	"labpc-06", "labpc-07", "labpc-08", "labpc-09", "labpc-10",
	"vm-ubuntu-01", "vm-ubuntu-02",
	"cs-lab-01", "cs-lab-02",
	"personal-laptop", "remote-ssh-01",
}

// Working directories relative to home ("" is home itself), followed by
// absolute system paths outside the home tree.
var workingDirs = []string{
	"",
	"projects",
	"projects/cs101",
	"projects/cs201",
	"projects/research",
	"Downloads",
	"Desktop",
	".config",
	"Documents",
	"/tmp",
	"/var/log",
	"/etc",
}

// Host returns a uniformly chosen hostname.
func Host(st *sampling.Stream) string {
	return sampling.Choice(st, Hostnames)
}

// WorkingDirectory returns a plausible current directory for u.
func WorkingDirectory(u *model.User, st *sampling.Stream) string {
	dir := sampling.Choice(st, workingDirs)
	switch {
	case strings.HasPrefix(dir, "/"):
		return dir
	case dir == "":
		return u.HomeDir
	default:
		return u.HomeDir + "/" + dir
	}
}
