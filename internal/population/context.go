package population

import (
	"fmt"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

// Placeholder keys supplied by BuildContext.
const (
	KeyHome       = "home"
	KeyProject    = "proj"
	KeyFilePy     = "file_py"
	KeyFileTxt    = "file_txt"
	KeyFileLog    = "file_log"
	KeyFileJS     = "file_js"
	KeyPattern    = "pattern"
	KeyContainer  = "container"
	KeyPort       = "port"
	KeyPackage    = "pkg"
	KeyBranch     = "branch"
	KeyCommitMsg  = "commit_msg"
	KeyRemoteHost = "remote_host"
	KeyScript     = "script_sh"
	KeyUserName   = "user_name"
)

var (
	grepPatterns = []string{"TODO", "ERROR", "WARNING", "fixme", "BUG"}
	containers   = []string{"ubuntu:20.04", "python:3.11", "postgres:15", "nginx:latest"}
	ports        = []string{"8000", "8080", "3000", "5432"}
	packages     = []string{"numpy", "pandas", "torch", "django", "flask", "matplotlib"}
	branches     = []string{"main", "dev", "feature-x", "bugfix-y"}
	commitMsgs   = []string{"wip", "fix bug", "add feature", "update tests"}
	remoteHosts  = []string{"login.cluster.edu", "github.com", "gitlab.com"}
	scripts      = []string{"run.sh", "start.sh", "deploy.sh"}
)

// Context maps placeholder names to the values used to render one event.
type Context map[string]string

// BuildContext returns fresh substitution values for one event by u.
// Directories stay under the user's home; every leaf value is redrawn on
// each call.
func BuildContext(u *model.User, st *sampling.Stream) Context {
	return Context{
		KeyHome:       u.HomeDir,
		KeyProject:    fmt.Sprintf("%s/projects/cs%d", u.HomeDir, st.IntRange(101, 499)),
		KeyFilePy:     fmt.Sprintf("main%d.py", st.IntRange(0, 5)),
		KeyFileTxt:    fmt.Sprintf("notes%d.txt", st.IntRange(0, 9)),
		KeyFileLog:    fmt.Sprintf("app%d.log", st.IntRange(0, 3)),
		KeyFileJS:     fmt.Sprintf("app%d.js", st.IntRange(0, 3)),
		KeyPattern:    sampling.Choice(st, grepPatterns),
		KeyContainer:  sampling.Choice(st, containers),
		KeyPort:       sampling.Choice(st, ports),
		KeyPackage:    sampling.Choice(st, packages),
		KeyBranch:     sampling.Choice(st, branches),
		KeyCommitMsg:  sampling.Choice(st, commitMsgs),
		KeyRemoteHost: sampling.Choice(st, remoteHosts),
		KeyScript:     sampling.Choice(st, scripts),
		KeyUserName:   u.Name,
	}
}
