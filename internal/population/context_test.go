package population

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cdtdelta/cmdsynth/internal/model"
	"github.com/cdtdelta/cmdsynth/internal/sampling"
)

func testUser() *model.User {
	return &model.User{ID: 1042, Name: "student1042", HomeDir: "/home/student1042", ShellType: "bash"}
}

func TestBuildContextKeys(t *testing.T) {
	ctx := BuildContext(testUser(), sampling.NewStream(1, 0))

	for _, key := range []string{
		KeyHome, KeyProject, KeyFilePy, KeyFileTxt, KeyFileLog, KeyFileJS,
		KeyPattern, KeyContainer, KeyPort, KeyPackage, KeyBranch,
		KeyCommitMsg, KeyRemoteHost, KeyScript, KeyUserName,
	} {
		assert.NotEmpty(t, ctx[key], key)
	}
	assert.Equal(t, "/home/student1042", ctx[KeyHome])
	assert.Equal(t, "student1042", ctx[KeyUserName])
	assert.True(t, strings.HasPrefix(ctx[KeyProject], "/home/student1042/projects/cs"))
}

func TestBuildContextIsFreshPerCall(t *testing.T) {
	u := testUser()
	st := sampling.NewStream(2, 0)

	projects := map[string]bool{}
	files := map[string]bool{}
	for i := 0; i < 50; i++ {
		ctx := BuildContext(u, st)
		assert.Equal(t, u.HomeDir, ctx[KeyHome])
		projects[ctx[KeyProject]] = true
		files[ctx[KeyFileTxt]] = true
	}
	assert.Greater(t, len(projects), 1)
	assert.Greater(t, len(files), 1)
}

func TestWorkingDirectory(t *testing.T) {
	u := testUser()
	st := sampling.NewStream(3, 0)

	var home, system bool
	for i := 0; i < 2000; i++ {
		dir := WorkingDirectory(u, st)
		switch {
		case dir == u.HomeDir || strings.HasPrefix(dir, u.HomeDir+"/"):
			home = true
		case dir == "/tmp" || dir == "/var/log" || dir == "/etc":
			system = true
		default:
			t.Fatalf("unexpected working directory %q", dir)
		}
	}
	assert.True(t, home)
	assert.True(t, system)
}

func TestHost(t *testing.T) {
	st := sampling.NewStream(4, 0)
	for i := 0; i < 100; i++ {
		assert.Contains(t, Hostnames, Host(st))
	}
}
