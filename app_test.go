package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cdtdelta/cmdsynth/internal/csvlog"
	"github.com/cdtdelta/cmdsynth/internal/model"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsageErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	for name, args := range map[string][]string{
		"missing":  {},
		"zero":     {"0", out},
		"negative": {"-3", out},
		"text":     {"many", out},
		"badseed":  {"-seed", "x", "5", out},
	} {
		code, _, stderr := runCmd(t, args...)
		assert.Equal(t, 1, code, name)
		assert.NotEmpty(t, stderr, name)
	}

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no file should be written on usage errors")
}

func TestRunRejectsFlagsAfterPositionals(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.csv")
	code, _, stderr := runCmd(t, "50", out, "-seed", "5")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unexpected arguments")
	assert.Contains(t, stderr, "-seed")

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRunRejectsNonPositiveRows(t *testing.T) {
	_, _, stderr := runCmd(t, "0", filepath.Join(t.TempDir(), "out.csv"))
	assert.Contains(t, stderr, "NUM_ROWS must be a positive integer.")
}

func TestRunSingleRow(t *testing.T) {
	out := filepath.Join(t.TempDir(), "one.csv")
	code, stdout, _ := runCmd(t, "1", out)
	require.Equal(t, 0, code)
	assert.Equal(t, "Wrote 1 rows to "+out+"\n", stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(data), "\r\n"))
	lines := strings.Split(strings.TrimSuffix(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(model.Fields, ","), lines[0])

	result, err := csvlog.ReadEvents(out, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 1, result.Count)

	e := result.Events[0]
	for i, v := range e.Record() {
		assert.NotEmpty(t, v, model.Fields[i])
	}
	assert.GreaterOrEqual(t, e.RiskLevel, 1)
	assert.LessOrEqual(t, e.RiskLevel, 5)
}

func TestRunFiveThousandRows(t *testing.T) {
	out := filepath.Join(t.TempDir(), "rows.csv")
	code, _, _ := runCmd(t, "-seed", "1234", "-workers", "4", "5000", out)
	require.Equal(t, 0, code)

	result, err := csvlog.ReadEvents(out, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 5000, result.Count)

	var sudo, risk1 bool
	for _, e := range result.Events {
		sudo = sudo || e.SudoUsed
		risk1 = risk1 || e.RiskLevel == 1
	}
	assert.True(t, sudo)
	assert.True(t, risk1)
}

func TestRunDeterministicWithSeed(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")

	args := []string{"-seed", "42", "-anchor", "2025-06-30T00:00:00Z"}
	code, _, _ := runCmd(t, append(args, "-workers", "1", "3000", a)...)
	require.Equal(t, 0, code)
	code, _, _ = runCmd(t, append(args, "-workers", "6", "3000", b)...)
	require.Equal(t, 0, code)

	dataA, err := os.ReadFile(a)
	require.NoError(t, err)
	dataB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(dataA, dataB))
}

func TestRunDefaultOutputFromEnvironment(t *testing.T) {
	out := filepath.Join(t.TempDir(), "env.csv.gz")
	t.Setenv("CMDSYNTH_DEFAULT_OUTPUT", out)

	code, _, _ := runCmd(t, "25")
	require.Equal(t, 0, code)
	require.NoError(t, csvlog.ValidateHeader(out))
}

func TestRunMetricsFileAndInspect(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rows.csv")
	prom := filepath.Join(dir, "cmdsynth.prom")

	code, _, _ := runCmd(t, "-seed", "7", "-metrics-file", prom, "800", out)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cmdsynth_events_total")

	code, stdout, _ := runCmd(t, "-inspect", out)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, out+": 800 rows")
	assert.Contains(t, stdout, "risk_level 1:")
}

func TestRunInspectMissingFile(t *testing.T) {
	code, _, _ := runCmd(t, "-inspect", filepath.Join(t.TempDir(), "absent.csv"))
	assert.Equal(t, 1, code)
}

func TestRunDumpCatalog(t *testing.T) {
	code, stdout, _ := runCmd(t, "-dump-catalog")
	require.Equal(t, 0, code)

	var templates []model.CommandTemplate
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &templates))
	require.NotEmpty(t, templates)
	assert.Equal(t, "ls", templates[0].BaseCommand)
	assert.Equal(t, 1, templates[0].RiskLevel)
}
