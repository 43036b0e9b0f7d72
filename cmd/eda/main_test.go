package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loansCSV = "a,b,c\n1,x,1\n2,y,2\n,z,3\n4,w,10\n"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte(loansCSV), 0o644))
	return path
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "--input", writeInput(t))
	require.NoError(t, err)
	assert.Contains(t, out, "The table has 3 columns and 4 rows.")
	assert.Contains(t, out, "column")

	out, err = run(t, "describe", "--input", writeInput(t), "--stat", "mean", "--column", "c")
	require.NoError(t, err)
	assert.Equal(t, "c mean: 4\n", out)

	_, err = run(t, "describe", "--input", writeInput(t), "--stat", "mean", "--column", "zz")
	assert.ErrorContains(t, err, "'zz'")
}

func TestNulls(t *testing.T) {
	out, err := run(t, "nulls", "--input", writeInput(t))
	require.NoError(t, err)
	assert.Equal(t, "a: 25.0%\n", out)

	out, err = run(t, "nulls", "--input", writeInput(t), "--op", "<", "--pct", "30")
	require.NoError(t, err)
	assert.Contains(t, out, ": a\n")

	_, err = run(t, "nulls", "--input", writeInput(t), "--op", "=", "--pct", "30")
	assert.Error(t, err)
}

func TestSkew(t *testing.T) {
	out, err := run(t, "skew", "--input", writeInput(t))
	require.NoError(t, err)
	assert.Equal(t, "c: 1.76\n", out)

	out, err = run(t, "skew", "--input", writeInput(t), "--compare", "c")
	require.NoError(t, err)
	assert.Contains(t, out, "original: 1.76\n")
	assert.Contains(t, out, "best: ")
}

func TestReportAndExport(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t)

	_, err := run(t, "report", "--input", input, "--out", filepath.Join(dir, "eda.html"))
	require.NoError(t, err)
	page, err := os.ReadFile(filepath.Join(dir, "eda.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<table>")

	out, err := run(t, "export", "--input", input, "--out", filepath.Join(dir, "eda.xlsx"))
	require.NoError(t, err)
	assert.Contains(t, out, "Saved workbook")
	_, err = os.Stat(filepath.Join(dir, "eda.xlsx"))
	assert.NoError(t, err)
}

func TestOutputPath(t *testing.T) {
	t.Setenv("EDA_OUTPUT_DIR", "/tmp/out")
	a := &app{}
	require.NoError(t, a.init())

	assert.Equal(t, "/tmp/out/x.csv", a.outputPath("x.csv"))
	assert.Equal(t, "sub/x.csv", a.outputPath("sub/x.csv"))
	assert.Equal(t, "/abs/x.csv", a.outputPath("/abs/x.csv"))
}
