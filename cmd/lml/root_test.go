package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		skinFile, templatesDir, docArgs, treeOutput = "", "", nil, false
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTemplate(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRenderCommand(t *testing.T) {
	path := writeTemplate(t, "hello.lml", `<label>Hello CLI</label>`)
	stdout, _, err := runCommand(t, "render", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hello CLI")
}

func TestRenderTreeOutput(t *testing.T) {
	path := writeTemplate(t, "tree.lml", `<group><label>x</label></group>`)
	stdout, _, err := runCommand(t, "render", "--tree", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "group (horizontal)")
	assert.Contains(t, stdout, `label "x"`)
}

func TestRenderWithArguments(t *testing.T) {
	path := writeTemplate(t, "args.lml", `<label text={title}/>`)
	stdout, _, err := runCommand(t, "render", "--arg", "title=FromFlag", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FromFlag")
}

func TestCheckCommandReportsProblems(t *testing.T) {
	good := writeTemplate(t, "good.lml", `<label>ok</label>`)
	stdout, _, err := runCommand(t, "check", good)
	require.NoError(t, err)
	assert.Contains(t, stdout, "OK")

	bad := writeTemplate(t, "bad.lml", `<label colour=red>x</label>`)
	_, stderr, err := runCommand(t, "check", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, "colour")
}

func TestCheckCommandFatalError(t *testing.T) {
	bad := writeTemplate(t, "fatal.lml", `<bogus/>`)
	_, stderr, err := runCommand(t, "check", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, "bogus")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "lml version")
}
