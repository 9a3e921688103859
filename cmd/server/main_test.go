package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configPath = ""

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "irreport "+version))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "report.yaml")
	require.NoError(t, os.WriteFile(in, []byte(`
reportMetadata:
  reportNumber: IR/9
event:
  briefDescription: Layered transfers
`), 0o600))

	_, err := run(t, "render", "--in", in)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "IR_9.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<ReportNumber>IR/9</ReportNumber>")
	assert.Contains(t, string(data), "<BriefDescription>Layered transfers</BriefDescription>")
}

func TestRenderCommand_Stdout(t *testing.T) {
	in := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"reportMetadata":{"reportNumber":"R-1"}}`), 0o600))

	out, err := run(t, "render", "-i", in, "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"render"}},
		{"unsupported file type", []string{"render", "--in", txt}},
		{"missing file", []string{"render", "--in", filepath.Join(dir, "none.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestTokenCommand_AuthDisabled(t *testing.T) {
	_, err := run(t, "token", "--user", "officer-1")
	assert.Error(t, err)
}
