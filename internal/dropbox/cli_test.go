package dropbox

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScript drops an executable shell script and returns its path.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script fixtures are unix-only")
	}
	path := filepath.Join(t.TempDir(), "dropbox")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestCLI_QueryStatus(t *testing.T) {
	cmd := writeScript(t, `echo "Syncing 3 files • 1 sec"`)
	cli := NewCLI(nil, WithCommand(cmd))

	out, err := cli.QueryStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Syncing 3 files • 1 sec\n", out)
}

func TestCLI_QueryStatus_StderrIsError(t *testing.T) {
	// Exit 0 with stderr output still counts as a failed query, matching the
	// Dropbox client's habit of reporting problems on stderr.
	cmd := writeScript(t, `echo "Up to date"; echo "daemon not running" >&2`)
	cli := NewCLI(nil, WithCommand(cmd))

	_, err := cli.QueryStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "daemon not running")
}

func TestCLI_QueryStatus_EmptyOutputIsError(t *testing.T) {
	cmd := writeScript(t, `exit 0`)
	cli := NewCLI(nil, WithCommand(cmd))

	_, err := cli.QueryStatus(context.Background())
	assert.Error(t, err)
}

func TestCLI_QueryStatus_ExitFailure(t *testing.T) {
	cmd := writeScript(t, `exit 3`)
	cli := NewCLI(nil, WithCommand(cmd))

	_, err := cli.QueryStatus(context.Background())
	assert.Error(t, err)
}

func TestCLI_QueryStatus_MissingBinary(t *testing.T) {
	cli := NewCLI(nil, WithCommand(filepath.Join(t.TempDir(), "no-such-dropbox")))

	_, err := cli.QueryStatus(context.Background())
	assert.Error(t, err)
}
