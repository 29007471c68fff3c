package execute

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix shell utilities required")
	}

	res, err := Run(context.Background(), Options{
		Command: "echo",
		Args:    []string{"hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Output)
	assert.Zero(t, res.ExitCode)
}

func TestRunReportsNonZeroExit(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix shell utilities required")
	}

	res, err := Run(context.Background(), Options{Command: "false"})

	assert.Error(t, err)
	assert.Equal(t, 1, res.ExitCode)
}

func TestRunMissingCommand(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{
		Command: "scout-test-no-such-binary-d41d8cd9",
	})
	assert.Error(t, err)
}

func TestSudoPrependsElevation(t *testing.T) {
	t.Parallel()

	// buildCommandString reflects what Run assembles after Sudo rewriting.
	assert.Equal(t, "sudo apt-get install -y nmap",
		buildCommandString("sudo", "apt-get", "install", "-y", "nmap"))
}

func TestRunHonorsContextCancellation(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix shell utilities required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Command: "sleep", Args: []string{"5"}})
	assert.Error(t, err)
}
