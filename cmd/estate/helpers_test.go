package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadAllFromFile(t *testing.T) {
	t.Parallel()
	p := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(p, []byte("You help renters."), 0o600))

	got, err := readAll(p)
	require.NoError(t, err)
	require.Equal(t, "You help renters.", string(got))
}

func TestReadAllMissingFile(t *testing.T) {
	t.Parallel()
	_, err := readAll(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}
