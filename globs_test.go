package esb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackedGlobFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"extra_a.csv", "extra_b.csv", "other.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	env := MapEnviron{
		TrackedGlobPrefix + "_PARTITIONS": filepath.Join(dir, "extra_*.csv"),
		"UNRELATED":                       "*",
	}
	tracker := NewChangeSet()
	files, err := TrackedGlobFiles(env, TrackedGlobPrefix, tracker)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, "extra_a.csv", files[0].Dest)
	assert.Equal(t, "extra_b.csv", files[1].Dest)
	assert.Equal(t, []string{TrackedGlobPrefix + "_PARTITIONS"}, tracker.EnvVars())
	assert.Len(t, tracker.Files(), 2)
}

func TestTrackedGlobFilesNoMatches(t *testing.T) {
	env := MapEnviron{TrackedGlobPrefix + "_X": filepath.Join(t.TempDir(), "*.nothing")}
	files, err := TrackedGlobFiles(env, TrackedGlobPrefix, NewChangeSet())
	require.NoError(t, err)
	assert.Empty(t, files)
}
