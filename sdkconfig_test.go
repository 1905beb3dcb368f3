package esb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# cfg\n"), 0644))
	}
}

func TestListSpecificConfigs(t *testing.T) {
	t.Run("full expansion order", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "sdkconfig", "sdkconfig.release", "sdkconfig.esp32", "sdkconfig.release.esp32")

		found := ListSpecificConfigs(filepath.Join(dir, "sdkconfig"), ProfileRelease, MCUEsp32)
		require.Len(t, found, 4)
		assert.Equal(t, []string{
			filepath.Join(dir, "sdkconfig.release.esp32"),
			filepath.Join(dir, "sdkconfig.esp32"),
			filepath.Join(dir, "sdkconfig.release"),
			filepath.Join(dir, "sdkconfig"),
		}, found)
	})

	t.Run("only existing files yielded", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "sdkconfig", "sdkconfig.esp32")

		found := ListSpecificConfigs(filepath.Join(dir, "sdkconfig"), ProfileDebug, MCUEsp32)
		assert.Equal(t, []string{
			filepath.Join(dir, "sdkconfig.esp32"),
			filepath.Join(dir, "sdkconfig"),
		}, found)
	})

	t.Run("base only", func(t *testing.T) {
		dir := t.TempDir()
		writeFiles(t, dir, "sdkconfig")

		found := ListSpecificConfigs(filepath.Join(dir, "sdkconfig"), ProfileRelease, MCUEsp32c3)
		assert.Equal(t, []string{filepath.Join(dir, "sdkconfig")}, found)
	})

	t.Run("nothing exists", func(t *testing.T) {
		dir := t.TempDir()
		found := ListSpecificConfigs(filepath.Join(dir, "sdkconfig"), ProfileRelease, MCUEsp32)
		assert.Empty(t, found)
	})
}

func TestResolvePrimarySdkconfig(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "sdkconfig", "sdkconfig.esp32")
	cfg := &Config{
		WorkspaceDir: dir,
		Profile:      ProfileRelease,
		Sdkconfig:    SdkconfigFile,
	}

	tracker := NewChangeSet()
	primary, ok := ResolvePrimarySdkconfig(cfg, MCUEsp32, tracker)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sdkconfig.esp32"), primary.Src)
	assert.Equal(t, "sdkconfig.release", primary.Dest)
	assert.Equal(t, []string{filepath.Join(dir, "sdkconfig.esp32")}, tracker.Files())
}

func TestResolvePrimarySdkconfigMissing(t *testing.T) {
	cfg := &Config{
		WorkspaceDir: t.TempDir(),
		Profile:      ProfileRelease,
		Sdkconfig:    SdkconfigFile,
	}
	_, ok := ResolvePrimarySdkconfig(cfg, MCUEsp32, NewChangeSet())
	assert.False(t, ok)
}

func TestResolveSdkconfigDefaults(t *testing.T) {
	dir := t.TempDir()
	// a has profile+chip and chip variants, b has only a profile variant.
	writeFiles(t, dir, "a.release.esp32", "a.esp32", "b.release")

	cfg := &Config{
		WorkspaceDir:      dir,
		Profile:           ProfileRelease,
		SdkconfigDefaults: "a;b",
	}

	tracker := NewChangeSet()
	files := ResolveSdkconfigDefaults(cfg, MCUEsp32, tracker)

	// Each path's expansion is reversed (least specific first) before
	// concatenation, so the most specific overrides apply last.
	require.Len(t, files, 3)
	assert.Equal(t, []OverlayFile{
		{Src: filepath.Join(dir, "a.esp32"), Dest: "a.esp32"},
		{Src: filepath.Join(dir, "a.release.esp32"), Dest: "a.release.esp32"},
		{Src: filepath.Join(dir, "b.release"), Dest: "b.release"},
	}, files)
	assert.Len(t, tracker.Files(), 3)
}

func TestResolveSdkconfigDefaultsEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "sdkconfig.defaults")

	cfg := &Config{
		WorkspaceDir:      dir,
		Profile:           ProfileDebug,
		SdkconfigDefaults: ";sdkconfig.defaults;",
	}
	files := ResolveSdkconfigDefaults(cfg, MCUEsp32, NewChangeSet())
	require.Len(t, files, 1)
	assert.Equal(t, "sdkconfig.defaults", files[0].Dest)
}
