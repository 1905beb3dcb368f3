package esb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSdkconfig = `# Generated config, do not edit.

CONFIG_IDF_TARGET="esp32"
CONFIG_FREERTOS_UNICORE=y
CONFIG_ESP32_SPIRAM_SUPPORT=n
# CONFIG_BT_ENABLED is not set
CONFIG_PARTITION_TABLE_OFFSET=0x8000
CONFIG_LWIP_LOCAL_HOSTNAME="espressif"
`

func parseSample(t *testing.T) []KconfigEntry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdkconfig.release")
	require.NoError(t, os.WriteFile(path, []byte(sampleSdkconfig), 0644))
	entries, err := ParseKconfigFile(path)
	require.NoError(t, err)
	return entries
}

func TestParseKconfigFile(t *testing.T) {
	entries := parseSample(t)
	require.Len(t, entries, 6)

	assert.Equal(t, "CONFIG_IDF_TARGET", entries[0].Key)
	assert.True(t, entries[0].Value.IsStr)
	assert.Equal(t, "esp32", entries[0].Value.Str)

	assert.Equal(t, TristateTrue, entries[1].Value.Tristate)
	assert.Equal(t, TristateFalse, entries[2].Value.Tristate)

	assert.Equal(t, "CONFIG_BT_ENABLED", entries[3].Key)
	assert.Equal(t, TristateNotSet, entries[3].Value.Tristate)

	assert.Equal(t, "0x8000", entries[4].Value.Str)
}

func TestTranslateCfgFlags(t *testing.T) {
	entries := parseSample(t)
	cfgArgs := TranslateCfgFlags(entries, cfgKeyAllow)

	assert.Equal(t, []string{
		`esp_idf_config_idf_target="esp32"`,
		"esp_idf_config_freertos_unicore",
	}, cfgArgs.Args)

	target, ok := cfgArgs.Get("esp_idf_config_idf_target")
	require.True(t, ok)
	assert.Equal(t, "esp32", target)

	_, ok = cfgArgs.Get("esp_idf_config_bt_enabled")
	assert.False(t, ok)
}

func TestTranslateCfgFlagsNilAllow(t *testing.T) {
	entries := []KconfigEntry{
		{Key: "CONFIG_FOO", Value: KconfigValue{Tristate: TristateTrue}},
		{Key: "CONFIG_BAR", Value: KconfigValue{Str: "x", IsStr: true}},
	}
	cfgArgs := TranslateCfgFlags(entries, nil)
	assert.Equal(t, []string{"esp_idf_config_foo"}, cfgArgs.Args)
}

func TestParseKconfigFileMissing(t *testing.T) {
	_, err := ParseKconfigFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
