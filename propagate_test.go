package esb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutputsEnvVars(t *testing.T) {
	outputs := &BuildOutputs{
		MCU:          MCUEsp32,
		EnvPath:      "/toolchain/bin",
		FrameworkDir: "/core/packages/framework-espidf",
	}
	assert.Equal(t, []string{
		"ESB_MCU=esp32",
		"ESB_ESP_IDF_PATH=/core/packages/framework-espidf",
		"ESB_ENV_PATH=/toolchain/bin",
	}, outputs.EnvVars())

	// Bindings-only mode has no toolchain env path.
	outputs.EnvPath = ""
	assert.Len(t, outputs.EnvVars(), 2)
}

func TestWriteMetadata(t *testing.T) {
	tracker := NewChangeSet()
	tracker.TrackFile("/ws/sdkconfig")
	tracker.TrackEnvVar("MCU")

	outputs := &BuildOutputs{
		Cfg:     CfgArgs{Args: []string{"esp_idf_config_foo", `esp_idf_config_idf_target="esp32"`}},
		Bindgen: BindgenArgs{Header: "/ws/bindings.h", ClangArgs: []string{"-I/x", "-target", "xtensa"}},
		CIncl:   []string{"-I/sdk"},
		Link:    []string{"-lhap"},
		MCU:     MCUEsp32,
		Tracked: tracker,
	}

	var sb strings.Builder
	require.NoError(t, outputs.WriteMetadata(&sb))
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")

	assert.Contains(t, lines, "cfg=esp_idf_config_foo")
	assert.Contains(t, lines, `cfg=esp_idf_config_idf_target="esp32"`)
	assert.Contains(t, lines, "bindgen-header=/ws/bindings.h")
	assert.Contains(t, lines, "bindgen-clang-arg=-I/x")
	assert.Contains(t, lines, "incl-arg=-I/sdk")
	assert.Contains(t, lines, "link-arg=-lhap")
	assert.Contains(t, lines, "env=ESB_MCU=esp32")
	assert.Contains(t, lines, "rerun-if-changed=/ws/sdkconfig")
	assert.Contains(t, lines, "rerun-if-env-changed=MCU")
}
