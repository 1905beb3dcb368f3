package esb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBoards = []Board{
	{ID: "esp32dev", MCU: "ESP32", Platform: "espressif32", Frameworks: []string{"espidf", "arduino"}},
	{ID: "esp32-c3-devkitm-1", MCU: "ESP32C3", Platform: "espressif32", Frameworks: []string{"espidf"}},
	{ID: "esp32-s3-arduino", MCU: "ESP32S3", Platform: "espressif32", Frameworks: []string{"arduino"}},
}

func testResolver() *Resolver {
	return &Resolver{
		Pio: &Pio{CoreDir: "/core"},
		BoardIndex: func(platform string) ([]Board, error) {
			return testBoards, nil
		},
	}
}

func TestResolveMCUFromTarget(t *testing.T) {
	resolution, err := testResolver().Resolve(ResolutionParams{
		Platform:   "espressif32",
		Frameworks: []string{"espidf"},
		Target:     "xtensa-esp32-espidf",
	})
	require.NoError(t, err)
	assert.Equal(t, MCUEsp32, resolution.MCU)
	assert.Equal(t, "esp32dev", resolution.Board)
	assert.Contains(t, resolution.FrameworkDir, "framework-espidf")
}

func TestResolveMCUOverride(t *testing.T) {
	resolution, err := testResolver().Resolve(ResolutionParams{
		Platform:   "espressif32",
		Frameworks: []string{"espidf"},
		MCU:        "esp32c3",
		Target:     "xtensa-esp32-espidf",
	})
	require.NoError(t, err)
	assert.Equal(t, MCUEsp32c3, resolution.MCU)
	assert.Equal(t, "esp32-c3-devkitm-1", resolution.Board)
}

func TestResolveUnknownTarget(t *testing.T) {
	_, err := testResolver().Resolve(ResolutionParams{
		Platform:   "espressif32",
		Frameworks: []string{"espidf"},
		Target:     "x86_64-unknown-linux-gnu",
	})
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolveUnsupportedMCU(t *testing.T) {
	_, err := testResolver().Resolve(ResolutionParams{
		Platform:   "espressif32",
		Frameworks: []string{"espidf"},
		MCU:        "esp1",
	})
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestResolveNoMatchingBoard(t *testing.T) {
	// esp32s3 exists in the index but does not support espidf there.
	_, err := testResolver().Resolve(ResolutionParams{
		Platform:   "espressif32",
		Frameworks: []string{"espidf"},
		MCU:        "esp32s3",
	})
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}

func TestClangTarget(t *testing.T) {
	assert.Equal(t, "xtensa", MCUEsp32.ClangTarget())
	assert.Equal(t, "xtensa", MCUEsp32s3.ClangTarget())
	assert.Equal(t, "riscv32", MCUEsp32c3.ClangTarget())
	assert.Equal(t, "riscv32", MCUEsp32c6.ClangTarget())
}
