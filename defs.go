package esb

// Environment variables consumed by the resolver pipeline.
const (
	ToolsInstallDirVar   = "ESP_IDF_TOOLS_INSTALL_DIR"
	SdkconfigVar         = "ESP_IDF_SDKCONFIG"
	SdkconfigDefaultsVar = "ESP_IDF_SDKCONFIG_DEFAULTS"
	MCUVar               = "MCU"
	ProfileVar           = "PROFILE"
	TargetVar            = "TARGET"
	OutDirVar            = "OUT_DIR"
	PioConfOptionPrefix  = "ESP_BUILD_PIO_CONF"
	TrackedGlobPrefix    = "ESP_BUILD_GLOB"
	SconsDumpVar         = "ESP_BUILD_SCONS_DUMP"
)

const (
	SdkconfigFile         = "sdkconfig"
	SdkconfigDefaultsFile = "sdkconfig.defaults"
	SettingsFile          = "esb.yaml"
	DotenvFile            = ".env"

	// Directory under the workspace root used by the "workspace" install
	// strategy.
	ToolsWorkspaceInstallDir = ".esb"
)

type ProfileEnum string

const (
	ProfileRelease ProfileEnum = "release"
	ProfileDebug   ProfileEnum = "debug"
)

var SupportedProfiles = map[ProfileEnum]bool{
	ProfileRelease: true,
	ProfileDebug:   true,
}

type MCUEnum string

const (
	MCUEsp32   MCUEnum = "esp32"
	MCUEsp32s2 MCUEnum = "esp32s2"
	MCUEsp32s3 MCUEnum = "esp32s3"
	MCUEsp32c2 MCUEnum = "esp32c2"
	MCUEsp32c3 MCUEnum = "esp32c3"
	MCUEsp32c6 MCUEnum = "esp32c6"
	MCUEsp32h2 MCUEnum = "esp32h2"
)

var SupportedMCUs = map[MCUEnum]bool{
	MCUEsp32:   true,
	MCUEsp32s2: true,
	MCUEsp32s3: true,
	MCUEsp32c2: true,
	MCUEsp32c3: true,
	MCUEsp32c6: true,
	MCUEsp32h2: true,
}

// TargetMCUs maps compilation target triples to the MCU they compile for.
var TargetMCUs = map[string]MCUEnum{
	"xtensa-esp32-espidf":    MCUEsp32,
	"xtensa-esp32s2-espidf":  MCUEsp32s2,
	"xtensa-esp32s3-espidf":  MCUEsp32s3,
	"riscv32imc-esp-espidf":  MCUEsp32c3,
	"riscv32imac-esp-espidf": MCUEsp32c6,
}

// RiscvMCUs are the MCUs that compile with a riscv32 clang target, all
// others use xtensa.
var RiscvMCUs = map[MCUEnum]bool{
	MCUEsp32c2: true,
	MCUEsp32c3: true,
	MCUEsp32c6: true,
	MCUEsp32h2: true,
}

func (m MCUEnum) ClangTarget() string {
	if RiscvMCUs[m] {
		return "riscv32"
	}
	return "xtensa"
}
