package esb

// SDKPackage describes the SDK source tree delivered to the generated
// project as a PlatformIO library dependency.
type SDKPackage struct {
	Name string `yaml:"name"`
	Url  string `yaml:"url"`
	Tag  string `yaml:"tag"`
}

// LibDep renders the package as a platformio.ini lib_deps entry.
func (p *SDKPackage) LibDep() string {
	dep := p.Url
	if p.Tag != "" {
		dep += "#" + p.Tag
	}
	return dep
}

// DefaultSDKPackage is the SDK the generated project builds against when
// the settings file does not name one.
var DefaultSDKPackage = SDKPackage{
	Name: "esp-homekit-sdk",
	Url:  "https://github.com/espressif/esp-homekit-sdk.git",
}
