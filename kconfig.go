package esb

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Tristate is a kconfig boolean-like value.
type Tristate int

const (
	TristateNotSet Tristate = iota
	TristateFalse
	TristateTrue
)

// KconfigValue is either a tristate or an arbitrary string. Quoted string
// values are stored unquoted.
type KconfigValue struct {
	Tristate Tristate
	Str      string
	IsStr    bool
}

// KconfigEntry is one key/value pair from a generated sdkconfig file. The
// key keeps its raw form (e.g. "CONFIG_IDF_TARGET").
type KconfigEntry struct {
	Key   string
	Value KconfigValue
}

var notSetRe = regexp.MustCompile(`^# (CONFIG_[A-Za-z0-9_]+) is not set$`)

// ParseKconfigFile reads a generated sdkconfig file preserving entry order.
// "# CONFIG_X is not set" comments become not-set tristates; all other
// comments and blank lines are skipped.
func ParseKconfigFile(path string) ([]KconfigEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []KconfigEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if m := notSetRe.FindStringSubmatch(line); m != nil {
				entries = append(entries, KconfigEntry{
					Key:   m[1],
					Value: KconfigValue{Tristate: TristateNotSet},
				})
			}
			continue
		}
		key, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		entries = append(entries, KconfigEntry{Key: key, Value: parseKconfigValue(raw)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func parseKconfigValue(raw string) KconfigValue {
	switch raw {
	case "y":
		return KconfigValue{Tristate: TristateTrue}
	case "n":
		return KconfigValue{Tristate: TristateFalse}
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return KconfigValue{Str: unquoted, IsStr: true}
		}
		return KconfigValue{Str: raw[1 : len(raw)-1], IsStr: true}
	}
	// Ints and hex literals pass through as strings.
	return KconfigValue{Str: raw, IsStr: true}
}

// CfgArgs is the set of conditional-compilation flags propagated to the
// enclosing build, in source entry order.
type CfgArgs struct {
	Args []string
}

// cfgNamespace prefixes every emitted flag.
const cfgNamespace = "esp_idf"

var cfgNameSanitizeRe = regexp.MustCompile(`[^a-z0-9_]`)

func cfgName(key string) string {
	return cfgNamespace + "_" + cfgNameSanitizeRe.ReplaceAllString(strings.ToLower(key), "_")
}

// TranslateCfgFlags keeps entries whose value is tristate-true or whose
// key matches allow, and renders them as cfg flags. A true tristate yields
// a bare flag, a string value yields `name="value"`. Entries that cannot
// be represented (false or not-set tristates outside the allow set) are
// dropped. Output order follows input order.
func TranslateCfgFlags(entries []KconfigEntry, allow *regexp.Regexp) CfgArgs {
	var args []string
	for _, entry := range entries {
		keep := entry.Value.Tristate == TristateTrue ||
			(allow != nil && allow.MatchString(entry.Key))
		if !keep {
			continue
		}
		name := cfgName(entry.Key)
		switch {
		case entry.Value.IsStr:
			args = append(args, fmt.Sprintf("%s=%q", name, entry.Value.Str))
		case entry.Value.Tristate == TristateTrue:
			args = append(args, name)
		}
	}
	return CfgArgs{Args: args}
}

// Get returns the string value of a `name="value"` flag.
func (c *CfgArgs) Get(name string) (string, bool) {
	prefix := name + "="
	for _, arg := range c.Args {
		if strings.HasPrefix(arg, prefix) {
			if value, err := strconv.Unquote(arg[len(prefix):]); err == nil {
				return value, true
			}
		}
	}
	return "", false
}
