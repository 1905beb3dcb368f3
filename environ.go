package esb

import (
	"os"
	"sort"
	"strings"
)

// Environ is the process-environment surface the pipeline reads. It exists
// so resolution logic can be tested without touching process-global state.
type Environ interface {
	Lookup(key string) (string, bool)
	// All returns every variable as "KEY=VALUE".
	All() []string
}

type osEnviron struct{}

// OSEnviron returns the real process environment.
func OSEnviron() Environ {
	return osEnviron{}
}

func (osEnviron) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnviron) All() []string {
	return os.Environ()
}

// MapEnviron is an Environ backed by a plain map.
type MapEnviron map[string]string

func (m MapEnviron) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapEnviron) All() []string {
	all := make([]string, 0, len(m))
	for k, v := range m {
		all = append(all, k+"="+v)
	}
	sort.Strings(all)
	return all
}

// ChainEnviron layers environments; earlier layers win on lookup.
func ChainEnviron(layers ...Environ) Environ {
	return chainEnviron(layers)
}

// chainEnviron looks a key up in each layer in order; earlier layers win.
type chainEnviron []Environ

func (c chainEnviron) Lookup(key string) (string, bool) {
	for _, env := range c {
		if v, ok := env.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

func (c chainEnviron) All() []string {
	seen := make(map[string]bool)
	var all []string
	for _, env := range c {
		for _, kv := range env.All() {
			key, _, _ := strings.Cut(kv, "=")
			if !seen[key] {
				seen[key] = true
				all = append(all, kv)
			}
		}
	}
	sort.Strings(all)
	return all
}

// EnvValues collects the values of all variables named "{prefix}_*", sorted
// by variable name. Used for env-supplied project options.
func EnvValues(env Environ, prefix string) []string {
	type kv struct{ key, value string }
	var found []kv
	for _, pair := range env.All() {
		key, value, _ := strings.Cut(pair, "=")
		if strings.HasPrefix(key, prefix+"_") {
			found = append(found, kv{key, value})
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].key < found[j].key })
	values := make([]string, len(found))
	for i, f := range found {
		values[i] = f.value
	}
	return values
}
