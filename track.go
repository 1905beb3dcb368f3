package esb

// Tracker records the files the enclosing build system should watch so an
// incremental build reruns when any configuration layer changes.
type Tracker interface {
	TrackFile(path string)
	TrackEnvVar(name string)
}

// ChangeSet is the default Tracker. It keeps insertion order and drops
// duplicates.
type ChangeSet struct {
	files    []string
	envVars  []string
	seenFile map[string]bool
	seenVar  map[string]bool
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		seenFile: make(map[string]bool),
		seenVar:  make(map[string]bool),
	}
}

func (c *ChangeSet) TrackFile(path string) {
	if c.seenFile[path] {
		return
	}
	c.seenFile[path] = true
	c.files = append(c.files, path)
}

func (c *ChangeSet) TrackEnvVar(name string) {
	if c.seenVar[name] {
		return
	}
	c.seenVar[name] = true
	c.envVars = append(c.envVars, name)
}

func (c *ChangeSet) Files() []string {
	return c.files
}

func (c *ChangeSet) EnvVars() []string {
	return c.envVars
}
