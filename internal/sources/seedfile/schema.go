package seedfile

// SeedConfig is the root structure of the optional seed YAML file:
// pre-provisioned cases and the URLs they should contain.
type SeedConfig struct {
	Cases []SeedCase `yaml:"cases"`
}

// SeedCase declares one case by name. Names are the stable identity in the
// seed file; ids are generated when the case is first created.
type SeedCase struct {
	Name    string    `yaml:"name"`
	Default bool      `yaml:"default"`
	URLs    []SeedURL `yaml:"urls"`
}

// SeedURL declares one record. Status and priority are optional and
// default to todo / none.
type SeedURL struct {
	URL      string   `yaml:"url"`
	Title    string   `yaml:"title"`
	Notes    string   `yaml:"notes"`
	Tags     []string `yaml:"tags"`
	Status   string   `yaml:"status"`
	Priority int      `yaml:"priority"`
}
