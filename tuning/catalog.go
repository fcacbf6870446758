package tuning

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameVersion selects which game's tuning table is searched.
type GameVersion string

const (
	RS2012 GameVersion = "RS2012"
	RS2014 GameVersion = "RS2014"
)

// bassStrings is the number of strings compared when detecting bass tunings.
const bassStrings = 4

// CustomUIName is the label given to tunings that are not in the table.
const CustomUIName = "Custom Tuning"

// A named tuning from the reference table.
type Definition struct {
	Name    string  `yaml:"name"`
	UIName  string  `yaml:"uiName"`
	Strings Strings `yaml:"-"`
	Custom  bool    `yaml:"-"`

	Offsets [NumStrings]int `yaml:"strings"`
}

type versionTable struct {
	Guitar []Definition `yaml:"guitar"`
	Bass   []Definition `yaml:"bass"`
}

// Catalog is the tuning reference table. It is never modified after it has
// been loaded, so a single Catalog can be shared by concurrent builds.
type Catalog struct {
	tables map[GameVersion]versionTable
}

//go:embed tunings.yml
var defaultTuningsYaml []byte

// LoadDefault parses the built-in tuning table.
func LoadDefault() (*Catalog, error) {
	return Parse(defaultTuningsYaml)
}

// Load reads a tuning table from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read tuning table %v: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tuning table %v: %w", path, err)
	}
	return c, nil
}

// Parse decodes a tuning table. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	var tables map[GameVersion]versionTable
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tables); err != nil {
		return nil, fmt.Errorf("could not decode tuning table: %w", err)
	}
	for version, t := range tables {
		for _, defs := range [][]Definition{t.Guitar, t.Bass} {
			for i := range defs {
				if defs[i].Name == "" {
					return nil, fmt.Errorf("%s: tuning #%d has no name", version, i)
				}
				if defs[i].UIName == "" {
					defs[i].UIName = defs[i].Name
				}
				defs[i].Strings = FromArray(defs[i].Offsets)
			}
		}
	}
	return &Catalog{tables: tables}, nil
}

func (c *Catalog) list(version GameVersion, isGuitar bool) []Definition {
	t := c.tables[version]
	if isGuitar {
		return t.Guitar
	}
	return t.Bass
}

// Detect returns the table entry matching the given open-string offsets,
// carrying the table's canonical offsets. Bass tunings only compare the four
// lowest strings. When nothing matches, a custom
// definition carrying the input offsets is returned, so Detect never fails.
func (c *Catalog) Detect(s Strings, version GameVersion, isGuitar bool) Definition {
	n := NumStrings
	if !isGuitar {
		n = bassStrings
	}
	for _, d := range c.list(version, isGuitar) {
		if d.Strings.Matches(s, n) {
			return d
		}
	}
	return Definition{
		Name:    "Custom",
		UIName:  CustomUIName,
		Strings: s,
		Offsets: s.Array(),
		Custom:  true,
	}
}

// Len returns the number of definitions for a game version.
func (c *Catalog) Len(version GameVersion) int {
	t := c.tables[version]
	return len(t.Guitar) + len(t.Bass)
}
