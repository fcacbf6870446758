// Package config holds the settings of the arrangement builder. Defaults are
// built in; a config.yml in the user's config directory overrides them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/QEStudios/CDLCArrangementBuilder/arrangement"
	"github.com/QEStudios/CDLCArrangementBuilder/tuning"
)

// AppDir is the directory under the user config directory holding config.yml.
const AppDir = "arrbuild"

// Config holds the builder settings. Command line flags override them.
type Config struct {
	FixMultiTone bool               `yaml:"fixMultiTone"`
	FixLowBass   bool               `yaml:"fixLowBass"`
	Workers      int                `yaml:"workers"`
	GameVersion  tuning.GameVersion `yaml:"gameVersion"`
	TuningsFile  string             `yaml:"tuningsFile"`

	// YmlError is set when a user config file exists but could not be read.
	// The defaults are used in that case.
	YmlError error `yaml:"-"`
}

//go:embed config.yml
var defaultConfigYaml []byte

func decodeStrict(data []byte, target *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	if err := decodeStrict(defaultConfigYaml, &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// ReadCustomConfigYml decodes <dir>/arrbuild/<filename> into target. exists is
// false when the file is not there.
func ReadCustomConfigYml(dir, filename string, target *Config) (exists bool, err error) {
	path := filepath.Join(dir, AppDir, filename)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	if err := decodeStrict(data, target); err != nil {
		return true, fmt.Errorf("%v: %w", path, err)
	}
	return true, nil
}

// LoadFrom returns the defaults overridden by <dir>/arrbuild/config.yml.
func LoadFrom(dir string) Config {
	c := Default()
	user := c
	exists, err := ReadCustomConfigYml(dir, "config.yml", &user)
	if exists && err != nil {
		c.YmlError = err
		return c
	}
	if err := user.validate(); err != nil {
		c.YmlError = err
		return c
	}
	return user
}

// Load reads the settings from the user's config directory.
func Load() Config {
	dir, err := os.UserConfigDir()
	if err != nil {
		return Default()
	}
	return LoadFrom(dir)
}

func (c Config) validate() error {
	switch c.GameVersion {
	case tuning.RS2012, tuning.RS2014:
	default:
		return fmt.Errorf("unknown game version %q", c.GameVersion)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Options returns the repair options for a build.
func (c Config) Options() arrangement.Options {
	return arrangement.Options{FixMultiTone: c.FixMultiTone, FixLowBass: c.FixLowBass}
}

// Catalog loads the tuning table named by TuningsFile, or the built-in one.
func (c Config) Catalog() (*tuning.Catalog, error) {
	if c.TuningsFile == "" {
		return tuning.LoadDefault()
	}
	return tuning.Load(c.TuningsFile)
}
