// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// settingsName is the name, without extension, of the settings file.
const settingsName = "crisprtools"

// PrefixConfig is the prefix of each kind of renumbered id
type PrefixConfig struct {
	Group   string `mapstructure:"group"`
	Repeat  string `mapstructure:"repeat"`
	Spacer  string `mapstructure:"spacer"`
	Flanker string `mapstructure:"flanker"`
	Contig  string `mapstructure:"contig"`
}

// MarkerConfig is the character drawn for each element in a stat line
type MarkerConfig struct {
	Repeat  string `mapstructure:"repeat"`
	Spacer  string `mapstructure:"spacer"`
	Flanker string `mapstructure:"flanker"`
}

// StatConfig is for settings of the stat command
type StatConfig struct {
	Markers MarkerConfig `mapstructure:"markers"`
}

// MergeConfig is for settings of the merge command
type MergeConfig struct {
	// the file merged groups are written to
	Output string `mapstructure:"output"`
}

// DrawConfig is for settings of the draw command
type DrawConfig struct {
	// Graphviz layout executable
	Algorithm string `mapstructure:"algorithm"`

	// image format passed to Graphviz's -T
	Format string `mapstructure:"format"`

	// coverage gradient
	Palette string `mapstructure:"palette"`

	// number of colors the gradient is split into
	Bins int `mapstructure:"bins"`

	// directory with the Graphviz executables, empty to use the PATH
	Graphviz string `mapstructure:"graphviz"`

	// directory images are written to
	Output string `mapstructure:"output"`
}

// ExtractConfig is for settings of the extract command
type ExtractConfig struct {
	// line width of FASTA sequences
	Width int `mapstructure:"width"`
}

// Config is the root-level settings struct and is a mix
// of settings available in crisprtools.yaml and those
// available from the command line
type Config struct {
	Prefix  PrefixConfig  `mapstructure:"prefix"`
	Stat    StatConfig    `mapstructure:"stat"`
	Merge   MergeConfig   `mapstructure:"merge"`
	Draw    DrawConfig    `mapstructure:"draw"`
	Extract ExtractConfig `mapstructure:"extract"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults sets the value of every setting not in a settings file or flag.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("prefix.group", "G")
	v.SetDefault("prefix.repeat", "Dr")
	v.SetDefault("prefix.spacer", "Sp")
	v.SetDefault("prefix.flanker", "Fl")
	v.SetDefault("prefix.contig", "C")

	v.SetDefault("stat.markers.repeat", "#")
	v.SetDefault("stat.markers.spacer", "-")
	v.SetDefault("stat.markers.flanker", "~")

	v.SetDefault("merge.output", "crisprtools_merged.crispr")

	v.SetDefault("draw.algorithm", "dot")
	v.SetDefault("draw.format", "eps")
	v.SetDefault("draw.palette", "red-blue")
	v.SetDefault("draw.bins", 20)
	v.SetDefault("draw.graphviz", "")
	v.SetDefault("draw.output", ".")

	v.SetDefault("extract.width", 60)
}

// ReadSettings reads the settings file at path into viper. Without a path,
// it looks for crisprtools.yaml in $HOME/.config/crisprtools and then the
// working directory, and it's fine if there isn't one.
func ReadSettings(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read settings file %s", path)
		}
		return nil
	}

	v.SetConfigName(settingsName)
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", settingsName))
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return errors.Wrap(err, "failed to read settings file")
	}
	return nil
}

// New returns a new Config struct populated by
// Viper settings (either from the settings file)
// and/or command line arguments
func New() (*Config, error) {
	return From(viper.GetViper())
}

// From unmarshals the settings of v.
func From(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unable to decode settings")
	}
	return &c, nil
}
