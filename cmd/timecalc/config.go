package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// fileConfig is the layout of config.toml. Every key is optional.
type fileConfig struct {
	Color   string `toml:"color"`
	Output  string `toml:"output"`
	Now     string `toml:"now"`
	Workers int    `toml:"workers"`
	Verbose bool   `toml:"verbose"`
	Echo    bool   `toml:"echo"`
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "timecalc", "config.toml")
}

// loadConfig reads the config file and copies its settings into opts for
// every flag that was not set on the command line. An explicit --config must
// exist; the default file may be missing. The result is the path of the file
// that was loaded, if any.
func loadConfig(cmd *cobra.Command, opts *options) (string, error) {
	path := opts.config
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return "", nil
		}
	}
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load config %q: %w", path, err)
	}
	if un := md.Undecoded(); len(un) > 0 {
		return "", fmt.Errorf("unknown key %q in config %q", un[0].String(), path)
	}

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if md.IsDefined("color") && !changed("color") {
		opts.color = fc.Color
	}
	if md.IsDefined("output") && !changed("output") {
		opts.output = fc.Output
	}
	if md.IsDefined("now") && !changed("now") {
		opts.now = fc.Now
	}
	if md.IsDefined("workers") && !changed("workers") {
		opts.workers = fc.Workers
	}
	if md.IsDefined("verbose") && !changed("verbose") {
		opts.verbose = fc.Verbose
	}
	if md.IsDefined("echo") && !changed("echo") {
		opts.echo = fc.Echo
	}
	return path, nil
}
