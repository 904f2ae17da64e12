package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/example/markshot/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
	loader *config.Loader
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	c := &configCmd{root: r, fs: fs, stdout: os.Stdout, loader: config.NewLoader(version, configPathOverride)}
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &UsageError{of: c}
		}
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		_, err := fmt.Fprint(c.stdout, c.effective().String())
		return err
	case "save":
		return c.runSave()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

// effective folds the root flags into the loaded configuration.
func (c *configCmd) effective() *config.Config {
	cfg := *c.config
	cfg.Notify = config.Notify{Save: c.saveAlerts, Copy: c.copyAlerts, Pin: c.pinAlerts}
	if c.themeName != "" {
		cfg.Theme = c.themeName
	}
	return &cfg
}

func (c *configCmd) runSave() error {
	path := c.loader.GetConfigPath()
	if path != "" && c.loader.OverridePath == "" {
		c.loader.OverridePath = path
	}
	written, err := c.loader.Save(c.effective())
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", written)
	return nil
}
