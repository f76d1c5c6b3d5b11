package cli

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/muzilix/dbapi-docs/pkg/config"
)

func newInitCommand(env *Env) *Command {
	return &Command{
		Name:        "init",
		Description: "Write a default site config",
		Run:         func(args []string) error { return runInit(env, args) },
	}
}

func runInit(env *Env, args []string) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	flags.SetOutput(env.Out)
	path := flags.String("config", config.ConfigFileNames[0], "Site config file to create")
	force := flags.Bool("force", false, "Overwrite an existing config")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", *path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", *path, err)
	}

	if err := config.SaveSiteConfig(config.DefaultSiteConfig(), *path); err != nil {
		return err
	}
	env.Log.WithField("path", *path).Info("Wrote site config")
	fmt.Fprintln(env.Out, *path)
	return nil
}
