package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// Command represents a CLI command
type Command struct {
	Name        string
	Description string
	Run         func(args []string) error
	Subcommands map[string]*Command
	Flags       *flag.FlagSet
}

// Env is what commands write to
type Env struct {
	Out io.Writer
	Log *logrus.Logger
}

// NewRootCommand creates the root command
func NewRootCommand(env *Env) *Command {
	root := &Command{
		Name:        "docsgen",
		Description: "docsgen - DBAPI documentation site tooling",
		Subcommands: make(map[string]*Command),
		Flags:       flag.NewFlagSet("docsgen", flag.ContinueOnError),
	}

	root.Subcommands["build"] = newBuildCommand(env)
	root.Subcommands["check"] = newCheckCommand(env)
	root.Subcommands["endpoints"] = newEndpointsCommand(env)
	root.Subcommands["path"] = newPathCommand(env)
	root.Subcommands["diff"] = newDiffCommand(env)
	root.Subcommands["init"] = newInitCommand(env)
	root.Subcommands["serve"] = newServeCommand(env)

	return root
}

// Execute runs the command with the process arguments
func (c *Command) Execute() error {
	return c.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the command with args
func (c *Command) ExecuteArgs(args []string) error {
	if len(args) == 0 {
		return c.usage(os.Stdout)
	}

	if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		return c.usage(os.Stdout)
	}

	if subcmd, ok := c.Subcommands[args[0]]; ok {
		return subcmd.Run(args[1:])
	}

	return fmt.Errorf("unknown command: %s", args[0])
}

// usage prints the command usage
func (c *Command) usage(w io.Writer) error {
	fmt.Fprintf(w, "Usage: %s <command> [args]\n\n", c.Name)
	fmt.Fprintf(w, "Commands:\n")

	names := make([]string, 0, len(c.Subcommands))
	for name := range c.Subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, c.Subcommands[name].Description)
	}
	return nil
}

// NewLogger creates the CLI logger
func NewLogger(logLevel string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
