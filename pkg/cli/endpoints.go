package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/muzilix/dbapi-docs/pkg/docs/diff"
	"github.com/muzilix/dbapi-docs/pkg/endpoints"
	"github.com/muzilix/dbapi-docs/pkg/theme"
)

func newEndpointsCommand(env *Env) *Command {
	return &Command{
		Name:        "endpoints",
		Description: "List the endpoint catalog",
		Run:         func(args []string) error { return runEndpoints(env, args) },
	}
}

func runEndpoints(env *Env, args []string) error {
	flags := flag.NewFlagSet("endpoints", flag.ContinueOnError)
	flags.SetOutput(env.Out)
	group := flags.String("group", "", "Only list endpoints in this group")
	asJSON := flags.Bool("json", false, "Print a JSON snapshot of the catalog (usable with diff -base)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	reg := endpoints.Default()

	if *group != "" {
		if _, ok := reg.Group(*group); !ok {
			return fmt.Errorf("%w: %s", endpoints.ErrUnknownGroup, *group)
		}
	}

	if *asJSON {
		if *group != "" {
			sub, err := groupRegistry(reg, *group)
			if err != nil {
				return err
			}
			reg = sub
		}
		return reg.WriteSnapshot(env.Out)
	}

	tw := tabwriter.NewWriter(env.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tGROUP\tMETHOD\tPATH\tAUTH")
	for e := range reg.All() {
		if *group != "" && e.Group != *group {
			continue
		}
		auth := "-"
		if e.RequiresAuth {
			auth = "yes"
		}
		if e.Hidden {
			auth += " (hidden)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Key, e.Group, e.Method, e.Path, auth)
	}
	return tw.Flush()
}

// groupRegistry narrows reg to one group, keeping the result a valid snapshot
func groupRegistry(reg *endpoints.Registry, tag string) (*endpoints.Registry, error) {
	g, _ := reg.Group(tag)
	var entries []endpoints.Entry
	for e := range reg.All() {
		if e.Group == tag {
			entries = append(entries, e)
		}
	}
	return endpoints.NewRegistry([]endpoints.Group{g}, entries)
}

func newPathCommand(env *Env) *Command {
	return &Command{
		Name:        "path",
		Description: "Render an example path: path [-full] KEY name=value...",
		Run:         func(args []string) error { return runPath(env, args) },
	}
}

func runPath(env *Env, args []string) error {
	flags := flag.NewFlagSet("path", flag.ContinueOnError)
	flags.SetOutput(env.Out)
	full := flags.Bool("full", false, "Prefix the API base URL")
	configPath := flags.String("config", "", "Site config file used for -full")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() < 1 {
		return fmt.Errorf("usage: path [-full] KEY name=value...")
	}

	key := flags.Arg(0)
	values, err := parseAssignments(flags.Args()[1:])
	if err != nil {
		return err
	}

	d, err := endpoints.Default().Lookup(key)
	if err != nil {
		return err
	}
	path, err := endpoints.RenderExamplePath(d, values)
	if err != nil {
		return err
	}

	if *full {
		cfg, _, err := loadSiteConfig(*configPath)
		if err != nil {
			return err
		}
		base, err := theme.NormalizeBaseURL(cfg.APIBaseURL)
		if err != nil {
			return err
		}
		path = base + path
	}

	fmt.Fprintln(env.Out, path)
	return nil
}

// parseAssignments parses name=value arguments
func parseAssignments(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := cutAssignment(arg)
		if !ok {
			return nil, fmt.Errorf("expected name=value, got %q", arg)
		}
		values[name] = value
	}
	return values, nil
}

func cutAssignment(arg string) (string, string, bool) {
	name, value, ok := strings.Cut(arg, "=")
	return name, value, ok && name != ""
}

func newDiffCommand(env *Env) *Command {
	return &Command{
		Name:        "diff",
		Description: "Compare the catalog against a snapshot and print a changelog",
		Run:         func(args []string) error { return runDiff(env, args) },
	}
}

func runDiff(env *Env, args []string) error {
	flags := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags.SetOutput(env.Out)
	base := flags.String("base", "", "Snapshot written by 'endpoints -json'")
	heading := flags.String("heading", "未发布", "Changelog heading")
	failOnBreaking := flags.Bool("fail-on-breaking", false, "Exit with an error on breaking changes")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *base == "" {
		return fmt.Errorf("-base is required")
	}

	f, err := os.Open(*base)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	from, err := endpoints.ReadSnapshot(f)
	if err != nil {
		return err
	}

	result := diff.NewAnalyzer().Compare(from, endpoints.Default())
	fmt.Fprint(env.Out, result.Changelog(*heading))

	if *failOnBreaking && result.HasBreaking() {
		return fmt.Errorf("%d breaking changes", len(result.BySeverity(diff.Breaking)))
	}
	return nil
}
