package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/kumade/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [name=value...] [targets...]",
		Short: "Run tasks and their dependencies",
		Long: "Run the given tasks, or the default task when none are given.\n" +
			"A target may also be the path of a file a task produces.\n" +
			"Arguments of the form name=value override config items.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, overrides := splitArgs(args)
			return c.app.Run(cmd.Context(), app.RunOptions{
				File:    c.file,
				Targets: targets,
				Config:  overrides,
			})
		},
	}
}

// splitArgs separates name=value config overrides from targets.
// Arguments whose name part looks like a path are treated as targets.
func splitArgs(args []string) ([]string, map[string]string) {
	var targets []string
	var overrides map[string]string

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" || strings.ContainsRune(name, '/') {
			targets = append(targets, arg)
			continue
		}
		if overrides == nil {
			overrides = make(map[string]string)
		}
		overrides[name] = value
	}

	return targets, overrides
}
