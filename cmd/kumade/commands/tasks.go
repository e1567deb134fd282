package commands

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.trai.ch/kumade/internal/app"
	"go.trai.ch/kumade/internal/ui/output"
	"go.trai.ch/kumade/internal/ui/style"
)

func (c *CLI) newTasksCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List config items and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing, err := c.app.ListTasks(app.ListOptions{File: c.file, All: all})
			if err != nil {
				return err
			}
			return renderListing(output.New(cmd.OutOrStdout()), listing)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also list tasks without help text")
	return cmd
}

// renderListing writes config items and tasks as aligned columns.
// The default task is marked with a filled dot.
func renderListing(out *termenv.Output, listing *app.Listing) error {
	muted := termenv.RGBColor(string(style.Slate))
	accent := termenv.RGBColor(string(style.Amber))

	var lines []string

	if len(listing.Config) > 0 {
		width := 0
		for _, item := range listing.Config {
			width = max(width, len(item.Name))
		}

		lines = append(lines, out.String("Config:").Bold().String())
		for _, item := range listing.Config {
			line := fmt.Sprintf("  %-*s %s %s", width, item.Name, style.Arrow, out.String(quote(item.Default)).Foreground(accent))
			if item.Help != "" {
				line += "  " + out.String(item.Help).Foreground(muted).String()
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	lines = append(lines, out.String("Tasks:").Bold().String())
	if len(listing.Tasks) == 0 {
		lines = append(lines, "  "+out.String("no documented tasks, use --all to list every task").Foreground(muted).String())
	}

	width := 0
	for _, task := range listing.Tasks {
		width = max(width, len(task.Name.String()))
	}

	for _, task := range listing.Tasks {
		name := task.Name.String()
		icon := out.String(style.Circle).Foreground(muted)
		if name == listing.Default {
			icon = out.String(style.Dot).Foreground(accent)
		}

		line := fmt.Sprintf("  %s %s", icon, name)
		if task.Help != "" {
			line = fmt.Sprintf("  %s %-*s  %s", icon, width, name, out.String(task.Help).Foreground(muted))
		}
		lines = append(lines, line)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	return value
}
