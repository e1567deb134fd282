// Package commands implements the CLI commands for the kumade task runner.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/kumade/internal/app"
	"go.trai.ch/kumade/internal/build"
)

// CLI represents the command line interface for kumade.
type CLI struct {
	app       Application
	configure LogConfigurer
	rootCmd   *cobra.Command

	file      string
	verbose   bool
	logFormat string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	ListTasks(opts app.ListOptions) (*app.Listing, error)
}

// LogConfigurer applies the global logging flags before a command runs.
type LogConfigurer func(verbose bool, format string) error

// New creates a new CLI instance with the given app.
// configure may be nil when logging is not configurable.
func New(a Application, configure LogConfigurer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "kumade",
		Short:         "A dependency-driven task runner",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:       a,
		configure: configure,
		rootCmd:   rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.file, "file", "f", "", "Path to the task file (default: discovered from the working directory)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Announce every task and show debug output")
	flags.StringVar(&c.logFormat, "log-format", app.LogFormatText, "Log format: text or json")

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if c.configure == nil {
			return nil
		}
		return c.configure(c.verbose, c.logFormat)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newTasksCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
