package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mytacism/evaluator-go/pkg/driver"
	"mytacism/evaluator-go/pkg/logger"
)

const cliToolVersion = "mytacism 0.0.0-dev"

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

func run(args []string, s streams) int {
	cmd := newRootCommand(s)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(s.err, "error: %v\n", err)
		return 1
	}
	return 0
}

// projectFlags are shared by every command that evaluates code.
type projectFlags struct {
	config   string
	defines  []string
	logLevel string
	git      bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "path to mytacism.yml (default: search upwards from the working directory)")
	cmd.Flags().StringArrayVarP(&f.defines, "define", "D", nil, "bind a compile-time value, name=value (repeatable)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&f.git, "git", false, "bind GIT_* values from the enclosing repository")
}

// load reads the project and applies command-line overrides.
func (f *projectFlags) load(cmd *cobra.Command) (*driver.Project, error) {
	var (
		project *driver.Project
		err     error
	)
	if f.config != "" {
		project, err = driver.LoadProject(f.config)
	} else {
		project, err = driver.FindProject(".")
	}
	if err != nil {
		return nil, err
	}
	for _, def := range f.defines {
		if err := project.Define(def); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("git") {
		project.Git = f.git
	}
	if f.logLevel != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(f.logLevel)); err != nil {
			return nil, err
		}
		project.Log.Level = level
	}
	return project, nil
}

func newLogger(project *driver.Project, w io.Writer) (*zap.Logger, error) {
	cfg := project.Log
	if cfg.Format == "" {
		cfg = logger.NewConfig()
	}
	return cfg.New(w)
}

func newRootCommand(s streams) *cobra.Command {
	root := &cobra.Command{
		Use:   "mytacism",
		Short: "Compile-time partial evaluation for JavaScript",
		Long: `mytacism folds constant expressions, removes dead branches, inlines
compile-time values and expands macros, leaving the rest of the source
exactly as written.

Bindings come from mytacism.yml and --define flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)
	root.AddCommand(
		newBuildCommand(s),
		newReplCommand(s),
		newVersionCommand(s),
	)
	return root
}

func newVersionCommand(s streams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(s.out, cliToolVersion)
		},
	}
}
