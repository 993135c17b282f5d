package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/driver"
	"mytacism/evaluator-go/pkg/evaluator"
)

type buildFlags struct {
	projectFlags
	out    string
	stdout bool
	noMap  bool
}

func newBuildCommand(s streams) *cobra.Command {
	var flags buildFlags
	cmd := &cobra.Command{
		Use:   "build [flags] <file>...",
		Short: "Evaluate source files and write the results",
		Long: `Evaluate each file against the project bindings and write the result,
with a source map beside it, into the output directory. A file named "-"
is read from stdin and written to stdout.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if flags.out != "" {
				out, err := filepath.Abs(flags.out)
				if err != nil {
					return err
				}
				project.Output = out
			}
			if flags.noMap {
				project.SourceMap = false
			}
			log, err := newLogger(project, s.err)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return build(project, args, flags.stdout, s, log)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory, relative to the working directory (default from mytacism.yml, else dist)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print results to stdout instead of writing files")
	cmd.Flags().BoolVar(&flags.noMap, "no-map", false, "do not write source maps")
	return cmd
}

func build(project *driver.Project, files []string, toStdout bool, s streams, log *zap.Logger) error {
	cfg, err := project.EvaluatorConfig(log)
	if err != nil {
		return err
	}
	engine, err := evaluator.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, file := range files {
		source, name, err := readSource(file, s.in)
		if err != nil {
			return err
		}
		cfg.SourceFileName = name
		cfg.SourceMapName = filepath.Base(name)
		res, err := engine.Evaluate(string(source), cfg)
		if err != nil {
			return err
		}
		for _, diag := range res.Diagnostics {
			fmt.Fprintf(s.err, "warning: %s\n", diag)
		}
		if toStdout || file == "-" {
			fmt.Fprint(s.out, res.Code)
			continue
		}
		if err := writeOutput(project, name, res); err != nil {
			return err
		}
	}
	return nil
}

func readSource(file string, stdin io.Reader) ([]byte, string, error) {
	if file == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "stdin.js", nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, "", err
	}
	return data, file, nil
}

func writeOutput(project *driver.Project, name string, res *evaluator.Result) error {
	dir := project.OutputDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	base := filepath.Base(name)
	if project.SourceMap {
		if err := os.WriteFile(filepath.Join(dir, base+".map"), []byte(res.Map), 0o644); err != nil {
			return err
		}
	}
	return os.WriteFile(filepath.Join(dir, base), []byte(res.Code), 0o644)
}
