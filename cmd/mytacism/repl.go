package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mytacism/evaluator-go/pkg/driver"
	"mytacism/evaluator-go/pkg/evaluator"
	"mytacism/evaluator-go/pkg/logger"
)

const (
	historyFile = ".mytacism_history"
	promptMain  = "> "
	promptCont  = ". "
)

// prompter is the part of liner.State the loop uses.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCommand(s streams) *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Evaluate snippets interactively",
		Long: `Read snippets line by line and print what they reduce to. End a line
with \ to continue the snippet. :names lists the bindings, :quit exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := flags.load(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(project, s.err)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var p prompter
			if f, ok := s.in.(*os.File); ok && logger.IsTerminal(f) {
				ln := liner.NewLiner()
				defer ln.Close()
				ln.SetCtrlCAborts(true)
				histPath := historyPath()
				if f, err := os.Open(histPath); err == nil {
					_, _ = ln.ReadHistory(f)
					_ = f.Close()
				}
				defer func() {
					if f, err := os.Create(histPath); err == nil {
						_, _ = ln.WriteHistory(f)
						_ = f.Close()
					}
				}()
				p = ln
			} else {
				p = newLineReader(s.in)
			}
			return repl(p, project, s, log)
		},
	}
	flags.register(cmd)
	return cmd
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func repl(p prompter, project *driver.Project, s streams, log *zap.Logger) error {
	cfg, err := project.EvaluatorConfig(log)
	if err != nil {
		return err
	}
	cfg.SourceFileName = "repl"
	engine, err := evaluator.NewEngine()
	if err != nil {
		return err
	}
	defer engine.Close()

	for {
		code, ok := readSnippet(p)
		if !ok {
			return nil
		}
		trimmed := strings.TrimSpace(code)
		switch {
		case trimmed == "":
			continue
		case trimmed == ":quit":
			return nil
		case trimmed == ":names":
			fmt.Fprintln(s.out, strings.Join(bindingNames(cfg), " "))
			continue
		case strings.HasPrefix(trimmed, ":"):
			fmt.Fprintln(s.out, "unknown command. Type :quit to exit.")
			continue
		}
		p.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		res, err := engine.Evaluate(code, cfg)
		if err != nil {
			fmt.Fprintf(s.err, "error: %v\n", err)
			continue
		}
		for _, diag := range res.Diagnostics {
			fmt.Fprintf(s.err, "warning: %s\n", diag)
		}
		fmt.Fprintln(s.out, strings.TrimRight(res.Code, "\n"))
	}
}

func readSnippet(p prompter) (string, bool) {
	var b strings.Builder
	prompt := promptMain
	for {
		line, err := p.Prompt(prompt)
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				return b.String(), true
			}
			return "", false
		}
		if cont, ok := strings.CutSuffix(line, `\`); ok {
			b.WriteString(cont)
			b.WriteByte('\n')
			prompt = promptCont
			continue
		}
		b.WriteString(line)
		return b.String(), true
	}
}

func bindingNames(cfg evaluator.Config) []string {
	var names []string
	for name := range cfg.Values {
		names = append(names, name)
	}
	for name := range cfg.Functions {
		names = append(names, name)
	}
	for name := range cfg.Macros {
		names = append(names, name)
	}
	for name := range cfg.ASTs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lineReader feeds the loop from a plain reader when stdin is not a
// terminal.
type lineReader struct {
	lines []string
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	data, err := io.ReadAll(r)
	if err != nil {
		return &lineReader{err: err}
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return &lineReader{err: io.EOF}
	}
	return &lineReader{lines: strings.Split(text, "\n"), err: io.EOF}
}

func (r *lineReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *lineReader) AppendHistory(string) {}
