package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mytacism/evaluator-go/pkg/evaluator"
	"mytacism/evaluator-go/pkg/logger"
	"mytacism/evaluator-go/pkg/runtime"
)

// ProjectFileName is the file LoadProject looks for when given a directory.
const ProjectFileName = "mytacism.yml"

// DefaultOutput is the build directory used when the project names none.
const DefaultOutput = "dist"

// Project represents the parsed contents of mytacism.yml.
type Project struct {
	Path string
	Dir  string

	Values map[string]any
	// Functions maps a binding name to a host builtin, e.g. upper: string.upper.
	Functions map[string]string
	Macros    map[string]string
	ASTs      map[string]string

	SourceMap         bool
	MaxExpansionDepth int
	Git               bool
	Output            string
	Log               logger.Config
}

// ValidationError aggregates project validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "project: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("project validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// NewProject returns the configuration used when no project file exists.
func NewProject(dir string) *Project {
	return &Project{
		Dir:       dir,
		Values:    map[string]any{},
		Functions: map[string]string{},
		Macros:    map[string]string{},
		ASTs:      map[string]string{},
		SourceMap: true,
		Output:    DefaultOutput,
		Log:       logger.NewConfig(),
	}
}

// LoadProject parses a project file from disk, returning a validated
// project. A directory path is resolved to its mytacism.yml.
func LoadProject(path string) (*Project, error) {
	if path == "" {
		return nil, fmt.Errorf("project: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("project: resolve %s: %w", path, err)
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		absPath = filepath.Join(absPath, ProjectFileName)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("project: open %s: %w", absPath, err)
	}
	defer file.Close()

	project, err := DecodeProject(file, filepath.Dir(absPath))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, err
		}
		return nil, fmt.Errorf("project: parse %s: %w", absPath, err)
	}
	project.Path = absPath
	return project, nil
}

// FindProject walks up from dir looking for mytacism.yml. It returns the
// defaults when none is found.
func FindProject(dir string) (*Project, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("project: resolve %s: %w", dir, err)
	}
	for current := start; ; {
		candidate := filepath.Join(current, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return LoadProject(candidate)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return NewProject(start), nil
		}
		current = parent
	}
}

// DecodeProject reads a project file from r. Relative paths resolve against
// dir.
func DecodeProject(r io.Reader, dir string) (*Project, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw projectFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return NewProject(dir), nil
		}
		return nil, err
	}
	project := raw.toProject(dir)
	if err := project.validate(); err != nil {
		return nil, err
	}
	return project, nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func (p *Project) validate() error {
	var errs ValidationError
	owners := map[string]string{}
	claim := func(group, name string) {
		if !identifierPattern.MatchString(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s.%s: %q is not an identifier", group, name, name))
		}
		if other, ok := owners[name]; ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s.%s: already bound in %s", group, name, other))
			return
		}
		owners[name] = group
	}

	for _, name := range sortedKeys(p.Values) {
		claim("values", name)
		if _, err := runtime.Normalize(p.Values[name]); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("values.%s: %v", name, err))
		}
	}
	for _, name := range sortedKeys(p.Functions) {
		claim("functions", name)
		builtin := p.Functions[name]
		if _, ok := runtime.Builtin(builtin); !ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("functions.%s: unknown builtin %q", name, builtin))
		}
	}
	for _, name := range sortedKeys(p.Macros) {
		claim("macros", name)
	}
	for _, name := range sortedKeys(p.ASTs) {
		claim("asts", name)
	}
	if p.Git {
		for _, name := range GitValueNames {
			if group, ok := owners[name]; ok {
				errs.Issues = append(errs.Issues, fmt.Sprintf("%s.%s: conflicts with git metadata", group, name))
			}
		}
	}
	if p.MaxExpansionDepth < 0 {
		errs.Issues = append(errs.Issues, "max_expansion_depth must not be negative")
	}
	if p.Output == "" {
		errs.Issues = append(errs.Issues, "output must not be empty")
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// OutputDir returns the build directory, resolved against the project
// directory.
func (p *Project) OutputDir() string {
	if filepath.IsAbs(p.Output) {
		return p.Output
	}
	return filepath.Join(p.Dir, p.Output)
}

// Define binds or overrides a value from a name=value string. The value is
// read as a YAML scalar, so define debug=true binds a boolean.
func (p *Project) Define(def string) error {
	name, text, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("define %q: expected name=value", def)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("define %q: %q is not an identifier", def, name)
	}
	var value any
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return fmt.Errorf("define %q: %w", def, err)
	}
	if value == nil && strings.TrimSpace(text) != "null" && strings.TrimSpace(text) != "~" {
		value = text
	}
	if _, err := runtime.Normalize(value); err != nil {
		return fmt.Errorf("define %q: %w", def, err)
	}
	if p.Values == nil {
		p.Values = map[string]any{}
	}
	p.Values[name] = value
	return nil
}

// EvaluatorConfig resolves the project into bindings for one evaluation.
func (p *Project) EvaluatorConfig(log *zap.Logger) (evaluator.Config, error) {
	cfg := evaluator.Config{
		Values:            make(map[string]any, len(p.Values)),
		Functions:         make(map[string]runtime.NativeFunc, len(p.Functions)),
		Macros:            make(map[string]evaluator.Macro, len(p.Macros)),
		ASTs:              make(map[string]any, len(p.ASTs)),
		MaxExpansionDepth: p.MaxExpansionDepth,
		Logger:            log,
	}
	for name, v := range p.Values {
		cfg.Values[name] = v
	}
	for name, builtin := range p.Functions {
		fn, ok := runtime.Builtin(builtin)
		if !ok {
			return evaluator.Config{}, fmt.Errorf("project: functions.%s: unknown builtin %q", name, builtin)
		}
		cfg.Functions[name] = fn.Impl
	}
	for name, src := range p.Macros {
		cfg.Macros[name] = evaluator.Template(src)
	}
	for name, src := range p.ASTs {
		cfg.ASTs[name] = src
	}
	if p.Git {
		values, err := GitValues(p.Dir)
		if err != nil {
			return evaluator.Config{}, err
		}
		for name, v := range values {
			cfg.Values[name] = v
		}
	}
	return cfg, nil
}

type projectFile struct {
	Values            map[string]any    `yaml:"values"`
	Functions         map[string]string `yaml:"functions"`
	Macros            map[string]string `yaml:"macros"`
	ASTs              map[string]string `yaml:"asts"`
	SourceMap         *bool             `yaml:"source_map"`
	MaxExpansionDepth int               `yaml:"max_expansion_depth"`
	Git               bool              `yaml:"git"`
	Output            *string           `yaml:"output"`
	Log               *logger.Config    `yaml:"log"`
}

func (pf projectFile) toProject(dir string) *Project {
	result := NewProject(dir)
	for name, v := range pf.Values {
		result.Values[strings.TrimSpace(name)] = v
	}
	for name, builtin := range pf.Functions {
		result.Functions[strings.TrimSpace(name)] = strings.TrimSpace(builtin)
	}
	for name, src := range pf.Macros {
		result.Macros[strings.TrimSpace(name)] = src
	}
	for name, src := range pf.ASTs {
		result.ASTs[strings.TrimSpace(name)] = src
	}
	if pf.SourceMap != nil {
		result.SourceMap = *pf.SourceMap
	}
	result.MaxExpansionDepth = pf.MaxExpansionDepth
	result.Git = pf.Git
	if pf.Output != nil {
		result.Output = strings.TrimSpace(*pf.Output)
	}
	if pf.Log != nil {
		result.Log = *pf.Log
		if result.Log.Format == "" {
			result.Log.Format = "auto"
		}
	}
	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
