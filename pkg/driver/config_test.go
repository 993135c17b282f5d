package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mytacism/evaluator-go/pkg/evaluator"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644))
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
values:
  debug: false
  retries: 3
  name: demo
  limits:
    max: 10
  tags: [a, b]
functions:
  upper: string.upper
macros:
  square: "$0 * $0"
asts:
  banner: "console.log('built')"
source_map: false
max_expansion_depth: 16
output: build
log:
  format: json
  level: debug
`)

	project, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectFileName), project.Path)
	assert.Equal(t, dir, project.Dir)
	assert.Equal(t, false, project.Values["debug"])
	assert.Equal(t, 3, project.Values["retries"])
	assert.Equal(t, map[string]any{"max": 10}, project.Values["limits"])
	assert.Equal(t, []any{"a", "b"}, project.Values["tags"])
	assert.Equal(t, map[string]string{"upper": "string.upper"}, project.Functions)
	assert.Equal(t, "$0 * $0", project.Macros["square"])
	assert.Equal(t, "console.log('built')", project.ASTs["banner"])
	assert.False(t, project.SourceMap)
	assert.Equal(t, 16, project.MaxExpansionDepth)
	assert.Equal(t, filepath.Join(dir, "build"), project.OutputDir())
	assert.Equal(t, "json", project.Log.Format)
	assert.Equal(t, zapcore.DebugLevel, project.Log.Level)
}

func TestLoadProjectDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ProjectFileName)
	writeFile(t, path, `values: {}`)

	project, err := LoadProject(path)
	require.NoError(t, err)
	assert.True(t, project.SourceMap)
	assert.Equal(t, DefaultOutput, project.Output)
	assert.Equal(t, "auto", project.Log.Format)
	assert.Zero(t, project.MaxExpansionDepth)
}

func TestLoadProjectRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
values: {}
macro: {}
`)
	_, err := LoadProject(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "macro")
}

func TestLoadProjectValidation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
values:
  twice: 1
  "not-a-name": 2
functions:
  nope: string.missing
macros:
  twice: "$0 + $0"
max_expansion_depth: -1
output: ""
`)
	_, err := LoadProject(dir)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.ElementsMatch(t, []string{
		`values.not-a-name: "not-a-name" is not an identifier`,
		`functions.nope: unknown builtin "string.missing"`,
		"macros.twice: already bound in values",
		"max_expansion_depth must not be negative",
		"output must not be empty",
	}, verr.Issues)
	assert.Contains(t, err.Error(), "project validation failed:\n- ")
}

func TestFindProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFileName), `
values:
  level: 2
`)
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	project, err := FindProject(nested)
	require.NoError(t, err)
	assert.Equal(t, 2, project.Values["level"])

	empty := t.TempDir()
	project, err = FindProject(empty)
	require.NoError(t, err)
	assert.Empty(t, project.Path)
	assert.Equal(t, empty, project.Dir)
}

func TestDefine(t *testing.T) {
	project := NewProject(t.TempDir())
	require.NoError(t, project.Define("debug=true"))
	require.NoError(t, project.Define("count=12"))
	require.NoError(t, project.Define("name=hello world"))
	require.NoError(t, project.Define("empty="))
	require.NoError(t, project.Define("nothing=null"))

	assert.Equal(t, true, project.Values["debug"])
	assert.Equal(t, 12, project.Values["count"])
	assert.Equal(t, "hello world", project.Values["name"])
	assert.Equal(t, "", project.Values["empty"])
	assert.Nil(t, project.Values["nothing"])

	assert.Error(t, project.Define("novalue"))
	assert.Error(t, project.Define("=1"))
	assert.Error(t, project.Define("a.b=1"))
}

func TestEvaluatorConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
values:
  debug: false
functions:
  upper: string.upper
macros:
  square: "$0 * $0"
asts:
  greeting: "'hi'"
`)
	project, err := LoadProject(dir)
	require.NoError(t, err)
	require.NoError(t, project.Define("debug=true"))

	cfg, err := project.EvaluatorConfig(zap.NewNop())
	require.NoError(t, err)
	res, err := evaluator.Evaluate(`x = upper("a") + square(3) + debug + greeting;`, cfg)
	require.NoError(t, err)
	assert.Equal(t, `x = "A9truehi";`, res.Code)
}
