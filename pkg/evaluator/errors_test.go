package evaluator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"mytacism/evaluator-go/pkg/ast"
)

func TestDescribeTruncatesOnRuneBoundaries(t *testing.T) {
	short := ast.NewRaw("string", `"héllo"`)
	assert.Equal(t, `"héllo"`, describe(short))

	long := ast.NewRaw("string", strings.Repeat("é", 45))
	got := describe(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 37)+"...", got)

	exact := ast.NewRaw("string", strings.Repeat("日", 40))
	assert.Equal(t, strings.Repeat("日", 40), describe(exact))
}
