package repl

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocl/internal/parser"
)

func init() {
	color.NoColor = true
}

func run(t *testing.T, input string) string {
	t.Helper()
	var out strings.Builder
	require.NoError(t, Start(strings.NewReader(input), &out, parser.DefaultOptions()))
	return out.String()
}

func TestStartPrintsTrees(t *testing.T) {
	out := run(t, "1 + 2 * 3\ncontext Company inv: self.size > 0\n")

	assert.Contains(t, out, "inv: (1 + (2 * 3))")
	assert.Contains(t, out, "context Company inv: (self.size > 0)")
	assert.Equal(t, 3, strings.Count(out, PROMPT))
}

func TestStartReportsErrors(t *testing.T) {
	out := run(t, "self.x $\n")

	assert.Contains(t, out, "error[E0101]: Invalid character")
	assert.Contains(t, out, "<repl>:1:8")
}

func TestStartCommands(t *testing.T) {
	out := run(t, ":help\n:tokens a <> 1\n:nope\n:quit\nnever parsed\n")

	assert.Contains(t, out, ":tokens <text>")
	assert.Contains(t, out, `IDENTIFIER "a"`)
	assert.Contains(t, out, `OPERATOR   "<>"`)
	assert.Contains(t, out, "unknown command :nope")
	assert.NotContains(t, out, "never")
}
