package viz

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RenderProducesHTML(t *testing.T) {
	r := NewRecorder()
	r.NodeSolved(0, 0, 50.0, true)
	r.IncumbentUpdated(47.0)
	r.NodeSolved(1, 0, 48.0, true)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	assert.Contains(t, buf.String(), "Branch-and-price search")
}

func TestRecorder_RenderDOT(t *testing.T) {
	r := NewRecorder()
	r.NodeSolved(0, 0, 50.0, true)
	r.NodeSolved(1, 0, 40.0, false)

	var buf bytes.Buffer
	r.RenderDOT(&buf)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph enumtree {"))
	assert.Contains(t, out, "color=Green", "the certified node renders as a closed, feasible subproblem")
	assert.Contains(t, out, "color=Red", "the uncertified node renders as a degenerate subproblem")
	assert.Contains(t, out, "0 -> 1 ;")
}

func TestItoa(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}
