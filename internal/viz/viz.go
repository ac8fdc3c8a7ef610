// Package viz renders the branch-and-bound search as an HTML chart: LP
// bound per node against the incumbent trace, in the spirit of the
// go-echarts scatter plots this corpus already uses for solver output.
package viz

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/gap-solve/branchprice/internal/lpengine"
)

// Recorder implements gap.Observer, collecting one point per solved node
// and one per incumbent update for later rendering. The DOT export is
// built on lpengine.TreeLogger, the BnbMiddleware recorder with its own
// Graphviz export; the pricing oracle's branch-and-bound search runs with a
// no-op middleware, so only the branch-and-price tree is recorded here.
type Recorder struct {
	nodeLP     []opts.LineData
	incumbents []opts.LineData
	node       int
	tree       *lpengine.TreeLogger
}

func NewRecorder() *Recorder {
	return &Recorder{tree: lpengine.NewTreeLogger()}
}

// NodeSolved implements gap.Observer, feeding the node into the shared
// TreeLogger: a certified bound renders like a closed, feasible subproblem;
// an uncertified one (stalled column generation or unavailable duals, per
// spec.md §9 Open Question 2) renders like a degenerate subproblem, since
// both mean "this bound could not be trusted as-is".
func (r *Recorder) NodeSolved(nodeID, parentID int64, lpValue float64, certified bool) {
	r.nodeLP = append(r.nodeLP, opts.LineData{Value: lpValue})
	r.node++

	r.tree.NewSubProblem(lpengine.SubproblemInfo{ID: nodeID, Parent: parentID})
	decision := lpengine.SubproblemDegenerate
	if certified {
		decision = lpengine.BetterThanIncumbentFeasible
	}
	r.tree.ProcessDecision(lpengine.DecisionInfo{NodeID: nodeID, Objective: lpValue}, decision)
}

// IncumbentUpdated implements gap.Observer.
func (r *Recorder) IncumbentUpdated(value float64) {
	for len(r.incumbents) < len(r.nodeLP) {
		carry := 0.0
		if len(r.incumbents) > 0 {
			carry = r.incumbents[len(r.incumbents)-1].Value.(float64)
		}
		r.incumbents = append(r.incumbents, opts.LineData{Value: carry})
	}
	if len(r.incumbents) > 0 {
		r.incumbents[len(r.incumbents)-1] = opts.LineData{Value: value}
	}
}

// Render writes an HTML line chart of LP bound vs. incumbent across the
// nodes explored so far to out.
func (r *Recorder) Render(out io.Writer) error {
	xAxis := make([]string, len(r.nodeLP))
	for i := range xAxis {
		xAxis[i] = itoa(i)
	}
	for len(r.incumbents) < len(r.nodeLP) {
		r.incumbents = append(r.incumbents, opts.LineData{Value: 0.0})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Branch-and-price search"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithXAxisOpts(opts.XAxis{Name: "node"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "objective"}),
	)
	line.SetXAxis(xAxis).
		AddSeries("LP bound", r.nodeLP).
		AddSeries("incumbent", r.incumbents)

	return line.Render(out)
}

// RenderDOT writes a Graphviz visualization of the branch-and-price tree to
// out, via the shared lpengine.TreeLogger.ToDOT.
func (r *Recorder) RenderDOT(out io.Writer) {
	r.tree.ToDOT(out)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf []byte
	for i > 0 {
		buf = append(buf, byte('0'+i%10))
		i /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}
