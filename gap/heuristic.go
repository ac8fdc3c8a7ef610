package gap

import "math"

// hungarianSolver is the Kuhn-Munkres assignment algorithm, ported from the
// Kevin L. Stern Java implementation (by way of the Go port retrieved
// alongside this spec) for use as the min-weight matching step of the
// initial heuristic. Costs must be finite; infeasible edges are represented
// by a large finite penalty rather than +Inf (see buildCostMatrix below).
type hungarianSolver struct {
	cost                               [][]float64
	rows, cols, dim                    int
	labelByWorker, labelByJob          []float64
	minSlackWorkerByJob                []int
	minSlackValueByJob                 []float64
	matchJobByWorker, matchWorkerByJob []int
	parentWorkerByCommittedJob         []int
	committedWorkers                   []bool
}

func newHungarianSolver(cost [][]float64) *hungarianSolver {
	rows := len(cost)
	cols := 0
	if rows > 0 {
		cols = len(cost[0])
	}
	dim := rows
	if cols > dim {
		dim = cols
	}

	h := &hungarianSolver{
		cost:                       make([][]float64, dim),
		rows:                       rows,
		cols:                       cols,
		dim:                        dim,
		labelByWorker:              make([]float64, dim),
		labelByJob:                 make([]float64, dim),
		minSlackWorkerByJob:        make([]int, dim),
		minSlackValueByJob:         make([]float64, dim),
		committedWorkers:           make([]bool, dim),
		parentWorkerByCommittedJob: make([]int, dim),
		matchJobByWorker:           make([]int, dim),
		matchWorkerByJob:           make([]int, dim),
	}
	for w := 0; w < dim; w++ {
		h.cost[w] = make([]float64, dim)
		if w < rows {
			copy(h.cost[w], cost[w])
		}
	}
	for i := 0; i < dim; i++ {
		h.matchJobByWorker[i] = -1
		h.matchWorkerByJob[i] = -1
	}
	return h
}

// execute runs the algorithm and returns, per worker (row) in [0, rows), the
// matched job index or -1 if the worker went unmatched (only possible when
// cols < rows).
func (h *hungarianSolver) execute() []int {
	h.reduce()
	h.computeInitialFeasibleSolution()
	h.greedyMatch()

	for w := h.fetchUnmatchedWorker(); w < h.dim; w = h.fetchUnmatchedWorker() {
		h.initializePhase(w)
		h.executePhase()
	}

	result := make([]int, h.rows)
	copy(result, h.matchJobByWorker[:h.rows])
	for w := range result {
		if result[w] >= h.cols {
			result[w] = -1
		}
	}
	return result
}

func (h *hungarianSolver) computeInitialFeasibleSolution() {
	for j := range h.labelByJob {
		h.labelByJob[j] = math.Inf(1)
	}
	for w := 0; w < h.dim; w++ {
		for j := 0; j < h.dim; j++ {
			if h.cost[w][j] < h.labelByJob[j] {
				h.labelByJob[j] = h.cost[w][j]
			}
		}
	}
}

func (h *hungarianSolver) executePhase() {
	for {
		minSlackWorker, minSlackJob := -1, -1
		minSlackValue := math.Inf(1)
		for j := 0; j < h.dim; j++ {
			if h.parentWorkerByCommittedJob[j] == -1 && h.minSlackValueByJob[j] < minSlackValue {
				minSlackValue = h.minSlackValueByJob[j]
				minSlackWorker = h.minSlackWorkerByJob[j]
				minSlackJob = j
			}
		}
		if minSlackValue > 0 {
			h.updateLabeling(minSlackValue)
		}
		h.parentWorkerByCommittedJob[minSlackJob] = minSlackWorker
		if h.matchWorkerByJob[minSlackJob] == -1 {
			committedJob := minSlackJob
			parentWorker := h.parentWorkerByCommittedJob[committedJob]
			for {
				next := h.matchJobByWorker[parentWorker]
				h.match(parentWorker, committedJob)
				committedJob = next
				if committedJob == -1 {
					break
				}
				parentWorker = h.parentWorkerByCommittedJob[committedJob]
			}
			return
		}
		worker := h.matchWorkerByJob[minSlackJob]
		h.committedWorkers[worker] = true
		for j := 0; j < h.dim; j++ {
			if h.parentWorkerByCommittedJob[j] == -1 {
				slack := h.cost[worker][j] - h.labelByWorker[worker] - h.labelByJob[j]
				if h.minSlackValueByJob[j] > slack {
					h.minSlackValueByJob[j] = slack
					h.minSlackWorkerByJob[j] = worker
				}
			}
		}
	}
}

func (h *hungarianSolver) fetchUnmatchedWorker() int {
	for w, v := range h.matchJobByWorker {
		if v == -1 {
			return w
		}
	}
	return h.dim
}

func (h *hungarianSolver) greedyMatch() {
	for w := 0; w < h.dim; w++ {
		for j := 0; j < h.dim; j++ {
			if h.matchJobByWorker[w] == -1 && h.matchWorkerByJob[j] == -1 &&
				h.cost[w][j]-h.labelByWorker[w]-h.labelByJob[j] == 0 {
				h.match(w, j)
			}
		}
	}
}

func (h *hungarianSolver) initializePhase(w int) {
	for i := range h.committedWorkers {
		h.committedWorkers[i] = false
	}
	for i := range h.parentWorkerByCommittedJob {
		h.parentWorkerByCommittedJob[i] = -1
	}
	h.committedWorkers[w] = true
	for j := 0; j < h.dim; j++ {
		h.minSlackValueByJob[j] = h.cost[w][j] - h.labelByWorker[w] - h.labelByJob[j]
		h.minSlackWorkerByJob[j] = w
	}
}

func (h *hungarianSolver) match(w, j int) {
	h.matchJobByWorker[w] = j
	h.matchWorkerByJob[j] = w
}

func (h *hungarianSolver) reduce() {
	for w := 0; w < h.dim; w++ {
		min := math.Inf(1)
		for j := 0; j < h.dim; j++ {
			if h.cost[w][j] < min {
				min = h.cost[w][j]
			}
		}
		for j := 0; j < h.dim; j++ {
			h.cost[w][j] -= min
		}
	}
	mins := make([]float64, h.dim)
	for j := range mins {
		mins[j] = math.Inf(1)
	}
	for w := 0; w < h.dim; w++ {
		for j := 0; j < h.dim; j++ {
			if h.cost[w][j] < mins[j] {
				mins[j] = h.cost[w][j]
			}
		}
	}
	for w := 0; w < h.dim; w++ {
		for j := 0; j < h.dim; j++ {
			h.cost[w][j] -= mins[j]
		}
	}
}

func (h *hungarianSolver) updateLabeling(slack float64) {
	for w := 0; w < h.dim; w++ {
		if h.committedWorkers[w] {
			h.labelByWorker[w] += slack
		}
	}
	for j := 0; j < h.dim; j++ {
		if h.parentWorkerByCommittedJob[j] != -1 {
			h.labelByJob[j] -= slack
		} else {
			h.minSlackValueByJob[j] -= slack
		}
	}
}

// infeasiblePenalty stands in for the "edge does not exist" case: munkres
// rejects an infinite cost matrix, so infeasible (task, machine) pairs get
// a cost far worse than any real assignment can produce.
const infeasiblePenalty = 1e12

// InitialHeuristic produces a set of feasible machine-schedules to seed the
// root RMP, per spec.md §4.3: repeated min-weight (max-profit) matching
// against remaining capacity, followed by a capacity-driven fallback for
// any task matching alone could not place. Always advisory — a task this
// heuristic cannot place is still covered by the root's artificial slack
// columns, so partial results are acceptable.
func InitialHeuristic(inst *Instance) []Schedule {
	remaining := make([]float64, inst.NumMachines())
	copy(remaining, capacitiesOf(inst))

	assignedTo := make([]int, inst.NumTasks())
	for i := range assignedTo {
		assignedTo[i] = -1
	}

	unassigned := make([]int, inst.NumTasks())
	for t := range unassigned {
		unassigned[t] = t
	}

	for len(unassigned) > 0 {
		cost := make([][]float64, len(unassigned))
		for i, t := range unassigned {
			row := make([]float64, inst.NumMachines())
			for m := 0; m < inst.NumMachines(); m++ {
				if inst.Weight(m, t) <= remaining[m]+1e-9 {
					row[m] = -inst.Profit(m, t)
				} else {
					row[m] = infeasiblePenalty
				}
			}
			cost[i] = row
		}

		matched := newHungarianSolver(cost).execute()

		progressed := false
		var stillUnassigned []int
		for i, t := range unassigned {
			m := matched[i]
			if m >= 0 && inst.Weight(m, t) <= remaining[m]+1e-9 {
				assignedTo[t] = m
				remaining[m] -= inst.Weight(m, t)
				progressed = true
				continue
			}
			stillUnassigned = append(stillUnassigned, t)
		}
		unassigned = stillUnassigned
		if !progressed {
			break
		}
	}

	// Capacity-driven fallback: place any task matching alone left behind
	// onto the machine with least weight that still fits it.
	for _, t := range unassigned {
		best, bestWeight := -1, math.Inf(1)
		for m := 0; m < inst.NumMachines(); m++ {
			if inst.Weight(m, t) <= remaining[m]+1e-9 && inst.Weight(m, t) < bestWeight {
				best, bestWeight = m, inst.Weight(m, t)
			}
		}
		if best >= 0 {
			assignedTo[t] = best
			remaining[best] -= bestWeight
		}
	}

	byMachine := make([][]int, inst.NumMachines())
	for t, m := range assignedTo {
		if m >= 0 {
			byMachine[m] = append(byMachine[m], t)
		}
	}

	var schedules []Schedule
	for m, tasks := range byMachine {
		if len(tasks) > 0 {
			schedules = append(schedules, Schedule{Machine: m, Tasks: tasks})
		}
	}
	return schedules
}

func capacitiesOf(inst *Instance) []float64 {
	caps := make([]float64, inst.NumMachines())
	for m := range caps {
		caps[m] = inst.Capacity(m)
	}
	return caps
}
