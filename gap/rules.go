package gap

// BranchingRule is a single fixing x[m][t] ∈ {0,1}, accumulated along a
// root-to-leaf path of the branch-and-bound tree. A value type: equal by
// fields, never mutated after creation.
type BranchingRule struct {
	Task     int
	Machine  int
	Assigned bool
}

// RuleSet is an accumulated, root-to-leaf list of rules. Extended only by
// appending; never shares backing storage between siblings (see
// gap/driver.go's child construction).
type RuleSet []BranchingRule

// WithRule returns a new RuleSet with r appended, leaving the receiver's
// backing array untouched so sibling branches never alias each other.
func (rs RuleSet) WithRule(r BranchingRule) RuleSet {
	out := make(RuleSet, len(rs), len(rs)+1)
	copy(out, rs)
	return append(out, r)
}

// AllowsSchedule reports whether a machine m assigning exactly the tasks in
// the set committed (a bool-keyed membership set of task ids) is consistent
// with every rule in rs, applying the three cases from spec.md §4.4/§8.2:
//   - forbid(t, m): t must not be in m's schedule.
//   - force(t, m): if this is m, t must be in the schedule; if this is a
//     different machine, t must NOT be in that machine's schedule (it is
//     reserved for m).
func (rs RuleSet) AllowsSchedule(m int, committed map[int]bool) bool {
	for _, r := range rs {
		in := committed[r.Task]
		if r.Assigned {
			if r.Machine == m && !in {
				return false
			}
			if r.Machine != m && in {
				return false
			}
		} else {
			if r.Machine == m && in {
				return false
			}
		}
	}
	return true
}

// fixedValue reports whether rs pins y[t] on machine m to a fixed 0/1
// value, for use by the pricing oracle's variable-bound tightening.
func (rs RuleSet) fixedValue(m, t int) (val float64, fixed bool) {
	for _, r := range rs {
		if r.Task != t {
			continue
		}
		if r.Assigned && r.Machine == m {
			return 1, true
		}
		if r.Assigned && r.Machine != m {
			return 0, true
		}
		if !r.Assigned && r.Machine == m {
			return 0, true
		}
	}
	return 0, false
}
