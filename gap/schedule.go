package gap

import "sort"

// Schedule is a single feasible machine-schedule column (m, S) of spec.md
// §3: S is the set of tasks assigned to machine M. Tasks is not kept in any
// particular order; key sorts a copy of it for a stable dedup key.
type Schedule struct {
	Machine int
	Tasks   []int
}

// key returns a comparable dedup key per spec.md §9 ("Equality semantics on
// columns"): (machine, sorted task set).
func (s Schedule) key() string {
	sorted := append([]int(nil), s.Tasks...)
	sort.Ints(sorted)
	buf := make([]byte, 0, 4+4*len(sorted))
	buf = appendInt(buf, s.Machine)
	for _, t := range sorted {
		buf = append(buf, '|')
		buf = appendInt(buf, t)
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	if neg {
		buf = append(buf, '-')
	}
	for l, r := start, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return buf
}

// has reports whether t is one of s's assigned tasks.
func (s Schedule) has(t int) bool {
	for _, u := range s.Tasks {
		if u == t {
			return true
		}
	}
	return false
}

// feasible checks the capacity invariant of spec.md §3.
func (s Schedule) feasible(inst *Instance) bool {
	return inst.ScheduleWeight(s.Machine, s.Tasks) <= inst.Capacity(s.Machine)+1e-9
}

// committedSet builds the membership map RuleSet.AllowsSchedule expects.
func committedSet(tasks []int) map[int]bool {
	m := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		m[t] = true
	}
	return m
}
