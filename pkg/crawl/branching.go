package crawl

// branchAt returns the branching factor for the given depth by treating
// depth as an index into the schedule and clamping it to the nearest valid
// index. The last configured factor therefore persists for all deeper
// levels, which lets a short schedule like [10, 3] mean "10 at the first
// level, 3 thereafter" without one entry per possible depth.
//
// The clamp is a deliberate policy, not an oversight: out-of-range depths
// are expected during deep crawls and must not fail. An empty schedule is
// rejected once by [NormalizeConfig], never here.
func branchAt(counts []int, depth int) int {
	i := min(depth, len(counts)-1)
	return counts[max(0, i)]
}
