// Package solver computes machine-assignment schedules for jobs under
// precedence and resource-contention constraints. Three independent
// solvers share one problem definition: a deterministic greedy list
// scheduler, a genetic optimizer over job orderings, and an exact
// backtracking search over per-job start times. The Engine is the
// entry point; it validates the input once and exposes one method per
// solver. All solvers are synchronous and CPU-bound and build their
// machine-availability state fresh on every call, so concurrent solves
// on the same Engine are safe.
package solver
