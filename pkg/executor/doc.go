// Package executor applies a plan computed by the planner.
//
// Steps run strictly in order. The mapping set is persisted as soon as the
// AddMapping step runs, before any filesystem step, so an interrupted add
// always leaves the path recorded. Filesystem steps run as synthfs
// operations, one pipeline per step. Nothing is rolled back: the first
// failing step stops execution.
package executor
