// Package verdict turns the fuzzing engine's raw per-case verdicts into classified case
// results and decides which of them fail a run.
package verdict
