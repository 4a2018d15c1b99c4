// Package servicedef contains the data formats exchanged with the external fuzzing engine:
// the spec file it reads and the result index it writes.
package servicedef
