// Package engine drives the external fuzzing engine that performs the actual protocol
// conformance probing, and converts its output into raw case verdicts.
package engine
