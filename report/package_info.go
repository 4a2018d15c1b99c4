// Package report aggregates classified case results into a run report and writes it out
// as a JUnit-style XML document that CI report readers understand.
package report
