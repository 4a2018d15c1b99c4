package verdict

// RunPolicy decides which behaviors fail a run.
type RunPolicy struct {
	// FailOnNonStrict treats NON_STRICT as a failure. By default it passes, since
	// non-strict behavior still conforms to the RFC.
	FailOnNonStrict bool
	// EmitReport controls whether a structured report is written for the run.
	EmitReport bool
}

// Passing reports whether a case with the given primary behavior passes.
func (p RunPolicy) Passing(b Behavior) bool {
	if p.FailOnNonStrict && b == NonStrict {
		return false
	}
	switch b {
	case OK, Informational, NonStrict:
		return true
	default:
		return false
	}
}
