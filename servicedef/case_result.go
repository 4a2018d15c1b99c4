package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// IndexFileName is the file in the engine's output directory that lists every case result.
const IndexFileName = "index.json"

// ResultIndex is the content of index.json: agent name to case name to result.
type ResultIndex map[string]map[string]IndexEntry

// IndexEntry is a single case result as the engine records it in index.json.
type IndexEntry struct {
	Behavior        string              `json:"behavior"`
	BehaviorClose   string              `json:"behaviorClose"`
	Duration        int64               `json:"duration"`
	RemoteCloseCode ldvalue.OptionalInt `json:"remoteCloseCode"`
	ReportFile      string              `json:"reportfile"`
}

// RawCaseResult is one case verdict returned by the fuzzing engine, before the behavior
// strings have been parsed.
type RawCaseResult struct {
	CaseName        string
	Behavior        string
	BehaviorClose   string
	DurationMS      int64
	RemoteCloseCode ldvalue.OptionalInt
	ReportFile      string
}

func (e IndexEntry) ToRaw(caseName string) RawCaseResult {
	return RawCaseResult{
		CaseName:        caseName,
		Behavior:        e.Behavior,
		BehaviorClose:   e.BehaviorClose,
		DurationMS:      e.Duration,
		RemoteCloseCode: e.RemoteCloseCode,
		ReportFile:      e.ReportFile,
	}
}
