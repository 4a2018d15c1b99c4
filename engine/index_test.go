package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/launchdarkly/autobahn-contract-tests/servicedef"
)

const sampleIndex = `{
  "autobahntestsuite-agent": {
    "1.1.10": {"behavior": "OK", "behaviorClose": "OK", "duration": 3, "remoteCloseCode": 1000, "reportfile": "agent_case_1_1_10.json"},
    "1.1.2": {"behavior": "OK", "behaviorClose": "OK", "duration": 2, "remoteCloseCode": 1000, "reportfile": "agent_case_1_1_2.json"},
    "12.1.1": {"behavior": "NON-STRICT", "behaviorClose": "OK", "duration": 40, "remoteCloseCode": 1000, "reportfile": "agent_case_12_1_1.json"},
    "7.1.6": {"behavior": "INFORMATIONAL", "behaviorClose": "WRONG CODE", "duration": 1, "remoteCloseCode": null, "reportfile": "agent_case_7_1_6.json"}
  },
  "other-agent": {
    "1.1.1": {"behavior": "FAILED", "behaviorClose": "UNCLEAN", "duration": 1, "remoteCloseCode": null, "reportfile": "other_case_1_1_1.json"}
  }
}`

func writeIndex(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), servicedef.IndexFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func rawNames(results []servicedef.RawCaseResult) []string {
	var ret []string
	for _, r := range results {
		ret = append(ret, r.CaseName)
	}
	return ret
}

func TestIndexEngineReadsAgentResultsInCaseOrder(t *testing.T) {
	e := Index{Path: writeIndex(t, sampleIndex)}
	results, err := e.RunFuzzingClient(context.Background(), Request{Agent: "autobahntestsuite-agent", Cases: []string{"*"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"1.1.2", "1.1.10", "7.1.6", "12.1.1"}, rawNames(results))

	first := results[0]
	assert.Equal(t, "OK", first.Behavior)
	assert.Equal(t, int64(2), first.DurationMS)
	require.True(t, first.RemoteCloseCode.IsDefined())
	assert.Equal(t, 1000, first.RemoteCloseCode.IntValue())
	assert.Equal(t, "agent_case_1_1_2.json", first.ReportFile)

	assert.Equal(t, "WRONG CODE", results[2].BehaviorClose)
	assert.False(t, results[2].RemoteCloseCode.IsDefined())
}

func TestIndexEngineAppliesCaseFilters(t *testing.T) {
	e := Index{Path: writeIndex(t, sampleIndex)}
	results, err := e.RunFuzzingClient(context.Background(), Request{
		Agent:        "autobahntestsuite-agent",
		Cases:        []string{"1.*", "12.*"},
		ExcludeCases: []string{"1.1.10"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.1.2", "12.1.1"}, rawNames(results))
}

func TestIndexEngineErrors(t *testing.T) {
	t.Run("unknown agent", func(t *testing.T) {
		e := Index{Path: writeIndex(t, sampleIndex)}
		_, err := e.RunFuzzingClient(context.Background(), Request{Agent: "nobody"})
		var engineErr *EngineError
		require.True(t, errors.As(err, &engineErr))
		assert.Contains(t, err.Error(), `"nobody"`)
	})

	t.Run("malformed file", func(t *testing.T) {
		e := Index{Path: writeIndex(t, "{not json")}
		_, err := e.RunFuzzingClient(context.Background(), Request{Agent: "autobahntestsuite-agent"})
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		e := Index{Path: filepath.Join(t.TempDir(), "missing.json")}
		_, err := e.RunFuzzingClient(context.Background(), Request{Agent: "autobahntestsuite-agent"})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSortCaseNames(t *testing.T) {
	names := []string{"12.1.1", "1.1.10", "2.1", "1.1.2", "1.1", "9.7.1", "x.1", "1.10.1"}
	SortCaseNames(names)
	assert.Equal(t, []string{"1.1", "1.1.2", "1.1.10", "1.10.1", "2.1", "9.7.1", "12.1.1", "x.1"}, names)
}
