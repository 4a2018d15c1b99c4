package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/launchdarkly/autobahn-contract-tests/framework"
	"github.com/launchdarkly/autobahn-contract-tests/servicedef"
)

// Index is an Engine that does not run anything. It reads the results of an earlier run
// from an index.json file, which is useful for re-evaluating a run under a different
// policy or for feeding results produced elsewhere into the report.
type Index struct {
	Path   string
	Logger framework.Logger
}

func (e Index) RunFuzzingClient(ctx context.Context, req Request) ([]servicedef.RawCaseResult, error) {
	logger := e.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}
	logger.Printf("Reading results for agent %q from %s", req.Agent, e.Path)
	results, err := readIndex(e.Path, req.Agent, framework.NewCaseFilters(req.Cases, req.ExcludeCases))
	if err != nil {
		return nil, &EngineError{Engine: "index", Err: err}
	}
	return results, nil
}

func readIndex(path, agent string, filters framework.CaseFilters) ([]servicedef.RawCaseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var index servicedef.ResultIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("malformed result index %s: %w", path, err)
	}
	entries, ok := index[agent]
	if !ok {
		return nil, fmt.Errorf("result index %s has no results for agent %q", path, agent)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		if filters.Match(name) {
			names = append(names, name)
		}
	}
	SortCaseNames(names)

	results := make([]servicedef.RawCaseResult, 0, len(names))
	for _, name := range names {
		results = append(results, entries[name].ToRaw(name))
	}
	return results, nil
}

// SortCaseNames orders dotted case ids numerically component by component, so that
// "1.1.2" comes before "1.1.10". Components that are not numbers compare as strings.
func SortCaseNames(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		return caseNameLess(names[i], names[j])
	})
}

func caseNameLess(a, b string) bool {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for k := 0; k < len(pa) && k < len(pb); k++ {
		if pa[k] == pb[k] {
			continue
		}
		na, errA := strconv.Atoi(pa[k])
		nb, errB := strconv.Atoi(pb[k])
		if errA == nil && errB == nil {
			return na < nb
		}
		return pa[k] < pb[k]
	}
	return len(pa) < len(pb)
}
