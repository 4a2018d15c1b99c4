package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metrics", "autobahn.prom")
	require.NoError(t, WriteMetrics(path, Assemble(SuiteName, makeClassification("2.1"))))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `autobahn_cases_total{behavior="OK",status="passed"} 1`)
	assert.Contains(t, text, `autobahn_cases_total{behavior="WRONG_CODE",status="failed"} 1`)
	assert.Contains(t, text, `autobahn_cases_total{behavior="NON_STRICT",status="passed"} 1`)
	assert.Contains(t, text, "autobahn_case_duration_seconds_count 3")
	assert.Contains(t, text, "autobahn_run_duration_seconds 2.15")
	assert.Contains(t, text, "autobahn_run_failures 1")
}
