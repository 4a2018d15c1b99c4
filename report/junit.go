package report

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strconv"
)

type junitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Failures  int             `xml:"failures,attr"`
	Time      millis          `xml:"time,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	ClassName string        `xml:"classname,attr"`
	Name      string        `xml:"name,attr"`
	Time      millis        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Details string `xml:",chardata"`
}

// millis is written as seconds with a fractional part, e.g. 2150 becomes "2.15".
type millis int64

func (m millis) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	return xml.Attr{Name: name, Value: strconv.FormatFloat(float64(m)/1000, 'f', -1, 64)}, nil
}

// MarshalJUnit renders the report as a JUnit-style test suite document. The harness does
// not tell errors from failures, so errors and skipped are always zero.
func MarshalJUnit(r *RunReport) ([]byte, error) {
	suite := junitTestSuite{
		Name:     r.Name,
		Tests:    r.Tests,
		Failures: r.FailureCount,
		Time:     millis(r.TotalDurationMS),
	}
	for _, c := range r.Cases {
		tc := junitTestCase{
			ClassName: r.Name,
			Name:      c.Name,
			Time:      millis(c.DurationMS),
		}
		if f, failed := r.failureFor(c.Name); failed {
			tc.Failure = &junitFailure{Message: f.Reason, Details: c.String()}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	data, err := xml.MarshalIndent(suite, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// ReportPath is where WriteJUnit puts the report for a suite name.
func ReportPath(dir, name string) string {
	return filepath.Join(dir, "TEST-"+name+".xml")
}

// WriteJUnit writes the report to ReportPath(dir, r.Name) and returns that path.
func WriteJUnit(dir string, r *RunReport) (string, error) {
	path := ReportPath(dir, r.Name)
	data, err := MarshalJUnit(r)
	if err != nil {
		return path, &ReportWriteFailedError{Path: path, Cause: err}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, &ReportWriteFailedError{Path: path, Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return path, &ReportWriteFailedError{Path: path, Cause: err}
	}
	return path, nil
}
