package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCasePatternsWildcard(t *testing.T) {
	p := NewCasePatterns("1.*", "9.7.1")

	assert.True(t, p.AnyMatch("1.1.1"))
	assert.True(t, p.AnyMatch("1.2.8"))
	assert.True(t, p.AnyMatch("9.7.1"))
	assert.False(t, p.AnyMatch("9.7.10"))
	assert.False(t, p.AnyMatch("12.1.1"))
	assert.Equal(t, `"1.*" or "9.7.1"`, p.String())
}

func TestCasePatternsTreatOtherCharactersLiterally(t *testing.T) {
	p := NewCasePatterns("1.1.?")
	assert.False(t, p.AnyMatch("1.1.1"))
	assert.True(t, p.AnyMatch("1.1.?"))
}

func TestCaseFilters(t *testing.T) {
	f := NewCaseFilters([]string{AllCases}, []string{"12.*", "13.*"})
	assert.True(t, f.Match("1.1.1"))
	assert.False(t, f.Match("12.1.1"))
	assert.False(t, f.Match("13.7.18"))

	var none CaseFilters
	assert.True(t, none.Match("anything"))

	onlyExclude := NewCaseFilters(nil, []string{"2.*"})
	assert.True(t, onlyExclude.Match("1.1.1"))
	assert.False(t, onlyExclude.Match("2.1"))
}
