package framework

import (
	"regexp"
	"strings"
)

// AllCases is the case pattern that selects every case.
const AllCases = "*"

// CaseFilters selects fuzzing cases by name. Patterns use "*" as a wildcard for any run
// of characters, the same way the fuzzing engine interprets its case lists.
type CaseFilters struct {
	Include CasePatterns
	Exclude CasePatterns
}

func NewCaseFilters(include, exclude []string) CaseFilters {
	return CaseFilters{Include: NewCasePatterns(include...), Exclude: NewCasePatterns(exclude...)}
}

func (f CaseFilters) Match(name string) bool {
	return (!f.Include.IsDefined() || f.Include.AnyMatch(name)) &&
		!f.Exclude.AnyMatch(name)
}

type CasePatterns struct {
	patterns []string
	compiled []*regexp.Regexp
}

func NewCasePatterns(patterns ...string) CasePatterns {
	var p CasePatterns
	for _, s := range patterns {
		p.Add(s)
	}
	return p
}

func (p CasePatterns) String() string {
	var ss []string
	for _, s := range p.patterns {
		ss = append(ss, `"`+s+`"`)
	}
	return strings.Join(ss, " or ")
}

func (p *CasePatterns) Add(pattern string) {
	parts := strings.Split(pattern, AllCases)
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	p.patterns = append(p.patterns, pattern)
	p.compiled = append(p.compiled, regexp.MustCompile("^"+strings.Join(parts, ".*")+"$"))
}

func (p CasePatterns) Patterns() []string {
	return append([]string(nil), p.patterns...)
}

func (p CasePatterns) IsDefined() bool {
	return len(p.patterns) != 0
}

func (p CasePatterns) AnyMatch(s string) bool {
	for _, rx := range p.compiled {
		if rx.MatchString(s) {
			return true
		}
	}
	return false
}
