package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// ModeFuzzingClient is the wstest mode in which the engine connects to a server as a client.
const ModeFuzzingClient = "fuzzingclient"

// FuzzingClientSpec is the spec file that wstest reads in fuzzingclient mode.
type FuzzingClientSpec struct {
	Options           ldvalue.Value       `json:"options"`
	OutDir            string              `json:"outdir"`
	Servers           []FuzzingServer     `json:"servers"`
	Cases             []string            `json:"cases"`
	ExcludeCases      []string            `json:"exclude-cases"`
	ExcludeAgentCases map[string][]string `json:"exclude-agent-cases"`
}

// FuzzingServer is one server entry in a FuzzingClientSpec.
type FuzzingServer struct {
	Agent   string        `json:"agent"`
	URL     string        `json:"url"`
	Options ldvalue.Value `json:"options"`
}
