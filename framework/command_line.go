package framework

import (
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// CommandLine renders args as a shell-quoted command line for logging.
func CommandLine(args ...string) string {
	var b commandBuilder
	b.add(args...)
	return b.String()
}
