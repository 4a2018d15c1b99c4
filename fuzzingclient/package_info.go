// Package fuzzingclient runs a complete fuzzingclient conformance run: it starts the
// server-under-test on a free port, waits for it to accept connections, has the fuzzing
// engine exercise it, and classifies and reports the results.
package fuzzingclient
