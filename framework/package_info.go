// Package framework contains the low-level pieces of the harness that do not know anything
// about WebSocket fuzzing.
//
// The general model is:
//
// 1. A PortAllocator picks a TCP port that nothing else is bound to.
//
// 2. A ServerSupervisor starts the server-under-test on that port in the background. Any
// error from the background launch is recorded in a LaunchOutcome instead of being
// returned to the caller, who has already moved on.
//
// 3. A ReadinessPoller waits until the server accepts TCP connections, giving up early if
// the LaunchOutcome reports a failure.
//
// The domain-specific code that drives the fuzzing engine and interprets its verdicts is
// in the engine, verdict, report and fuzzingclient packages.
package framework
