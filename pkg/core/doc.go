// Package core ties fae's packages together for one invocation.
//
// LoadProject reads settings-driven sources into a Project: the script
// registry, the environment overrides and the local executable lookup.
// RunScript then builds one orchestrator and one execution cache, rejects
// dependency cycles, resolves the requested script and turns the outcome
// into a single error. It is the only place that decides a run is over;
// the CLI maps the returned error to an exit status.
package core
