// Package orchestrator resolves a script and everything it uses.
//
// Resolving a script means:
//
//  1. finding it in the registry, or else running a like-named project
//     local executable directly with the invocation arguments
//  2. claiming it in the run's ExecutionCache when it is cacheable, so it
//     runs at most once per invocation
//  3. resolving every script it uses concurrently, with no arguments, and
//     waiting for all of them
//  4. running its own command, if it has one
//
// The first failure anywhere in the tree is returned up through every join
// and cancels the context of the branches still running. Nothing is
// retried and nothing is reported here; the caller decides what a failure
// means for the process.
//
// A cacheable script reached again while its first resolution is still in
// progress is not run a second time: the later caller waits for the first
// one to finish and shares its result. That wait could only deadlock on a
// dependency cycle, so Resolve checks the graph with CheckCycles before
// running anything.
package orchestrator
