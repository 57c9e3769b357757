// Package testutil provides fixtures for testing fae against real project
// directories.
//
// ProjectBuilder declares a project inline (manifest scripts, a fae.toml,
// executables in node_modules/.bin) and writes it to a temporary
// directory that is removed when the test ends. Tests should keep their
// data inline like this rather than in fixture files.
package testutil
