// Package registry builds the script registry for one run.
//
// Two kinds of sources are read from the project directory:
//
//   - the manifest (package.json): every entry of its "scripts" object
//     becomes a run-only script with default flags
//   - the first script file found among the configured names (fae.toml,
//     fae.yaml, fae.yml): full definitions with uses, run, stdout, stderr
//     and cache
//
// Script file entries replace manifest entries with the same name as a
// whole. Unknown fields in a script file never fail the load; they are
// reported as Warnings, with a suggestion when the field looks like a
// misspelling of uses or run.
//
// Script file formats are looked up by extension in a small Formats
// table, so adding a format is one Register call.
package registry
