// Package paths provides path handling for fae.
//
// Every invocation works inside a project root, normally the directory fae
// was started from. Relative locations are resolved against it:
//
//   - the package manifest (package.json) and the fae configuration file
//   - the project-local executable directory (node_modules/.bin by default)
//
// # Local executables
//
// A script name that is not in the registry may still name an executable
// installed into the project-local executable directory. LookupBin answers
// that question; only plain names are considered, so a script name can
// never reach outside that directory.
//
// When a package manifest is present, commands run with that directory
// prepended to PATH (see PathOverride), so scripts can call locally
// installed tools by name.
package paths
