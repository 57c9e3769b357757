// Package types defines the data shared by the script execution engine:
// script definitions, the registry they are looked up in, and the
// environment overrides applied to every command.
package types
