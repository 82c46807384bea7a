// Package config assembles the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// Sources are merged in that order with earlier sources winning: a field
// set by the environment is never overwritten by a flag or the file, and
// the file only fills whatever is still unset. The file path itself may
// come from any source (the CONFIG variable or the -c/-config flag).
//
// [GetStructuredConfig] returns the raw merged view; [GetClientConfig]
// maps it onto the client runtime's view, applies defaults, and
// validates it.
package config
