// Package config assembles the tableschema CLI configuration.
//
// Values come from the following sources; for every field the first source
// that sets a non-zero value wins:
//  1. Command-line flags
//  2. TABLESCHEMA_* environment variables
//  3. Built-in defaults
//
// The entry point is [Load].
package config
