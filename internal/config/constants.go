// Package config holds process-wide constants for the expression
// compiler: fixed diagnostic strings and the build version.
package config

// Version is the current mapexpr version.
// Set at build time via -ldflags "-X .../internal/config.Version=...".
var Version = "0.1.0"

// RuntimeErrorName is the fixed name every evaluation-time error reports.
const RuntimeErrorName = "ExpressionEvaluationError"

// Root is the dotted-path key of the expression root.
const Root = ""

// IsTestMode is a process-wide test flag. No package in this module reads
// it; setting it does not change any output.
var IsTestMode = false
