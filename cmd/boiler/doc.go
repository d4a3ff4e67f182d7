// Package boiler provides the command-line interface for boiler. It
// configures subcommands (update, context, review, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/boiler/boiler/cmd/boiler"
//	func main() { boiler.Execute() }
package boiler
