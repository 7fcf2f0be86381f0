// Package cmdkit is a framework for building multi-command
// command-line tools.
//
// A command is an ordinary function paired with a declarative
// interface: options, positional arguments, and their parsing and
// validation rules, compiled once into a schema. The framework
// parses raw argument tokens against the schema into typed, bound
// values, renders aligned usage and help text, and dispatches a
// top-level invocation to the right command by its first argument.
//
// The pieces live in subpackages:
//
//	schema    declarative interface descriptors and the compiler
//	parse     token parsing, value binding, aggregated errors
//	usage     deterministic help and usage rendering
//	dispatch  command registry, table building, dispatching
//	parsefn   ready-made parse functions and validations
//
// See examples/kvdb for a complete tool built on the framework.
package cmdkit
