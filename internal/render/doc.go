// Package render turns the final context into file contents using the
// embedded templates, and hands the result to a Sink that writes it (or only
// records it, for dry runs).
package render
