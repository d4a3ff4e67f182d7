// Package actions holds the built-in actions. An action reads the final
// context, decides for itself whether it applies, and writes at most a few
// files through a render.Sink.
package actions
