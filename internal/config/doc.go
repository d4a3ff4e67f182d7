// Package config loads boiler configuration from local and global YAML files
// with precedence rules, and the per-repository override document. It is
// internal; CLI code maps flags and files into engine options.
package config
