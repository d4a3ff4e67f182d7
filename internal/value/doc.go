// Package value implements the semi-structured data model shared by detectors
// and actions: a tree of null, bool, number, string, array and object nodes.
// Detector fragments are combined with Union, operator overrides with
// OverrideWith. Values encode to and from YAML and JSON without losing the
// integer/float distinction.
package value
