// Package vcs derives per-line change markers from version control.
//
// A Provider answers, once per file, which lines differ from the version
// recorded in the repository. A Decorator holds that answer for the length
// of one render and maps line numbers to markers in constant time.
package vcs
