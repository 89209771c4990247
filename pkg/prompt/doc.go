// Package prompt provides the answer sources used while resolving a
// reducer's parameters: Console asks the user through pterm's interactive
// printers, Fixed replays a test case and records a transcript.
package prompt
