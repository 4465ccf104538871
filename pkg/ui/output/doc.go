// Package output renders command results.
//
// A Renderer writes in one of three modes: styled terminal output using the
// lipgloss styles of the styles subpackage, plain text with the same layout
// and no escape sequences, and JSON for scripting.
package output
