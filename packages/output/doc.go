// Package output renders responses to the terminal or to a file.
//
// The console formatter prints the verbose request/response trace and the
// body in one of three forms: YAML-style key:value indentation, full-depth
// colorized JSON, or plain text. All color flows through fatih/color and
// is disabled in one place via the formatter's no-color option. SaveBody
// handles the output-file path, streaming bytes to disk with an optional
// progress bar.
package output
