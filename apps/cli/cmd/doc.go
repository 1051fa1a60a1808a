// Package cmd implements the hit CLI commands using Cobra.
//
// Available commands:
//   - get, post, put, delete, patch, head: send a request with that
//     method to the given URL
//   - version: show hit version information
//
// Global flags cover headers, the request body (--data or --datafile),
// content type, proxy, cookie jar, output file and rendering options.
package cmd
