// Package cmd implements the command-line interface for the chirp record
// store. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - post: Commands for record operations (create, update, delete, get, list)
//   - serve: Commands for starting and configuring the chirp server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See chirp -help for a list of all commands.
package cmd
