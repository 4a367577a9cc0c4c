// Package common provides core data structures and utilities shared across
// the chirp RPC system. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - Message protocol definition for client/server communication
//   - Configuration structures for client and server components
//   - A leveled logging implementation with consistent formatting
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication, with a
//     flexible field set that adapts to the different record operations.
//     Includes factory methods for creating the request and response
//     messages of every operation.
//
//   - MessageType: Enumeration defining all supported operations (create,
//     update, delete, get, list) plus control messages.
//
//   - ServerConfig / ClientConfig: Configuration for the two sides of the
//     RPC boundary, covering shard layout, endpoints, timeouts and logging.
//
//   - Logger: A named, leveled logger factory used by the rpc packages.
package common
