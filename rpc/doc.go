// Package rpc provides the remote procedure call framework for the chirp
// record store. It acts as the communication layer between clients and
// servers, enabling record operations across network boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, configuration structures, and logging.
//
//   - transport: Network communication abstraction with a pluggable HTTP
//     implementation.
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB) for converting between Message objects and byte
//     arrays.
//
//   - client: An RPC client implementing the engine.IEngine interface, so
//     applications interact with a remote store exactly like a local one.
//
//   - server: RPC server components that handle incoming requests, routing
//     them to per-shard record store engines.
package rpc
