// Package server implements the server-side components of the chirp RPC
// system, which allows clients to communicate with the record store over
// the network. It provides the functionality to handle incoming requests,
// route them to the appropriate shard and return responses to clients.
//
// The package focuses on:
//   - Multi-shard management (a single server hosting multiple record stores)
//   - Request routing based on shard IDs
//   - Translation between the Message protocol and the engine interface
//   - Per-operation request metrics
//
// Key Components:
//
//   - rpcServer: The main server implementation that manages shards,
//     deserializes incoming requests and dispatches them to the adapter
//     of the addressed shard.
//
//   - IRPCServerAdapter: An interface for adapters that translate Message
//     requests into engine operations. NewEngineServerAdapter returns the
//     adapter covering all record store operations (create, update, delete,
//     get, list).
//
// Usage:
//
//	s := server.NewRPCServer(
//		config,
//		http.NewHttpServerTransport(),
//		serializer.NewBinarySerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
package server
