// Package client implements the client-side components of the chirp RPC
// system. It provides a network-backed implementation of the engine.IEngine
// interface, allowing applications to work with a remote record store the
// same way they would with a local one.
//
// The package focuses on:
//   - Remote access to record store operations (create, update, delete, get, list)
//   - Translation between the engine interface and the Message protocol
//   - Typed error propagation (the server's error codes survive the round trip)
//
// Key Components:
//
//   - NewRPCEngine: Creates an engine.IEngine backed by a remote shard. It
//     takes a shard ID, a client config, a transport and a serializer.
//
//   - rpcClientAdapter: Internal helper struct storing the data needed for
//     the RPC client, used via composition.
//
// Usage:
//
//	eng, err := client.NewRPCEngine(
//		100,
//		config,
//		http.NewHttpClientTransport(),
//		serializer.NewBinarySerializer(),
//	)
//	if err != nil {
//		panic(err)
//	}
//	defer eng.Close()
//
//	rec, err := eng.Create("key", author, "topic", "content")
package client
