// Package transport defines the network communication abstraction of the
// chirp RPC system. A transport moves opaque, already-serialized request and
// response bytes between client and server; it knows nothing about the
// Message protocol itself.
//
// The server side routes each request to a shard (an independent record
// store) identified by a numeric ID. The http subpackage provides the
// concrete implementation: requests are POSTed to /{shardId} and the
// server's metrics are exposed on GET /metrics.
package transport
