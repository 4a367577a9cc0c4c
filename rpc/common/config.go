package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerShardType selects the engine backend serving a shard.
type ServerShardType string

const (
	ShardTypeLocalEngine      ServerShardType = "local engine"
	ShardTypePersistentEngine ServerShardType = "persistent engine"
)

// ServerShard describes one independent record store served by the server.
type ServerShard struct {
	// ShardID is the ID of the shard
	ShardID uint64
	// Type selects the engine backend for the shard
	Type ServerShardType
}

// ServerConfig holds all configuration parameters for the chirp server.
type ServerConfig struct {
	// Shards lists the independent record stores this server hosts
	Shards []ServerShard

	// DataDir is the directory for persistent shards (one subdirectory per shard)
	DataDir string

	// HTTP api settings
	Endpoint string

	// Logging configuration
	LogLevel string
}

// HasPersistentShard checks if the configuration contains any persistent shards
func (c *ServerConfig) HasPersistentShard() bool {
	for _, shard := range c.Shards {
		if shard.Type == ShardTypePersistentEngine {
			return true
		}
	}
	return false
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Shards
	addSection("Shards")
	for _, shard := range c.Shards {
		addField(strconv.FormatUint(shard.ShardID, 10), string(shard.Type))
	}

	if c.HasPersistentShard() {
		addSection("Storage")
		addField("Data Directory", c.DataDir)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for the chirp client.
type ClientConfig struct {
	Endpoints     []string
	TimeoutSecond int
	RetryCount    int
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}
