package server

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/engine/lengine"
	"github.com/chirpkv/chirp/lib/engine/pengine"
	"github.com/chirpkv/chirp/rpc/common"
	"github.com/chirpkv/chirp/rpc/serializer"
	"github.com/chirpkv/chirp/rpc/transport"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = common.GetLogger("rpc")

// serverShard is a struct that represents a shard in the RPC server
// It contains the engine it encapsulates and the adapter that handles
// requests for the engine
type serverShard struct {
	Engine  engine.IEngine
	Adapter IRPCServerAdapter
}

// NewRPCServer creates a new RPC server
// It takes a config, transport and serializer as parameters
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		http.NewHttpServerTransport(),
//		serializer.NewJSONSerializer(),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	serializer serializer.IRPCSerializer,
) rpcServer {
	// Create shards map
	shardMap := xsync.NewMapOf[uint64, serverShard]()

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	// Create the RPC server
	return rpcServer{
		config:     config,
		transport:  transport,
		serializer: serializer,
		shards:     shardMap,
	}
}

type rpcServer struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	shards     *xsync.MapOf[uint64, serverShard]
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(shardId uint64, req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		start := time.Now()

		// Get appropriate shard
		shard, ok := s.shards.Load(shardId)

		// Case shard does not exist -> error
		if !ok {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     "shard not found",
			}
		} else {
			// Decode the request
			err := s.serializer.Deserialize(req, &msg)

			if err != nil {
				respMsg = common.Message{
					MsgType: common.MsgTError,
					Err:     fmt.Sprintf("failed to deserialize request: %s", err),
				}
			} else {
				// Let the adapter handle the request
				respMsg = *shard.Adapter.Handle(&msg, shard.Engine)
			}
		}

		observeRequest(shardId, msg.MsgType, respMsg.Err != "", start)

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			respMsg = common.Message{
				MsgType: common.MsgTError,
				Err:     fmt.Sprintf("failed to serialize response: %s", err),
			}
		}
		return val
	})
}

func (s *rpcServer) init() error {

	// Init logger
	if err := common.InitLoggers(s.config); err != nil {
		return err
	}

	// CREATE SHARDS

	/*
		Note: A single RPC Server can have any number of shards. Each shard
		is an independent record store backed by either the in-memory engine
		or the persistent engine. The following loop creates all the shards
		and stores them for the RPC server.
	*/

	for _, shardConfig := range s.config.Shards {

		// Case in-memory engine
		if shardConfig.Type == common.ShardTypeLocalEngine {
			s.shards.Store(shardConfig.ShardID, serverShard{
				Engine:  lengine.NewLocalEngine(nil),
				Adapter: NewEngineServerAdapter(),
			})
			Logger.Infof("created local engine for shard %d", shardConfig.ShardID)

			// Case persistent engine
		} else if shardConfig.Type == common.ShardTypePersistentEngine {
			if s.config.DataDir == "" {
				return fmt.Errorf("no data directory configured, cannot create persistent engine for shard %d", shardConfig.ShardID)
			}

			// Each persistent shard gets its own subdirectory
			eng, err := pengine.NewPebbleEngine(&pengine.EngineOptions{
				Dir: filepath.Join(s.config.DataDir, strconv.FormatUint(shardConfig.ShardID, 10)),
			})
			if err != nil {
				return fmt.Errorf("failed to create persistent engine for shard %d: %w", shardConfig.ShardID, err)
			}

			s.shards.Store(shardConfig.ShardID, serverShard{
				Engine:  eng,
				Adapter: NewEngineServerAdapter(),
			})
			Logger.Infof("created persistent engine for shard %d", shardConfig.ShardID)

		} else {
			return fmt.Errorf("invalid shard type: %s", shardConfig.Type)
		}
	}

	Logger.Infof("chirp setup completed successfully")

	// Configure the transport layer
	s.registerTransportHandler()

	return nil
}

// Serve starts the RPC server
// This function will also initialize the server plus the shards and start the transport layer
func (s *rpcServer) Serve() error {
	err := s.init()
	if err != nil {
		return err
	}
	return s.transport.Listen(s.config)
}
