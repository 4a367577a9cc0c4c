package client

import (
	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/chirpkv/chirp/rpc/common"
	"github.com/chirpkv/chirp/rpc/serializer"
	"github.com/chirpkv/chirp/rpc/transport"
)

// NewRPCEngine creates a new RPC-backed record store engine
// The function takes a shard ID, a config, a transport and a serializer as parameters
// It returns an engine.IEngine and an error
func NewRPCEngine(
	shardId uint64,
	config common.ClientConfig,
	transport transport.IRPCClientTransport,
	serializer serializer.IRPCSerializer,
) (engine.IEngine, error) {

	// Connect the transport
	err := transport.Connect(config)
	if err != nil {
		return nil, err
	}

	// Create a new RPC engine
	e := rpcEngine{
		rpcClientAdapter{
			shardId:    shardId,
			config:     config,
			transport:  transport,
			serializer: serializer,
		},
	}

	// Return the RPC engine
	return &e, nil
}

type rpcEngine struct {
	rpcClientAdapter
}

// --------------------------------------------------------------------------
// Interface Methods (docu see the engine package in interface.go)
// --------------------------------------------------------------------------

func (i *rpcEngine) Create(key string, author record.Identity, topic, content string) (record.Record, error) {
	req := common.NewCreateRequest(key, author, topic, content)
	resp, err := invokeRPCRequest(i.shardId, req, i.transport, i.serializer)
	if err != nil {
		return record.Record{}, err
	}
	return decodeRecord(resp.Record)
}

func (i *rpcEngine) Update(key, topic, content string, requester record.Identity) (record.Record, error) {
	req := common.NewUpdateRequest(key, topic, content, requester)
	resp, err := invokeRPCRequest(i.shardId, req, i.transport, i.serializer)
	if err != nil {
		return record.Record{}, err
	}
	return decodeRecord(resp.Record)
}

func (i *rpcEngine) Delete(key string, requester record.Identity) error {
	req := common.NewDeleteRequest(key, requester)
	_, err := invokeRPCRequest(i.shardId, req, i.transport, i.serializer)
	return err
}

func (i *rpcEngine) Get(key string) (record.Record, bool, error) {
	req := common.NewGetRequest(key)
	resp, err := invokeRPCRequest(i.shardId, req, i.transport, i.serializer)
	if err != nil {
		return record.Record{}, false, err
	}
	if !resp.Ok {
		return record.Record{}, false, nil
	}
	rec, err := decodeRecord(resp.Record)
	if err != nil {
		return record.Record{}, false, err
	}
	return rec, true, nil
}

func (i *rpcEngine) List(filters ...record.Filter) ([]record.Keyed, error) {
	req := common.NewListRequest(filters)
	resp, err := invokeRPCRequest(i.shardId, req, i.transport, i.serializer)
	if err != nil {
		return nil, err
	}
	return common.UnpackRecords(resp.Records)
}

func (i *rpcEngine) Close() error {
	return i.transport.Close()
}

// decodeRecord decodes an encoded record from a response message
func decodeRecord(data []byte) (record.Record, error) {
	var rec record.Record
	if err := rec.Decode(data); err != nil {
		return record.Record{}, err
	}
	return rec, nil
}
