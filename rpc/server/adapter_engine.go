package server

import (
	"fmt"

	"github.com/chirpkv/chirp/lib/engine"
	"github.com/chirpkv/chirp/lib/record"
	"github.com/chirpkv/chirp/rpc/common"
)

func NewEngineServerAdapter() IRPCServerAdapter {
	return &engineServerAdapterImpl{}
}

type engineServerAdapterImpl struct{}

func (adapter *engineServerAdapterImpl) Handle(req *common.Message, eng engine.IEngine) *common.Message {
	// Check for nil engine
	if eng == nil {
		return common.NewErrorResponse("handler: engine is nil")
	}

	// Handle different message types
	switch req.MsgType {
	case common.MsgTPostCreate:
		author, err := record.IdentityFromBytes(req.Author)
		if err != nil {
			return common.NewCreateResponse(nil, engine.NewError(engine.RetCValidation, err.Error()))
		}
		rec, err := eng.Create(req.Key, author, req.Topic, req.Content)
		return common.NewCreateResponse(encodeRecord(rec, err), err)

	case common.MsgTPostUpdate:
		requester, err := record.IdentityFromBytes(req.Requester)
		if err != nil {
			return common.NewUpdateResponse(nil, engine.NewError(engine.RetCValidation, err.Error()))
		}
		rec, err := eng.Update(req.Key, req.Topic, req.Content, requester)
		return common.NewUpdateResponse(encodeRecord(rec, err), err)

	case common.MsgTPostDelete:
		requester, err := record.IdentityFromBytes(req.Requester)
		if err != nil {
			return common.NewDeleteResponse(engine.NewError(engine.RetCValidation, err.Error()))
		}
		return common.NewDeleteResponse(eng.Delete(req.Key, requester))

	case common.MsgTPostGet:
		rec, ok, err := eng.Get(req.Key)
		if err != nil || !ok {
			return common.NewGetResponse(nil, ok, err)
		}
		return common.NewGetResponse(rec.Encode(), ok, nil)

	case common.MsgTPostList:
		filters, err := record.DecodeFilters(req.Filters)
		if err != nil {
			return common.NewListResponse(nil, engine.NewError(engine.RetCValidation, err.Error()))
		}
		records, err := eng.List(filters...)
		if err != nil {
			return common.NewListResponse(nil, err)
		}
		return common.NewListResponse(common.PackRecords(records), nil)

	default:
		return common.NewErrorResponse(
			fmt.Sprintf("RPC EngineAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}

// encodeRecord encodes a record for a response, skipping the work if the
// operation already failed.
func encodeRecord(rec record.Record, err error) []byte {
	if err != nil {
		return nil
	}
	return rec.Encode()
}
