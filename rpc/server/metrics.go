package server

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/chirpkv/chirp/rpc/common"
)

// observeRequest records one handled request for the given shard and
// operation. Exposed on the transport's GET /metrics endpoint.
func observeRequest(shardId uint64, msgType common.MessageType, failed bool, start time.Time) {
	metrics.GetOrCreateSummary(
		fmt.Sprintf(`chirp_rpc_request_duration_seconds{shard="%d",op=%q}`, shardId, msgType),
	).UpdateDuration(start)

	metrics.GetOrCreateCounter(
		fmt.Sprintf(`chirp_rpc_requests_total{shard="%d",op=%q}`, shardId, msgType),
	).Inc()

	if failed {
		metrics.GetOrCreateCounter(
			fmt.Sprintf(`chirp_rpc_request_errors_total{shard="%d",op=%q}`, shardId, msgType),
		).Inc()
	}
}
