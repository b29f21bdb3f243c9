// Package metrics exposes Prometheus counters for a mcpipe.Pipe
// sitting on a connection's hot path, grounded on
// telemetry/flow-ingest/internal/metrics/metrics.go's promauto style.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_frames_decoded_total", Help: "Total frames successfully decoded into a packet.",
	})
	FramesEncoded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_frames_encoded_total", Help: "Total packets successfully encoded into a frame.",
	})
	PassThroughHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_pass_through_total", Help: "Total frames decoded via the unknown-id pass-through path.",
	})
	PreparedFastPathHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_prepared_fast_path_total", Help: "Total writes served by a prepared fast path.",
	}, []string{"kind"})
	DecodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_decode_errors_total", Help: "Total frame decode errors by kind.",
	}, []string{"kind"})
	EncodeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gatecore_mcpipe_encode_errors_total", Help: "Total packet encode errors by kind.",
	}, []string{"kind"})
)
