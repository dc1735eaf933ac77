// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package snapshot

import "github.com/prometheus/client_golang/prometheus"

var (
	chunksWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapsync",
		Subsystem: "producer",
		Name:      "chunks_written_total",
		Help:      "Number of chunk files written, by kind (state, block).",
	}, []string{"kind"})

	chunkBytesWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapsync",
		Subsystem: "producer",
		Name:      "chunk_bytes_written_total",
		Help:      "Compressed bytes written to chunk files, by kind.",
	}, []string{"kind"})

	chunksRestored = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snapsync",
		Subsystem: "restorer",
		Name:      "chunks_restored_total",
		Help:      "Number of chunks successfully fetched, verified and decoded, by kind.",
	}, []string{"kind"})

	chunkFetchRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "snapsync",
		Subsystem: "restorer",
		Name:      "chunk_fetch_retries_total",
		Help:      "Number of times a chunk fetch was retried after a transient failure.",
	})

	restoreInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "snapsync",
		Subsystem: "restorer",
		Name:      "restore_in_flight",
		Help:      "1 while a Restore call is running, 0 otherwise.",
	})
)

func init() {
	prometheus.MustRegister(chunksWritten, chunkBytesWritten, chunksRestored, chunkFetchRetries, restoreInFlight)
}
