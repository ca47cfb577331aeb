// Package realtime implements the WebSocket fan-out layer.
//
// A process-wide Registry tracks live channels grouped by team, plus a flat
// set of admin channels that receive every event. Delivery is best effort:
// a failed send deregisters that channel and never aborts delivery to the
// others. Per-connection writer goroutines absorb slow clients so the
// broadcast path never blocks on a single peer.
package realtime
