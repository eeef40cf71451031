package pkg

import "github.com/prometheus/client_golang/prometheus"

var (
	SignalingClientsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_clients_connected",
		Help: "A gauge of clients connected to the signaling server.",
	})

	SignalingWaitingGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_clients_waiting",
		Help: "A gauge of clients waiting for a partner.",
	})

	SignalingRoomsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_rooms_active",
		Help: "A gauge of active rooms.",
	})

	SignalingPairingsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signaling_pairings_total",
		Help: "A counter for rooms created by the matchmaker.",
	})

	SignalingRelayedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signaling_messages_relayed_total",
		Help: "A counter for messages relayed between room members.",
	}, []string{"event"})

	SignalingDropsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signaling_relay_drops_total",
		Help: "A counter for messages dropped by the relay.",
	}, []string{"reason"})

	SignalingInFlightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_in_flight_requests",
		Help: "A gauge of requests being handled by the signaling server.",
	})

	SignalingRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signaling_requests_total",
		Help: "A counter for requests to the signaling server.",
	}, []string{"code", "method"})
)

func init() {
	prometheus.MustRegister(
		SignalingClientsGauge,
		SignalingWaitingGauge,
		SignalingRoomsGauge,
		SignalingPairingsCounter,
		SignalingRelayedCounter,
		SignalingDropsCounter,
		SignalingInFlightGauge,
		SignalingRequestsCounter,
	)
}
