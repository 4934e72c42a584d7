package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hanifwidodo/merchorder-backend/pkg/enums"
)

// OrderMetrics records order submission/deletion outcomes and the live feed state.
type OrderMetrics struct {
	submitted    *prometheus.CounterVec
	deleted      prometheus.Counter
	snapshotSize prometheus.Gauge
	feedState    *prometheus.GaugeVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_submitted_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Orders deleted through the admin feed.",
	})
	snapshotSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "order_feed_snapshot_records",
		Help: "Records in the latest admin feed snapshot.",
	})
	feedState := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "order_feed_state",
		Help: "Admin feed subscription state (1 for the active state).",
	}, []string{"state"})
	reg.MustRegister(submitted, deleted, snapshotSize, feedState)
	return &OrderMetrics{
		submitted:    submitted,
		deleted:      deleted,
		snapshotSize: snapshotSize,
		feedState:    feedState,
	}
}

// IncSubmitted increments the submission counter for the given outcome.
func (m *OrderMetrics) IncSubmitted(outcome string) {
	if m == nil || m.submitted == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.submitted.WithLabelValues(outcome).Inc()
}

// IncDeleted increments the deletion counter.
func (m *OrderMetrics) IncDeleted() {
	if m == nil || m.deleted == nil {
		return
	}
	m.deleted.Inc()
}

// SetSnapshotSize records the record count of the latest snapshot.
func (m *OrderMetrics) SetSnapshotSize(n int) {
	if m == nil || m.snapshotSize == nil {
		return
	}
	m.snapshotSize.Set(float64(n))
}

// SetFeedState marks the active feed state, clearing the others.
func (m *OrderMetrics) SetFeedState(state enums.FeedState) {
	if m == nil || m.feedState == nil {
		return
	}
	for _, s := range []enums.FeedState{enums.FeedUnsubscribed, enums.FeedSubscribing, enums.FeedLive, enums.FeedError} {
		value := 0.0
		if s == state {
			value = 1.0
		}
		m.feedState.WithLabelValues(string(s)).Set(value)
	}
}
