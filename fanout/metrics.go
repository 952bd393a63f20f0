package fanout

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type fanoutMetrics struct {
	sent      atomic.Int64
	delivered atomic.Int64
	polls     atomic.Int64
}

func registerMetrics(reg *prometheus.Registry, f *fanout) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "bridge",
		Subsystem: "fanout",
		Name:      "sent",
		Help:      "total count of sent notifications",
	}, func() float64 {
		return float64(f.metrics.sent.Load())
	}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "bridge",
		Subsystem: "fanout",
		Name:      "delivered",
		Help:      "total count of push deliveries to subscribers",
	}, func() float64 {
		return float64(f.metrics.delivered.Load())
	}))
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "bridge",
		Subsystem: "fanout",
		Name:      "polls",
		Help:      "total count of list redeliveries",
	}, func() float64 {
		return float64(f.metrics.polls.Load())
	}))
}
