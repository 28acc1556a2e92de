package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activitiesRecorded *prometheus.CounterVec
	reportsGenerated   prometheus.Counter
	registerOnce       sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		activitiesRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "usermetrics",
			Name:      "activities_recorded_total",
			Help:      "Total activity records written, by activity type.",
		}, []string{"activity_type"})
		reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "usermetrics",
			Name:      "reports_generated_total",
			Help:      "Total PDF activity reports generated.",
		})
	})
}

// IncActivity increments the recorded-activity counter for the given type.
func IncActivity(activityType string) {
	if activitiesRecorded == nil {
		return
	}
	activitiesRecorded.WithLabelValues(activityType).Inc()
}

// IncReport increments the generated-report counter.
func IncReport() {
	if reportsGenerated == nil {
		return
	}
	reportsGenerated.Inc()
}
