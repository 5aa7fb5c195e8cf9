// Package metrics exposes simulation counters to Prometheus
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ticksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outpost_ticks_total",
		Help: "Simulation ticks processed by running sessions",
	})

	eventsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_events_generated_total",
		Help: "Events produced by the scheduler, by kind",
	}, []string{"kind"})

	eventsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_events_skipped_total",
		Help: "Generated events dropped because the kind was already active",
	}, []string{"kind"})

	eventsExpired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_events_expired_total",
		Help: "Events removed from the active set, by kind and whether the effect was restored",
	}, []string{"kind", "restored"})

	eventsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "outpost_events_active",
		Help: "Events currently in the active set",
	})

	popupsShown = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_popups_shown_total",
		Help: "Popups overlaid by the screen stack, by kind",
	}, []string{"kind"})

	stackDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "outpost_screen_stack_depth",
		Help: "Number of screens on the navigation stack",
	})

	deathsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_deaths_total",
		Help: "Runs ended by resource depletion, by cause",
	}, []string{"cause"})

	savesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "outpost_saves_total",
		Help: "Session persistence operations by backend, operation and outcome",
	}, []string{"backend", "op", "outcome"}) // outcome=success|failure

	resourceLevel = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "outpost_resource_level",
		Help: "Current resource level of the running session",
	}, []string{"resource"})
)

func RecordTick() {
	ticksTotal.Inc()
}

func RecordEventGenerated(kind string) {
	eventsGenerated.WithLabelValues(kind).Inc()
}

func RecordEventSkipped(kind string) {
	eventsSkipped.WithLabelValues(kind).Inc()
}

func RecordEventExpired(kind string, restored bool) {
	eventsExpired.WithLabelValues(kind, strconv.FormatBool(restored)).Inc()
}

func SetActiveEvents(n int) {
	eventsActive.Set(float64(n))
}

func RecordPopup(kind string) {
	popupsShown.WithLabelValues(kind).Inc()
}

func SetStackDepth(depth int) {
	stackDepth.Set(float64(depth))
}

func RecordDeath(cause string) {
	deathsTotal.WithLabelValues(cause).Inc()
}

// RecordSave counts a persistence operation; op is save|load|delete
func RecordSave(backend, op string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	savesTotal.WithLabelValues(backend, op, outcome).Inc()
}

// SetResourceLevels publishes the session's current levels
func SetResourceLevels(oxygen, energy, life uint16) {
	resourceLevel.WithLabelValues("oxygen").Set(float64(oxygen))
	resourceLevel.WithLabelValues("energy").Set(float64(energy))
	resourceLevel.WithLabelValues("life").Set(float64(life))
}
