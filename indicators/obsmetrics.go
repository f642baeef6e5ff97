package indicators

import "github.com/prometheus/client_golang/prometheus"

// engineMetrics holds the engine's Prometheus collectors. A nil
// *engineMetrics is valid everywhere it's used (every recording method is a
// no-op on a nil receiver), matching Engine's optional
// WithMetricsRegistry option: no metrics surface is exposed unless a
// caller supplies a registry.
type engineMetrics struct {
	barsProcessed      *prometheus.CounterVec
	resampleEmissions  *prometheus.CounterVec
	updateErrors       prometheus.Counter
	warmedUpIndicators prometheus.Gauge
}

func newEngineMetrics(reg *prometheus.Registry) *engineMetrics {
	if reg == nil {
		return nil
	}
	m := &engineMetrics{
		barsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicore_bars_processed_total",
			Help: "Total bars fed into the engine, by timeframe.",
		}, []string{"timeframe"}),
		resampleEmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicore_resample_emissions_total",
			Help: "Total synthetic bars emitted by resamplers, by target timeframe.",
		}, []string{"target_timeframe"}),
		updateErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "indicore_update_errors_total",
			Help: "Total IndicatorUpdateError occurrences across all registered indicators.",
		}),
		warmedUpIndicators: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "indicore_warmed_up_indicators",
			Help: "Count of registered indicators currently reporting is_warmed_up=true.",
		}),
	}
	reg.MustRegister(m.barsProcessed, m.resampleEmissions, m.updateErrors, m.warmedUpIndicators)
	return m
}

func (m *engineMetrics) recordBar(timeframe string) {
	if m == nil {
		return
	}
	m.barsProcessed.WithLabelValues(timeframe).Inc()
}

func (m *engineMetrics) recordResample(targetTimeframe string) {
	if m == nil {
		return
	}
	m.resampleEmissions.WithLabelValues(targetTimeframe).Inc()
}

func (m *engineMetrics) recordUpdateError() {
	if m == nil {
		return
	}
	m.updateErrors.Inc()
}

func (m *engineMetrics) setWarmedUpCount(n int) {
	if m == nil {
		return
	}
	m.warmedUpIndicators.Set(float64(n))
}
