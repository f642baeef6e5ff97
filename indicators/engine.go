package indicators

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Engine is the orchestrator: it owns every registered indicator and
// resampler for one logical pipeline, dispatches incoming bars to both,
// and materializes the nested snapshot view that is the only contract
// strategies downstream consume. An Engine is single-writer: Update and
// Snapshot must not be called concurrently on the same instance.
type Engine struct {
	logger  *zap.Logger
	metrics *engineMetrics

	order        []string
	indicators   map[string]Indicator
	resamplers   map[string]*Resampler // keyed by target timeframe
	sourceTF     string
	hasSourceTF  bool

	lastBarTSByTF    map[string]int64
	lastUpdateMS     int64
	hasLastUpdateMS  bool
}

// Option configures an Engine at construction, following the
// functional-options pattern used throughout the corpus for optional
// collaborators (logger, metrics registry).
type Option func(*Engine)

// WithLogger attaches a structured logger. A nil logger (or omitting this
// option) leaves the engine with a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = defaultLogger(l) }
}

// WithMetricsRegistry registers the engine's Prometheus collectors against
// reg. Omitting this option leaves metrics recording as a no-op.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(e *Engine) { e.metrics = newEngineMetrics(reg) }
}

// NewEngine constructs an empty Engine ready for RegisterRequirements.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:        nopLogger,
		indicators:    make(map[string]Indicator),
		resamplers:    make(map[string]*Resampler),
		lastBarTSByTF: make(map[string]int64),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterRequirements constructs one indicator per (id, spec) pair and,
// when sourceTimeframe is non-empty, wires a resampler for every
// requirement timeframe that needs aggregation from it. Registration is
// all-or-nothing: on any failure, no state changes.
func (e *Engine) RegisterRequirements(specs map[string]RequirementSpec, sourceTimeframe string) error {
	sourceTF := NormalizeTimeframe(sourceTimeframe)

	newIndicators := make(map[string]Indicator, len(specs))
	newResamplers := make(map[string]*Resampler)

	for id, spec := range specs {
		if spec.Type == "" || spec.Timeframe == "" {
			return &InvalidConfigError{ID: id, Type: spec.Type, Message: "type and timeframe are required"}
		}
		req := Requirement{
			ID:        id,
			Type:      spec.Type,
			Timeframe: NormalizeTimeframe(spec.Timeframe),
			Params:    spec.Params,
		}
		ind, err := newIndicator(req)
		if err != nil {
			return err
		}
		newIndicators[id] = ind

		if sourceTimeframe == "" || req.Timeframe == sourceTF {
			continue
		}
		if _, exists := e.resamplers[req.Timeframe]; exists {
			continue
		}
		if _, exists := newResamplers[req.Timeframe]; exists {
			continue
		}
		resampler, err := NewResampler(sourceTF, req.Timeframe)
		if err != nil {
			return err
		}
		newResamplers[req.Timeframe] = resampler
	}

	for id, ind := range newIndicators {
		e.indicators[id] = ind
		e.order = append(e.order, id)
	}
	for tf, r := range newResamplers {
		e.resamplers[tf] = r
	}
	if sourceTimeframe != "" {
		e.sourceTF = sourceTF
		e.hasSourceTF = true
	}
	return nil
}

// Update dispatches one closed bar: every indicator on bar.Timeframe is
// updated directly, then every resampler whose source timeframe is
// bar.Timeframe is fed the bar; a resampler that
// emits a closed higher-TF aggregate causes every indicator on that
// timeframe to be updated with the synthetic bar, via a two-stage
// dispatch.
func (e *Engine) Update(bar Bar) error {
	barTF := NormalizeTimeframe(bar.Timeframe)
	normalizedBar := bar
	normalizedBar.Timeframe = barTF

	if err := e.updateIndicatorsAt(barTF, normalizedBar); err != nil {
		return err
	}
	e.metrics.recordBar(barTF)

	for targetTF, resampler := range e.resamplers {
		if resampler.sourceTF != barTF {
			continue
		}
		emitted := resampler.Add(normalizedBar)
		if emitted == nil {
			continue
		}
		if err := e.updateIndicatorsAt(targetTF, *emitted); err != nil {
			return err
		}
		e.metrics.recordResample(targetTF)
		e.lastBarTSByTF[targetTF] = emitted.TimestampMS
	}

	e.lastBarTSByTF[barTF] = normalizedBar.TimestampMS
	e.lastUpdateMS = wallClockMS()
	e.hasLastUpdateMS = true
	return nil
}

func (e *Engine) updateIndicatorsAt(timeframe string, bar Bar) error {
	for _, id := range e.order {
		ind := e.indicators[id]
		if ind.Requirement().Timeframe != timeframe {
			continue
		}
		if err := ind.Update(bar); err != nil {
			e.metrics.recordUpdateError()
			wrapped := &IndicatorUpdateError{ID: id, TimestampMS: bar.TimestampMS, Cause: err}
			e.logger.Error("indicator update failed", zap.String("id", id), zap.Int64("ts", bar.TimestampMS), zap.Error(err))
			return wrapped
		}
	}
	return nil
}

// OHLCVColumns is the columnar input shape for WarmupFromOHLCV: parallel
// arrays of equal length, one element per historical bar.
type OHLCVColumns struct {
	TimestampsMS []int64
	Open         []float64
	High         []float64
	Low          []float64
	Close        []float64
	Volume       []float64
}

// WarmupFromOHLCV synthesizes Bar values from parallel columnar arrays and
// feeds them through Update in order, priming indicator and resampler
// state from historical data before live updates begin.
func (e *Engine) WarmupFromOHLCV(cols OHLCVColumns, timeframe string) error {
	n := len(cols.TimestampsMS)
	for _, arr := range [][]float64{cols.Open, cols.High, cols.Low, cols.Close, cols.Volume} {
		if len(arr) != n {
			return &InvalidConfigError{Type: timeframe, Message: "warmup_from_ohlcv: columnar arrays must have equal length"}
		}
	}
	for i := 0; i < n; i++ {
		bar := Bar{
			TimestampMS: cols.TimestampsMS[i],
			Open:        cols.Open[i],
			High:        cols.High[i],
			Low:         cols.Low[i],
			Close:       cols.Close[i],
			Volume:      cols.Volume[i],
			Timeframe:   timeframe,
		}
		if err := e.Update(bar); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears every requirement, indicator instance, resampler, and
// timestamp map, returning the engine to its freshly constructed state.
func (e *Engine) Reset() {
	e.order = nil
	e.indicators = make(map[string]Indicator)
	e.resamplers = make(map[string]*Resampler)
	e.lastBarTSByTF = make(map[string]int64)
	e.lastUpdateMS = 0
	e.hasLastUpdateMS = false
	e.hasSourceTF = false
	e.sourceTF = ""
}

// wallClockMS isolated behind a var so tests can stub it without the
// engine depending on a clock interface for its one timestamp field.
var wallClockMS = func() int64 { return time.Now().UnixMilli() }
