package indicators

// Resampler aggregates a stream of source-timeframe Bars into
// target-timeframe Bars aligned to epoch-based period boundaries, emitting
// a closed period immediately on the arrival of its final source bar.
//
// Grounded on the reference OhlcvResampler (original_source/quanttrader/
// indicators/resampler.py): period_start = floor(ts/target_ms)*target_ms,
// and a period is "last" when the next source bar's timestamp would fall
// at or past the period's end.
type Resampler struct {
	sourceTF, targetTF string
	sourceMS, targetMS int64
	ratio              int

	periodStart int64
	hasPeriod   bool

	open, high, low, close, volume float64
	pendingTS                      int64
	count                          int
}

// NewResampler builds a Resampler for sourceTF -> targetTF. It fails with
// InvalidResampleRatioError if targetTF is not a strictly larger integer
// multiple of sourceTF.
func NewResampler(sourceTF, targetTF string) (*Resampler, error) {
	ratio, err := ResampleRatio(sourceTF, targetTF)
	if err != nil {
		return nil, err
	}
	sourceSeconds, _ := SecondsFor(sourceTF)
	targetSeconds, _ := SecondsFor(targetTF)
	return &Resampler{
		sourceTF: NormalizeTimeframe(sourceTF),
		targetTF: NormalizeTimeframe(targetTF),
		sourceMS: sourceSeconds * 1000,
		targetMS: targetSeconds * 1000,
		ratio:    ratio,
	}, nil
}

// TargetTimeframe returns the timeframe this resampler emits.
func (r *Resampler) TargetTimeframe() string { return r.targetTF }

// Ratio returns target_seconds / source_seconds.
func (r *Resampler) Ratio() int { return r.ratio }

func (r *Resampler) periodStartOf(timestampMS int64) int64 {
	return (timestampMS / r.targetMS) * r.targetMS
}

func (r *Resampler) isLastBarOfPeriod(barTimestampMS int64) bool {
	start := r.periodStartOf(barTimestampMS)
	end := start + r.targetMS
	nextTS := barTimestampMS + r.sourceMS
	return nextTS >= end
}

// Add folds one source bar into the pending aggregate. It returns the
// emitted target-timeframe bar on at most one of two occasions: the
// arrival of a bar from a later period than the one pending (the stale
// pending aggregate is flushed first) or the arrival of the final source
// bar of the current period. If both would apply on the same call, only
// the current-period close is returned — the caller never sees two bars
// from one Add call.
func (r *Resampler) Add(bar Bar) *Bar {
	barPeriodStart := r.periodStartOf(bar.TimestampMS)

	var flushed *Bar
	if r.hasPeriod && barPeriodStart != r.periodStart {
		flushed = r.emit()
		r.reset()
	}

	r.periodStart = barPeriodStart
	r.hasPeriod = true

	if r.count == 0 {
		r.open = bar.Open
		r.high = bar.High
		r.low = bar.Low
		r.pendingTS = barPeriodStart
	} else {
		if bar.High > r.high {
			r.high = bar.High
		}
		if bar.Low < r.low {
			r.low = bar.Low
		}
	}
	r.close = bar.Close
	r.volume += bar.Volume
	r.count++

	if r.isLastBarOfPeriod(bar.TimestampMS) {
		closed := r.emit()
		r.reset()
		return closed
	}

	return flushed
}

// Flush forces emission of whatever aggregate is pending, for end-of-stream
// handling. It returns nil if nothing is pending.
func (r *Resampler) Flush() *Bar {
	out := r.emit()
	if out != nil {
		r.reset()
	}
	return out
}

// PendingCount returns the number of source bars folded into the current
// in-progress aggregate.
func (r *Resampler) PendingCount() int { return r.count }

// CurrentPeriodStart returns the start timestamp of the period currently
// being aggregated, if any.
func (r *Resampler) CurrentPeriodStart() (int64, bool) {
	if !r.hasPeriod {
		return 0, false
	}
	return r.periodStart, true
}

func (r *Resampler) emit() *Bar {
	if r.count == 0 {
		return nil
	}
	return &Bar{
		TimestampMS: r.pendingTS,
		Open:        r.open,
		High:        r.high,
		Low:         r.low,
		Close:       r.close,
		Volume:      r.volume,
		Timeframe:   r.targetTF,
	}
}

func (r *Resampler) reset() {
	r.hasPeriod = false
	r.count = 0
	r.open, r.high, r.low, r.close, r.volume = 0, 0, 0, 0, 0
	r.pendingTS = 0
}
