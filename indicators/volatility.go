package indicators

import "math"

// BollingerIndicator is Bollinger Bands: an SMA middle band plus
// upper/lower bands offset by a multiple of rolling standard deviation.
type BollingerIndicator struct {
	base
	window *slidingWindow
	stdDev float64
}

func newBollinger(req Requirement) (*BollingerIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	stdDev := paramFloat(req.Params, "std_dev", 2.0)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &BollingerIndicator{base: newBase(req, period), window: newSlidingWindow(period), stdDev: stdDev}, nil
}

func (ind *BollingerIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	return nil
}

func (ind *BollingerIndicator) Value() any {
	if !ind.window.full() {
		return BollingerValue{}
	}
	mean := ind.window.mean()
	sd := math.Sqrt(ind.window.variance())
	upper := mean + ind.stdDev*sd
	lower := mean - ind.stdDev*sd
	bandwidth := upper - lower
	return BollingerValue{Upper: f64(upper), Middle: f64(mean), Lower: f64(lower), Bandwidth: f64(bandwidth)}
}

// ATRIndicator is the Average True Range: Wilder-smoothed true range.
type ATRIndicator struct {
	base
	tr        *wilderState
	prevClose float64
	havePrev  bool
}

func newATR(req Requirement) (*ATRIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &ATRIndicator{base: newBase(req, period), tr: newWilderState(period)}, nil
}

func trueRange(bar Bar, prevClose float64, havePrev bool) float64 {
	if !havePrev {
		return bar.High - bar.Low
	}
	return math.Max(bar.High-bar.Low, math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
}

func (ind *ATRIndicator) Update(bar Bar) error {
	ind.touch(bar)
	tr := trueRange(bar, ind.prevClose, ind.havePrev)
	ind.prevClose = bar.Close
	ind.havePrev = true
	ind.tr.update(tr)
	return nil
}

func (ind *ATRIndicator) Value() any {
	if !ind.tr.ready() {
		return nil
	}
	return ind.tr.get()
}

// NATRIndicator is Normalized ATR: ATR scaled to a percentage of close.
type NATRIndicator struct {
	ATRIndicator
}

func newNATR(req Requirement) (*NATRIndicator, error) {
	atr, err := newATR(req)
	if err != nil {
		return nil, err
	}
	return &NATRIndicator{ATRIndicator: *atr}, nil
}

func (ind *NATRIndicator) Value() any {
	if !ind.tr.ready() {
		return nil
	}
	if ind.prevClose == 0 {
		return nil
	}
	return 100.0 * ind.tr.get() / ind.prevClose
}

// KeltnerIndicator is Keltner Channels: an EMA middle line plus
// upper/lower bands offset by a multiple of ATR.
type KeltnerIndicator struct {
	base
	ema *emaState
	atr *ATRIndicator
	mul float64
}

func newKeltner(req Requirement) (*KeltnerIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	atrPeriod := paramInt(req.Params, "atr_period", 10)
	mul := paramFloat(req.Params, "multiplier", 2.0)
	if period <= 0 || atrPeriod <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "kc periods must be positive"}
	}
	atr, err := newATR(Requirement{ID: req.ID + ".atr", Type: "atr", Timeframe: req.Timeframe, Params: map[string]any{"period": atrPeriod}})
	if err != nil {
		return nil, err
	}
	warmup := period
	if atrPeriod > warmup {
		warmup = atrPeriod
	}
	return &KeltnerIndicator{base: newBase(req, warmup), ema: newEMAState(period), atr: atr, mul: mul}, nil
}

func (ind *KeltnerIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.ema.update(bar.Close)
	return ind.atr.Update(bar)
}

func (ind *KeltnerIndicator) Value() any {
	if !ind.ema.ready() {
		return BandValue{}
	}
	atrVal, ok := ind.atr.Value().(float64)
	if !ok {
		return BandValue{Middle: f64(ind.ema.get())}
	}
	mid := ind.ema.get()
	return BandValue{Upper: f64(mid + ind.mul*atrVal), Middle: f64(mid), Lower: f64(mid - ind.mul*atrVal)}
}

// DonchianIndicator is Donchian Channels: the rolling high/low envelope
// and its midpoint.
type DonchianIndicator struct {
	base
	high *slidingWindow
	low  *slidingWindow
}

func newDonchian(req Requirement) (*DonchianIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &DonchianIndicator{base: newBase(req, period), high: newSlidingWindow(period), low: newSlidingWindow(period)}, nil
}

func (ind *DonchianIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.high.push(bar.High)
	ind.low.push(bar.Low)
	return nil
}

func (ind *DonchianIndicator) Value() any {
	if !ind.high.full() {
		return BandValue{}
	}
	_, hi := ind.high.minMax()
	lo, _ := ind.low.minMax()
	return BandValue{Upper: f64(hi), Middle: f64((hi + lo) / 2.0), Lower: f64(lo)}
}

// StdDevIndicator is the rolling population standard deviation of close
// (the variance divides by the window size, not window size minus one).
type StdDevIndicator struct {
	base
	window *slidingWindow
}

func newStdDev(req Requirement) (*StdDevIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &StdDevIndicator{base: newBase(req, period), window: newSlidingWindow(period)}, nil
}

func (ind *StdDevIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	return nil
}

func (ind *StdDevIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	return math.Sqrt(ind.window.variance())
}
