package indicators

import "math"

// RSIIndicator is the Relative Strength Index using Wilder smoothing on
// the gain/loss split of successive closes.
type RSIIndicator struct {
	base
	period    int
	gain      *wilderState
	loss      *wilderState
	prevClose float64
	havePrev  bool
}

func newRSI(req Requirement) (*RSIIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &RSIIndicator{base: newBase(req, period+1), period: period, gain: newWilderState(period), loss: newWilderState(period)}, nil
}

func (ind *RSIIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevClose = bar.Close
		ind.havePrev = true
		return nil
	}
	delta := bar.Close - ind.prevClose
	ind.prevClose = bar.Close
	if delta > 0 {
		ind.gain.update(delta)
		ind.loss.update(0)
	} else {
		ind.gain.update(0)
		ind.loss.update(-delta)
	}
	return nil
}

func (ind *RSIIndicator) Value() any {
	if !ind.gain.ready() || !ind.loss.ready() {
		return nil
	}
	avgLoss := ind.loss.get()
	if avgLoss == 0 {
		return 100.0
	}
	rs := ind.gain.get() / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}

// MACDIndicator is the Moving Average Convergence/Divergence family: two
// EMAs of close plus an EMA of their difference.
type MACDIndicator struct {
	base
	fast, slow *emaState
	signal     *emaState
}

func newMACD(req Requirement) (*MACDIndicator, error) {
	fast := paramInt(req.Params, "fast", 12)
	slow := paramInt(req.Params, "slow", 26)
	signal := paramInt(req.Params, "signal", 9)
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "macd periods must be positive"}
	}
	if fast >= slow {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "fast period must be less than slow period"}
	}
	return &MACDIndicator{
		base: newBase(req, slow+signal),
		fast: newEMAState(fast), slow: newEMAState(slow), signal: newEMAState(signal),
	}, nil
}

func (ind *MACDIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.fast.update(bar.Close)
	ind.slow.update(bar.Close)
	if ind.fast.ready() && ind.slow.ready() {
		ind.signal.update(ind.fast.get() - ind.slow.get())
	}
	return nil
}

func (ind *MACDIndicator) Value() any {
	if !ind.fast.ready() || !ind.slow.ready() {
		return MACDValue{}
	}
	macdLine := ind.fast.get() - ind.slow.get()
	if !ind.signal.ready() {
		return MACDValue{
			Diff: f64(macdLine), Macd: nil,
			EmaFast: f64(ind.fast.get()), EmaSlow: f64(ind.slow.get()),
		}
	}
	hist := macdLine - ind.signal.get()
	return MACDValue{
		FastLine: f64(macdLine), SignalLine: f64(ind.signal.get()), Histogram: f64(hist),
		Diff: f64(macdLine), Dea: f64(ind.signal.get()), Macd: f64(hist),
		EmaFast: f64(ind.fast.get()), EmaSlow: f64(ind.slow.get()),
	}
}

// StochIndicator is the Stochastic Oscillator: %K from the rolling
// high/low range, %D as an SMA of %K.
type StochIndicator struct {
	base
	window  *slidingWindow
	dWindow *slidingWindow
	kPeriod int
}

func newStoch(req Requirement) (*StochIndicator, error) {
	kPeriod := paramInt(req.Params, "k_period", 14)
	dPeriod := paramInt(req.Params, "d_period", 3)
	if kPeriod <= 0 || dPeriod <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "stoch periods must be positive"}
	}
	return &StochIndicator{
		base: newBase(req, kPeriod+dPeriod), window: newSlidingWindow(kPeriod), dWindow: newSlidingWindow(dPeriod), kPeriod: kPeriod,
	}, nil
}

func (ind *StochIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	if !ind.window.full() {
		return nil
	}
	lo, hi := ind.window.minMax()
	var k float64
	if hi != lo {
		k = 100.0 * (bar.Close - lo) / (hi - lo)
	} else {
		k = 0.0
	}
	ind.dWindow.push(k)
	return nil
}

func (ind *StochIndicator) Value() any {
	if !ind.window.full() {
		return StochValue{}
	}
	lo, hi := ind.window.minMax()
	var k float64
	if hi != lo {
		k = 100.0 * (ind.window.last() - lo) / (hi - lo)
	} else {
		k = 0.0
	}
	if !ind.dWindow.full() {
		return StochValue{K: f64(k)}
	}
	return StochValue{K: f64(k), D: f64(ind.dWindow.mean())}
}

// StochRSIIndicator applies the Stochastic formula to a rolling window of
// RSI values rather than price.
type StochRSIIndicator struct {
	base
	rsi     *RSIIndicator
	window  *slidingWindow
	dWindow *slidingWindow
}

func newStochRSI(req Requirement) (*StochRSIIndicator, error) {
	rsiPeriod := paramInt(req.Params, "rsi_period", 14)
	stochPeriod := paramInt(req.Params, "stoch_period", 14)
	dPeriod := paramInt(req.Params, "d_period", 3)
	if rsiPeriod <= 0 || stochPeriod <= 0 || dPeriod <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "stochrsi periods must be positive"}
	}
	rsi, err := newRSI(Requirement{ID: req.ID + ".rsi", Type: "rsi", Timeframe: req.Timeframe, Params: map[string]any{"period": rsiPeriod}})
	if err != nil {
		return nil, err
	}
	return &StochRSIIndicator{
		base: newBase(req, rsiPeriod+1+stochPeriod+dPeriod-1),
		rsi:  rsi, window: newSlidingWindow(stochPeriod), dWindow: newSlidingWindow(dPeriod),
	}, nil
}

func (ind *StochRSIIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if err := ind.rsi.Update(bar); err != nil {
		return err
	}
	rsiVal, ok := ind.rsi.Value().(float64)
	if !ok {
		return nil
	}
	ind.window.push(rsiVal)
	if !ind.window.full() {
		return nil
	}
	lo, hi := ind.window.minMax()
	var k float64
	if hi != lo {
		k = 100.0 * (rsiVal - lo) / (hi - lo)
	} else {
		k = 0.0
	}
	ind.dWindow.push(k)
	return nil
}

func (ind *StochRSIIndicator) Value() any {
	if !ind.window.full() {
		return StochValue{}
	}
	lo, hi := ind.window.minMax()
	var k float64
	if hi != lo {
		k = 100.0 * (ind.window.last() - lo) / (hi - lo)
	} else {
		k = 0.0
	}
	if !ind.dWindow.full() {
		return StochValue{K: f64(k)}
	}
	return StochValue{K: f64(k), D: f64(ind.dWindow.mean())}
}

// CCIIndicator is the Commodity Channel Index: deviation of typical price
// from its moving average, scaled by mean absolute deviation.
type CCIIndicator struct {
	base
	window *slidingWindow
	scale  float64
}

func newCCI(req Requirement) (*CCIIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &CCIIndicator{base: newBase(req, period), window: newSlidingWindow(period), scale: 0.015}, nil
}

func (ind *CCIIndicator) Update(bar Bar) error {
	ind.touch(bar)
	typical := (bar.High + bar.Low + bar.Close) / 3.0
	ind.window.push(typical)
	return nil
}

func (ind *CCIIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	vals := ind.window.values()
	mean := ind.window.mean()
	var meanDev float64
	for _, v := range vals {
		meanDev += math.Abs(v - mean)
	}
	meanDev /= float64(len(vals))
	if meanDev == 0 {
		return 0.0
	}
	return (ind.window.last() - mean) / (ind.scale * meanDev)
}

// ROCIndicator is the Rate of Change: percentage difference between the
// current close and the close `period` bars ago.
type ROCIndicator struct {
	base
	lag *lagBuffer
}

func newROC(req Requirement) (*ROCIndicator, error) {
	period := paramInt(req.Params, "period", 12)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &ROCIndicator{base: newBase(req, period+1), lag: newLagBuffer(period)}, nil
}

func (ind *ROCIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.lag.push(bar.Close)
	return nil
}

func (ind *ROCIndicator) Value() any {
	if len(ind.lag.buf) < ind.lag.lag+1 {
		return nil
	}
	old := ind.lag.buf[0]
	latest := ind.lag.buf[len(ind.lag.buf)-1]
	if old == 0 {
		return nil
	}
	return 100.0 * (latest - old) / old
}

// WillRIndicator is Williams %R: inverse-scaled position of close within
// the rolling high/low range.
type WillRIndicator struct {
	base
	window *slidingWindow
}

func newWillR(req Requirement) (*WillRIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &WillRIndicator{base: newBase(req, period), window: newSlidingWindow(period)}, nil
}

func (ind *WillRIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	return nil
}

func (ind *WillRIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	lo, hi := ind.window.minMax()
	if hi == lo {
		return -50.0
	}
	return -100.0 * (hi - ind.window.last()) / (hi - lo)
}

// TSIIndicator is the True Strength Index: a double-smoothed EMA of
// momentum, normalized by a double-smoothed EMA of absolute momentum.
type TSIIndicator struct {
	base
	fast, slow         int
	m1, m2             *emaState
	am1, am2           *emaState
	prevClose          float64
	havePrev           bool
}

func newTSI(req Requirement) (*TSIIndicator, error) {
	slow := paramInt(req.Params, "slow", 25)
	fast := paramInt(req.Params, "fast", 13)
	if slow <= 0 || fast <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "tsi periods must be positive"}
	}
	return &TSIIndicator{
		base: newBase(req, slow+fast),
		slow: slow, fast: fast,
		m1: newEMAState(slow), m2: newEMAState(fast),
		am1: newEMAState(slow), am2: newEMAState(fast),
	}, nil
}

func (ind *TSIIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevClose = bar.Close
		ind.havePrev = true
		return nil
	}
	momentum := bar.Close - ind.prevClose
	ind.prevClose = bar.Close
	ind.m1.update(momentum)
	ind.am1.update(math.Abs(momentum))
	if ind.m1.ready() {
		ind.m2.update(ind.m1.get())
	}
	if ind.am1.ready() {
		ind.am2.update(ind.am1.get())
	}
	return nil
}

func (ind *TSIIndicator) Value() any {
	if !ind.m2.ready() || !ind.am2.ready() || ind.am2.get() == 0 {
		return nil
	}
	return 100.0 * ind.m2.get() / ind.am2.get()
}

// AwesomeOscillatorIndicator is the difference between a 5-period and a
// 34-period SMA of the midpoint price (high+low)/2.
type AwesomeOscillatorIndicator struct {
	base
	fast, slow *slidingWindow
}

func newAwesomeOscillator(req Requirement) (*AwesomeOscillatorIndicator, error) {
	fast := paramInt(req.Params, "fast", 5)
	slow := paramInt(req.Params, "slow", 34)
	if fast <= 0 || slow <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "ao periods must be positive"}
	}
	return &AwesomeOscillatorIndicator{base: newBase(req, slow), fast: newSlidingWindow(fast), slow: newSlidingWindow(slow)}, nil
}

func (ind *AwesomeOscillatorIndicator) Update(bar Bar) error {
	ind.touch(bar)
	mid := (bar.High + bar.Low) / 2.0
	ind.fast.push(mid)
	ind.slow.push(mid)
	return nil
}

func (ind *AwesomeOscillatorIndicator) Value() any {
	if !ind.fast.full() || !ind.slow.full() {
		return nil
	}
	return ind.fast.mean() - ind.slow.mean()
}

// UltimateOscillatorIndicator blends three buying-pressure/true-range
// ratios across short, medium, and long windows.
type UltimateOscillatorIndicator struct {
	base
	w1, w2, w3             *slidingWindow
	tr1, tr2, tr3          *slidingWindow
	prevClose              float64
	havePrev               bool
}

func newUltimateOscillator(req Requirement) (*UltimateOscillatorIndicator, error) {
	p1 := paramInt(req.Params, "period1", 7)
	p2 := paramInt(req.Params, "period2", 14)
	p3 := paramInt(req.Params, "period3", 28)
	if p1 <= 0 || p2 <= 0 || p3 <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "uo periods must be positive"}
	}
	return &UltimateOscillatorIndicator{
		base: newBase(req, p3+1),
		w1:   newSlidingWindow(p1), w2: newSlidingWindow(p2), w3: newSlidingWindow(p3),
		tr1: newSlidingWindow(p1), tr2: newSlidingWindow(p2), tr3: newSlidingWindow(p3),
	}, nil
}

func (ind *UltimateOscillatorIndicator) Update(bar Bar) error {
	ind.touch(bar)
	prevClose := bar.Close
	if ind.havePrev {
		prevClose = ind.prevClose
	}
	trueLow := math.Min(bar.Low, prevClose)
	trueHigh := math.Max(bar.High, prevClose)
	buyingPressure := bar.Close - trueLow
	trueRange := trueHigh - trueLow
	ind.prevClose = bar.Close
	ind.havePrev = true

	ind.w1.push(buyingPressure)
	ind.w2.push(buyingPressure)
	ind.w3.push(buyingPressure)
	ind.tr1.push(trueRange)
	ind.tr2.push(trueRange)
	ind.tr3.push(trueRange)
	return nil
}

func (ind *UltimateOscillatorIndicator) Value() any {
	if !ind.w3.full() {
		return nil
	}
	avg := func(bp, tr *slidingWindow) float64 {
		if tr.sum == 0 {
			return 0
		}
		return bp.sum / tr.sum
	}
	avg1 := avg(ind.w1, ind.tr1)
	avg2 := avg(ind.w2, ind.tr2)
	avg3 := avg(ind.w3, ind.tr3)
	return 100.0 * (4*avg1 + 2*avg2 + avg3) / 7.0
}
