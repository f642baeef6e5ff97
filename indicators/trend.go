package indicators

import "math"

// ADXIndicator is the Average Directional Index family: Wilder-smoothed
// directional movement feeding +DI/-DI and the ADX line itself.
type ADXIndicator struct {
	base
	period            int
	trSmooth          *wilderState
	plusDMSmooth      *wilderState
	minusDMSmooth     *wilderState
	dxSmooth          *wilderState
	prevHigh          float64
	prevLow           float64
	prevClose         float64
	havePrev          bool
}

func newADX(req Requirement) (*ADXIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &ADXIndicator{
		base: newBase(req, 2*period),
		period: period,
		trSmooth: newWilderState(period), plusDMSmooth: newWilderState(period), minusDMSmooth: newWilderState(period),
		dxSmooth: newWilderState(period),
	}, nil
}

func (ind *ADXIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevHigh, ind.prevLow, ind.prevClose = bar.High, bar.Low, bar.Close
		ind.havePrev = true
		return nil
	}
	upMove := bar.High - ind.prevHigh
	downMove := ind.prevLow - bar.Low
	var plusDM, minusDM float64
	if upMove > downMove && upMove > 0 {
		plusDM = upMove
	}
	if downMove > upMove && downMove > 0 {
		minusDM = downMove
	}
	tr := trueRange(bar, ind.prevClose, true)
	ind.prevHigh, ind.prevLow, ind.prevClose = bar.High, bar.Low, bar.Close

	ind.trSmooth.update(tr)
	ind.plusDMSmooth.update(plusDM)
	ind.minusDMSmooth.update(minusDM)

	if ind.trSmooth.ready() && ind.trSmooth.get() != 0 {
		plusDI := 100.0 * ind.plusDMSmooth.get() / ind.trSmooth.get()
		minusDI := 100.0 * ind.minusDMSmooth.get() / ind.trSmooth.get()
		sum := plusDI + minusDI
		if sum != 0 {
			dx := 100.0 * math.Abs(plusDI-minusDI) / sum
			ind.dxSmooth.update(dx)
		}
	}
	return nil
}

func (ind *ADXIndicator) Value() any {
	if !ind.trSmooth.ready() || ind.trSmooth.get() == 0 {
		return ADXValue{}
	}
	plusDI := 100.0 * ind.plusDMSmooth.get() / ind.trSmooth.get()
	minusDI := 100.0 * ind.minusDMSmooth.get() / ind.trSmooth.get()
	if !ind.dxSmooth.ready() {
		return ADXValue{PlusDI: f64(plusDI), MinusDI: f64(minusDI)}
	}
	return ADXValue{ADX: f64(ind.dxSmooth.get()), PlusDI: f64(plusDI), MinusDI: f64(minusDI)}
}

// AroonIndicator tracks how many bars since the rolling high/low, scaled
// into an Up/Down oscillator pair.
type AroonIndicator struct {
	base
	period int
	high   []float64
	low    []float64
	filled int
	pos    int
}

func newAroon(req Requirement) (*AroonIndicator, error) {
	period := paramInt(req.Params, "period", 25)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &AroonIndicator{base: newBase(req, period), period: period, high: make([]float64, period), low: make([]float64, period)}, nil
}

func (ind *AroonIndicator) Update(bar Bar) error {
	ind.touch(bar)
	n := ind.period
	ind.high[ind.pos] = bar.High
	ind.low[ind.pos] = bar.Low
	ind.pos = (ind.pos + 1) % n
	if ind.filled < n {
		ind.filled++
	}
	return nil
}

func (ind *AroonIndicator) Value() any {
	n := ind.period
	if ind.filled < n {
		return AroonValue{}
	}
	highestIdx, lowestIdx := 0, 0
	highest, lowest := ind.high[0], ind.low[0]
	for i := 1; i < n; i++ {
		if ind.high[i] >= highest {
			highest = ind.high[i]
			highestIdx = i
		}
		if ind.low[i] <= lowest {
			lowest = ind.low[i]
			lowestIdx = i
		}
	}
	barsSinceHigh := (ind.pos - 1 - highestIdx + n) % n
	barsSinceLow := (ind.pos - 1 - lowestIdx + n) % n
	up := 100.0 * float64(ind.period-barsSinceHigh) / float64(ind.period)
	down := 100.0 * float64(ind.period-barsSinceLow) / float64(ind.period)
	return AroonValue{Up: f64(up), Down: f64(down)}
}

// PSARIndicator is the Parabolic Stop-and-Reverse: a trailing stop level
// that accelerates while a trend persists and flips on breach.
type PSARIndicator struct {
	base
	step, maxStep   float64
	af              float64
	sar             float64
	ep              float64
	longTrend       bool
	havePosition    bool
	prevHigh, prevLow float64
}

func newPSAR(req Requirement) (*PSARIndicator, error) {
	step := paramFloat(req.Params, "step", 0.02)
	maxStep := paramFloat(req.Params, "max_step", 0.2)
	return &PSARIndicator{base: newBase(req, 2), step: step, maxStep: maxStep}, nil
}

func (ind *PSARIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePosition {
		ind.sar = bar.Low
		ind.ep = bar.High
		ind.af = ind.step
		ind.longTrend = true
		ind.havePosition = true
		ind.prevHigh, ind.prevLow = bar.High, bar.Low
		return nil
	}

	nextSAR := ind.sar + ind.af*(ind.ep-ind.sar)

	if ind.longTrend {
		if bar.Low < nextSAR {
			ind.longTrend = false
			nextSAR = ind.ep
			ind.ep = bar.Low
			ind.af = ind.step
		} else {
			if bar.High > ind.ep {
				ind.ep = bar.High
				ind.af = math.Min(ind.af+ind.step, ind.maxStep)
			}
			if nextSAR > ind.prevLow {
				nextSAR = ind.prevLow
			}
		}
	} else {
		if bar.High > nextSAR {
			ind.longTrend = true
			nextSAR = ind.ep
			ind.ep = bar.High
			ind.af = ind.step
		} else {
			if bar.Low < ind.ep {
				ind.ep = bar.Low
				ind.af = math.Min(ind.af+ind.step, ind.maxStep)
			}
			if nextSAR < ind.prevHigh {
				nextSAR = ind.prevHigh
			}
		}
	}

	ind.sar = nextSAR
	ind.prevHigh, ind.prevLow = bar.High, bar.Low
	return nil
}

func (ind *PSARIndicator) Value() any {
	if !ind.havePosition {
		return nil
	}
	return ind.sar
}

// SupertrendIndicator is an ATR-banded trend-following overlay that flips
// direction when price closes through the active band.
type SupertrendIndicator struct {
	base
	atr            *ATRIndicator
	mul            float64
	upperBand      float64
	lowerBand      float64
	trendUp        bool
	haveTrend      bool
	prevClose      float64
}

func newSupertrend(req Requirement) (*SupertrendIndicator, error) {
	period := paramInt(req.Params, "period", 10)
	mul := paramFloat(req.Params, "multiplier", 3.0)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	atr, err := newATR(Requirement{ID: req.ID + ".atr", Type: "atr", Timeframe: req.Timeframe, Params: map[string]any{"period": period}})
	if err != nil {
		return nil, err
	}
	return &SupertrendIndicator{base: newBase(req, period), atr: atr, mul: mul}, nil
}

func (ind *SupertrendIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if err := ind.atr.Update(bar); err != nil {
		return err
	}
	atrVal, ok := ind.atr.Value().(float64)
	if !ok {
		ind.prevClose = bar.Close
		return nil
	}
	mid := (bar.High + bar.Low) / 2.0
	basicUpper := mid + ind.mul*atrVal
	basicLower := mid - ind.mul*atrVal

	if !ind.haveTrend {
		ind.upperBand = basicUpper
		ind.lowerBand = basicLower
		ind.trendUp = bar.Close >= mid
		ind.haveTrend = true
		ind.prevClose = bar.Close
		return nil
	}

	if basicUpper < ind.upperBand || ind.prevClose > ind.upperBand {
		ind.upperBand = basicUpper
	}
	if basicLower > ind.lowerBand || ind.prevClose < ind.lowerBand {
		ind.lowerBand = basicLower
	}

	if ind.trendUp && bar.Close < ind.lowerBand {
		ind.trendUp = false
	} else if !ind.trendUp && bar.Close > ind.upperBand {
		ind.trendUp = true
	}
	ind.prevClose = bar.Close
	return nil
}

func (ind *SupertrendIndicator) Value() any {
	if !ind.haveTrend {
		return SupertrendValue{}
	}
	var level float64
	if ind.trendUp {
		level = ind.lowerBand
	} else {
		level = ind.upperBand
	}
	trend := "down"
	if ind.trendUp {
		trend = "up"
	}
	return SupertrendValue{Value: f64(level), Trend: &trend}
}

// TRIXIndicator is the rate of change of a triple-smoothed EMA.
type TRIXIndicator struct {
	base
	e1, e2, e3 *emaState
	prevE3     float64
	haveE3     bool
}

func newTRIX(req Requirement) (*TRIXIndicator, error) {
	period := paramInt(req.Params, "period", 15)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &TRIXIndicator{
		base: newBase(req, 3 * period),
		e1:   newEMAState(period), e2: newEMAState(period), e3: newEMAState(period),
	}, nil
}

func (ind *TRIXIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if ind.e3.ready() {
		ind.prevE3 = ind.e3.get()
		ind.haveE3 = true
	}
	ind.e1.update(bar.Close)
	if ind.e1.ready() {
		ind.e2.update(ind.e1.get())
	}
	if ind.e2.ready() {
		ind.e3.update(ind.e2.get())
	}
	return nil
}

func (ind *TRIXIndicator) Value() any {
	if !ind.e3.ready() || !ind.haveE3 {
		return nil
	}
	cur := ind.e3.get()
	var trix float64
	if ind.prevE3 != 0 {
		trix = 100.0 * (cur - ind.prevE3) / ind.prevE3
	}
	return trix
}

// DPOIndicator is the Detrended Price Oscillator: close minus an SMA
// shifted back by period/2+1 bars.
type DPOIndicator struct {
	base
	period int
	shift  int
	window *slidingWindow
	closes []float64
}

func newDPO(req Requirement) (*DPOIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	shift := period/2 + 1
	return &DPOIndicator{base: newBase(req, period + shift), period: period, shift: shift, window: newSlidingWindow(period)}, nil
}

func (ind *DPOIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	ind.closes = append(ind.closes, bar.Close)
	maxKeep := ind.period + ind.shift + 1
	if len(ind.closes) > maxKeep {
		ind.closes = ind.closes[len(ind.closes)-maxKeep:]
	}
	return nil
}

func (ind *DPOIndicator) Value() any {
	needed := ind.period + ind.shift
	if len(ind.closes) < needed {
		return nil
	}
	shiftedClose := ind.closes[len(ind.closes)-1-ind.shift]
	smaWindow := ind.closes[len(ind.closes)-ind.shift-ind.period : len(ind.closes)-ind.shift]
	var sum float64
	for _, v := range smaWindow {
		sum += v
	}
	sma := sum / float64(ind.period)
	return shiftedClose - sma
}

// KSTIndicator is the Know Sure Thing: a weighted sum of four smoothed
// rate-of-change series, with a signal line smoothing that sum.
type KSTIndicator struct {
	base
	rocPeriods   [4]int
	smaPeriods   [4]int
	rocBuffers   [4]*lagBuffer
	smaWindows   [4]*slidingWindow
	weights      [4]float64
	signal       *slidingWindow
}

func newKST(req Requirement) (*KSTIndicator, error) {
	rocPeriods := [4]int{10, 15, 20, 30}
	smaPeriods := [4]int{10, 10, 10, 15}
	signalPeriod := paramInt(req.Params, "signal_period", 9)
	ind := &KSTIndicator{
		rocPeriods: rocPeriods, smaPeriods: smaPeriods,
		weights: [4]float64{1, 2, 3, 4},
		signal:  newSlidingWindow(signalPeriod),
	}
	for i := range rocPeriods {
		ind.rocBuffers[i] = newLagBuffer(rocPeriods[i])
		ind.smaWindows[i] = newSlidingWindow(smaPeriods[i])
	}
	// Standard KST warmup (30+15 roc/sma + 9 signal, plus one bar of lag) is
	// fixed at 55 bars for the canonical period set used here.
	ind.base = newBase(req, 55)
	return ind, nil
}

func (ind *KSTIndicator) Update(bar Bar) error {
	ind.touch(bar)
	var kst float64
	ready := true
	for i := range ind.rocPeriods {
		lagged, ok := ind.rocBuffers[i].push(bar.Close)
		if !ok || lagged == 0 {
			ready = false
			continue
		}
		roc := 100.0 * (bar.Close - lagged) / lagged
		ind.smaWindows[i].push(roc)
		if !ind.smaWindows[i].full() {
			ready = false
			continue
		}
		kst += ind.weights[i] * ind.smaWindows[i].mean()
	}
	if ready {
		ind.signal.push(kst)
	}
	return nil
}

func (ind *KSTIndicator) Value() any {
	for i := range ind.rocPeriods {
		if !ind.smaWindows[i].full() {
			return KSTValue{}
		}
	}
	var kst float64
	for i := range ind.rocPeriods {
		kst += ind.weights[i] * ind.smaWindows[i].mean()
	}
	if !ind.signal.full() {
		return KSTValue{KST: f64(kst)}
	}
	return KSTValue{KST: f64(kst), Signal: f64(ind.signal.mean())}
}
