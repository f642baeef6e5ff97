package indicators

import "math"

// SMAIndicator is the simple moving average: mean of the last `period`
// closes.
type SMAIndicator struct {
	base
	window *slidingWindow
}

func newSMA(req Requirement) (*SMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &SMAIndicator{base: newBase(req, period), window: newSlidingWindow(period)}, nil
}

func (ind *SMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	return nil
}

func (ind *SMAIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	return ind.window.mean()
}

// EMAIndicator is the exponential moving average, seeded with the
// arithmetic mean of the first `period` closes.
type EMAIndicator struct {
	base
	ema *emaState
}

func newEMA(req Requirement) (*EMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &EMAIndicator{base: newBase(req, period), ema: newEMAState(period)}, nil
}

func (ind *EMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.ema.update(bar.Close)
	return nil
}

func (ind *EMAIndicator) Value() any {
	if !ind.ema.ready() {
		return nil
	}
	return ind.ema.get()
}

// DEMAIndicator is the Double EMA: 2*ema1 - ema2(ema1).
type DEMAIndicator struct {
	base
	e1, e2 *emaState
}

func newDEMA(req Requirement) (*DEMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &DEMAIndicator{base: newBase(req, 2 * period), e1: newEMAState(period), e2: newEMAState(period)}, nil
}

func (ind *DEMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.e1.update(bar.Close)
	if ind.e1.ready() {
		ind.e2.update(ind.e1.get())
	}
	return nil
}

func (ind *DEMAIndicator) Value() any {
	if !ind.e2.ready() {
		return nil
	}
	return 2*ind.e1.get() - ind.e2.get()
}

// TEMAIndicator is the Triple EMA: 3*e1 - 3*e2 + e3.
type TEMAIndicator struct {
	base
	e1, e2, e3 *emaState
}

func newTEMA(req Requirement) (*TEMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &TEMAIndicator{
		base: newBase(req, 3 * period),
		e1:   newEMAState(period), e2: newEMAState(period), e3: newEMAState(period),
	}, nil
}

func (ind *TEMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.e1.update(bar.Close)
	if ind.e1.ready() {
		ind.e2.update(ind.e1.get())
	}
	if ind.e2.ready() {
		ind.e3.update(ind.e2.get())
	}
	return nil
}

func (ind *TEMAIndicator) Value() any {
	if !ind.e3.ready() {
		return nil
	}
	return 3*ind.e1.get() - 3*ind.e2.get() + ind.e3.get()
}

// WMAIndicator is the linearly-weighted moving average.
type WMAIndicator struct {
	base
	wma *wmaSeries
}

func newWMA(req Requirement) (*WMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &WMAIndicator{base: newBase(req, period), wma: newWMASeries(period)}, nil
}

func (ind *WMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.wma.update(bar.Close)
	return nil
}

func (ind *WMAIndicator) Value() any {
	if !ind.wma.ready() {
		return nil
	}
	return ind.wma.value()
}

// SMMAIndicator is the smoothed/modified moving average (Wilder smoothing
// applied directly to price).
type SMMAIndicator struct {
	base
	smma *wilderState
}

func newSMMA(req Requirement) (*SMMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &SMMAIndicator{base: newBase(req, period), smma: newWilderState(period)}, nil
}

func (ind *SMMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.smma.update(bar.Close)
	return nil
}

func (ind *SMMAIndicator) Value() any {
	if !ind.smma.ready() {
		return nil
	}
	return ind.smma.get()
}

// HMAIndicator is the Hull Moving Average:
// WMA(2*WMA(price, period/2) - WMA(price, period), round(sqrt(period))).
type HMAIndicator struct {
	base
	half, full *wmaSeries
	smoothed   *wmaSeries
}

func newHMA(req Requirement) (*HMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	halfPeriod := period / 2
	if halfPeriod <= 0 {
		halfPeriod = 1
	}
	sqrtPeriod := int(math.Round(math.Sqrt(float64(period))))
	if sqrtPeriod <= 0 {
		sqrtPeriod = 1
	}
	return &HMAIndicator{
		base: newBase(req, period+sqrtPeriod-1),
		half: newWMASeries(halfPeriod), full: newWMASeries(period),
		smoothed: newWMASeries(sqrtPeriod),
	}, nil
}

func (ind *HMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.half.update(bar.Close)
	ind.full.update(bar.Close)
	if ind.half.ready() && ind.full.ready() {
		ind.smoothed.update(2*ind.half.value() - ind.full.value())
	}
	return nil
}

func (ind *HMAIndicator) Value() any {
	if !ind.smoothed.ready() {
		return nil
	}
	return ind.smoothed.value()
}

// KAMAIndicator is Kaufman's Adaptive Moving Average.
type KAMAIndicator struct {
	base
	period           int
	fastSC, slowSC   float64
	history          *slidingWindow
	prevClose        float64
	havePrevClose    bool
	kama             *float64
}

func newKAMA(req Requirement) (*KAMAIndicator, error) {
	period := paramInt(req.Params, "period", 10)
	fast := paramInt(req.Params, "fast", 2)
	slow := paramInt(req.Params, "slow", 30)
	if period <= 0 || fast <= 0 || slow <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "kama periods must be positive"}
	}
	return &KAMAIndicator{
		base:    newBase(req, period+1),
		period:  period,
		fastSC:  2.0 / (float64(fast) + 1.0),
		slowSC:  2.0 / (float64(slow) + 1.0),
		history: newSlidingWindow(period + 1),
	}, nil
}

func (ind *KAMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.history.push(bar.Close)
	if ind.history.filled < ind.period+1 {
		return nil
	}
	vals := ind.history.values()
	n := len(vals)
	change := math.Abs(vals[n-1] - vals[0])
	var volatility float64
	for i := 1; i < n; i++ {
		volatility += math.Abs(vals[i] - vals[i-1])
	}
	var er float64
	if volatility != 0 {
		er = change / volatility
	}
	sc := math.Pow(er*(ind.fastSC-ind.slowSC)+ind.slowSC, 2)
	if ind.kama == nil {
		seed := vals[n-1]
		ind.kama = &seed
		return nil
	}
	next := *ind.kama + sc*(bar.Close-*ind.kama)
	ind.kama = &next
	return nil
}

func (ind *KAMAIndicator) Value() any {
	if ind.kama == nil {
		return nil
	}
	return *ind.kama
}

// ZLEMAIndicator is the Zero-Lag EMA: EMA of (2*price - price[lag bars ago]).
type ZLEMAIndicator struct {
	base
	lag *lagBuffer
	ema *emaState
}

func newZLEMA(req Requirement) (*ZLEMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	lag := (period - 1) / 2
	return &ZLEMAIndicator{base: newBase(req, period), lag: newLagBuffer(lag), ema: newEMAState(period)}, nil
}

func (ind *ZLEMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	lagged, ok := ind.lag.push(bar.Close)
	if !ok {
		return nil
	}
	ind.ema.update(2*bar.Close - lagged)
	return nil
}

func (ind *ZLEMAIndicator) Value() any {
	if !ind.ema.ready() {
		return nil
	}
	return ind.ema.get()
}

// T3Indicator is Tillson's T3, a 6-stage EMA chain with a volume factor.
type T3Indicator struct {
	base
	e [6]*emaState
	c1, c2, c3, c4 float64
}

func newT3(req Requirement) (*T3Indicator, error) {
	period := paramInt(req.Params, "period", 5)
	factor := paramFloat(req.Params, "factor", 0.7)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	ind := &T3Indicator{base: newBase(req, 6 * period)}
	for i := range ind.e {
		ind.e[i] = newEMAState(period)
	}
	vf := factor
	vf2 := vf * vf
	vf3 := vf2 * vf
	ind.c1 = -vf3
	ind.c2 = 3*vf2 + 3*vf3
	ind.c3 = -6*vf2 - 3*vf - 3*vf3
	ind.c4 = 1 + 3*vf + vf3 + 3*vf2
	return ind, nil
}

func (ind *T3Indicator) Update(bar Bar) error {
	ind.touch(bar)
	input := bar.Close
	for _, e := range ind.e {
		e.update(input)
		if !e.ready() {
			return nil
		}
		input = e.get()
	}
	return nil
}

func (ind *T3Indicator) Value() any {
	if !ind.e[5].ready() {
		return nil
	}
	return ind.c1*ind.e[5].get() + ind.c2*ind.e[4].get() + ind.c3*ind.e[3].get() + ind.c4*ind.e[2].get()
}

// ALMAIndicator is the Arnaud Legoux Moving Average: a Gaussian-weighted
// average over a fixed window.
type ALMAIndicator struct {
	base
	window        *slidingWindow
	period        int
	offset, sigma float64
}

func newALMA(req Requirement) (*ALMAIndicator, error) {
	period := paramInt(req.Params, "period", 9)
	offset := paramFloat(req.Params, "offset", 0.85)
	sigma := paramFloat(req.Params, "sigma", 6)
	if period <= 0 || sigma <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "alma period/sigma must be positive"}
	}
	return &ALMAIndicator{base: newBase(req, period), window: newSlidingWindow(period), period: period, offset: offset, sigma: sigma}, nil
}

func (ind *ALMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.window.push(bar.Close)
	return nil
}

func (ind *ALMAIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	vals := ind.window.values()
	n := float64(ind.period)
	m := ind.offset * (n - 1)
	s := n / ind.sigma
	var weighted, weightSum float64
	for i, v := range vals {
		w := math.Exp(-((float64(i) - m) * (float64(i) - m)) / (2 * s * s))
		weighted += w * v
		weightSum += w
	}
	if weightSum == 0 {
		return nil
	}
	return weighted / weightSum
}

// VWMAIndicator is the volume-weighted moving average.
type VWMAIndicator struct {
	base
	priceVol *slidingWindow
	vol      *slidingWindow
}

func newVWMA(req Requirement) (*VWMAIndicator, error) {
	period := paramInt(req.Params, "period", 20)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &VWMAIndicator{base: newBase(req, period), priceVol: newSlidingWindow(period), vol: newSlidingWindow(period)}, nil
}

func (ind *VWMAIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.priceVol.push(bar.Close * bar.Volume)
	ind.vol.push(bar.Volume)
	return nil
}

func (ind *VWMAIndicator) Value() any {
	if !ind.vol.full() || ind.vol.sum == 0 {
		return nil
	}
	return ind.priceVol.sum / ind.vol.sum
}
