package indicators

// OBVIndicator is On-Balance Volume: a running total of volume signed by
// the direction of the close-to-close move.
type OBVIndicator struct {
	base
	obv       float64
	prevClose float64
	havePrev  bool
}

func newOBV(req Requirement) (*OBVIndicator, error) {
	return &OBVIndicator{base: newBase(req, 1)}, nil
}

func (ind *OBVIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevClose = bar.Close
		ind.havePrev = true
		return nil
	}
	switch {
	case bar.Close > ind.prevClose:
		ind.obv += bar.Volume
	case bar.Close < ind.prevClose:
		ind.obv -= bar.Volume
	}
	ind.prevClose = bar.Close
	return nil
}

func (ind *OBVIndicator) Value() any {
	if !ind.havePrev {
		return nil
	}
	return ind.obv
}

// VWAPIndicator is the Volume-Weighted Average Price accumulated over the
// indicator's entire lifetime (no rolling reset, matching a continuous
// session view rather than a calendar-day reset).
type VWAPIndicator struct {
	base
	cumPV  float64
	cumVol float64
}

func newVWAP(req Requirement) (*VWAPIndicator, error) {
	return &VWAPIndicator{base: newBase(req, 1)}, nil
}

func (ind *VWAPIndicator) Update(bar Bar) error {
	ind.touch(bar)
	typical := (bar.High + bar.Low + bar.Close) / 3.0
	ind.cumPV += typical * bar.Volume
	ind.cumVol += bar.Volume
	return nil
}

func (ind *VWAPIndicator) Value() any {
	if ind.cumVol == 0 {
		return nil
	}
	return ind.cumPV / ind.cumVol
}

// ADLIndicator is the Accumulation/Distribution Line: a running total of
// volume scaled by the close's position within the bar's range.
type ADLIndicator struct {
	base
	adl float64
}

func newADL(req Requirement) (*ADLIndicator, error) {
	return &ADLIndicator{base: newBase(req, 1)}, nil
}

func (ind *ADLIndicator) Update(bar Bar) error {
	ind.touch(bar)
	rangeHL := bar.High - bar.Low
	if rangeHL == 0 {
		return nil
	}
	moneyFlowMultiplier := ((bar.Close - bar.Low) - (bar.High - bar.Close)) / rangeHL
	ind.adl += moneyFlowMultiplier * bar.Volume
	return nil
}

func (ind *ADLIndicator) Value() any {
	return ind.adl
}

// ChaikinIndicator is the Chaikin Oscillator: the difference between a
// fast and slow EMA of the Accumulation/Distribution Line.
type ChaikinIndicator struct {
	base
	adl        *ADLIndicator
	fast, slow *emaState
}

func newChaikin(req Requirement) (*ChaikinIndicator, error) {
	fast := paramInt(req.Params, "fast", 3)
	slow := paramInt(req.Params, "slow", 10)
	if fast <= 0 || slow <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "chaikin periods must be positive"}
	}
	adl, _ := newADL(Requirement{ID: req.ID + ".adl", Type: "adl", Timeframe: req.Timeframe})
	return &ChaikinIndicator{base: newBase(req, slow), adl: adl, fast: newEMAState(fast), slow: newEMAState(slow)}, nil
}

func (ind *ChaikinIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if err := ind.adl.Update(bar); err != nil {
		return err
	}
	adlVal := ind.adl.Value().(float64)
	ind.fast.update(adlVal)
	ind.slow.update(adlVal)
	return nil
}

func (ind *ChaikinIndicator) Value() any {
	if !ind.fast.ready() || !ind.slow.ready() {
		return nil
	}
	return ind.fast.get() - ind.slow.get()
}

// ForceIndexIndicator measures the power behind a price move: the
// close-to-close change scaled by volume, then smoothed by an EMA.
type ForceIndexIndicator struct {
	base
	ema       *emaState
	prevClose float64
	havePrev  bool
}

func newForceIndex(req Requirement) (*ForceIndexIndicator, error) {
	period := paramInt(req.Params, "period", 13)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &ForceIndexIndicator{base: newBase(req, period+1), ema: newEMAState(period)}, nil
}

func (ind *ForceIndexIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevClose = bar.Close
		ind.havePrev = true
		return nil
	}
	rawForce := (bar.Close - ind.prevClose) * bar.Volume
	ind.prevClose = bar.Close
	ind.ema.update(rawForce)
	return nil
}

func (ind *ForceIndexIndicator) Value() any {
	if !ind.ema.ready() {
		return nil
	}
	return ind.ema.get()
}

// EMVIndicator is Ease of Movement: the ratio of a bar's midpoint move to
// a volume/range "box ratio", smoothed by an SMA.
type EMVIndicator struct {
	base
	window    *slidingWindow
	prevMid   float64
	havePrev  bool
	volDivisor float64
}

func newEMV(req Requirement) (*EMVIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	volDivisor := paramFloat(req.Params, "volume_divisor", 1e8)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &EMVIndicator{base: newBase(req, period+1), window: newSlidingWindow(period), volDivisor: volDivisor}, nil
}

func (ind *EMVIndicator) Update(bar Bar) error {
	ind.touch(bar)
	mid := (bar.High + bar.Low) / 2.0
	if !ind.havePrev {
		ind.prevMid = mid
		ind.havePrev = true
		return nil
	}
	rangeHL := bar.High - bar.Low
	var boxRatio float64
	if rangeHL != 0 && bar.Volume != 0 {
		boxRatio = (bar.Volume / ind.volDivisor) / rangeHL
	}
	var emv float64
	if boxRatio != 0 {
		emv = (mid - ind.prevMid) / boxRatio
	}
	ind.prevMid = mid
	ind.window.push(emv)
	return nil
}

func (ind *EMVIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	return ind.window.mean()
}

// MassIndexIndicator sums a rolling ratio of a 9-period EMA of the
// high-low range to a 9-period EMA of that EMA, over `period` bars.
type MassIndexIndicator struct {
	base
	period   int
	emaRange *emaState
	emaEMA   *emaState
	window   *slidingWindow
}

func newMassIndex(req Requirement) (*MassIndexIndicator, error) {
	emaPeriod := paramInt(req.Params, "ema_period", 9)
	sumPeriod := paramInt(req.Params, "period", 25)
	if emaPeriod <= 0 || sumPeriod <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "mass index periods must be positive"}
	}
	return &MassIndexIndicator{
		base: newBase(req, 2*emaPeriod+sumPeriod),
		period: sumPeriod, emaRange: newEMAState(emaPeriod), emaEMA: newEMAState(emaPeriod), window: newSlidingWindow(sumPeriod),
	}, nil
}

func (ind *MassIndexIndicator) Update(bar Bar) error {
	ind.touch(bar)
	rangeHL := bar.High - bar.Low
	ind.emaRange.update(rangeHL)
	if !ind.emaRange.ready() {
		return nil
	}
	ind.emaEMA.update(ind.emaRange.get())
	if !ind.emaEMA.ready() || ind.emaEMA.get() == 0 {
		return nil
	}
	ind.window.push(ind.emaRange.get() / ind.emaEMA.get())
	return nil
}

func (ind *MassIndexIndicator) Value() any {
	if !ind.window.full() {
		return nil
	}
	var sum float64
	for _, v := range ind.window.values() {
		sum += v
	}
	return sum
}
