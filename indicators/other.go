package indicators

import "math"

// IchimokuIndicator is the Ichimoku Cloud: a set of midpoint lines over
// staggered lookback windows, with the lagging span offset behind price.
type IchimokuIndicator struct {
	base
	tenkanP, kijunP, senkouBP, chikouLag int
	highTenkan, lowTenkan                *slidingWindow
	highKijun, lowKijun                  *slidingWindow
	highSenkouB, lowSenkouB              *slidingWindow
	closes                               []float64
}

func newIchimoku(req Requirement) (*IchimokuIndicator, error) {
	tenkanP := paramInt(req.Params, "tenkan_period", 9)
	kijunP := paramInt(req.Params, "kijun_period", 26)
	senkouBP := paramInt(req.Params, "senkou_b_period", 52)
	chikouLag := paramInt(req.Params, "chikou_lag", 26)
	if tenkanP <= 0 || kijunP <= 0 || senkouBP <= 0 || chikouLag <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "ichimoku periods must be positive"}
	}
	warmup := senkouBP
	for _, p := range []int{tenkanP, kijunP, chikouLag + 1} {
		if p > warmup {
			warmup = p
		}
	}
	return &IchimokuIndicator{
		base: newBase(req, warmup),
		tenkanP: tenkanP, kijunP: kijunP, senkouBP: senkouBP, chikouLag: chikouLag,
		highTenkan: newSlidingWindow(tenkanP), lowTenkan: newSlidingWindow(tenkanP),
		highKijun: newSlidingWindow(kijunP), lowKijun: newSlidingWindow(kijunP),
		highSenkouB: newSlidingWindow(senkouBP), lowSenkouB: newSlidingWindow(senkouBP),
	}, nil
}

func (ind *IchimokuIndicator) Update(bar Bar) error {
	ind.touch(bar)
	ind.highTenkan.push(bar.High)
	ind.lowTenkan.push(bar.Low)
	ind.highKijun.push(bar.High)
	ind.lowKijun.push(bar.Low)
	ind.highSenkouB.push(bar.High)
	ind.lowSenkouB.push(bar.Low)
	ind.closes = append(ind.closes, bar.Close)
	maxKeep := ind.chikouLag + 1
	if len(ind.closes) > maxKeep {
		ind.closes = ind.closes[len(ind.closes)-maxKeep:]
	}
	return nil
}

func midpoint(highs, lows *slidingWindow) (float64, bool) {
	if !highs.full() {
		return 0, false
	}
	_, hi := highs.minMax()
	lo, _ := lows.minMax()
	return (lo + hi) / 2.0, true
}

func (ind *IchimokuIndicator) Value() any {
	tenkan, tenkanOK := midpoint(ind.highTenkan, ind.lowTenkan)
	kijun, kijunOK := midpoint(ind.highKijun, ind.lowKijun)
	senkouB, senkouBOK := midpoint(ind.highSenkouB, ind.lowSenkouB)

	v := IchimokuValue{}
	if tenkanOK {
		v.Tenkan = f64(tenkan)
	}
	if kijunOK {
		v.Kijun = f64(kijun)
	}
	if tenkanOK && kijunOK {
		v.SenkouA = f64((tenkan + kijun) / 2.0)
	}
	if senkouBOK {
		v.SenkouB = f64(senkouB)
	}
	if len(ind.closes) > ind.chikouLag {
		v.Chikou = f64(ind.closes[len(ind.closes)-1-ind.chikouLag])
	}
	return v
}

// BOPIndicator is the Balance of Power: (close-open)/(high-low), a raw
// per-bar ratio with no lookback.
type BOPIndicator struct {
	base
	value float64
}

func newBOP(req Requirement) (*BOPIndicator, error) {
	return &BOPIndicator{base: newBase(req, 1)}, nil
}

func (ind *BOPIndicator) Update(bar Bar) error {
	ind.touch(bar)
	rangeHL := bar.High - bar.Low
	if rangeHL != 0 {
		ind.value = (bar.Close - bar.Open) / rangeHL
	} else {
		ind.value = 0
	}
	return nil
}

func (ind *BOPIndicator) Value() any {
	if ind.BarCount() == 0 {
		return nil
	}
	return ind.value
}

// ChopIndicator is the Choppiness Index: how much of a rolling ATR sum is
// "used up" by the period's high-low range, logarithmically scaled.
type ChopIndicator struct {
	base
	period    int
	trWindow  *slidingWindow
	highWin   *slidingWindow
	lowWin    *slidingWindow
	prevClose float64
	havePrev  bool
}

func newChop(req Requirement) (*ChopIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &ChopIndicator{
		base: newBase(req, period+1), period: period,
		trWindow: newSlidingWindow(period), highWin: newSlidingWindow(period), lowWin: newSlidingWindow(period),
	}, nil
}

func (ind *ChopIndicator) Update(bar Bar) error {
	ind.touch(bar)
	tr := trueRange(bar, ind.prevClose, ind.havePrev)
	ind.prevClose = bar.Close
	ind.havePrev = true
	ind.trWindow.push(tr)
	ind.highWin.push(bar.High)
	ind.lowWin.push(bar.Low)
	return nil
}

func (ind *ChopIndicator) Value() any {
	if !ind.trWindow.full() {
		return nil
	}
	sumTR := ind.trWindow.sum
	_, hi := ind.highWin.minMax()
	lo, _ := ind.lowWin.minMax()
	rangeHL := hi - lo
	if rangeHL == 0 || sumTR == 0 {
		return nil
	}
	return 100.0 * math.Log10(sumTR/rangeHL) / math.Log10(float64(ind.period))
}

// VTXIndicator is the Vortex Indicator: +VM/-VM movement normalized by
// summed true range over a rolling window.
type VTXIndicator struct {
	base
	period            int
	plusVM, minusVM   *slidingWindow
	trWindow          *slidingWindow
	prevHigh, prevLow float64
	prevClose         float64
	havePrev          bool
}

func newVTX(req Requirement) (*VTXIndicator, error) {
	period := paramInt(req.Params, "period", 14)
	if period <= 0 {
		return nil, &InvalidConfigError{ID: req.ID, Type: req.Type, Message: "period must be positive"}
	}
	return &VTXIndicator{
		base: newBase(req, period+1), period: period,
		plusVM: newSlidingWindow(period), minusVM: newSlidingWindow(period), trWindow: newSlidingWindow(period),
	}, nil
}

func (ind *VTXIndicator) Update(bar Bar) error {
	ind.touch(bar)
	if !ind.havePrev {
		ind.prevHigh, ind.prevLow, ind.prevClose = bar.High, bar.Low, bar.Close
		ind.havePrev = true
		return nil
	}
	plusVM := math.Abs(bar.High - ind.prevLow)
	minusVM := math.Abs(bar.Low - ind.prevHigh)
	tr := trueRange(bar, ind.prevClose, true)
	ind.prevHigh, ind.prevLow, ind.prevClose = bar.High, bar.Low, bar.Close

	ind.plusVM.push(plusVM)
	ind.minusVM.push(minusVM)
	ind.trWindow.push(tr)
	return nil
}

func (ind *VTXIndicator) Value() any {
	if !ind.trWindow.full() || ind.trWindow.sum == 0 {
		return VTXValue{}
	}
	return VTXValue{
		PlusVTX:  f64(ind.plusVM.sum / ind.trWindow.sum),
		MinusVTX: f64(ind.minusVM.sum / ind.trWindow.sum),
	}
}
