package indicators

// Composite value records. Each family that produces more than one number
// per bar gets a named, fixed-shape record instead of an ad-hoc map; the
// snapshot builder is the only place these get flattened into map form
// (via Map()), following the named-field-struct-with-Map() convention
// used throughout this package rather than unstructured maps.

// MACDValue is the composite output of the MACD family.
type MACDValue struct {
	FastLine, SignalLine, Histogram *float64
	Diff, Dea, Macd                 *float64
	EmaFast, EmaSlow                *float64
}

// Map flattens the record for the snapshot builder.
func (v MACDValue) Map() map[string]any {
	return map[string]any{
		"fast_line":   deref(v.FastLine),
		"signal_line": deref(v.SignalLine),
		"histogram":   deref(v.Histogram),
		"diff":        deref(v.Diff),
		"dea":         deref(v.Dea),
		"macd":        deref(v.Macd),
		"ema_fast":    deref(v.EmaFast),
		"ema_slow":    deref(v.EmaSlow),
	}
}

// BollingerValue is the composite output of the Bollinger Bands family.
type BollingerValue struct {
	Upper, Middle, Lower, Bandwidth *float64
}

func (v BollingerValue) Map() map[string]any {
	return map[string]any{
		"upper":     deref(v.Upper),
		"middle":    deref(v.Middle),
		"lower":     deref(v.Lower),
		"bandwidth": deref(v.Bandwidth),
	}
}

// BandValue covers Keltner Channels and Donchian Channels, which share the
// same upper/middle/lower shape.
type BandValue struct {
	Upper, Middle, Lower *float64
}

func (v BandValue) Map() map[string]any {
	return map[string]any{
		"upper":  deref(v.Upper),
		"middle": deref(v.Middle),
		"lower":  deref(v.Lower),
	}
}

// StochValue is the composite output of the Stochastic Oscillator and
// StochRSI families.
type StochValue struct {
	K, D *float64
}

func (v StochValue) Map() map[string]any {
	return map[string]any{"k": deref(v.K), "d": deref(v.D)}
}

// ADXValue is the composite output of the ADX family.
type ADXValue struct {
	ADX, PlusDI, MinusDI *float64
}

func (v ADXValue) Map() map[string]any {
	return map[string]any{
		"adx":       deref(v.ADX),
		"plus_di":   deref(v.PlusDI),
		"minus_di":  deref(v.MinusDI),
	}
}

// AroonValue is the composite output of the Aroon family.
type AroonValue struct {
	Up, Down *float64
}

func (v AroonValue) Map() map[string]any {
	return map[string]any{"up": deref(v.Up), "down": deref(v.Down)}
}

// SupertrendValue is the composite output of the Supertrend family.
type SupertrendValue struct {
	Value *float64
	Trend *string
}

func (v SupertrendValue) Map() map[string]any {
	var trend any
	if v.Trend != nil {
		trend = *v.Trend
	}
	return map[string]any{"supertrend": deref(v.Value), "trend": trend}
}

// KSTValue is the composite output of the Know Sure Thing family.
type KSTValue struct {
	KST, Signal *float64
}

func (v KSTValue) Map() map[string]any {
	return map[string]any{"kst": deref(v.KST), "signal": deref(v.Signal)}
}

// IchimokuValue is the composite output of the Ichimoku Cloud family.
type IchimokuValue struct {
	Tenkan, Kijun, SenkouA, SenkouB, Chikou *float64
}

func (v IchimokuValue) Map() map[string]any {
	return map[string]any{
		"tenkan":   deref(v.Tenkan),
		"kijun":    deref(v.Kijun),
		"senkou_a": deref(v.SenkouA),
		"senkou_b": deref(v.SenkouB),
		"chikou":   deref(v.Chikou),
	}
}

// VTXValue is the composite output of the Vortex Indicator family.
type VTXValue struct {
	PlusVTX, MinusVTX *float64
}

func (v VTXValue) Map() map[string]any {
	return map[string]any{"plus_vtx": deref(v.PlusVTX), "minus_vtx": deref(v.MinusVTX)}
}
