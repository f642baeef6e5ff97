package indicators

import (
	"sort"
	"strings"
)

// factory builds one Indicator instance from a validated Requirement.
type factory func(Requirement) (Indicator, error)

// registry maps every canonical and alias type tag to its factory. Built
// once at package init; read-only thereafter.
var registry = map[string]factory{
	"sma":   wrap(newSMA),
	"ema":   wrap(newEMA),
	"dema":  wrap(newDEMA),
	"tema":  wrap(newTEMA),
	"wma":   wrap(newWMA),
	"smma":  wrap(newSMMA),
	"hma":   wrap(newHMA),
	"kama":  wrap(newKAMA),
	"zlema": wrap(newZLEMA),
	"t3":    wrap(newT3),
	"alma":  wrap(newALMA),
	"vwma":  wrap(newVWMA),

	"rsi":      wrap(newRSI),
	"macd":     wrap(newMACD),
	"stoch":    wrap(newStoch),
	"stochrsi": wrap(newStochRSI),
	"cci":      wrap(newCCI),
	"roc":      wrap(newROC),
	"willr":    wrap(newWillR),
	"williams": wrap(newWillR),
	"tsi":      wrap(newTSI),
	"ao":       wrap(newAwesomeOscillator),
	"uo":       wrap(newUltimateOscillator),

	"boll":      wrap(newBollinger),
	"bb":        wrap(newBollinger),
	"bollinger": wrap(newBollinger),
	"atr":       wrap(newATR),
	"natr":      wrap(newNATR),
	"kc":        wrap(newKeltner),
	"dc":        wrap(newDonchian),
	"stddev":    wrap(newStdDev),

	"adx":         wrap(newADX),
	"aroon":       wrap(newAroon),
	"psar":        wrap(newPSAR),
	"supertrend":  wrap(newSupertrend),
	"trix":        wrap(newTRIX),
	"dpo":         wrap(newDPO),
	"kst":         wrap(newKST),

	"obv":      wrap(newOBV),
	"vwap":     wrap(newVWAP),
	"adl":      wrap(newADL),
	"accudist": wrap(newADL),
	"chaikin":  wrap(newChaikin),
	"force":    wrap(newForceIndex),
	"emv":      wrap(newEMV),
	"mass":     wrap(newMassIndex),

	"ichimoku": wrap(newIchimoku),
	"bop":      wrap(newBOP),
	"chop":     wrap(newChop),
	"vtx":      wrap(newVTX),
}

// wrap adapts a concretely-typed constructor (returning *XIndicator) into
// the registry's factory signature, which returns the Indicator interface.
func wrap[T Indicator](ctor func(Requirement) (T, error)) factory {
	return func(req Requirement) (Indicator, error) {
		return ctor(req)
	}
}

// SupportedTypes lists every canonical and alias type tag the registry
// recognizes, sorted for stable error messages and documentation.
func SupportedTypes() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// newIndicator constructs the concrete Indicator for req.Type, normalizing
// the tag to lowercase first. Returns UnsupportedIndicatorError for unknown
// tags and whatever InvalidConfigError the concrete constructor raises.
func newIndicator(req Requirement) (Indicator, error) {
	req.Type = strings.ToLower(req.Type)
	build, ok := registry[req.Type]
	if !ok {
		return nil, &UnsupportedIndicatorError{Type: req.Type, Supported: SupportedTypes()}
	}
	return build(req)
}
