package indicators

import (
	"strings"
)

// timeframeSeconds is the canonical timeframe-to-seconds table.
// 1M is a nominal 30-day month; real calendar months are not supported.
var timeframeSeconds = map[string]int64{
	"1m": 60, "3m": 180, "5m": 300, "15m": 900, "30m": 1800,
	"1h": 3600, "2h": 7200, "4h": 14400, "6h": 21600, "8h": 28800, "12h": 43200,
	"1d": 86400, "3d": 259200,
	"1w": 604800,
	"1M": 2592000,
}

// timeframeAliases maps common alias spellings to their canonical form.
var timeframeAliases = map[string]string{
	"1min":   "1m",
	"1hour":  "1h",
	"1day":   "1d",
	"1week":  "1w",
	"1month": "1M",
}

// NormalizeTimeframe lowercases and resolves aliases for a timeframe
// string, leaving the canonical "1M" (month) case intact. It does not
// validate membership in the canonical table; use SecondsFor for that.
func NormalizeTimeframe(tf string) string {
	trimmed := strings.TrimSpace(tf)
	if trimmed == "1M" {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if canonical, ok := timeframeAliases[lower]; ok {
		return canonical
	}
	return lower
}

// SecondsFor returns the number of seconds in one period of the given
// canonical timeframe, or ok=false if tf is not in the canonical table.
func SecondsFor(tf string) (seconds int64, ok bool) {
	normalized := NormalizeTimeframe(tf)
	seconds, ok = timeframeSeconds[normalized]
	return seconds, ok
}

// ResampleRatio returns target_seconds / source_seconds when target is a
// strictly-larger integer multiple of source, and an
// InvalidResampleRatioError otherwise.
func ResampleRatio(sourceTF, targetTF string) (int, error) {
	sourceSeconds, sourceOK := SecondsFor(sourceTF)
	targetSeconds, targetOK := SecondsFor(targetTF)
	if !sourceOK {
		return 0, &InvalidTimeframeError{Timeframe: sourceTF}
	}
	if !targetOK {
		return 0, &InvalidTimeframeError{Timeframe: targetTF}
	}
	if targetSeconds <= sourceSeconds || targetSeconds%sourceSeconds != 0 {
		return 0, &InvalidResampleRatioError{Source: sourceTF, Target: targetTF}
	}
	return int(targetSeconds / sourceSeconds), nil
}

// NeedsResampling reports whether targetTF is strictly larger than
// sourceTF. Unknown timeframes are treated as not needing resampling.
func NeedsResampling(sourceTF, targetTF string) bool {
	sourceSeconds, sourceOK := SecondsFor(sourceTF)
	targetSeconds, targetOK := SecondsFor(targetTF)
	if !sourceOK || !targetOK {
		return false
	}
	return targetSeconds > sourceSeconds
}
