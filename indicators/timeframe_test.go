package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimeframeAliasesAndCase(t *testing.T) {
	cases := map[string]string{
		"1min":   "1m",
		"1HOUR":  "1h",
		"1day":   "1d",
		"1week":  "1w",
		"1month": "1M",
		"4H":     "4h",
		"1M":     "1M",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeTimeframe(in), "input %q", in)
	}
}

func TestSecondsForKnownAndUnknown(t *testing.T) {
	secs, ok := SecondsFor("1h")
	assert.True(t, ok)
	assert.Equal(t, int64(3600), secs)

	_, ok = SecondsFor("7m")
	assert.False(t, ok)
}

func TestResampleRatioValidAndInvalid(t *testing.T) {
	ratio, err := ResampleRatio("1m", "5m")
	assert.NoError(t, err)
	assert.Equal(t, 5, ratio)

	_, err = ResampleRatio("5m", "1m")
	assert.Error(t, err)
	var invRatio *InvalidResampleRatioError
	assert.ErrorAs(t, err, &invRatio)

	_, err = ResampleRatio("1m", "1m")
	assert.Error(t, err)

	_, err = ResampleRatio("7m", "1h")
	var invTF *InvalidTimeframeError
	assert.ErrorAs(t, err, &invTF)
}

func TestNeedsResampling(t *testing.T) {
	assert.True(t, NeedsResampling("1m", "1h"))
	assert.False(t, NeedsResampling("1h", "1h"))
	assert.False(t, NeedsResampling("1h", "1m"))
	assert.False(t, NeedsResampling("bogus", "1h"))
}
