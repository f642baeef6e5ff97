package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bar(ts int64, o, h, l, c, v float64, tf string) Bar {
	return Bar{TimestampMS: ts, Open: o, High: h, Low: l, Close: c, Volume: v, Timeframe: tf}
}

// S5: five 1m bars fold into exactly one 5m bar, emitted on the fifth.
func TestResamplerEmitsOnLastBarOfPeriod(t *testing.T) {
	r, err := NewResampler("1m", "5m")
	require.NoError(t, err)
	assert.Equal(t, 5, r.Ratio())

	bars := []Bar{
		bar(0, 10, 11, 9, 10, 1, "1m"),
		bar(60_000, 10, 12, 10, 11, 1, "1m"),
		bar(120_000, 11, 13, 11, 12, 1, "1m"),
		bar(180_000, 12, 14, 12, 13, 1, "1m"),
		bar(240_000, 13, 15, 13, 14, 1, "1m"),
	}
	var emitted *Bar
	for i, b := range bars {
		out := r.Add(b)
		if i < len(bars)-1 {
			assert.Nil(t, out, "bar %d should not emit", i)
		} else {
			emitted = out
		}
	}
	require.NotNil(t, emitted)
	assert.Equal(t, int64(0), emitted.TimestampMS)
	assert.Equal(t, 10.0, emitted.Open)
	assert.Equal(t, 15.0, emitted.High)
	assert.Equal(t, 9.0, emitted.Low)
	assert.Equal(t, 14.0, emitted.Close)
	assert.Equal(t, 5.0, emitted.Volume)
	assert.Equal(t, "5m", emitted.Timeframe)
}

// S6 variant: a gap that skips the period's final-timestamp bar defers
// emission to the stale-period flush on the first bar of the next period.
func TestResamplerFlushesStalePeriodOnGap(t *testing.T) {
	r, err := NewResampler("1m", "5m")
	require.NoError(t, err)

	seq := []Bar{
		bar(0, 10, 11, 9, 10, 1, "1m"),
		bar(60_000, 10, 12, 10, 11, 1, "1m"),
		bar(180_000, 11, 13, 11, 12, 1, "1m"), // 120_000 skipped
	}
	for _, b := range seq {
		out := r.Add(b)
		assert.Nil(t, out)
	}
	assert.Equal(t, 3, r.PendingCount())

	// Next bar lands in the following period without ever satisfying the
	// boundary test within period 0, so it triggers the stale-flush path.
	out := r.Add(bar(300_000, 20, 21, 19, 20, 1, "1m"))
	require.NotNil(t, out)
	assert.Equal(t, int64(0), out.TimestampMS)
	assert.Equal(t, 13.0, out.High)
	assert.Equal(t, 9.0, out.Low)
	assert.Equal(t, 12.0, out.Close)
	assert.Equal(t, 3.0, out.Volume)

	assert.Equal(t, 1, r.PendingCount())
	start, ok := r.CurrentPeriodStart()
	require.True(t, ok)
	assert.Equal(t, int64(300_000), start)
}

func TestResamplerFlush(t *testing.T) {
	r, err := NewResampler("1m", "5m")
	require.NoError(t, err)
	assert.Nil(t, r.Flush())

	r.Add(bar(0, 1, 2, 0, 1, 1, "1m"))
	out := r.Flush()
	require.NotNil(t, out)
	assert.Equal(t, int64(0), out.TimestampMS)
	assert.Equal(t, 0, r.PendingCount())
	assert.Nil(t, r.Flush())
}

func TestNewResamplerRejectsBadRatio(t *testing.T) {
	_, err := NewResampler("1h", "1m")
	assert.Error(t, err)
}
