package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADXWarmupIsTwicePeriod(t *testing.T) {
	ind, err := newADX(Requirement{ID: "adx", Type: "adx", Params: map[string]any{"period": 14}})
	require.NoError(t, err)
	assert.Equal(t, 28, ind.WarmupPeriod())
}

func TestAroonWindowSizeMatchesDeclaredWarmup(t *testing.T) {
	ind, err := newAroon(Requirement{ID: "aroon", Type: "aroon", Params: map[string]any{"period": 5}})
	require.NoError(t, err)
	assert.Equal(t, 5, ind.WarmupPeriod())

	highs := []float64{10, 12, 9, 15, 11}
	lows := []float64{5, 6, 4, 8, 7}
	for i := range highs {
		require.NoError(t, ind.Update(Bar{TimestampMS: int64(i), High: highs[i], Low: lows[i]}))
		if i < 4 {
			assert.False(t, ind.IsWarmedUp())
		}
	}
	require.True(t, ind.IsWarmedUp())
	v := ind.Value().(AroonValue)
	require.NotNil(t, v.Up)
	require.NotNil(t, v.Down)
	// highest high (15) is at index 3 of the 5 bars, 1 bar back from the
	// latest; lowest low (4) is at index 2, 2 bars back.
	assert.InDelta(t, 100.0*float64(5-1)/5.0, *v.Up, 1e-9)
}

func TestPSARProducesValueAfterTwoBars(t *testing.T) {
	ind, err := newPSAR(Requirement{ID: "psar", Type: "psar"})
	require.NoError(t, err)
	require.NoError(t, ind.Update(Bar{High: 10, Low: 9}))
	require.NoError(t, ind.Update(Bar{High: 11, Low: 10}))
	require.NotNil(t, ind.Value())
}

func TestSupertrendReportsTrendDirection(t *testing.T) {
	ind, err := newSupertrend(Requirement{ID: "st", Type: "supertrend", Params: map[string]any{"period": 3}})
	require.NoError(t, err)
	closes := []float64{10, 11, 12, 13, 14, 15}
	for i, c := range closes {
		require.NoError(t, ind.Update(Bar{TimestampMS: int64(i), High: c + 1, Low: c - 1, Close: c}))
	}
	v := ind.Value().(SupertrendValue)
	require.NotNil(t, v.Trend)
	assert.Contains(t, []string{"up", "down"}, *v.Trend)
}

func TestKSTWarmupIsFixedConstant(t *testing.T) {
	ind, err := newKST(Requirement{ID: "kst", Type: "kst"})
	require.NoError(t, err)
	assert.Equal(t, 55, ind.WarmupPeriod())
}

func TestDPOShiftsByHalfPeriodPlusOne(t *testing.T) {
	ind, err := newDPO(Requirement{ID: "dpo", Type: "dpo", Params: map[string]any{"period": 4}})
	require.NoError(t, err)
	assert.Equal(t, 4+3, ind.WarmupPeriod()) // shift = period/2+1 = 3
	for i := 0; i < ind.WarmupPeriod(); i++ {
		require.NoError(t, ind.Update(Bar{TimestampMS: int64(i), Close: float64(i + 1)}))
	}
	assert.NotNil(t, ind.Value())
}
