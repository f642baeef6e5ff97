package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOBVAccumulatesSignedVolume(t *testing.T) {
	ind, err := newOBV(Requirement{ID: "obv", Type: "obv"})
	require.NoError(t, err)
	require.NoError(t, ind.Update(Bar{Close: 10, Volume: 5}))
	assert.Equal(t, 0.0, ind.Value().(float64))
	require.NoError(t, ind.Update(Bar{Close: 12, Volume: 3}))
	assert.Equal(t, 3.0, ind.Value().(float64))
	require.NoError(t, ind.Update(Bar{Close: 9, Volume: 4}))
	assert.Equal(t, -1.0, ind.Value().(float64))
}

func TestVWAPIsLifetimeCumulativeNoSessionReset(t *testing.T) {
	ind, err := newVWAP(Requirement{ID: "vwap", Type: "vwap"})
	require.NoError(t, err)
	require.NoError(t, ind.Update(Bar{High: 11, Low: 9, Close: 10, Volume: 2}))
	require.NoError(t, ind.Update(Bar{High: 21, Low: 19, Close: 20, Volume: 2}))
	first := ind.Value().(float64)
	require.NoError(t, ind.Update(Bar{High: 1, Low: 1, Close: 1, Volume: 1}))
	second := ind.Value().(float64)
	assert.NotEqual(t, first, second)
	assert.InDelta(t, (10.0*2+20.0*2+1.0*1)/5.0, second, 1e-9)
}

func TestADLScaledByClosePositionInRange(t *testing.T) {
	ind, err := newADL(Requirement{ID: "adl", Type: "adl"})
	require.NoError(t, err)
	require.NoError(t, ind.Update(Bar{High: 10, Low: 0, Close: 10, Volume: 100}))
	assert.Equal(t, 100.0, ind.Value().(float64))
	require.NoError(t, ind.Update(Bar{High: 10, Low: 0, Close: 0, Volume: 100}))
	assert.Equal(t, 0.0, ind.Value().(float64))
}

func TestChaikinIsDifferenceOfTwoADLEMAs(t *testing.T) {
	ind, err := newChaikin(Requirement{ID: "chaikin", Type: "chaikin", Params: map[string]any{"fast": 2, "slow": 3}})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, ind.Update(Bar{TimestampMS: int64(i), High: 10, Low: 5, Close: 7 + float64(i)}))
	}
	assert.NotNil(t, ind.Value())
}

func TestMassIndexWarmup(t *testing.T) {
	ind, err := newMassIndex(Requirement{ID: "mass", Type: "mass", Params: map[string]any{"ema_period": 9, "period": 25}})
	require.NoError(t, err)
	assert.Equal(t, 2*9+25, ind.WarmupPeriod())
}
