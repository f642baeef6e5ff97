package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEmptyEngineIsNotWarmedUp(t *testing.T) {
	e := NewEngine()
	snap := e.Snapshot()
	assert.False(t, snap.IsWarmedUp)
	assert.False(t, snap.HasBarClose)
	assert.Empty(t, snap.ByType)
	assert.Empty(t, snap.ByTimeframe)
}

func TestSnapshotGroupsByTypeAndTimeframe(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterRequirements(map[string]RequirementSpec{
		"sma_fast": {Type: "sma", Timeframe: "1m", Params: map[string]any{"period": 2}},
		"rsi_1m":   {Type: "rsi", Timeframe: "1m", Params: map[string]any{"period": 2}},
	}, ""))
	require.NoError(t, e.Update(bar(0, 1, 1, 1, 1, 1, "1m")))
	require.NoError(t, e.Update(bar(60_000, 2, 2, 2, 2, 1, "1m")))

	snap := e.Snapshot()
	require.Contains(t, snap.ByType, "sma")
	require.Contains(t, snap.ByType["sma"], "sma_fast")
	require.Contains(t, snap.ByType, "rsi")

	tfSnap, ok := snap.ByTimeframe["1m"]
	require.True(t, ok)
	require.Contains(t, tfSnap.ByType, "sma")
	require.Contains(t, tfSnap.ByType, "rsi")
	assert.True(t, tfSnap.HasBarClose)
	assert.Equal(t, int64(60_000), tfSnap.BarCloseTS)
}

// Invariant #6: snapshot-level warmup must agree with every constituent
// indicator's own IsWarmedUp, both overall and per timeframe.
func TestSnapshotWarmupConsistencyAcrossIndicators(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterRequirements(map[string]RequirementSpec{
		"sma2": {Type: "sma", Timeframe: "1m", Params: map[string]any{"period": 2}},
		"sma5": {Type: "sma", Timeframe: "1m", Params: map[string]any{"period": 5}},
	}, ""))

	for i := 0; i < 2; i++ {
		require.NoError(t, e.Update(bar(int64(i)*60_000, 1, 1, 1, 1, 1, "1m")))
	}
	snap := e.Snapshot()
	assert.False(t, snap.IsWarmedUp, "sma5 has not reached its warmup period yet")
	assert.False(t, snap.ByTimeframe["1m"].IsWarmedUp)

	for i := 2; i < 5; i++ {
		require.NoError(t, e.Update(bar(int64(i)*60_000, 1, 1, 1, 1, 1, "1m")))
	}
	snap = e.Snapshot()
	assert.True(t, snap.IsWarmedUp)
	assert.True(t, snap.ByTimeframe["1m"].IsWarmedUp)
}

func TestSnapshotFlattensCompositeValuesViaMap(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterRequirements(map[string]RequirementSpec{
		"macd": {Type: "macd", Timeframe: "1m", Params: map[string]any{"fast": 2, "slow": 3, "signal": 2}},
	}, ""))
	closes := []float64{10, 11, 12, 13, 14, 15, 16}
	for i, c := range closes {
		require.NoError(t, e.Update(bar(int64(i)*60_000, c, c+1, c-1, c, 1, "1m")))
	}
	snap := e.Snapshot()
	v := snap.ByType["macd"]["macd"]
	m, ok := v.(map[string]any)
	require.True(t, ok, "composite MACD value must flatten to a map, not the raw struct")
	assert.Contains(t, m, "macd")
	assert.Contains(t, m, "signal_line")
	assert.Contains(t, m, "histogram")
}

func TestSnapshotBarCloseTSIsMaxAcrossTimeframes(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterRequirements(map[string]RequirementSpec{
		"sma_1m": {Type: "sma", Timeframe: "1m", Params: map[string]any{"period": 1}},
		"sma_5m": {Type: "sma", Timeframe: "5m", Params: map[string]any{"period": 1}},
	}, "1m"))
	for i := 0; i < 5; i++ {
		require.NoError(t, e.Update(bar(int64(i)*60_000, 1, 1, 1, 1, 1, "1m")))
	}
	snap := e.Snapshot()
	require.True(t, snap.HasBarClose)
	assert.Equal(t, int64(240_000), snap.BarCloseTS, "1m's latest close postdates the 5m resampled bar's period-start timestamp")
}

func TestSnapshotIncludesTimeframesWithoutBarsYet(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.RegisterRequirements(map[string]RequirementSpec{
		"sma_5m": {Type: "sma", Timeframe: "5m", Params: map[string]any{"period": 1}},
	}, "1m"))
	// Only one 1m bar arrives, nowhere near a 5m close, so the 5m resampler
	// never emits, but the 5m timeframe must still be enumerable.
	require.NoError(t, e.Update(bar(0, 1, 1, 1, 1, 1, "1m")))
	snap := e.Snapshot()
	tfSnap, ok := snap.ByTimeframe["5m"]
	require.True(t, ok)
	assert.False(t, tfSnap.HasBarClose)
	assert.Contains(t, tfSnap.ByType, "sma")
}
