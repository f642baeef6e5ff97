package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedTypesIsSortedAndCoversCanonicalFamilies(t *testing.T) {
	types := SupportedTypes()
	require.True(t, len(types) > 40)
	for i := 1; i < len(types); i++ {
		assert.LessOrEqual(t, types[i-1], types[i])
	}
	for _, want := range []string{"sma", "ema", "rsi", "macd", "boll", "atr", "adx", "ichimoku", "vtx"} {
		assert.Contains(t, types, want)
	}
}

func TestNewIndicatorUnknownType(t *testing.T) {
	_, err := newIndicator(Requirement{ID: "x", Type: "not-a-real-type", Timeframe: "1h"})
	require.Error(t, err)
	var unsupported *UnsupportedIndicatorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "not-a-real-type", unsupported.Type)
}

func TestRegistryAliasesResolveToSameFamily(t *testing.T) {
	for _, alias := range []string{"boll", "bb", "bollinger"} {
		ind, err := newIndicator(Requirement{ID: "x", Type: alias, Timeframe: "1h"})
		require.NoError(t, err)
		_, ok := ind.(*BollingerIndicator)
		assert.True(t, ok, "alias %q should build a BollingerIndicator", alias)
	}
	for _, alias := range []string{"willr", "williams"} {
		ind, err := newIndicator(Requirement{ID: "x", Type: alias, Timeframe: "1h"})
		require.NoError(t, err)
		_, ok := ind.(*WillRIndicator)
		assert.True(t, ok, "alias %q should build a WillRIndicator", alias)
	}
}

func TestEveryRegisteredFactoryConstructsWithDefaults(t *testing.T) {
	for _, typ := range SupportedTypes() {
		ind, err := newIndicator(Requirement{ID: "x_" + typ, Type: typ, Timeframe: "1h"})
		require.NoError(t, err, "type %q should construct with default params", typ)
		require.NotNil(t, ind)
		assert.Equal(t, typ, ind.Requirement().Type)
		assert.GreaterOrEqual(t, ind.WarmupPeriod(), 1, "type %q", typ)
	}
}
