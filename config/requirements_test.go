package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequirementsYAMLHappyPath(t *testing.T) {
	doc := `
rsi_14_1h:
  type: rsi
  timeframe: 1h
  params:
    period: 14
macd_1m:
  type: macd
  timeframe: 1m
  params:
    fast: 12
    slow: 26
    signal: 9
`
	docs, err := LoadRequirementsYAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, docs, 2)

	rsi := docs["rsi_14_1h"]
	assert.Equal(t, "rsi", rsi.Type)
	assert.Equal(t, "1h", rsi.Timeframe)
	assert.EqualValues(t, 14, rsi.Params["period"])

	macd := docs["macd_1m"]
	assert.Equal(t, "macd", macd.Type)
	assert.EqualValues(t, 26, macd.Params["slow"])
}

func TestLoadRequirementsYAMLRejectsMissingType(t *testing.T) {
	doc := "bad:\n  timeframe: 1m\n"
	_, err := LoadRequirementsYAML(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadRequirementsYAMLRejectsMissingTimeframe(t *testing.T) {
	doc := "bad:\n  type: sma\n"
	_, err := LoadRequirementsYAML(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestLoadRequirementsYAMLRejectsMalformedDocument(t *testing.T) {
	_, err := LoadRequirementsYAML(strings.NewReader("not: [valid"))
	assert.Error(t, err)
}
