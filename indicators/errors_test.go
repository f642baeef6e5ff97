package indicators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidConfigErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := &InvalidConfigError{ID: "x", Type: "rsi", Message: "bad", Cause: cause}
	assert.Contains(t, err.Error(), "x")
	assert.Contains(t, err.Error(), "bad")
	assert.ErrorIs(t, err, cause)
}

func TestUnsupportedIndicatorErrorListsSupported(t *testing.T) {
	err := &UnsupportedIndicatorError{Type: "frobnicate", Supported: []string{"rsi", "sma"}}
	assert.Contains(t, err.Error(), "frobnicate")
	assert.Contains(t, err.Error(), "rsi")
}

func TestIndicatorUpdateErrorWrapsCause(t *testing.T) {
	cause := errors.New("nan")
	err := &IndicatorUpdateError{ID: "rsi_14_1h", TimestampMS: 1000, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "rsi_14_1h")
}
