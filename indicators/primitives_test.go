package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMAStateSeedsWithArithmeticMean(t *testing.T) {
	e := newEMAState(3)
	assert.False(t, e.ready())
	e.update(10)
	e.update(20)
	assert.False(t, e.ready())
	e.update(30)
	require.True(t, e.ready())
	assert.InDelta(t, 20.0, e.get(), 1e-9)

	e.update(40)
	assert.InDelta(t, 30.0, e.get(), 1e-9)
}

func TestWilderStateSmoothing(t *testing.T) {
	w := newWilderState(3)
	w.update(1)
	w.update(2)
	w.update(3)
	require.True(t, w.ready())
	assert.InDelta(t, 2.0, w.get(), 1e-9)
	w.update(6)
	assert.InDelta(t, (2.0*2+6)/3.0, w.get(), 1e-9)
}

func TestSlidingWindowRollsAndTracksMoments(t *testing.T) {
	s := newSlidingWindow(3)
	assert.False(t, s.full())
	s.push(1)
	s.push(2)
	s.push(3)
	require.True(t, s.full())
	assert.InDelta(t, 2.0, s.mean(), 1e-9)
	lo, hi := s.minMax()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)

	s.push(10)
	assert.InDelta(t, 5.0, s.mean(), 1e-9)
	lo, hi = s.minMax()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 10.0, hi)
	assert.Equal(t, 10.0, s.last())
	assert.Equal(t, 2.0, s.first())
}

func TestSlidingWindowVarianceNeverNegative(t *testing.T) {
	s := newSlidingWindow(2)
	s.push(5)
	s.push(5)
	assert.GreaterOrEqual(t, s.variance(), 0.0)
}

func TestWMASeriesWeightsMostRecentHeaviest(t *testing.T) {
	w := newWMASeries(3)
	w.update(1)
	w.update(2)
	assert.False(t, w.ready())
	w.update(3)
	require.True(t, w.ready())
	// weights 1,2,3 over values 1,2,3: (1*1+2*2+3*3)/6
	assert.InDelta(t, 14.0/6.0, w.value(), 1e-9)
}

func TestLagBufferReturnsValueFromLagBarsAgo(t *testing.T) {
	l := newLagBuffer(2)
	_, ok := l.push(1)
	assert.False(t, ok)
	_, ok = l.push(2)
	assert.False(t, ok)
	lagged, ok := l.push(3)
	require.True(t, ok)
	assert.Equal(t, 1.0, lagged)

	lagged, ok = l.push(4)
	require.True(t, ok)
	assert.Equal(t, 2.0, lagged)
}
