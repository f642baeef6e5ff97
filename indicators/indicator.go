package indicators

// Indicator is the capability set every indicator family implements,
// regardless of whether its Value() is a scalar or a composite record.
// Update does work bounded by the indicator's window sizes, independent of
// the total bar count. It is not allocation-free: the EMA and Wilder
// primitives, among others, allocate on each update.
type Indicator interface {
	Requirement() Requirement
	WarmupPeriod() int
	BarCount() int
	LastBarTS() (int64, bool)
	IsWarmedUp() bool
	Update(bar Bar) error
	Value() any
}

// base provides the bookkeeping every indicator shares: bar count, last
// seen timestamp, and the generic warmup check. Concrete indicators embed
// it and implement their own Update/Value.
type base struct {
	req    Requirement
	warmup int

	barCount     int
	lastBarTS    int64
	hasLastBarTS bool
}

func newBase(req Requirement, warmup int) base {
	return base{req: req, warmup: warmup}
}

func (b *base) Requirement() Requirement { return b.req }
func (b *base) WarmupPeriod() int        { return b.warmup }
func (b *base) BarCount() int            { return b.barCount }

func (b *base) LastBarTS() (int64, bool) {
	return b.lastBarTS, b.hasLastBarTS
}

// IsWarmedUp follows the generic rule: true once bar_count >=
// warmup_period. Individual families are built so their internal state is
// never defined later than this bar count — it may become defined earlier
// (e.g. MACD's signal line technically seeds one bar before slow+signal),
// which the rule tolerates since it never claims warmth before data exists.
func (b *base) IsWarmedUp() bool {
	return b.barCount >= b.warmup
}

func (b *base) touch(bar Bar) {
	b.barCount++
	b.lastBarTS = bar.TimestampMS
	b.hasLastBarTS = true
}

// deref converts a possibly-nil *float64 into the snapshot's null
// representation (a plain nil interface value).
func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func f64(v float64) *float64 { return &v }
