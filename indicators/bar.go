package indicators

// Bar is an immutable OHLCV record for a single closed period of a given
// timeframe. Producers emit one Bar per period on close; the engine never
// reorders the stream it is handed.
type Bar struct {
	TimestampMS int64
	Open        float64
	High        float64
	Low         float64
	Close       float64
	Volume      float64
	Timeframe   string
}
