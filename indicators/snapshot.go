package indicators

// Snapshot is the nested, read-only view the engine exposes to strategy
// consumers: current values grouped by indicator type and id, overall and
// per-timeframe warmup flags, and the last-closed-bar timestamps needed to
// detect staleness.
type Snapshot struct {
	ByType      map[string]map[string]any
	IsWarmedUp  bool
	BarCloseTS  int64
	HasBarClose bool
	ByTimeframe map[string]TimeframeSnapshot
}

// TimeframeSnapshot is the restriction of a Snapshot to indicators
// registered on one timeframe.
type TimeframeSnapshot struct {
	ByType      map[string]map[string]any
	IsWarmedUp  bool
	BarCloseTS  int64
	HasBarClose bool
}

// valueToMap flattens an indicator's Value() into the snapshot's output
// form: composite records go through their Map() method, scalars and nils
// pass through unchanged.
func valueToMap(v any) any {
	type mapper interface{ Map() map[string]any }
	if m, ok := v.(mapper); ok {
		return m.Map()
	}
	return v
}

// Snapshot materializes the current state of every registered indicator
// into the nested view described by the engine's output contract. It
// changes no indicator or engine state and is safe to call repeatedly; its
// only side effect is setting the warmed-up gauge when metrics are enabled.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		ByType:      make(map[string]map[string]any),
		ByTimeframe: make(map[string]TimeframeSnapshot),
	}

	tfBuckets := make(map[string]map[string]map[string]any)
	tfWarmed := make(map[string]bool)
	tfSeen := make(map[string]bool)

	allWarmed := true
	warmedCount := 0

	for _, id := range e.order {
		ind := e.indicators[id]
		req := ind.Requirement()

		byType, ok := snap.ByType[req.Type]
		if !ok {
			byType = make(map[string]any)
			snap.ByType[req.Type] = byType
		}
		byType[id] = valueToMap(ind.Value())

		tfByType, ok := tfBuckets[req.Timeframe]
		if !ok {
			tfByType = make(map[string]map[string]any)
			tfBuckets[req.Timeframe] = tfByType
		}
		tfTypeMap, ok := tfByType[req.Type]
		if !ok {
			tfTypeMap = make(map[string]any)
			tfByType[req.Type] = tfTypeMap
		}
		tfTypeMap[id] = valueToMap(ind.Value())

		if !tfSeen[req.Timeframe] {
			tfSeen[req.Timeframe] = true
			tfWarmed[req.Timeframe] = true
		}
		if ind.IsWarmedUp() {
			warmedCount++
		} else {
			allWarmed = false
			tfWarmed[req.Timeframe] = false
		}
	}
	e.metrics.setWarmedUpCount(warmedCount)

	snap.IsWarmedUp = allWarmed && len(e.order) > 0

	var maxTS int64
	hasMax := false
	for tf, ts := range e.lastBarTSByTF {
		if !hasMax || ts > maxTS {
			maxTS = ts
			hasMax = true
		}
		tfSnap := TimeframeSnapshot{
			ByType:      tfBuckets[tf],
			IsWarmedUp:  tfWarmed[tf],
			BarCloseTS:  ts,
			HasBarClose: true,
		}
		if tfSnap.ByType == nil {
			tfSnap.ByType = make(map[string]map[string]any)
		}
		snap.ByTimeframe[tf] = tfSnap
	}
	// Include timeframes that have registered indicators but haven't yet
	// seen a bar, so callers can enumerate every configured timeframe.
	for tf, byType := range tfBuckets {
		if _, exists := snap.ByTimeframe[tf]; exists {
			continue
		}
		snap.ByTimeframe[tf] = TimeframeSnapshot{
			ByType:     byType,
			IsWarmedUp: tfWarmed[tf],
		}
	}
	snap.BarCloseTS = maxTS
	snap.HasBarClose = hasMax

	return snap
}
