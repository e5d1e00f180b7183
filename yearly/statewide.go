package yearly

// StatewideSummary is the single statewide RCDL (recycled, composted,
// digested, landfilled) row for one year.
type StatewideSummary struct {
	Recycled      float64
	Composted     float64
	Digested      float64
	Landfilled    float64
	DivertedTotal float64
	RecyclingRate float64
}

// StatewideMetrics sums a year's county summaries into statewide totals,
// skipping the "Out of State" row and the synthetic "Statewide" row so
// nothing is double-counted, then recomputes the recycling rate from the
// in-state sums.
func StatewideMetrics(counties []CountySummary) StatewideSummary {
	var state StatewideSummary
	for _, county := range counties {
		if county.County == OutOfStateName || county.County == StatewideName {
			continue
		}
		state.Recycled += county.Recycled
		state.Composted += county.Composted
		state.Digested += county.Digested
		state.Landfilled += county.Landfilled
	}
	state.DivertedTotal = state.Recycled + state.Composted + state.Digested
	state.RecyclingRate = recyclingRate(state.DivertedTotal, state.Landfilled)
	return state
}
