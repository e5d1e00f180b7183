package yearly

import (
	"math"
	"testing"

	"wmrc/salesforce"
)

// nanRecord returns a record with every numeric field missing, the way an
// empty report row parses.
func nanRecord() salesforce.Record {
	nan := math.NaN()
	return salesforce.Record{
		MSWPercent:        nan,
		OutOfStatePercent: nan,
		ContaminationRate: nan,

		TotalRecycled:      nan,
		MaterialsRecycled:  nan,
		SentToComposting:   nan,
		CombinedComposting: nan,
		ManagedByADC:       nan,
		CombinedCombustion: nan,
		MaterialsCombusted: nan,
		TiresRecycled:      nan,
		TiresCombusted:     nan,
		LandfilledTons:     nan,

		CountyShares: map[string]float64{},
		Materials:    map[string]float64{},
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCountySummaries(t *testing.T) {
	boxElder := "Box_Elder_County__c"
	countyFields := []string{boxElder, salesforce.ColOutOfState}

	reporting := nanRecord()
	reporting.MSWPercent = 50
	reporting.TotalRecycled = 10
	reporting.SentToComposting = 20
	reporting.LandfilledTons = 4
	reporting.CountyShares[boxElder] = 100

	// Does not attribute anything to Box Elder, so its products are NaN and
	// must not disturb the county sums
	silent := nanRecord()
	silent.MSWPercent = 100
	silent.TotalRecycled = 500

	summaries := CountySummaries([]salesforce.Record{reporting, silent}, countyFields)
	if len(summaries) != 3 {
		t.Fatalf("Got %d rows, wanted 2 counties plus the statewide row", len(summaries))
	}

	row := summaries[0]
	if row.County != boxElder {
		t.Errorf("Got county %q, wanted %q", row.County, boxElder)
	}
	if !almostEqual(row.Recycled, 5) {
		t.Errorf("Got recycled %v, wanted 5", row.Recycled)
	}
	if !almostEqual(row.Composted, 10) {
		t.Errorf("Got composted %v, wanted 10", row.Composted)
	}
	if row.Digested != 0 {
		t.Errorf("Got digested %v, wanted 0", row.Digested)
	}
	if !almostEqual(row.Landfilled, 4) {
		t.Errorf("Got landfilled %v, wanted 4", row.Landfilled)
	}
	if !almostEqual(row.DivertedTotal, 15) {
		t.Errorf("Got diverted total %v, wanted 15", row.DivertedTotal)
	}
	if !almostEqual(row.RecyclingRate, 15.0/19.0*100) {
		t.Errorf("Got recycling rate %v, wanted %v", row.RecyclingRate, 15.0/19.0*100)
	}

	outOfState := summaries[1]
	if outOfState.County != salesforce.ColOutOfState {
		t.Errorf("Got county %q, wanted %q", outOfState.County, salesforce.ColOutOfState)
	}
	if outOfState.Recycled != 0 || outOfState.Landfilled != 0 {
		t.Errorf("Got %v recycled and %v landfilled for out of state, wanted zeros",
			outOfState.Recycled, outOfState.Landfilled)
	}
	if !math.IsNaN(outOfState.RecyclingRate) {
		t.Errorf("Got recycling rate %v for a county with no tonnage, wanted NaN", outOfState.RecyclingRate)
	}

	statewide := summaries[2]
	if statewide.County != StatewideName {
		t.Errorf("Got county %q, wanted %q", statewide.County, StatewideName)
	}
	if !almostEqual(statewide.Recycled, 5) || !almostEqual(statewide.Landfilled, 4) {
		t.Errorf("Got statewide recycled %v and landfilled %v, wanted 5 and 4",
			statewide.Recycled, statewide.Landfilled)
	}
}

func TestStatewideMetricsSkipsSyntheticRows(t *testing.T) {
	counties := []CountySummary{
		{County: "Box Elder County", Recycled: 10, Composted: 5, Digested: 5, Landfilled: 30},
		{County: "Cache County", Recycled: 20, Composted: 0, Digested: 0, Landfilled: 10},
		{County: OutOfStateName, Recycled: 1000, Landfilled: 1000},
		{County: StatewideName, Recycled: 1030, Landfilled: 1040},
	}

	state := StatewideMetrics(counties)
	if state.Recycled != 30 {
		t.Errorf("Got recycled %v, wanted 30", state.Recycled)
	}
	if state.Landfilled != 40 {
		t.Errorf("Got landfilled %v, wanted 40", state.Landfilled)
	}
	if state.DivertedTotal != 40 {
		t.Errorf("Got diverted total %v, wanted 40", state.DivertedTotal)
	}
	if !almostEqual(state.RecyclingRate, 50) {
		t.Errorf("Got recycling rate %v, wanted 50", state.RecyclingRate)
	}
}
