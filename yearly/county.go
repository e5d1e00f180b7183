package yearly

import (
	"wmrc/salesforce"
)

// The synthetic rows mixed in with the real county names
const (
	StatewideName  = "Statewide"
	OutOfStateName = "Out of State"
)

// CountySummary is the county-wide Municipal Solid Waste (MSW) report row for
// one year. County holds the raw county column name until the summarize layer
// swaps in the display name.
type CountySummary struct {
	County        string
	Recycled      float64
	Composted     float64
	Digested      float64
	Landfilled    float64
	DivertedTotal float64
	RecyclingRate float64
}

// CountySummaries calculates the county-wide MSW totals for a single year of
// records:
//   - recycled tons:   county % * MSW/100 * combined total of material recycled
//   - composted tons:  county % * MSW/100 * total materials sent to composting
//   - digested tons:   county % * MSW/100 * total material managed by AD/C
//   - landfilled tons: county % * municipal waste in-state (already MSW only)
//   - recycling rate:  diverted / (diverted + landfilled) * 100
//
// County % is the share of a record's totals that applies to the county, and
// the MSW modifier isolates materials that are MSW instead of construction
// debris, etc. A synthetic "Statewide" row sums all the county rows, out of
// state included.
func CountySummaries(yearRecords []salesforce.Record, countyFields []string) []CountySummary {
	summaries := make([]CountySummary, 0, len(countyFields)+1)
	var statewide CountySummary

	for _, county := range countyFields {
		row := CountySummary{County: county}
		for i := range yearRecords {
			record := &yearRecords[i]
			countyShare := record.CountyShare(county) / 100
			mswModifier := record.MSWPercent / 100

			row.Recycled = sumSkipNaN(row.Recycled, countyShare*mswModifier*record.TotalRecycled)
			row.Composted = sumSkipNaN(row.Composted, countyShare*mswModifier*record.SentToComposting)
			row.Digested = sumSkipNaN(row.Digested, countyShare*mswModifier*record.ManagedByADC)
			row.Landfilled = sumSkipNaN(row.Landfilled, countyShare*record.LandfilledTons)
		}
		row.DivertedTotal = row.Recycled + row.Composted + row.Digested
		row.RecyclingRate = recyclingRate(row.DivertedTotal, row.Landfilled)
		summaries = append(summaries, row)

		statewide.Recycled += row.Recycled
		statewide.Composted += row.Composted
		statewide.Digested += row.Digested
		statewide.Landfilled += row.Landfilled
	}

	statewide.County = StatewideName
	statewide.DivertedTotal = statewide.Recycled + statewide.Composted + statewide.Digested
	statewide.RecyclingRate = recyclingRate(statewide.DivertedTotal, statewide.Landfilled)

	return append(summaries, statewide)
}
