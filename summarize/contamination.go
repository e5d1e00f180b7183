package summarize

import (
	"math"

	"wmrc/salesforce"
)

// UncontaminationRate is the share of a year's recycling-stream tonnage that
// was not contamination, from facilities that reported a contamination rate.
type UncontaminationRate struct {
	DataYear int
	Rate     float64
}

// UncontaminationRates inverts the reported contamination rates into a yearly
// recovery rate by tonnage: contaminated tons are compared against the total
// tonnage of the facilities that reported a rate, both scaled by each
// record's in-state share.
func UncontaminationRates(records *salesforce.Records) []UncontaminationRate {
	type sums struct{ contaminated, reported float64 }

	totals := make(map[int]*sums)
	for i := range records.Rows {
		record := &records.Rows[i]
		if record.CalendarYear == nil {
			continue
		}

		inState := (100 - record.OutOfStatePercent) / 100
		contaminated := record.ContaminationRate / 100 * record.TotalRecycled * inState
		if math.IsNaN(contaminated) {
			continue
		}

		total, ok := totals[*record.CalendarYear]
		if !ok {
			total = &sums{}
			totals[*record.CalendarYear] = total
		}
		total.contaminated += contaminated
		total.reported += record.TotalRecycled * inState
	}

	var rates []UncontaminationRate
	for _, year := range records.Years() {
		total, ok := totals[year]
		if !ok {
			continue
		}
		rates = append(rates, UncontaminationRate{
			DataYear: year,
			Rate:     (1 - total.contaminated/total.reported) * 100,
		})
	}
	return rates
}
