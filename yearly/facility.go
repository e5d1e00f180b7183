package yearly

import (
	"math"
	"sort"

	"wmrc/salesforce"
)

// FacilityDiversion is the total tonnage a facility diverted from landfills
// in one year. TonsDiverted is NaN when the facility reported nothing, so a
// true zero can't be mistaken for missing data downstream.
type FacilityDiversion struct {
	Name         string
	ID           string
	TonsDiverted float64
}

// FacilityTonsDiverted sums the nine recycled/composted/combusted fields per
// facility for one year. Rows for the same facility are summed together in
// case any duplicates survived deduplication.
func FacilityTonsDiverted(yearRecords []salesforce.Record) []FacilityDiversion {
	type key struct{ name, id string }

	totals := make(map[key]float64)
	var order []key
	for i := range yearRecords {
		record := &yearRecords[i]
		k := key{record.FacilityName, record.PublicID()}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}

		tons := totals[k]
		tons = sumSkipNaN(tons, record.TotalRecycled)
		tons = sumSkipNaN(tons, record.MaterialsRecycled)
		tons = sumSkipNaN(tons, record.SentToComposting)
		tons = sumSkipNaN(tons, record.CombinedComposting)
		tons = sumSkipNaN(tons, record.ManagedByADC)
		tons = sumSkipNaN(tons, record.CombinedCombustion)
		tons = sumSkipNaN(tons, record.MaterialsCombusted)
		tons = sumSkipNaN(tons, record.TiresRecycled)
		tons = sumSkipNaN(tons, record.TiresCombusted)
		totals[k] = tons
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].name != order[j].name {
			return order[i].name < order[j].name
		}
		return order[i].id < order[j].id
	})

	diversions := make([]FacilityDiversion, 0, len(order))
	for _, k := range order {
		tons := totals[k]
		// A zero total means the facility did not report, not that it
		// diverted nothing
		if tons == 0 {
			tons = math.NaN()
		}
		diversions = append(diversions, FacilityDiversion{Name: k.name, ID: k.id, TonsDiverted: tons})
	}
	return diversions
}

// FacilityMetric is the per-facility RCDL report row for one year.
type FacilityMetric struct {
	ID            string
	Name          string
	Recycled      float64
	Composted     float64
	Digested      float64
	Landfilled    float64
	RecyclingRate float64
}

// FacilityCombinedMetrics calculates each facility's RCDL tonnages for one
// year. The MSW modifier applies to everything except landfilled tons, whose
// source field is already MSW only.
func FacilityCombinedMetrics(yearRecords []salesforce.Record) []FacilityMetric {
	metrics := make([]FacilityMetric, 0, len(yearRecords))
	for i := range yearRecords {
		record := &yearRecords[i]
		mswModifier := record.MSWPercent / 100

		metric := FacilityMetric{
			ID:         record.FacilityID,
			Name:       record.FacilityName,
			Recycled:   mswModifier * record.TotalRecycled,
			Composted:  mswModifier * record.SentToComposting,
			Digested:   mswModifier * record.ManagedByADC,
			Landfilled: record.LandfilledTons,
		}
		diverted := metric.Recycled + metric.Composted + metric.Digested
		metric.RecyclingRate = recyclingRate(diverted, metric.Landfilled)
		metrics = append(metrics, metric)
	}
	return metrics
}
