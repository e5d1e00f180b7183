package validate

import (
	"wmrc/summarize"
	"wmrc/yearly"
)

// FacilityYearOverYear compares each facility's RCDL metrics between
// currentYear and the year before.
func FacilityYearOverYear(facilities []summarize.FacilityMetricRow, currentYear int) (*Comparison, error) {
	table := &Table{
		KeyLevels: []string{"id", "name"},
		Metrics: []string{
			"msw_recycled", "msw_composted", "msw_digested", "msw_landfilled", "msw_recycling_rate",
		},
	}
	for _, row := range facilities {
		table.Rows = append(table.Rows, TableRow{
			Year: row.DataYear,
			Key:  []string{row.ID, row.Name},
			Values: []float64{
				row.Recycled, row.Composted, row.Digested, row.Landfilled, row.RecyclingRate,
			},
		})
	}
	return YearOverYear(table, currentYear)
}

// CountyYearOverYear compares each county's RCDL totals between currentYear
// and the year before. The recycling rate is left out; a rate of rates is not
// meaningful to diff.
func CountyYearOverYear(counties []summarize.CountyRow, currentYear int) (*Comparison, error) {
	table := &Table{
		KeyLevels: []string{"name"},
		Metrics: []string{
			"county_wide_msw_recycled", "county_wide_msw_composted",
			"county_wide_msw_digested", "county_wide_msw_landfilled",
		},
	}
	for _, row := range counties {
		table.Rows = append(table.Rows, TableRow{
			Year:   row.DataYear,
			Key:    []string{row.Name},
			Values: []float64{row.Recycled, row.Composted, row.Digested, row.Landfilled},
		})
	}
	return YearOverYear(table, currentYear)
}

// StateYearOverYear rolls the county rows up to statewide totals per year and
// compares those between currentYear and the year before.
func StateYearOverYear(counties []summarize.CountyRow, currentYear int) (*Comparison, error) {
	table := &Table{
		KeyLevels: []string{"name"},
		Metrics: []string{
			"statewide_msw_recycled", "statewide_msw_composted",
			"statewide_msw_digested", "statewide_msw_landfilled",
		},
	}

	byYear := make(map[int][]yearly.CountySummary)
	var years []int
	for _, row := range counties {
		if _, ok := byYear[row.DataYear]; !ok {
			years = append(years, row.DataYear)
		}
		byYear[row.DataYear] = append(byYear[row.DataYear], yearly.CountySummary{
			County:     row.Name,
			Recycled:   row.Recycled,
			Composted:  row.Composted,
			Digested:   row.Digested,
			Landfilled: row.Landfilled,
		})
	}

	for _, year := range years {
		state := yearly.StatewideMetrics(byYear[year])
		table.Rows = append(table.Rows, TableRow{
			Year:   year,
			Key:    []string{"State"},
			Values: []float64{state.Recycled, state.Composted, state.Digested, state.Landfilled},
		})
	}
	return YearOverYear(table, currentYear)
}
