// Package summarize applies the yearly analyses to every calendar year of a
// Salesforce fetch and assembles the flat report tables that get loaded into
// the feature services.
package summarize

import (
	"math"
	"strings"

	"wmrc/salesforce"
	"wmrc/yearly"
)

// CountyRow is one (year, county) row of the county summary report.
type CountyRow struct {
	DataYear      int
	Name          string
	Recycled      float64
	Composted     float64
	Digested      float64
	Landfilled    float64
	DivertedTotal float64
	RecyclingRate float64
}

// Counties runs the county-wide analysis for every year. County column names
// are replaced with their display names, and any NaN metric left by a year
// with no usable data becomes 0 so the map layer renders it.
func Counties(records *salesforce.Records) []CountyRow {
	byYear := records.ByYear()

	var rows []CountyRow
	for _, year := range records.Years() {
		for _, county := range yearly.CountySummaries(byYear[year], records.CountyFields) {
			rows = append(rows, CountyRow{
				DataYear:      year,
				Name:          countyDisplayName(county.County),
				Recycled:      nanToZero(county.Recycled),
				Composted:     nanToZero(county.Composted),
				Digested:      nanToZero(county.Digested),
				Landfilled:    nanToZero(county.Landfilled),
				DivertedTotal: nanToZero(county.DivertedTotal),
				RecyclingRate: nanToZero(county.RecyclingRate),
			})
		}
	}
	return rows
}

// Statewide runs the statewide rollup on a year's worth of county rows.
func Statewide(countyRows []CountyRow, year int) yearly.StatewideSummary {
	var counties []yearly.CountySummary
	for _, row := range countyRows {
		if row.DataYear != year {
			continue
		}
		counties = append(counties, yearly.CountySummary{
			County:     row.Name,
			Recycled:   row.Recycled,
			Composted:  row.Composted,
			Digested:   row.Digested,
			Landfilled: row.Landfilled,
		})
	}
	return yearly.StatewideMetrics(counties)
}

// FacilityRow is one (year, facility) row of the diverted tonnage report.
type FacilityRow struct {
	DataYear     int
	ID           string
	Name         string
	TonsDiverted float64
}

// Facilities runs the tons-diverted analysis for every year.
func Facilities(records *salesforce.Records) []FacilityRow {
	byYear := records.ByYear()

	var rows []FacilityRow
	for _, year := range records.Years() {
		for _, facility := range yearly.FacilityTonsDiverted(byYear[year]) {
			rows = append(rows, FacilityRow{
				DataYear:     year,
				ID:           facility.ID,
				Name:         facility.Name,
				TonsDiverted: facility.TonsDiverted,
			})
		}
	}
	return rows
}

// FacilityMetricRow is one (year, facility) row of the RCDL metrics report.
type FacilityMetricRow struct {
	DataYear      int
	ID            string
	Name          string
	Recycled      float64
	Composted     float64
	Digested      float64
	Landfilled    float64
	RecyclingRate float64
}

// FacilityMetrics runs the per-facility RCDL analysis for every year.
func FacilityMetrics(records *salesforce.Records) []FacilityMetricRow {
	byYear := records.ByYear()

	var rows []FacilityMetricRow
	for _, year := range records.Years() {
		for _, metric := range yearly.FacilityCombinedMetrics(byYear[year]) {
			rows = append(rows, FacilityMetricRow{
				DataYear:      year,
				ID:            metric.ID,
				Name:          metric.Name,
				Recycled:      metric.Recycled,
				Composted:     metric.Composted,
				Digested:      metric.Digested,
				Landfilled:    metric.Landfilled,
				RecyclingRate: metric.RecyclingRate,
			})
		}
	}
	return rows
}

// MaterialRow is one (year, material) row of a material rate report.
type MaterialRow struct {
	Year     int     `csv:"year_"`
	Material string  `csv:"material"`
	Amount   float64 `csv:"amount"`
	Percent  float64 `csv:"percent_"`
}

var recyclingAliases = []string{
	"Combined Total of Material Received",
	"Total Corrugated Boxes received",
	"Total Paper and Paperboard received",
	"Total Plastic Materials received",
	"Total Glass Materials received",
	"Total Ferrous Metal Materials received",
	"Total Aluminum Metal Materials received",
	"Total Nonferrous Metal received",
	"Total Rubber Materials received",
	"Total Leather Materials received",
	"Total Textile Materials received",
	"Total Wood Materials received",
	"Total Yard Trimmings received",
	"Total Food received",
	"Total Tires received",
	"Total Lead-Acid Batteries received",
	"Total Lithium-Ion Batteries received",
	"Total Other Electronics received",
	"Total ICD received",
	"Total SW Stream Materials received",
}

var compostingAliases = []string{
	"Municipal Solid Waste",
	"Total Material Received Compost",
	"Total Paper and Paperboard receiced (C)",
	"Total Plastic Materials received (C)",
	"Total Rubber Materials received (C)",
	"Total Leather Materials received (C)",
	"Total Textile Materials received (C)",
	"Total Wood Materials received (C)",
	"Total Yard Trimmings received (C)",
	"Total Food received (C)",
	"Total Agricultural Organics received",
	"Total BFS received",
	"Total Drywall received",
	"Total Other CM received",
}

// MaterialsRecycled runs the material recycling rate analysis for every year.
func MaterialsRecycled(records *salesforce.Records) []MaterialRow {
	return materialRates(records, salesforce.ClassRecycling, recyclingAliases, salesforce.ColTotalReceived)
}

// MaterialsComposted runs the material composting rate analysis for every
// year.
func MaterialsComposted(records *salesforce.Records) []MaterialRow {
	return materialRates(records, salesforce.ClassComposts, compostingAliases, salesforce.ColCompostReceived)
}

func materialRates(records *salesforce.Records, classification string, aliases []string, totalField string) []MaterialRow {
	var fields []string
	for _, alias := range aliases {
		if field, ok := records.Mapping[alias]; ok {
			fields = append(fields, field)
		}
	}

	byYear := records.ByYear()
	var rows []MaterialRow
	for _, year := range records.Years() {
		for _, rate := range yearly.RatesPerMaterial(byYear[year], classification, fields, totalField) {
			rows = append(rows, MaterialRow{
				Year:     year,
				Material: rate.Material,
				Amount:   rate.Amount,
				Percent:  rate.Percent,
			})
		}
	}
	return rows
}

// countyDisplayName turns a county column name into the map layer's display
// name ("Box_Elder_County__c" -> "Box Elder County").
func countyDisplayName(column string) string {
	return strings.ReplaceAll(strings.TrimSuffix(column, "__c"), "_", " ")
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
