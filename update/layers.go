package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"wmrc/agol"
	"wmrc/config"
	"wmrc/salesforce"
	"wmrc/summarize"
)

// The dashboard-only layers still need a geometry, so every row gets the same
// point well outside the state
const (
	bogusX = 12_495_000
	bogusY = 5_188_000
)

func pointGeometry(x, y float64) json.RawMessage {
	point, _ := json.Marshal(map[string]any{
		"x": x,
		"y": y,
		"spatialReference": map[string]int{
			"wkid": 4326,
		},
	})
	return point
}

// updateCounties merges the county report with the geometries of the county
// boundary layer and truncates-and-loads the result. The boundary layer
// carries an extra "Out of State" polygon placed outside the normal extent
// for material sourced from beyond the state line.
func updateCounties(ctx context.Context, cfg *config.Config, gis *agol.Client, countyRows []summarize.CountyRow) (int, error) {
	boundaries, err := gis.QueryFeatures(ctx, cfg.Layers.CountyBoundaries)
	if err != nil {
		return 0, err
	}

	geometries := make(map[string]json.RawMessage, len(boundaries))
	for _, boundary := range boundaries {
		if name, ok := boundary.Attributes["name"].(string); ok {
			geometries[name] = boundary.Geometry
		}
	}

	features := make([]agol.Feature, 0, len(countyRows))
	for _, row := range countyRows {
		geometry, ok := geometries[row.Name]
		if !ok {
			slog.Warn(fmt.Sprintf("No boundary geometry for %q", row.Name))
		}
		features = append(features, agol.Feature{
			Attributes: map[string]any{
				"name":                           row.Name,
				"data_year":                      row.DataYear,
				"county_wide_msw_recycled":       row.Recycled,
				"county_wide_msw_composted":      row.Composted,
				"county_wide_msw_digested":       row.Digested,
				"county_wide_msw_landfilled":     row.Landfilled,
				"county_wide_msw_diverted_total": row.DivertedTotal,
				"county_wide_msw_recycling_rate": row.RecyclingRate,
			},
			Geometry: geometry,
		})
	}

	return gis.TruncateAndLoad(ctx, cfg.Layers.Counties, features)
}

func materialFeatures(rows []summarize.MaterialRow) []agol.Feature {
	features := make([]agol.Feature, 0, len(rows))
	for _, row := range rows {
		features = append(features, agol.Feature{
			Attributes: map[string]any{
				"year_":    row.Year,
				"material": row.Material,
				"amount":   row.Amount,
				"percent_": row.Percent,
			},
			Geometry: pointGeometry(bogusX, bogusY),
		})
	}
	return features
}

// updateStatewide loads one row per year with the statewide RCDL totals and
// the uncontaminated recycling rate.
func updateStatewide(ctx context.Context, cfg *config.Config, gis *agol.Client, records *salesforce.Records, countyRows []summarize.CountyRow) (int, error) {
	uncontaminated := make(map[int]float64)
	for _, rate := range summarize.UncontaminationRates(records) {
		uncontaminated[rate.DataYear] = rate.Rate
	}

	var features []agol.Feature
	for _, year := range records.Years() {
		state := summarize.Statewide(countyRows, year)

		attributes := map[string]any{
			"data_year":                    year,
			"statewide_msw_recycled":       state.Recycled,
			"statewide_msw_composted":      state.Composted,
			"statewide_msw_digested":       state.Digested,
			"statewide_msw_landfilled":     state.Landfilled,
			"statewide_msw_diverted_total": state.DivertedTotal,
			"statewide_msw_recycling_rate": state.RecyclingRate,
		}
		if rate, ok := uncontaminated[year]; ok {
			attributes["annual_recycling_uncontaminated_rate"] = rate
		}

		features = append(features, agol.Feature{
			Attributes: attributes,
			Geometry:   pointGeometry(bogusX, bogusY),
		})
	}

	return gis.TruncateAndLoad(ctx, cfg.Layers.Statewide, features)
}
