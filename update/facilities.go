package update

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"wmrc/agol"
	"wmrc/config"
	"wmrc/counties"
	"wmrc/salesforce"
	"wmrc/sheets"
	"wmrc/summarize"
	"wmrc/utils"
)

// updateFacilities rebuilds the facilities layer from the spreadsheet
// directory, the county lookup, and the diverted tonnage computed from the
// report-year records. The directory is the row source; Salesforce supplies
// the diverted tonnage and overrides the contact columns with each
// facility's latest reported values.
func (cmd *Config) updateFacilities(
	ctx context.Context,
	cfg *config.Config,
	secrets *config.Secrets,
	gis *agol.Client,
	records *salesforce.Records,
	facilityRows []summarize.FacilityRow,
) (int, error) {
	slog.Info("Loading data from the facility directory sheet...")
	directory := sheets.NewClient(cfg.SheetsBaseURL, secrets.SheetID)
	facilities, err := directory.LoadFacilities(ctx)
	if err != nil {
		return 0, err
	}

	slog.Info("Adding county names from the boundary table...")
	countyService, err := counties.NewService(ctx, secrets.CountyDBConn)
	if err != nil {
		return 0, err
	}
	defer countyService.Close()

	tonsDiverted := make(map[string]float64)
	for _, row := range facilityRows {
		if row.DataYear == cfg.ReportYear {
			tonsDiverted[row.ID] = row.TonsDiverted
		}
	}
	latestInfo := summarize.LatestFacilityInfo(records)

	bar := utils.NewBar(len(facilities), "facilities")
	bar.RenderBlank()

	features := make([]agol.Feature, 0, len(facilities))
	for _, facility := range facilities {
		bar.Add(1)
		if facility.Latitude == 0 || facility.Longitude == 0 {
			slog.Warn(fmt.Sprintf("Facility %s has no coordinates, skipping", facility.ID))
			continue
		}

		countyName, err := countyService.Lookup(ctx, facility.Latitude, facility.Longitude)
		if err != nil {
			return 0, err
		}

		attributes := map[string]any{
			"id_":                             facility.ID,
			"facility_name":                   facility.Name,
			"facility_type":                   facility.Class,
			"type_filter":                     typeFilter(facility.Class),
			"county_name":                     countyName,
			"latitude":                        facility.Latitude,
			"longitude":                       facility.Longitude,
			"website":                         facility.Website,
			"phone_no_":                       facility.Phone,
			"accept_material_dropped_off_by_": facility.AcceptDropOff,
			"gallons_of_used_oil_collected_f": parseOrNil(facility.UsedOilGallons),
			"tons_of_material_diverted_from_": parseOrNil(facility.TonsDiverted),
			"last_updated":                    time.Now().Format("2006-01-02"),
		}

		publicID := salesforce.PublicID(facility.ID)
		if tons, ok := tonsDiverted[publicID]; ok {
			attributes["tons_of_material_diverted_from_"] = tons
		}
		if info, ok := latestInfo[publicID]; ok {
			attributes["facility_name"] = info.Name
			attributes["website"] = info.Website
			attributes["phone_no_"] = info.Phone
			attributes["accept_material_dropped_off_by_"] = info.DropOff
		}

		features = append(features, agol.Feature{
			Attributes: attributes,
			Geometry:   pointGeometry(facility.Longitude, facility.Latitude),
		})
	}

	slog.Info("Truncating and loading...")
	return gis.TruncateAndLoad(ctx, cfg.Layers.Facilities, features)
}

// Material recovery facilities are shown under the plain recycling facility
// filter on the map
func typeFilter(facilityType string) string {
	if facilityType == "Recycling Facility - MRF" {
		return "Recycling Facility"
	}
	return facilityType
}

// parseOrNil keeps the distinction between "reported zero" and "did not
// report" when the sheet cell is blank or not a number.
func parseOrNil(value string) any {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return parsed
}
