package salesforce

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Column names used directly in the yearly computations
const (
	ColCalendarYear       = "Calendar_Year__c"
	ColClassifications    = "Classifications__c"
	ColFacilityName       = "Facility_Name__c"
	ColLastModified       = "LastModifiedDate"
	ColMSW                = "Municipal_Solid_Waste__c"
	ColOutOfState         = "Out_of_State__c"
	ColContaminationRate  = "Annual_Recycling_Contamination_Rate__c"
	ColTotalRecycled      = "Combined_Total_of_Material_Recycled__c"
	ColMaterialsRecycled  = "Total_Materials_recycled__c"
	ColSentToComposting   = "Total_Materials_sent_to_composting__c"
	ColCombinedComposting = "Combined_Total_Material_for_Compostion__c" // typo upstream, the field really is spelled like this
	ColManagedByADC       = "Total_Material_managed_by_ADC__c"
	ColCombinedCombustion = "Combined_Total_Material_for_Combustion__c"
	ColMaterialsCombusted = "Total_Materials_combusted__c"
	ColTiresRecycled      = "Total_waste_tires_recycled_in_Tons__c"
	ColTiresCombusted     = "Total_WT_for_combustion_in_Tons__c"
	ColLandfilledTons     = "Municipal_Waste_In_State_in_Tons__c"
	ColTotalReceived      = "Combined_Total_of_Material_Received__c"
	ColCompostReceived    = "Total_Material_Received_Compost__c"
)

// Report classifications relevant to the material rate reports
const (
	ClassRecycling          = "Recycling"
	ClassRecyclingNonPermit = "Recycling Facility Non-Permitted"
	ClassComposts           = "Composts"
)

// Record is one annual facility report row. Missing numeric values are NaN so
// they drop out of products and sums the same way unreported cells do in the
// source system, instead of silently counting as zero.
type Record struct {
	FacilityID     string
	FacilityName   string
	CalendarYear   *int
	LastModified   time.Time
	Classification string

	MSWPercent        float64
	OutOfStatePercent float64
	ContaminationRate float64

	TotalRecycled      float64
	MaterialsRecycled  float64
	SentToComposting   float64
	CombinedComposting float64
	ManagedByADC       float64
	CombinedCombustion float64
	MaterialsCombusted float64
	TiresRecycled      float64
	TiresCombusted     float64
	LandfilledTons     float64

	Phone   string
	Website string
	DropOff string

	// County share percentages and material tonnages keyed by column name.
	// These columns vary with the live schema, so they stay keyed instead of
	// getting their own struct fields.
	CountyShares map[string]float64
	Materials    map[string]float64
}

// CountyShare returns the percentage of this record attributed to the county
// column, or NaN if the record does not report it.
func (r *Record) CountyShare(column string) float64 {
	if v, ok := r.CountyShares[column]; ok {
		return v
	}
	return math.NaN()
}

// Material returns the reported tonnage for a material column, or NaN if the
// record does not report it. The MSW and out-of-state modifiers are reachable
// here as well so the material rate report can treat them uniformly.
func (r *Record) Material(column string) float64 {
	switch column {
	case ColMSW:
		return r.MSWPercent
	case ColOutOfState:
		return r.OutOfStatePercent
	}
	if v, ok := r.Materials[column]; ok {
		return v
	}
	return math.NaN()
}

// PublicID is the externally published facility identifier: the numeric part
// of the facility id with the three-letter prefix and any leading zeros
// stripped ("SW0123" -> "123"). The directory sheet and Salesforce prefix
// their ids differently, so joins between the two happen on this form.
func PublicID(facilityID string) string {
	if len(facilityID) > 3 {
		facilityID = facilityID[3:]
	}
	return strings.TrimLeft(facilityID, "0")
}

func (r *Record) PublicID() string {
	return PublicID(r.FacilityID)
}

// Records holds one fetch of annual report rows along with the schema-derived
// field mapping and county column list.
type Records struct {
	Mapping      FieldMapping
	CountyFields []string
	Rows         []Record
}

// Years returns the sorted distinct calendar years present in the records.
// Rows without a year are ignored.
func (r *Records) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for i := range r.Rows {
		year := r.Rows[i].CalendarYear
		if year == nil || seen[*year] {
			continue
		}
		seen[*year] = true
		years = append(years, *year)
	}

	for i := 1; i < len(years); i++ {
		for j := i; j > 0 && years[j] < years[j-1]; j-- {
			years[j], years[j-1] = years[j-1], years[j]
		}
	}
	return years
}

// ByYear partitions the rows by calendar year. Rows without a year are
// excluded; the caller decides whether that warrants a log line.
func (r *Records) ByYear() map[int][]Record {
	out := make(map[int][]Record)
	for _, row := range r.Rows {
		if row.CalendarYear == nil {
			continue
		}
		out[*row.CalendarYear] = append(out[*row.CalendarYear], row)
	}
	return out
}

// DropNullYears removes every record of any facility that has a row with a
// missing calendar year, dated rows included, and returns the affected
// facility ids. A history with unattributable years is dropped wholesale
// rather than guessed at.
func (r *Records) DropNullYears() []string {
	var dropped []string
	droppedSet := make(map[string]bool)
	for i := range r.Rows {
		row := &r.Rows[i]
		if row.CalendarYear == nil && !droppedSet[row.FacilityID] {
			droppedSet[row.FacilityID] = true
			dropped = append(dropped, row.FacilityID)
		}
	}

	kept := r.Rows[:0]
	for _, row := range r.Rows {
		if !droppedSet[row.FacilityID] {
			kept = append(kept, row)
		}
	}
	r.Rows = kept
	return dropped
}

// ParseYear converts the raw calendar year cell to an int, returning nil for
// blank or malformed years.
func ParseYear(s string) *int {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &year
}
