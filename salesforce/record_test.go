package salesforce

import (
	"math"
	"testing"
)

func TestPublicID(t *testing.T) {
	type testCase struct {
		facilityID string
		expected   string
	}

	cases := []testCase{
		{"SW0042", "42"},
		{"UO00123", "123"},
		{"SW1000", "1000"},
		{"42", "42"},
	}

	for _, c := range cases {
		record := Record{FacilityID: c.facilityID}
		if got := record.PublicID(); got != c.expected {
			t.Errorf("Got %q for %q, wanted %q", got, c.facilityID, c.expected)
		}
	}
}

func TestYears(t *testing.T) {
	y2024, y2022, y2023 := 2024, 2022, 2023
	records := &Records{Rows: []Record{
		{CalendarYear: &y2024},
		{CalendarYear: &y2022},
		{CalendarYear: nil},
		{CalendarYear: &y2023},
		{CalendarYear: &y2022},
	}}

	years := records.Years()
	expected := []int{2022, 2023, 2024}
	if len(years) != len(expected) {
		t.Fatalf("Got %v, wanted %v", years, expected)
	}
	for i := range years {
		if years[i] != expected[i] {
			t.Errorf("Got %v, wanted %v", years, expected)
			break
		}
	}
}

func TestDropNullYears(t *testing.T) {
	year := 2024
	records := &Records{Rows: []Record{
		{FacilityID: "SW0042", CalendarYear: &year},
		{FacilityID: "SW0007", CalendarYear: nil},
		{FacilityID: "SW0007", CalendarYear: nil},
		{FacilityID: "SW0009", CalendarYear: nil},
	}}

	dropped := records.DropNullYears()
	if len(records.Rows) != 1 || records.Rows[0].FacilityID != "SW0042" {
		t.Errorf("Got %d rows, wanted only the dated row kept", len(records.Rows))
	}
	if len(dropped) != 2 || dropped[0] != "SW0007" || dropped[1] != "SW0009" {
		t.Errorf("Got dropped %v, wanted each facility reported once", dropped)
	}
}

func TestDropNullYearsRemovesWholeHistory(t *testing.T) {
	y2023, y2024 := 2023, 2024
	records := &Records{Rows: []Record{
		{FacilityID: "SW0042", CalendarYear: &y2024},
		{FacilityID: "SW0007", CalendarYear: &y2023},
		{FacilityID: "SW0007", CalendarYear: nil},
		{FacilityID: "SW0007", CalendarYear: &y2024},
	}}

	dropped := records.DropNullYears()
	if len(dropped) != 1 || dropped[0] != "SW0007" {
		t.Fatalf("Got dropped %v, wanted SW0007", dropped)
	}
	// The dated rows go too, a facility with an unattributable year is not
	// trusted for year-over-year comparisons
	if len(records.Rows) != 1 {
		t.Fatalf("Got %d rows, wanted only SW0042 left", len(records.Rows))
	}
	if records.Rows[0].FacilityID != "SW0042" {
		t.Errorf("Got %q, wanted SW0042", records.Rows[0].FacilityID)
	}
}

func TestParseYear(t *testing.T) {
	if year := ParseYear(" 2024 "); year == nil || *year != 2024 {
		t.Errorf("Got %v, wanted 2024", year)
	}
	if year := ParseYear(""); year != nil {
		t.Errorf("Got %v for a blank cell, wanted nil", year)
	}
	if year := ParseYear("n/a"); year != nil {
		t.Errorf("Got %v for a malformed cell, wanted nil", year)
	}
}

func TestMaterialRoutesModifiers(t *testing.T) {
	record := Record{
		MSWPercent:        80,
		OutOfStatePercent: math.NaN(),
		Materials:         map[string]float64{"Total_Food_received__c": 12},
	}

	if got := record.Material(ColMSW); got != 80 {
		t.Errorf("Got %v, wanted the MSW share", got)
	}
	if got := record.Material(ColOutOfState); !math.IsNaN(got) {
		t.Errorf("Got %v, wanted NaN passed through", got)
	}
	if got := record.Material("Total_Food_received__c"); got != 12 {
		t.Errorf("Got %v, wanted 12", got)
	}
	if got := record.Material("Total_Tires_received__c"); !math.IsNaN(got) {
		t.Errorf("Got %v for an unreported material, wanted NaN", got)
	}
}
