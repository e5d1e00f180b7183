package validate

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"wmrc/summarize"
)

func TestStateYearOverYear(t *testing.T) {
	counties := []summarize.CountyRow{
		{DataYear: 2023, Name: "Box Elder County", Recycled: 10, Landfilled: 40},
		{DataYear: 2023, Name: "Cache County", Recycled: 10, Landfilled: 10},
		{DataYear: 2023, Name: "Statewide", Recycled: 20, Landfilled: 50},
		{DataYear: 2024, Name: "Box Elder County", Recycled: 30, Landfilled: 40},
		{DataYear: 2024, Name: "Cache County", Recycled: 10, Landfilled: 10},
		{DataYear: 2024, Name: "Statewide", Recycled: 40, Landfilled: 50},
	}

	comparison, err := StateYearOverYear(counties, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(comparison.Rows) != 1 {
		t.Fatalf("Got %d rows, wanted a single State row", len(comparison.Rows))
	}

	row := comparison.Rows[0]
	if row.Key[0] != "State" {
		t.Errorf("Got key %v, wanted State", row.Key)
	}
	// Statewide recycled goes 20 -> 40, the synthetic rows stay out of the sum
	if row.Values[0] != 100 || row.Values[1] != 40 || row.Values[2] != 20 || row.Values[3] != 20 {
		t.Errorf("Got %v, wanted pct change 100 with current 40 and previous 20", row.Values)
	}
}

func TestCountyYearOverYear(t *testing.T) {
	counties := []summarize.CountyRow{
		{DataYear: 2023, Name: "Box Elder County", Recycled: 10, Composted: 1, Digested: 0, Landfilled: 40},
		{DataYear: 2024, Name: "Box Elder County", Recycled: 50, Composted: 2, Digested: 0, Landfilled: 40},
	}

	comparison, err := CountyYearOverYear(counties, 2024)
	if err != nil {
		t.Fatal(err)
	}
	if len(comparison.Columns) != 16 {
		t.Fatalf("Got %d columns, wanted 4 per metric", len(comparison.Columns))
	}
	if comparison.Columns[0] != "county_wide_msw_recycled_pct_change" {
		t.Errorf("Got first column %q, wanted the recycled pct change", comparison.Columns[0])
	}
	if comparison.Rows[0].Values[0] != 400 {
		t.Errorf("Got pct change %v, wanted 400", comparison.Rows[0].Values[0])
	}
}

func TestWriteCSV(t *testing.T) {
	facilities := []summarize.FacilityMetricRow{
		{DataYear: 2023, ID: "SW01", Name: "Alpha", Recycled: 10, Landfilled: 40, RecyclingRate: 20},
		{DataYear: 2024, ID: "SW01", Name: "Alpha", Recycled: 50, Landfilled: 40, RecyclingRate: 55},
		{DataYear: 2024, ID: "SW02", Name: "Beta", Recycled: 5, Landfilled: 5, RecyclingRate: 50},
	}

	comparison, err := FacilityYearOverYear(facilities, 2024)
	if err != nil {
		t.Fatal(err)
	}

	filename := filepath.Join(t.TempDir(), "facility_year_over_year_2024.csv")
	if err := WriteCSV(comparison, filename); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("Got %d lines, wanted header plus two facilities", len(rows))
	}

	header := rows[0]
	if header[0] != "id" || header[1] != "name" || header[2] != "msw_recycled_pct_change" {
		t.Errorf("Got header %v, wanted key levels before the metric columns", header)
	}

	alpha := rows[1]
	if alpha[0] != "SW01" || alpha[2] != "400" {
		t.Errorf("Got row %v, wanted SW01 with a 400 pct change", alpha)
	}

	// Beta has no 2023 counterpart, NaN cells come out blank
	beta := rows[2]
	if beta[0] != "SW02" || beta[2] != "" || beta[3] != "5" || beta[4] != "" {
		t.Errorf("Got row %v, wanted blanks where 2023 is missing", beta)
	}
}
