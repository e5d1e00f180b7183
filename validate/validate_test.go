package validate

import (
	"math"
	"testing"
)

func TestYearOverYear(t *testing.T) {
	table := &Table{
		KeyLevels: []string{"id", "name"},
		Metrics:   []string{"msw_recycled"},
		Rows: []TableRow{
			{Year: 2024, Key: []string{"SW01", "Alpha"}, Values: []float64{50}},
			{Year: 2024, Key: []string{"SW03", "Gamma"}, Values: []float64{5}},
			{Year: 2023, Key: []string{"SW01", "Alpha"}, Values: []float64{10}},
			{Year: 2023, Key: []string{"SW02", "Beta"}, Values: []float64{20}},
		},
	}

	comparison, err := YearOverYear(table, 2024)
	if err != nil {
		t.Fatal(err)
	}

	expectedColumns := []string{
		"msw_recycled_pct_change", "msw_recycled_2024", "msw_recycled_2023", "msw_recycled_diff",
	}
	if len(comparison.Columns) != len(expectedColumns) {
		t.Fatalf("Got columns %v, wanted %v", comparison.Columns, expectedColumns)
	}
	for i := range expectedColumns {
		if comparison.Columns[i] != expectedColumns[i] {
			t.Errorf("Got columns %v, wanted %v", comparison.Columns, expectedColumns)
			break
		}
	}

	if len(comparison.Rows) != 3 {
		t.Fatalf("Got %d rows, wanted the union of both years' entities", len(comparison.Rows))
	}

	alpha := comparison.Rows[0]
	if alpha.Key[0] != "SW01" {
		t.Fatalf("Got key %v first, wanted SW01", alpha.Key)
	}
	if alpha.Values[0] != 400 {
		t.Errorf("Got pct change %v, wanted 400", alpha.Values[0])
	}
	if alpha.Values[1] != 50 || alpha.Values[2] != 10 || alpha.Values[3] != 40 {
		t.Errorf("Got %v, wanted current 50, previous 10, diff 40", alpha.Values)
	}

	// Only present in the current year
	gamma := comparison.Rows[1]
	if gamma.Key[0] != "SW03" {
		t.Fatalf("Got key %v second, wanted SW03", gamma.Key)
	}
	if !math.IsNaN(gamma.Values[0]) || gamma.Values[1] != 5 || !math.IsNaN(gamma.Values[2]) {
		t.Errorf("Got %v, wanted NaN where 2023 has no row", gamma.Values)
	}

	// Only present in the previous year
	beta := comparison.Rows[2]
	if beta.Key[0] != "SW02" {
		t.Fatalf("Got key %v third, wanted SW02", beta.Key)
	}
	if !math.IsNaN(beta.Values[1]) || beta.Values[2] != 20 {
		t.Errorf("Got %v, wanted NaN where 2024 has no row", beta.Values)
	}
}

func TestYearOverYearMissingYears(t *testing.T) {
	table := &Table{
		KeyLevels: []string{"name"},
		Metrics:   []string{"msw_recycled"},
		Rows: []TableRow{
			{Year: 2024, Key: []string{"Alpha"}, Values: []float64{50}},
		},
	}

	_, err := YearOverYear(table, 2025)
	missing, ok := err.(*MissingYearError)
	if !ok || missing.Year != 2025 {
		t.Errorf("Got %v, wanted a missing-year error for 2025", err)
	}

	// 2024 exists but its predecessor does not
	_, err = YearOverYear(table, 2024)
	missing, ok = err.(*MissingYearError)
	if !ok || missing.Year != 2023 {
		t.Errorf("Got %v, wanted a missing-year error for 2023", err)
	}
}
