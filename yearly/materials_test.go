package yearly

import (
	"testing"

	"wmrc/salesforce"
)

func TestRatesPerMaterial(t *testing.T) {
	corrugated := "Total_Corrugated_Boxes_received__c"
	fields := []string{salesforce.ColTotalReceived, corrugated, salesforce.ColOutOfState, salesforce.ColMSW}

	permitted := nanRecord()
	permitted.Classification = salesforce.ClassRecycling
	permitted.MSWPercent = 50
	permitted.Materials[salesforce.ColTotalReceived] = 100
	permitted.Materials[corrugated] = 40

	// Non-permitted recycling reports count toward the recycling rates
	nonPermitted := nanRecord()
	nonPermitted.Classification = salesforce.ClassRecyclingNonPermit
	nonPermitted.MSWPercent = 100
	nonPermitted.OutOfStatePercent = 50
	nonPermitted.Materials[salesforce.ColTotalReceived] = 100

	composter := nanRecord()
	composter.Classification = salesforce.ClassComposts
	composter.MSWPercent = 100
	composter.Materials[salesforce.ColTotalReceived] = 9999

	records := []salesforce.Record{permitted, nonPermitted, composter}
	rates := RatesPerMaterial(records, salesforce.ClassRecycling, fields, salesforce.ColTotalReceived)
	if len(rates) != 2 {
		t.Fatalf("Got %d rows, wanted one per material field", len(rates))
	}

	// permitted: no out-of-state share counts as fully in-state, so
	// 1.0 * 0.5 * 100; nonPermitted: 0.5 * 1.0 * 100
	total := rates[0]
	if total.Material != "Combined Total of Material Received" {
		t.Errorf("Got material %q, wanted the untransformed display name", total.Material)
	}
	if !almostEqual(total.Amount, 100) {
		t.Errorf("Got total amount %v, wanted 100", total.Amount)
	}
	if !almostEqual(total.Percent, 1) {
		t.Errorf("Got total percent %v, wanted 1", total.Percent)
	}

	boxes := rates[1]
	if boxes.Material != "Corrugated Boxes" {
		t.Errorf("Got material %q, wanted Corrugated Boxes", boxes.Material)
	}
	if !almostEqual(boxes.Amount, 20) {
		t.Errorf("Got amount %v, wanted 20", boxes.Amount)
	}
	if !almostEqual(boxes.Percent, 0.2) {
		t.Errorf("Got percent %v, wanted 0.2", boxes.Percent)
	}
}

func TestOrderFields(t *testing.T) {
	type testCase struct {
		input    []string
		expected []string
	}

	cases := []testCase{
		{
			input:    []string{"a__c", salesforce.ColMSW, "b__c", salesforce.ColOutOfState},
			expected: []string{"a__c", "b__c", salesforce.ColOutOfState, salesforce.ColMSW},
		},
		{
			input:    []string{"a__c"},
			expected: []string{"a__c", salesforce.ColOutOfState, salesforce.ColMSW},
		},
	}

	for _, c := range cases {
		got := orderFields(c.input)
		if len(got) != len(c.expected) {
			t.Fatalf("Got %v, wanted %v", got, c.expected)
		}
		for i := range got {
			if got[i] != c.expected[i] {
				t.Errorf("Got %v, wanted %v", got, c.expected)
				break
			}
		}
	}
}

func TestDisplayName(t *testing.T) {
	type testCase struct {
		column   string
		expected string
	}

	cases := []testCase{
		{"Total_Corrugated_Boxes_received__c", "Corrugated Boxes"},
		{"Total_Paper_and_Paperboard_received__c", "Paper and Paperboard"},
		{"Total_Plastic_Materials_received__c", "Plastic"},
		{"Total_SW_Stream_Materials_received__c", "Solid Waste Stream"},
		{"Total_ICD_received__c", "Inert Construction and Demolition"},
		{"Total_Other_CM_received__c", "Other Compostable Material"},
		{"Total_Paper_and_Paperboard_receiced_C__c", "Paper and Paperboard"},
		// Capitalized "Received" never matches the stripping pattern
		{"Combined_Total_of_Material_Received__c", "Combined Total of Material Received"},
		{"Total_Material_Received_Compost__c", "Total Material Received Compost"},
		{"Municipal_Solid_Waste__c", "Municipal Solid Waste"},
	}

	for _, c := range cases {
		t.Log("Renaming:", c.column)

		if got := displayName(c.column); got != c.expected {
			t.Errorf("Got %q, wanted %q", got, c.expected)
		}
	}
}
