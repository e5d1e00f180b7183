package yearly

import (
	"regexp"
	"slices"
	"strings"

	"wmrc/salesforce"
)

// MaterialRate is one material's summed tonnage for a year and that amount as
// a fraction of the designated total field's tonnage.
type MaterialRate struct {
	Material string
	Amount   float64
	Percent  float64
}

// RatesPerMaterial calculates per-material tonnage and rates for one year of
// records matching a classification. Each record's contribution is scaled by
// its in-state share and MSW share. Missing modifiers are filled with 0, so a
// record without an out-of-state share counts as fully in-state while one
// without an MSW share contributes nothing.
func RatesPerMaterial(yearRecords []salesforce.Record, classification string, fields []string, totalField string) []MaterialRate {
	classifications := expandClassification(classification)
	fields = orderFields(fields)

	// The last two entries are the modifier fields themselves; they feed the
	// computation but don't get a report row
	materialFields := fields[:len(fields)-2]

	rates := make([]MaterialRate, 0, len(materialFields))
	var totalAmount float64
	for _, field := range materialFields {
		var amount float64
		for i := range yearRecords {
			record := &yearRecords[i]
			if !slices.Contains(classifications, record.Classification) {
				continue
			}
			inState := (100 - orZero(record.OutOfStatePercent)) / 100
			msw := orZero(record.MSWPercent) / 100
			amount = sumSkipNaN(amount, inState*msw*record.Material(field))
		}
		if field == totalField {
			totalAmount = amount
		}
		rates = append(rates, MaterialRate{Material: displayName(field), Amount: amount})
	}

	for i := range rates {
		rates[i].Percent = rates[i].Amount / totalAmount
	}
	return rates
}

// expandClassification widens "Recycling" to also cover non-permitted
// recycling facilities, which report under their own label.
func expandClassification(classification string) []string {
	if classification == salesforce.ClassRecycling {
		return []string{salesforce.ClassRecycling, salesforce.ClassRecyclingNonPermit}
	}
	return []string{classification}
}

// orderFields moves the out-of-state and MSW modifier columns to the end of
// the fields list (appending them if absent), preserving the order of the
// rest. The material loop relies on the modifiers sitting in the last two
// slots.
func orderFields(fields []string) []string {
	ordered := make([]string, 0, len(fields)+2)
	for _, field := range fields {
		if field == salesforce.ColOutOfState || field == salesforce.ColMSW {
			continue
		}
		ordered = append(ordered, field)
	}
	return append(ordered, salesforce.ColOutOfState, salesforce.ColMSW)
}

var materialRegex = regexp.MustCompile(`Total_(.+)_Materials_recei|Total_(.+)_recei`)

var materialReplacer = strings.NewReplacer(
	" CM", " Compostable Material",
	"SW Stream", "Solid Waste Stream",
)

// displayName converts a material column name to the label used by the
// existing dashboard layers: the Total_/received wrapping is stripped and
// known abbreviations are expanded.
func displayName(column string) string {
	name := column
	if match := materialRegex.FindStringSubmatch(column); match != nil {
		name = match[1]
		if name == "" {
			name = match[2]
		}
	}
	name = strings.TrimSuffix(name, "__c")
	name = strings.ReplaceAll(name, "_", " ")
	name = materialReplacer.Replace(name)
	if name == "ICD" {
		name = "Inert Construction and Demolition"
	}
	return name
}
