package salesforce

import (
	"fmt"
	"strings"
)

// FieldMapping resolves the human-readable aliases used in the manual report
// runs to live Salesforce column names.
type FieldMapping map[string]string

// Aliases of every report field the analyses need. Each one must resolve to a
// column in the live schema or the run aborts before touching any records.
var reportAliases = []string{
	"Combined Total of Material Recycled",
	"Municipal Solid Waste",
	"Total Materials sent to composting",
	"Total Material managed by AD/C",
	"Municipal Waste In-State (in Tons)",
	"Facility Name",
	"Total Materials recycled",
	"Combined Total Material for Combustion",
	"Total Materials combusted",
	"Total waste tires recycled (in Tons)",
	"Total WT for combustion (in Tons)",
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
	"Calendar Year",
	"Annual Recycling Contamination Rate",
}

// MissingFieldsError is returned when report aliases cannot be resolved
// against the live schema. This is a configuration failure, not a data
// failure: nothing downstream can run with an incomplete mapping.
type MissingFieldsError struct {
	Aliases []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Aliases, ", "))
}

// ColumnName derives the Salesforce column name for an alias following the
// fixed naming convention of the report object.
func ColumnName(alias string) string {
	replacer := strings.NewReplacer(" ", "_", "(", "", ")", "", "-", "_", "/", "")
	return replacer.Replace(alias) + "__c"
}

// BuildFieldMapping resolves the alias catalog against the column names of a
// live schema sample. All aliases are checked before returning so the error
// lists every unresolvable field at once.
func BuildFieldMapping(columns []string) (FieldMapping, error) {
	columnSet := make(map[string]bool, len(columns))
	for _, col := range columns {
		columnSet[col] = true
	}

	mapping := make(FieldMapping, len(reportAliases))
	var missing []string
	for _, alias := range reportAliases {
		if _, ok := mapping[alias]; ok {
			continue
		}
		name := ColumnName(alias)
		if !columnSet[name] {
			missing = append(missing, alias)
			continue
		}
		mapping[alias] = name
	}

	// The column name carries a typo upstream, so the convention-based
	// derivation can never find it
	mapping["Combined Total Material for Composting"] = ColCombinedComposting

	if missing != nil {
		return nil, &MissingFieldsError{Aliases: missing}
	}
	return mapping, nil
}

// CountyColumns picks out the per-county share columns from a schema sample.
// The synthetic "Out of State" share is always appended so out-of-state
// tonnage is allocated like any other county.
func CountyColumns(columns []string) []string {
	var fields []string
	for _, col := range columns {
		if strings.Contains(col, "_County") {
			fields = append(fields, col)
		}
	}
	return append(fields, ColOutOfState)
}
