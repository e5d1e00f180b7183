// Package validate computes year-over-year deltas of the aggregated reports
// for QA before anything reaches the live layers.
package validate

import (
	"fmt"
	"math"
	"strings"
)

// Table is an aggregated report indexed by (year, entity key). Every metric
// column is numeric; the key levels identify the entity (facility, county,
// etc).
type Table struct {
	KeyLevels []string
	Metrics   []string
	Rows      []TableRow
}

type TableRow struct {
	Year   int
	Key    []string
	Values []float64
}

// Comparison holds one row per entity with four derived columns per metric,
// interleaved as pct_change, current-year value, previous-year value,
// difference.
type Comparison struct {
	KeyLevels []string
	Columns   []string
	Rows      []ComparisonRow
}

type ComparisonRow struct {
	Key    []string
	Values []float64
}

// MissingYearError is returned when a requested comparison year is not
// present in the table. The caller has to supply valid years; there is
// nothing sensible to output without both of them.
type MissingYearError struct {
	Year int
}

func (e *MissingYearError) Error() string {
	return fmt.Sprintf("year %d not found in table", e.Year)
}

// YearOverYear compares currentYear against the year before it. Entities
// missing from one of the two years get NaN in every derived column for the
// metrics they lack a counterpart for.
func YearOverYear(table *Table, currentYear int) (*Comparison, error) {
	previousYear := currentYear - 1

	current := indexByKey(table, currentYear)
	previous := indexByKey(table, previousYear)
	if current == nil {
		return nil, &MissingYearError{Year: currentYear}
	}
	if previous == nil {
		return nil, &MissingYearError{Year: previousYear}
	}

	comparison := &Comparison{
		KeyLevels: table.KeyLevels,
		Columns:   make([]string, 0, 4*len(table.Metrics)),
	}
	for _, metric := range table.Metrics {
		comparison.Columns = append(comparison.Columns,
			metric+"_pct_change",
			fmt.Sprintf("%s_%d", metric, currentYear),
			fmt.Sprintf("%s_%d", metric, previousYear),
			metric+"_diff",
		)
	}

	for _, key := range unionKeys(table, currentYear, previousYear) {
		currentRow := current[keyString(key)]
		previousRow := previous[keyString(key)]

		values := make([]float64, 0, 4*len(table.Metrics))
		for i := range table.Metrics {
			currentValue, previousValue := math.NaN(), math.NaN()
			if currentRow != nil {
				currentValue = currentRow.Values[i]
			}
			if previousRow != nil {
				previousValue = previousRow.Values[i]
			}

			diff := currentValue - previousValue
			values = append(values, diff/previousValue*100, currentValue, previousValue, diff)
		}
		comparison.Rows = append(comparison.Rows, ComparisonRow{Key: key, Values: values})
	}

	return comparison, nil
}

func indexByKey(table *Table, year int) map[string]*TableRow {
	var index map[string]*TableRow
	for i := range table.Rows {
		if table.Rows[i].Year != year {
			continue
		}
		if index == nil {
			index = make(map[string]*TableRow)
		}
		index[keyString(table.Rows[i].Key)] = &table.Rows[i]
	}
	return index
}

// unionKeys returns the entity keys of both years in order of first
// appearance, current year first.
func unionKeys(table *Table, currentYear, previousYear int) [][]string {
	var keys [][]string
	seen := make(map[string]bool)
	for _, year := range []int{currentYear, previousYear} {
		for i := range table.Rows {
			row := &table.Rows[i]
			if row.Year != year || seen[keyString(row.Key)] {
				continue
			}
			seen[keyString(row.Key)] = true
			keys = append(keys, row.Key)
		}
	}
	return keys
}

func keyString(key []string) string {
	return strings.Join(key, "\x1f")
}
