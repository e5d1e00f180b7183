package validate

import (
	"encoding/csv"
	"errors"
	"math"
	"os"
	"strconv"
)

// WriteCSV dumps a comparison to file, one row per entity. NaN cells are
// written empty so spreadsheet tools show them as blanks.
func WriteCSV(comparison *Comparison, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(file)

	header := append(append([]string{}, comparison.KeyLevels...), comparison.Columns...)
	err = writer.Write(header)

	record := make([]string, len(header))
	for _, row := range comparison.Rows {
		if err != nil {
			break
		}
		n := copy(record, row.Key)
		for i, v := range row.Values {
			record[n+i] = formatValue(v)
		}
		err = writer.Write(record)
	}

	writer.Flush()
	err = errors.Join(err, writer.Error())
	if closeErr := file.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
