package validate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"wmrc/config"
	"wmrc/salesforce"
	"wmrc/summarize"
	"wmrc/utils"
)

type Config struct {
	ConfigFile string `arg:"-c,--config" default:"./config.yaml" help:"Path to the runtime settings file"`
	OutDir     string `arg:"-o,--out" default:"." help:"Directory the comparison CSVs are written to"`
	Year       int    `help:"Report year to validate, defaults to the configured report year"`
}

// Execute pulls the same records the update pipeline would and writes one
// year-over-year comparison CSV per entity level so a human can eyeball the
// changes before the next load.
func (cmd *Config) Execute() error {
	ctx := context.Background()

	cfg, err := config.Load(cmd.ConfigFile)
	if err != nil {
		return err
	}
	secrets, err := config.SalesforceSecretsFromEnv()
	if err != nil {
		return err
	}
	year := cmd.Year
	if year == 0 {
		year = cfg.ReportYear
	}

	utils.SetLogFile(cfg.Name, "validate")

	slog.Info("Loading records from Salesforce...")
	sf, err := salesforce.NewClient(ctx, cfg.SalesforceOrg, secrets.SFClientID, secrets.SFClientSecret)
	if err != nil {
		return err
	}
	records, err := salesforce.LoadRecords(ctx, sf)
	if err != nil {
		return err
	}
	records.Deduplicate()
	if dropped := records.DropNullYears(); len(dropped) > 0 {
		slog.Warn(fmt.Sprintf("Dropped all records of facilities with missing calendar years: %v", dropped))
	}

	facilityRows := summarize.FacilityMetrics(records)
	countyRows := summarize.Counties(records)

	comparisons := []struct {
		name  string
		build func() (*Comparison, error)
	}{
		{"facility_year_over_year", func() (*Comparison, error) { return FacilityYearOverYear(facilityRows, year) }},
		{"county_year_over_year", func() (*Comparison, error) { return CountyYearOverYear(countyRows, year) }},
		{"state_year_over_year", func() (*Comparison, error) { return StateYearOverYear(countyRows, year) }},
	}

	for _, c := range comparisons {
		comparison, err := c.build()
		if err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}

		filename := filepath.Join(cmd.OutDir, fmt.Sprintf("%s_%d.csv", c.name, year))
		if err := WriteCSV(comparison, filename); err != nil {
			return err
		}
		slog.Info(fmt.Sprintf("Wrote %s", filename))
	}

	return nil
}
