// Package update implements the scheduled pipeline: pull the annual report
// records and the facility directory, compute the yearly reports, and
// truncate-and-load them into the hosted feature layers.
package update

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"wmrc/agol"
	"wmrc/config"
	"wmrc/report"
	"wmrc/salesforce"
	"wmrc/summarize"
	"wmrc/utils"
)

type Config struct {
	ConfigFile string `arg:"-c,--config" default:"./config.yaml" help:"Path to the runtime settings file"`
	SkipEmail  bool   `help:"Skip sending the summary email, log it instead"`
}

func (cmd *Config) Execute() error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := config.Load(cmd.ConfigFile)
	if err != nil {
		return err
	}
	secrets, err := config.SecretsFromEnv()
	if err != nil {
		return err
	}

	logFile := utils.SetLogFile(cfg.Name, "update")

	slog.Info("Loading records from Salesforce...")
	sf, err := salesforce.NewClient(ctx, cfg.SalesforceOrg, secrets.SFClientID, secrets.SFClientSecret)
	if err != nil {
		return err
	}
	records, err := salesforce.LoadRecords(ctx, sf)
	if err != nil {
		return err
	}

	duplicates := records.Deduplicate()
	dropped := records.DropNullYears()
	if len(dropped) > 0 {
		slog.Warn(fmt.Sprintf("Dropped all records of facilities with missing calendar years: %v", dropped))
	}

	facilityRows := summarize.Facilities(records)
	countyRows := summarize.Counties(records)
	materialsRecycled := summarize.MaterialsRecycled(records)
	materialsComposted := summarize.MaterialsComposted(records)

	gis, err := agol.NewClient(ctx, cfg.AGOLOrg, secrets.AGOLUser, secrets.AGOLPassword)
	if err != nil {
		return err
	}

	slog.Info("Updating facility info...")
	facilityCount, err := cmd.updateFacilities(ctx, cfg, secrets, gis, records, facilityRows)
	if err != nil {
		return err
	}

	slog.Info("Updating county info...")
	countyCount, err := updateCounties(ctx, cfg, gis, countyRows)
	if err != nil {
		return err
	}

	slog.Info("Updating materials recycled...")
	materialsCount, err := gis.TruncateAndLoad(ctx, cfg.Layers.Materials, materialFeatures(materialsRecycled))
	if err != nil {
		return err
	}

	slog.Info("Updating materials composted...")
	compostingCount, err := gis.TruncateAndLoad(ctx, cfg.Layers.Composting, materialFeatures(materialsComposted))
	if err != nil {
		return err
	}

	slog.Info("Updating statewide metrics...")
	statewideCount, err := updateStatewide(ctx, cfg, gis, records, countyRows)
	if err != nil {
		return err
	}

	summary := &report.Summary{
		Name:       cfg.Name,
		Start:      start,
		End:        time.Now(),
		Duplicates: duplicates,
		Dropped:    dropped,
		LogFile:    logFile,
		Counts: []report.Count{
			{Label: "Facility rows loaded", Rows: facilityCount},
			{Label: "County rows loaded", Rows: countyCount},
			{Label: "Materials recycled rows loaded", Rows: materialsCount},
			{Label: "Materials composted rows loaded", Rows: compostingCount},
			{Label: "Statewide metrics rows loaded", Rows: statewideCount},
		},
	}

	if cmd.SkipEmail {
		slog.Info(summary.Body())
		return nil
	}
	mailer := report.NewMailer(secrets.SendgridAPIKey, cfg.Email.From, cfg.Email.To)
	return mailer.Send(ctx, summary)
}
