// Package sheets loads the facility directory kept in the division's
// spreadsheet: one worksheet of solid waste facilities and one of used oil
// collection centers (UOCCs).
package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gocarina/gocsv"
)

const (
	FacilitiesWorksheet = "SW Facilities"
	UOCCWorksheet       = "UOCCs"
)

// Facility is one row of the facility directory.
type Facility struct {
	ID             string  `csv:"ID"`
	Name           string  `csv:"Name"`
	Class          string  `csv:"Class"`
	Status         string  `csv:"Status"`
	County         string  `csv:"County"`
	Latitude       float64 `csv:"Latitude"`
	Longitude      float64 `csv:"Longitude"`
	Website        string  `csv:"Website"`
	Phone          string  `csv:"Phone"`
	AcceptDropOff  string  `csv:"Accept Material Dropped Off by the Public"`
	TonsDiverted   string  `csv:"Tons of Material Diverted from Landfills Last Year"`
	UsedOilGallons string  `csv:"Gallons of Used Oil Collected for Recycling Last Year"`
}

// Client fetches worksheets from the spreadsheet service as CSV exports.
type Client struct {
	baseURL string
	sheetID string
	client  *http.Client
}

func NewClient(baseURL, sheetID string) *Client {
	return &Client{
		baseURL: baseURL,
		sheetID: sheetID,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// LoadFacilities loads both worksheets and combines them into a single
// directory, keeping only open facilities. The UOCC sheet's column quirks are
// aligned with the SW sheet before parsing.
func (c *Client) LoadFacilities(ctx context.Context) ([]Facility, error) {
	var combined []Facility
	for _, worksheet := range []string{FacilitiesWorksheet, UOCCWorksheet} {
		rows, err := c.loadWorksheet(ctx, worksheet)
		if err != nil {
			return nil, fmt.Errorf("worksheet %q: %w", worksheet, err)
		}
		combined = append(combined, rows...)
	}

	open := combined[:0]
	for _, facility := range combined {
		if facility.Status == "Open" || facility.Status == "OPEN" {
			open = append(open, facility)
		}
	}
	return open, nil
}

func (c *Client) loadWorksheet(ctx context.Context, worksheet string) ([]Facility, error) {
	exportURL := fmt.Sprintf(
		"%s/spreadsheets/d/%s/export?format=csv&sheet=%s",
		c.baseURL, c.sheetID, url.QueryEscape(worksheet),
	)

	var body []byte
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status code %d", resp.StatusCode)
			}
			body, err = io.ReadAll(resp.Body)
			return err
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx),
	)
	if err != nil {
		return nil, err
	}

	normalized, err := normalizeHeader(body)
	if err != nil {
		return nil, err
	}

	var facilities []Facility
	if err := gocsv.UnmarshalBytes(normalized, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

// normalizeHeader cleans up the worksheet header row: embedded newlines in
// the drop-off column, the UOCC sheet calling the class column "Type", and
// unnamed filler columns that would otherwise collide.
func normalizeHeader(body []byte) ([]byte, error) {
	reader := csv.NewReader(bytes.NewReader(body))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return body, nil
	}

	for i, name := range rows[0] {
		switch name {
		case "Accept Material\n Dropped \n Off by the Public":
			rows[0][i] = "Accept Material Dropped Off by the Public"
		case "Type":
			rows[0][i] = "Class"
		case "":
			rows[0][i] = fmt.Sprintf("unnamed_%d", i)
		}
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}
