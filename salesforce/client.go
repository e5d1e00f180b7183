package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const queryPath = "/services/data/v60.0/query/"

// Client is a minimal Salesforce REST client. It authenticates with the
// client-credentials flow and pages through SOQL query results.
type Client struct {
	org    string
	token  string
	client *http.Client
}

func NewClient(ctx context.Context, org, clientID, clientSecret string) (*Client, error) {
	c := &Client{
		org:    strings.TrimRight(org, "/"),
		client: &http.Client{Timeout: 60 * time.Second},
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	err := backoff.Retry(
		func() error {
			resp, err := c.client.PostForm(c.org+"/services/oauth2/token", form)
			if err != nil {
				return fmt.Errorf("token request: %w", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("token request: status code %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&auth)
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx),
	)
	if err != nil {
		return nil, err
	}

	c.token = auth.AccessToken
	return c, nil
}

type queryResponse struct {
	Done           bool             `json:"done"`
	NextRecordsURL string           `json:"nextRecordsUrl"`
	Records        []map[string]any `json:"records"`
}

// Query runs a SOQL query and follows nextRecordsUrl until all pages are
// collected.
func (c *Client) Query(ctx context.Context, soql string) ([]map[string]any, error) {
	next := queryPath + "?q=" + url.QueryEscape(soql)

	var records []map[string]any
	for next != "" {
		page, err := c.getPage(ctx, next)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)

		next = ""
		if !page.Done {
			next = page.NextRecordsURL
		}
	}
	return records, nil
}

func (c *Client) getPage(ctx context.Context, path string) (*queryResponse, error) {
	var page queryResponse
	err := backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.org+path, nil)
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Authorization", "Bearer "+c.token)

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				return fmt.Errorf("query: status code %d: %s", resp.StatusCode, body)
			}
			return json.NewDecoder(resp.Body).Decode(&page)
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx),
	)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// LoadRecords builds the field mapping from a one-row schema sample, then
// fetches all submitted annual reports. An unresolvable alias aborts before
// the main query runs.
func LoadRecords(ctx context.Context, c *Client) (*Records, error) {
	sample, err := c.Query(ctx, "SELECT FIELDS(ALL) FROM Application_Report__c LIMIT 1")
	if err != nil {
		return nil, err
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("schema sample query returned no rows")
	}

	columns := make([]string, 0, len(sample[0]))
	for col := range sample[0] {
		columns = append(columns, col)
	}

	mapping, err := BuildFieldMapping(columns)
	if err != nil {
		return nil, err
	}
	countyFields := CountyColumns(columns)

	soql := fmt.Sprintf(
		"SELECT %s FROM Application_Report__c WHERE Status__c = 'Submitted' AND RecordType.Name = 'Annual Report'",
		strings.Join(queryColumns(mapping, countyFields), ","),
	)
	rows, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}

	records := &Records{Mapping: mapping, CountyFields: countyFields}
	for _, row := range rows {
		records.Rows = append(records.Rows, parseRecord(row, mapping, countyFields))
	}
	return records, nil
}

func queryColumns(mapping FieldMapping, countyFields []string) []string {
	columns := []string{
		"RecordTypeId",
		ColClassifications,
		"RecordType.Name",
		"Facility__r.Solid_Waste_Facility_ID_Number__c",
		ColLastModified,
		"Are_materials_accepted_for_drop_off__c",
		"Facility_Phone_Number__c",
		"Facility_Website__c",
	}
	for _, column := range mapping {
		columns = append(columns, column)
	}
	return append(columns, countyFields...)
}

func parseRecord(row map[string]any, mapping FieldMapping, countyFields []string) Record {
	record := Record{
		FacilityID:     nestedFacilityID(row),
		FacilityName:   asString(row[ColFacilityName]),
		CalendarYear:   ParseYear(asString(row[ColCalendarYear])),
		Classification: asString(row[ColClassifications]),

		MSWPercent:        asFloat(row[ColMSW]),
		OutOfStatePercent: asFloat(row[ColOutOfState]),
		ContaminationRate: asFloat(row[ColContaminationRate]),

		TotalRecycled:      asFloat(row[ColTotalRecycled]),
		MaterialsRecycled:  asFloat(row[ColMaterialsRecycled]),
		SentToComposting:   asFloat(row[ColSentToComposting]),
		CombinedComposting: asFloat(row[ColCombinedComposting]),
		ManagedByADC:       asFloat(row[ColManagedByADC]),
		CombinedCombustion: asFloat(row[ColCombinedCombustion]),
		MaterialsCombusted: asFloat(row[ColMaterialsCombusted]),
		TiresRecycled:      asFloat(row[ColTiresRecycled]),
		TiresCombusted:     asFloat(row[ColTiresCombusted]),
		LandfilledTons:     asFloat(row[ColLandfilledTons]),

		Phone:   asString(row["Facility_Phone_Number__c"]),
		Website: asString(row["Facility_Website__c"]),
		DropOff: asString(row["Are_materials_accepted_for_drop_off__c"]),

		CountyShares: make(map[string]float64),
		Materials:    make(map[string]float64),
	}

	if t, err := time.Parse("2006-01-02T15:04:05.000-0700", asString(row[ColLastModified])); err == nil {
		record.LastModified = t
	}

	for _, county := range countyFields {
		if v := asFloat(row[county]); !math.IsNaN(v) {
			record.CountyShares[county] = v
		}
	}
	for _, column := range mapping {
		if v := asFloat(row[column]); !math.IsNaN(v) {
			record.Materials[column] = v
		}
	}
	return record
}

func nestedFacilityID(row map[string]any) string {
	facility, ok := row["Facility__r"].(map[string]any)
	if !ok {
		return ""
	}
	return asString(facility["Solid_Waste_Facility_ID_Number__c"])
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err == nil {
			return f
		}
	}
	return math.NaN()
}
