// Package agol is a thin client for the hosted feature services the reports
// are published to. Layers are updated by truncate-and-load: given identical
// input the end state is the same no matter how often it runs.
package agol

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"wmrc/utils"
)

// Features are added in chunks to stay under the service's request limits
const addChunkSize = 500

type Client struct {
	org    string
	token  string
	client *http.Client
}

// Feature is one row of a feature layer: a bag of attributes plus an opaque
// geometry that is carried along untouched.
type Feature struct {
	Attributes map[string]any  `json:"attributes"`
	Geometry   json.RawMessage `json:"geometry,omitempty"`
}

// NewClient authenticates against the hosted org and returns a client for
// layer queries and updates.
func NewClient(ctx context.Context, org, username, password string) (*Client, error) {
	c := &Client{
		org:    strings.TrimRight(org, "/"),
		client: &http.Client{Timeout: 120 * time.Second},
	}

	form := url.Values{
		"username": {username},
		"password": {password},
		"referer":  {c.org},
		"f":        {"json"},
	}

	var auth struct {
		Token string `json:"token"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.post(ctx, c.org+"/sharing/rest/generateToken", form, &auth); err != nil {
		return nil, err
	}
	if auth.Error != nil {
		return nil, fmt.Errorf("token request: %s", auth.Error.Message)
	}

	c.token = auth.Token
	return c, nil
}

// QueryFeatures returns every row of a layer with all attributes and
// geometries.
func (c *Client) QueryFeatures(ctx context.Context, layerURL string) ([]Feature, error) {
	form := url.Values{
		"where":     {"1=1"},
		"outFields": {"*"},
		"f":         {"json"},
		"token":     {c.token},
	}

	var result struct {
		Features []Feature `json:"features"`
		Error    *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.post(ctx, layerURL+"/query", form, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("query %s: %s", layerURL, result.Error.Message)
	}
	return result.Features, nil
}

// TruncateAndLoad deletes every feature in the layer and loads the new ones,
// returning the number of features added.
func (c *Client) TruncateAndLoad(ctx context.Context, layerURL string, features []Feature) (int, error) {
	deleteForm := url.Values{
		"where": {"1=1"},
		"f":     {"json"},
		"token": {c.token},
	}
	var deleteResult struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := c.post(ctx, layerURL+"/deleteFeatures", deleteForm, &deleteResult); err != nil {
		return 0, err
	}
	if deleteResult.Error != nil {
		return 0, fmt.Errorf("truncate %s: %s", layerURL, deleteResult.Error.Message)
	}

	bar := utils.NewBar(len(features), "loading features")
	bar.RenderBlank()

	loaded := 0
	for start := 0; start < len(features); start += addChunkSize {
		end := min(start+addChunkSize, len(features))
		chunk, err := json.Marshal(features[start:end])
		if err != nil {
			return loaded, err
		}

		addForm := url.Values{
			"features": {string(chunk)},
			"f":        {"json"},
			"token":    {c.token},
		}
		var addResult struct {
			AddResults []struct {
				Success bool `json:"success"`
			} `json:"addResults"`
			Error *struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := c.post(ctx, layerURL+"/addFeatures", addForm, &addResult); err != nil {
			return loaded, err
		}
		if addResult.Error != nil {
			return loaded, fmt.Errorf("load %s: %s", layerURL, addResult.Error.Message)
		}

		for _, result := range addResult.AddResults {
			if result.Success {
				loaded++
			}
		}
		bar.Add(end - start)
	}
	return loaded, nil
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	return backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(
				ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()),
			)
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			resp, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("%s: status code %d", endpoint, resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(out)
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx),
	)
}
