// Package report formats and delivers the run summary email.
package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rickb777/date/period"
)

const sendEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Summary collects everything worth telling a human about one run.
type Summary struct {
	Name       string
	Start      time.Time
	End        time.Time
	Counts     []Count
	Duplicates map[string]string
	Dropped    []string
	LogFile    string
}

// Count is a labelled row count ("County rows loaded: 58").
type Count struct {
	Label string
	Rows  int
}

// Body renders the plain-text email body.
func (s *Summary) Body() string {
	elapsed, _ := period.NewOf(s.End.Sub(s.Start))

	rows := []string{
		fmt.Sprintf("%s update %s", s.Name, s.Start.Format("2006-01-02")),
		strings.Repeat("=", 20),
		"",
		fmt.Sprintf("Start time: %s", s.Start.Format("15:04:05")),
		fmt.Sprintf("End time: %s", s.End.Format("15:04:05")),
		fmt.Sprintf("Duration: %s", elapsed),
		"",
	}

	if len(s.Duplicates) > 0 {
		rows = append(rows, "Duplicate facility IDs per calendar year:")
		ids := make([]string, 0, len(s.Duplicates))
		for id := range s.Duplicates {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			rows = append(rows, fmt.Sprintf("\t%s: %s", id, s.Duplicates[id]))
		}
		rows = append(rows, "")
	}

	if len(s.Dropped) > 0 {
		rows = append(rows, fmt.Sprintf(
			"Facilities dropped for missing calendar year: %s", strings.Join(s.Dropped, ", ")))
		rows = append(rows, "")
	}

	for _, count := range s.Counts {
		rows = append(rows, fmt.Sprintf("%s: %d", count.Label, count.Rows))
	}

	return strings.Join(rows, "\n")
}

// Mailer sends summary emails through the mail service's REST API.
type Mailer struct {
	apiKey string
	from   string
	to     []string
	client *http.Client
}

func NewMailer(apiKey, from string, to []string) *Mailer {
	return &Mailer{
		apiKey: apiKey,
		from:   from,
		to:     to,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type address struct {
	Email string `json:"email"`
}

type attachment struct {
	Content  string `json:"content"`
	Filename string `json:"filename"`
	Type     string `json:"type"`
}

// Send delivers the summary, attaching the run log if one was written.
func (m *Mailer) Send(ctx context.Context, summary *Summary) error {
	to := make([]address, len(m.to))
	for i, email := range m.to {
		to[i] = address{Email: email}
	}

	payload := map[string]any{
		"from": address{Email: m.from},
		"personalizations": []map[string]any{
			{"to": to},
		},
		"subject": summary.Name + " Update Summary",
		"content": []map[string]string{
			{"type": "text/plain", "value": summary.Body()},
		},
	}

	if summary.LogFile != "" {
		content, err := os.ReadFile(summary.LogFile)
		if err == nil {
			payload["attachments"] = []attachment{{
				Content:  base64.StdEncoding.EncodeToString(content),
				Filename: summary.LogFile,
				Type:     "text/plain",
			}}
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return backoff.Retry(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(body))
			if err != nil {
				return backoff.Permanent(err)
			}
			req.Header.Set("Authorization", "Bearer "+m.apiKey)
			req.Header.Set("Content-Type", "application/json")

			resp, err := m.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode >= http.StatusBadRequest {
				return fmt.Errorf("mail send: status code %d", resp.StatusCode)
			}
			return nil
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx),
	)
}
