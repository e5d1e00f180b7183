// Package config loads the runtime settings for a run. Non-secret settings
// (org URLs, layer endpoints, recipients) live in a YAML file checked in next
// to the binary; secrets come from the environment, normally via a .env file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Name          string `yaml:"name"`
	ReportYear    int    `yaml:"report_year"`
	SalesforceOrg string `yaml:"salesforce_org"`
	AGOLOrg       string `yaml:"agol_org"`
	SheetsBaseURL string `yaml:"sheets_base_url"`
	Layers        Layers `yaml:"layers"`
	Email         Email  `yaml:"email"`
}

// Layers holds the REST endpoints of the hosted feature layers the reports
// are loaded into, plus the county boundary layer used as a geometry source.
type Layers struct {
	Facilities       string `yaml:"facilities"`
	Counties         string `yaml:"counties"`
	CountyBoundaries string `yaml:"county_boundaries"`
	Materials        string `yaml:"materials"`
	Composting       string `yaml:"composting"`
	Statewide        string `yaml:"statewide"`
}

type Email struct {
	From string   `yaml:"from"`
	To   []string `yaml:"to"`
}

func Load(path string) (*Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &config, nil
}

// Secrets are the credentials a run needs, loaded from the environment.
type Secrets struct {
	SFClientID     string
	SFClientSecret string
	AGOLUser       string
	AGOLPassword   string
	SheetID        string
	CountyDBConn   string
	SendgridAPIKey string
}

// SecretsFromEnv reads every secret the update pipeline needs and reports all
// the missing ones at once instead of failing on the first.
func SecretsFromEnv() (*Secrets, error) {
	secrets := &Secrets{}
	err := readEnv(map[string]*string{
		"SF_CLIENT_ID":     &secrets.SFClientID,
		"SF_CLIENT_SECRET": &secrets.SFClientSecret,
		"AGOL_USER":        &secrets.AGOLUser,
		"AGOL_PASSWORD":    &secrets.AGOLPassword,
		"SHEET_ID":         &secrets.SheetID,
		"COUNTY_DB_CONN":   &secrets.CountyDBConn,
		"SENDGRID_API_KEY": &secrets.SendgridAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return secrets, nil
}

// SalesforceSecretsFromEnv reads only the CRM credentials, enough for runs
// that never touch the layers, the boundary table, or the mailer.
func SalesforceSecretsFromEnv() (*Secrets, error) {
	secrets := &Secrets{}
	err := readEnv(map[string]*string{
		"SF_CLIENT_ID":     &secrets.SFClientID,
		"SF_CLIENT_SECRET": &secrets.SFClientSecret,
	})
	if err != nil {
		return nil, err
	}
	return secrets, nil
}

func readEnv(vars map[string]*string) error {
	var missing []string
	for name, target := range vars {
		value := os.Getenv(name)
		if value == "" {
			missing = append(missing, name)
			continue
		}
		*target = value
	}

	if missing != nil {
		sort.Strings(missing)
		return fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
