package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"cyber-oasis/internal/config"
)

type Client struct {
	srv           *sheetsv4.Service
	spreadsheetID string
	sheetName     string
}

// New connects to one tab of one spreadsheet. Extra options are appended
// after the scope option, so tests can point the client at a fake endpoint.
func New(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is empty")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	opts = append([]option.ClientOption{option.WithScopes(sheetsv4.SpreadsheetsScope)}, opts...)
	srv, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{srv: srv, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func (c *Client) SpreadsheetID() string { return c.spreadsheetID }

func (c *Client) SheetName() string { return c.sheetName }

// CredentialsOption picks the service account credentials: a key file when
// a path is configured, otherwise a key assembled from the discrete
// GOOGLE_* fields.
func CredentialsOption(g config.Google) (option.ClientOption, error) {
	if g.ServiceAccountJSON != "" {
		if _, err := os.Stat(g.ServiceAccountJSON); err != nil {
			return nil, fmt.Errorf("service account json: %w", err)
		}
		return option.WithCredentialsFile(g.ServiceAccountJSON), nil
	}
	raw, err := serviceAccountKey(g)
	if err != nil {
		return nil, err
	}
	return option.WithCredentialsJSON(raw), nil
}

type serviceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

func serviceAccountKey(g config.Google) ([]byte, error) {
	if g.ClientEmail == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_EMAIL is empty")
	}
	if g.PrivateKey == "" {
		return nil, fmt.Errorf("GOOGLE_PRIVATE_KEY is empty")
	}
	return json.Marshal(serviceAccount{
		Type:         "service_account",
		ProjectID:    g.ProjectID,
		PrivateKeyID: g.PrivateKeyID,
		// keys pasted into env files usually carry literal \n sequences
		PrivateKey:              strings.ReplaceAll(g.PrivateKey, `\n`, "\n"),
		ClientEmail:             g.ClientEmail,
		ClientID:                g.ClientID,
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientX509CertURL:       "https://www.googleapis.com/robot/v1/metadata/x509/" + url.PathEscape(g.ClientEmail),
	})
}
