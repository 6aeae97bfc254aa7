// Package google implements the tabular backend port on top of the Google
// Sheets v4 API using service-account credentials.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"iuran/internal/tabular"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config carries everything needed to reach one spreadsheet. The client is
// constructed explicitly from it and passed down; there is no ambient
// package-level connection.
type Config struct {
	SpreadsheetID string

	// Service identity. Either the email+key pair or one of the JSON forms.
	ServiceAccountEmail string
	PrivateKey          string
	CredentialsJSON     string
	CredentialsFile     string
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ tabular.Backend = (*Client)(nil)

func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	creds, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}
	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

func credentialsJSON(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return data, nil
	case cfg.ServiceAccountEmail != "" && cfg.PrivateKey != "":
		return json.Marshal(map[string]string{
			"type":         "service_account",
			"client_email": cfg.ServiceAccountEmail,
			"private_key":  NormalizePrivateKey(cfg.PrivateKey),
			"token_uri":    "https://oauth2.googleapis.com/token",
		})
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// NormalizePrivateKey repairs keys mangled by env-var transport: wrapping
// quotes, literal \n escapes, and CRLF line endings.
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	if len(key) >= 2 {
		if (key[0] == '"' && key[len(key)-1] == '"') || (key[0] == '\'' && key[len(key)-1] == '\'') {
			key = key[1 : len(key)-1]
		}
	}
	key = strings.ReplaceAll(key, `\n`, "\n")
	key = strings.ReplaceAll(key, "\r\n", "\n")
	return key
}

func (c *Client) Get(ctx context.Context, rng string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, &tabular.ReadError{Range: rng, Err: err}
	}
	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = toStrings(row)
	}
	return rows, nil
}

func (c *Client) Append(ctx context.Context, rng string, rows [][]any) error {
	vr := &gsheet.ValueRange{Values: toValues(rows)}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

func (c *Client) Update(ctx context.Context, cellRng string, rows [][]any) error {
	vr := &gsheet.ValueRange{Values: toValues(rows)}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cellRng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", cellRng, err)
	}
	return nil
}

func (c *Client) Clear(ctx context.Context, cellRng string) error {
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, cellRng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", cellRng, err)
	}
	return nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func toValues(rows [][]any) [][]any {
	if rows == nil {
		return [][]any{}
	}
	return rows
}
