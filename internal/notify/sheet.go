package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tripveda/tripveda-api/internal/domain"
)

// SheetClient appends lead rows to a spreadsheet via its webhook URL
// (an Apps Script endpoint that accepts a JSON body and answers
// {"success": bool, "error": string}).
type SheetClient struct {
	url    string
	client *http.Client
}

// NewSheetClient constructs a SheetClient. An empty URL disables the sink:
// Append becomes a no-op. A nil client falls back to a 10s timeout client.
func NewSheetClient(url string, client *http.Client) *SheetClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &SheetClient{url: url, client: client}
}

// Enabled reports whether a webhook URL is configured.
func (c *SheetClient) Enabled() bool {
	return c.url != ""
}

// sheetRow is the body shape the Apps Script endpoint expects.
type sheetRow struct {
	Package string `json:"package"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type sheetResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Append posts one lead row to the sheet. The webhook reports failures in
// its body rather than the status code, so both are checked.
func (c *SheetClient) Append(ctx context.Context, lead domain.Lead) error {
	if !c.Enabled() {
		return nil
	}

	body, err := json.Marshal(sheetRow{
		Package: lead.PackageTitle,
		Name:    lead.Name,
		Email:   lead.Email,
		Phone:   lead.Phone,
		Message: lead.Message,
	})
	if err != nil {
		return fmt.Errorf("notify.SheetClient.Append: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify.SheetClient.Append: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify.SheetClient.Append: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify.SheetClient.Append: webhook returned %s", resp.Status)
	}

	var sr sheetResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return fmt.Errorf("notify.SheetClient.Append: decode response: %w", err)
	}
	if !sr.Success {
		return fmt.Errorf("notify.SheetClient.Append: webhook rejected row: %s", sr.Error)
	}
	return nil
}
