package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reelgrowth/lead-relay/internal/entity"
)

const defaultBaseURL = "https://api.brevo.com/v3"

// Client wraps the Brevo contacts API. One contact per call, synchronous,
// no retries: the calling handlers are single-request HTTP handlers.
type Client struct {
	baseURL string
	apiKey  string
	listIDs map[entity.LeadTag]int64
	http    *http.Client
}

func NewClient(apiKey, baseURL string, listIDs map[entity.LeadTag]int64) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		listIDs: listIDs,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// UpsertContact creates or updates the contact and assigns it to the list
// for its tag. A "contact already exists" error from the backend counts as
// success: the upsert is idempotent by email.
func (c *Client) UpsertContact(ctx context.Context, input UpsertContactInput) UpsertContactResult {
	first, last := splitName(input.Name)

	attrs := map[string]any{}
	if first != "" {
		attrs["FIRSTNAME"] = first
	}
	if last != "" {
		attrs["LASTNAME"] = last
	}
	if input.Phone != "" {
		attrs["SMS"] = input.Phone
	}
	if input.Source != "" {
		attrs["SOURCE"] = input.Source
	}

	payload := createContactRequest{
		Email:         input.Email,
		Attributes:    attrs,
		ListIDs:       []int64{c.listIDFor(input.Tag)},
		UpdateEnabled: true,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return UpsertContactResult{Error: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contacts", bytes.NewBuffer(jsonBody))
	if err != nil {
		return UpsertContactResult{Error: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return UpsertContactResult{Error: fmt.Sprintf("brevo request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusCreated:
		var created createContactResponse
		if err := json.Unmarshal(body, &created); err != nil || created.ID == 0 {
			return UpsertContactResult{Success: true}
		}
		return UpsertContactResult{Success: true, ContactID: strconv.FormatInt(created.ID, 10)}
	case resp.StatusCode == http.StatusNoContent:
		// Existing contact updated in place; no id in the response.
		return UpsertContactResult{Success: true}
	default:
		apiErr := decodeAPIError(body, resp.StatusCode)
		if apiErr.Code == "duplicate_parameter" {
			return UpsertContactResult{Success: true}
		}
		return UpsertContactResult{Error: apiErr.Message}
	}
}

// MarkPurchased flips the purchased attribute and records the order id on an
// existing contact. A missing contact is a non-fatal failure, not an error.
func (c *Client) MarkPurchased(ctx context.Context, email string, orderID int64) OpResult {
	payload := updateContactRequest{
		Attributes: map[string]any{
			"PURCHASED": true,
			"ORDER_ID":  orderID,
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return OpResult{Error: err.Error()}
	}

	endpoint := c.baseURL + "/contacts/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return OpResult{Error: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return OpResult{Error: fmt.Sprintf("brevo request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
		return OpResult{Success: true}
	case resp.StatusCode == http.StatusNotFound:
		return OpResult{Error: "contact not found"}
	default:
		return OpResult{Error: decodeAPIError(body, resp.StatusCode).Message}
	}
}

func (c *Client) FetchContact(ctx context.Context, email string) FetchContactResult {
	endpoint := c.baseURL + "/contacts/" + url.PathEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return FetchContactResult{Error: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return FetchContactResult{Error: fmt.Sprintf("brevo request failed: %v", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		var contact Contact
		if err := json.Unmarshal(body, &contact); err != nil {
			return FetchContactResult{Error: fmt.Sprintf("failed to decode contact: %v", err)}
		}
		return FetchContactResult{Success: true, Contact: &contact}
	case resp.StatusCode == http.StatusNotFound:
		return FetchContactResult{Error: "contact not found"}
	default:
		return FetchContactResult{Error: decodeAPIError(body, resp.StatusCode).Message}
	}
}

// CheckCredentials is a lightweight account read used only by the health
// endpoint.
func (c *Client) CheckCredentials(ctx context.Context) OpResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/account", nil)
	if err != nil {
		return OpResult{Error: err.Error()}
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return OpResult{Error: fmt.Sprintf("brevo request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return OpResult{Error: decodeAPIError(body, resp.StatusCode).Message}
	}
	return OpResult{Success: true}
}

func (c *Client) listIDFor(tag entity.LeadTag) int64 {
	if id, ok := c.listIDs[tag]; ok {
		return id
	}
	// Intake validation rejects unknown tags already; this is a defensive
	// default, not a normal path.
	return c.listIDs[entity.TagGeneral]
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func splitName(name string) (first, last string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

func decodeAPIError(body []byte, statusCode int) apiError {
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("brevo responded with status %d", statusCode)
	}
	return apiErr
}
