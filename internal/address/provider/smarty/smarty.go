// Package smarty adapts the Smarty US Street Address API to the provider
// capability interface.
package smarty

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"addrgate/internal/address/provider"
)

const (
	providerID = "smarty-us-street"
	defaultURL = "https://us-street.api.smarty.com/street-address"
)

// Credentials authenticates against the Smarty API.
type Credentials struct {
	AuthID    string
	AuthToken string
}

// Client calls the Smarty US street endpoint over HTTP.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithBaseURL points the client at a different endpoint (for tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New constructs a Smarty client. Credentials are required.
func New(creds Credentials, opts ...Option) (*Client, error) {
	if creds.AuthID == "" || creds.AuthToken == "" {
		return nil, fmt.Errorf("smarty credentials are required")
	}

	c := &Client{
		creds:      creds,
		baseURL:    defaultURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// candidate mirrors the wire shape of one Smarty result.
type candidate struct {
	DeliveryLine1 string `json:"delivery_line_1"`
	Components    struct {
		CityName          string `json:"city_name"`
		StateAbbreviation string `json:"state_abbreviation"`
		Zipcode           string `json:"zipcode"`
		Plus4Code         string `json:"plus4_code"`
	} `json:"components"`
	Analysis struct {
		DPVMatchCode string `json:"dpv_match_code"`
	} `json:"analysis"`
}

// Lookup queries the US street endpoint. The request is bounded by ctx; no
// retries happen here.
func (c *Client) Lookup(ctx context.Context, q provider.Query) ([]provider.Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, provider.NewError(provider.ErrorInternal, providerID, "build request", err)
	}
	req.URL.RawQuery = c.queryParams(q).Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, provider.NewError(provider.ErrorTimeout, providerID, "request deadline exceeded", err)
		}
		return nil, provider.NewError(provider.ErrorOutage, providerID, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusPaymentRequired:
		return nil, provider.NewError(provider.ErrorAuthentication, providerID,
			fmt.Sprintf("authentication rejected (status %d)", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, provider.NewError(provider.ErrorOutage, providerID,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var raw []candidate
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, provider.NewError(provider.ErrorBadData, providerID, "decode response", err)
	}

	out := make([]provider.Candidate, 0, len(raw))
	for _, rc := range raw {
		out = append(out, provider.Candidate{
			DeliveryLine:   rc.DeliveryLine1,
			City:           rc.Components.CityName,
			State:          rc.Components.StateAbbreviation,
			Zip5:           rc.Components.Zipcode,
			Plus4:          rc.Components.Plus4Code,
			ConfidenceCode: rc.Analysis.DPVMatchCode,
		})
	}
	return out, nil
}

func (c *Client) queryParams(q provider.Query) url.Values {
	params := url.Values{}
	params.Set("auth-id", c.creds.AuthID)
	params.Set("auth-token", c.creds.AuthToken)
	params.Set("street", q.Street)
	if q.City != "" {
		params.Set("city", q.City)
	}
	if q.State != "" {
		params.Set("state", q.State)
	}
	if q.Zip != "" {
		params.Set("zipcode", q.Zip)
	}
	if q.MaxCandidates > 0 {
		params.Set("candidates", strconv.Itoa(q.MaxCandidates))
	}
	return params
}
