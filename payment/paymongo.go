package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the production PayMongo API root.
const DefaultBaseURL = "https://api.paymongo.com/v1"

// StatusUnpaid is the link status the gateway reports until the customer
// settles the checkout page. Anything else counts as resolved.
const StatusUnpaid = "unpaid"

// Link is an externally hosted checkout page minted by the gateway.
type Link struct {
	ID              string
	CheckoutURL     string
	ReferenceNumber string
	Status          string
}

// Gateway is the payment-link API surface the order flow depends on. The
// credential is carried by the implementation so it can be swapped per
// environment and in tests.
type Gateway interface {
	// CreateLink mints a payment link. Amount is in minor currency units.
	CreateLink(amount int64, description string) (*Link, error)
	// GetLink fetches the current status of a previously minted link.
	GetLink(id string) (*Link, error)
}

type linkResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			CheckoutURL     string `json:"checkout_url"`
			ReferenceNumber string `json:"reference_number"`
			Status          string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
	Errors []struct {
		Code   string `json:"code"`
		Detail string `json:"detail"`
	} `json:"errors,omitempty"`
}

// Client talks to the PayMongo links API.
type Client struct {
	baseURL    string
	authKey    string
	httpClient *http.Client
}

// NewClient builds a gateway client. authKey is the pre-encoded value placed
// after "Basic " in the Authorization header.
func NewClient(authKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		authKey:    authKey,
		httpClient: &http.Client{},
	}
}

func (c *Client) CreateLink(amount int64, description string) (*Link, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"attributes": map[string]interface{}{
				"amount":      amount,
				"description": description,
			},
		},
	}

	jsonData, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", c.baseURL+"/links", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.authKey)

	return c.do(req)
}

func (c *Client) GetLink(id string) (*Link, error) {
	req, _ := http.NewRequest("GET", c.baseURL+"/links/"+id, nil)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Basic "+c.authKey)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Link, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("payment gateway error (%d): %s", resp.StatusCode, string(body))
	}

	var linkResp linkResponse
	if err := json.Unmarshal(body, &linkResp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}

	if len(linkResp.Errors) > 0 {
		return nil, fmt.Errorf("payment gateway error: %s", linkResp.Errors[0].Detail)
	}

	if linkResp.Data.Attributes.CheckoutURL == "" {
		return nil, fmt.Errorf("gateway returned empty checkout URL")
	}

	return &Link{
		ID:              linkResp.Data.ID,
		CheckoutURL:     linkResp.Data.Attributes.CheckoutURL,
		ReferenceNumber: linkResp.Data.Attributes.ReferenceNumber,
		Status:          linkResp.Data.Attributes.Status,
	}, nil
}
