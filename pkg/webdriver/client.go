// Package webdriver is a W3C WebDriver client implementing the driver and
// element contracts against a live browser endpoint (chromedriver,
// geckodriver, a Selenium grid).
package webdriver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client communicates with a WebDriver server.
type Client struct {
	http      *http.Client
	baseURL   string
	sessionID string
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SessionID returns the current session ID.
func (c *Client) SessionID() string {
	return c.sessionID
}

// HasSession returns true if a session is active.
func (c *Client) HasSession() bool {
	return c.sessionID != ""
}

// request makes an HTTP request to the server.
func (c *Client) request(method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Value struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			} `json:"value"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Value.Error != "" {
			return nil, &ResponseError{Status: resp.StatusCode, Code: errResp.Value.Error, Message: errResp.Value.Message}
		}
		return nil, &ResponseError{Status: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// value decodes the "value" member of a response into v.
func (c *Client) value(method, path string, body interface{}, v interface{}) error {
	data, err := c.request(method, path, body)
	if err != nil {
		return err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if v == nil || len(resp.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Value, v); err != nil {
		return fmt.Errorf("parse value: %w", err)
	}
	return nil
}

// sessionPath returns path with session ID prefix.
func (c *Client) sessionPath(path string) string {
	return fmt.Sprintf("/session/%s%s", c.sessionID, path)
}

// Status checks if the server is ready.
func (c *Client) Status() (bool, error) {
	var status struct {
		Ready   bool   `json:"ready"`
		Message string `json:"message"`
	}
	if err := c.value("GET", "/status", nil, &status); err != nil {
		return false, err
	}
	return status.Ready, nil
}

// CreateSession starts a new browser session.
func (c *Client) CreateSession(caps Capabilities) error {
	var req SessionRequest
	req.Capabilities.AlwaysMatch = caps
	if req.Capabilities.AlwaysMatch == nil {
		req.Capabilities.AlwaysMatch = Capabilities{}
	}

	data, err := c.request("POST", "/session", req)
	if err != nil {
		return err
	}

	var resp struct {
		SessionID string `json:"sessionId"`
		Value     struct {
			SessionID string `json:"sessionId"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("parse session response: %w", err)
	}

	// W3C puts the id under value; the legacy protocol at top level.
	id := resp.Value.SessionID
	if id == "" {
		id = resp.SessionID
	}
	if id == "" {
		return fmt.Errorf("no session ID in response")
	}

	c.sessionID = id
	return nil
}

// DeleteSession ends the current session.
func (c *Client) DeleteSession() error {
	if c.sessionID == "" {
		return nil
	}

	_, err := c.request("DELETE", c.sessionPath(""), nil)
	c.sessionID = ""
	return err
}

// Close ends the session and cleans up.
func (c *Client) Close() error {
	return c.DeleteSession()
}

// Navigate loads url in the current browsing context.
func (c *Client) Navigate(url string) error {
	_, err := c.request("POST", c.sessionPath("/url"), NavigateRequest{URL: url})
	return err
}

// CurrentURL returns the URL of the current page.
func (c *Client) CurrentURL() (string, error) {
	var url string
	err := c.value("GET", c.sessionPath("/url"), nil, &url)
	return url, err
}

// Source returns the serialized DOM of the current page.
func (c *Client) Source() (string, error) {
	var source string
	err := c.value("GET", c.sessionPath("/source"), nil, &source)
	return source, err
}
