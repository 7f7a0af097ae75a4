package webdriver

import (
	"encoding/json"
	"errors"
	"fmt"
)

// w3cElementKey is the W3C web element identifier key.
const w3cElementKey = "element-6066-11e4-a52e-4f735466cecf"

// Capabilities are W3C capabilities sent as alwaysMatch.
type Capabilities map[string]interface{}

// SessionRequest is the new-session payload.
type SessionRequest struct {
	Capabilities struct {
		AlwaysMatch Capabilities `json:"alwaysMatch"`
	} `json:"capabilities"`
}

// FindElementRequest is the payload of every find command.
type FindElementRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// NavigateRequest is the payload of the navigate command.
type NavigateRequest struct {
	URL string `json:"url"`
}

// Response is the generic W3C response envelope.
type Response struct {
	Value json.RawMessage `json:"value"`
}

// elementRef decodes a web element reference in either the W3C or the
// legacy JSON wire form.
type elementRef map[string]string

func (r elementRef) id() string {
	if id := r[w3cElementKey]; id != "" {
		return id
	}
	return r["ELEMENT"]
}

// ResponseError is a W3C error response.
type ResponseError struct {
	Status  int
	Code    string // W3C error code, e.g. "no such element"
	Message string
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoSuchElement reports whether err is a W3C "no such element" error.
func IsNoSuchElement(err error) bool {
	var re *ResponseError
	return errors.As(err, &re) && re.Code == "no such element"
}
