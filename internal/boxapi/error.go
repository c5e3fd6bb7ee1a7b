package boxapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UnexpectedResponseError is returned when the remote service answers with a
// status code outside the contract of the operation that was issued.
type UnexpectedResponseError struct {
	StatusCode int
	Body       []byte
}

func (e *UnexpectedResponseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("boxapi: unexpected API response, status=%d", e.StatusCode)
}

// NewUnexpectedResponse drains resp and wraps it into an UnexpectedResponseError.
func NewUnexpectedResponse(resp *http.Response) error {
	body, _ := readAndClose(resp)
	return &UnexpectedResponseError{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}

// DecodeBody drains, closes, and JSON-decodes a response body into out.
func DecodeBody(resp *http.Response, out any) error {
	data, err := readAndClose(resp)
	if err != nil {
		return fmt.Errorf("boxapi: read response body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("boxapi: decode response body: %w", err)
	}
	return nil
}

// DiscardBody drains and closes a response body whose content is not needed.
func DiscardBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = readAndClose(resp)
	}
}

func readAndClose(resp *http.Response) ([]byte, error) {
	if resp == nil || resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return data, nil
}
