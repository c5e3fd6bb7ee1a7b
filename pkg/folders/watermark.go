package folders

import (
	"context"
	"errors"
	"net/http"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
	"github.com/rlyonbox/box_sdk_go/internal/httpx"
)

const defaultImprint = "default"

type watermarkEnvelope struct {
	Watermark Watermark `json:"watermark"`
}

// GetWatermark retrieves the watermark on a folder, unwrapping the watermark
// object from the response envelope. Any response other than 200 surfaces as
// a *boxapi.UnexpectedResponseError, never as the raw response.
func (c *Client) GetWatermark(ctx context.Context, folderID string, opts Params) (*Watermark, error) {
	if c == nil || c.transport == nil {
		return nil, errors.New("folders: client is nil")
	}
	resp, err := c.transport.Do(ctx, &httpx.Request{
		Method: http.MethodGet,
		Path:   boxapi.Path(basePath, folderID, "watermark"),
		Query:  boxapi.Query(opts),
	})
	if err != nil {
		var httpErr *httpx.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &boxapi.UnexpectedResponseError{
				StatusCode: httpErr.StatusCode,
				Body:       httpErr.Body,
			}
		}
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, boxapi.NewUnexpectedResponse(resp)
	}
	var envelope watermarkEnvelope
	if err := boxapi.DecodeBody(resp, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Watermark, nil
}

// ApplyWatermark applies a watermark to a folder. The imprint defaults to
// "default"; caller-supplied options are merged in and win on collision.
func (c *Client) ApplyWatermark(ctx context.Context, folderID string, opts Params) (*Watermark, error) {
	watermark := map[string]any{"imprint": defaultImprint}
	for k, v := range opts {
		watermark[k] = v
	}
	body := map[string]any{"watermark": watermark}

	var envelope watermarkEnvelope
	if err := c.doJSON(ctx, http.MethodPut, boxapi.Path(basePath, folderID, "watermark"), nil, nil, body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Watermark, nil
}

// RemoveWatermark removes the watermark from a folder.
func (c *Client) RemoveWatermark(ctx context.Context, folderID string) error {
	return c.doJSON(ctx, http.MethodDelete, boxapi.Path(basePath, folderID, "watermark"), nil, nil, nil, nil)
}
