package folders

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
	"github.com/rlyonbox/box_sdk_go/internal/httpx"
)

const (
	basePath     = "folders"
	lockBasePath = "folder_locks"

	headerIfMatch = "If-Match"
	optionETag    = "etag"
)

// Transport executes a single outbound HTTP request. *httpx.Client satisfies
// it; tests and mocks may substitute their own implementation.
type Transport interface {
	Do(ctx context.Context, req *httpx.Request) (*http.Response, error)
}

// Client provides access to the folder endpoints of the Box content API.
// It holds no state beyond the transport reference, so a single instance is
// safe for concurrent use.
type Client struct {
	transport Transport
}

// New constructs a Client bound to the provided base URL.
func New(baseURL string, opts ...httpx.Option) (*Client, error) {
	cl, err := httpx.NewClient(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return NewWithHTTPClient(cl), nil
}

// NewWithHTTPClient wraps an existing httpx.Client.
func NewWithHTTPClient(httpClient *httpx.Client) *Client {
	return &Client{transport: httpClient}
}

// NewWithTransport allows callers to supply a custom transport (e.g., mocks).
func NewWithTransport(t Transport) *Client {
	return &Client{transport: t}
}

// Get retrieves a folder. Options are forwarded verbatim as query parameters
// (e.g., fields to select which attributes are returned).
func (c *Client) Get(ctx context.Context, folderID string, opts Params) (*Folder, error) {
	var folder Folder
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(basePath, folderID), boxapi.Query(opts), nil, nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// GetItems lists the contents of a folder.
func (c *Client) GetItems(ctx context.Context, folderID string, opts Params) (*ItemCollection, error) {
	var items ItemCollection
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(basePath, folderID, "items"), boxapi.Query(opts), nil, nil, &items); err != nil {
		return nil, err
	}
	return &items, nil
}

// GetCollaborations lists the collaborations on a folder.
func (c *Client) GetCollaborations(ctx context.Context, folderID string, opts Params) (*CollaborationList, error) {
	var collabs CollaborationList
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(basePath, folderID, "collaborations"), boxapi.Query(opts), nil, nil, &collabs); err != nil {
		return nil, err
	}
	return &collabs, nil
}

// Create creates a new child folder under the given parent.
func (c *Client) Create(ctx context.Context, parentID, name string) (*Folder, error) {
	body := map[string]any{
		"name":   name,
		"parent": map[string]any{"id": parentID},
	}
	var folder Folder
	if err := c.doJSON(ctx, http.MethodPost, boxapi.Path(basePath), nil, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Copy copies a folder into a new parent. Additional options are forwarded
// as body fields alongside the injected parent reference.
func (c *Client) Copy(ctx context.Context, folderID, newParentID string, opts Params) (*Folder, error) {
	body := opts.clone()
	body["parent"] = map[string]any{"id": newParentID}
	var folder Folder
	if err := c.doJSON(ctx, http.MethodPost, boxapi.Path(basePath, folderID, "copy"), nil, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Update applies the given updates to a folder. When updates carries an
// "etag" entry, the request is made conditional via an If-Match header and
// the etag is stripped from the outbound body.
func (c *Client) Update(ctx context.Context, folderID string, updates Params) (*Folder, error) {
	body := updates.clone()
	var header http.Header
	if etag, ok := updates.stringValue(optionETag); ok {
		header = http.Header{headerIfMatch: []string{etag}}
		body = updates.without(optionETag)
	}
	var folder Folder
	if err := c.doJSON(ctx, http.MethodPut, boxapi.Path(basePath, folderID), nil, header, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Move moves a folder into a new parent.
func (c *Client) Move(ctx context.Context, folderID, newParentID string) (*Folder, error) {
	body := map[string]any{
		"parent": map[string]any{"id": newParentID},
	}
	var folder Folder
	if err := c.doJSON(ctx, http.MethodPut, boxapi.Path(basePath, folderID), nil, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Delete moves a folder to the trash. The If-Match/etag handling mirrors
// Update, applied to the query options instead of a body.
func (c *Client) Delete(ctx context.Context, folderID string, opts Params) error {
	query := opts
	var header http.Header
	if etag, ok := opts.stringValue(optionETag); ok {
		header = http.Header{headerIfMatch: []string{etag}}
		query = opts.without(optionETag)
	}
	return c.doJSON(ctx, http.MethodDelete, boxapi.Path(basePath, folderID), boxapi.Query(query), header, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, header http.Header, body any, out any) error {
	if c == nil || c.transport == nil {
		return fmt.Errorf("folders: client is nil")
	}
	req := &httpx.Request{
		Method: method,
		Path:   path,
		Query:  query,
		Header: header,
	}
	if body != nil {
		reader, contentType, err := httpx.WithJSONBody(body)
		if err != nil {
			return fmt.Errorf("folders: encode request body: %w", err)
		}
		if req.Header == nil {
			req.Header = make(http.Header)
		}
		if req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Body = reader
	}
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		boxapi.DiscardBody(resp)
		return nil
	}
	return boxapi.DecodeBody(resp, out)
}
