package folders

import (
	"context"
	"net/http"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
)

// GetTrashedFolder retrieves a folder that has been moved to the trash.
func (c *Client) GetTrashedFolder(ctx context.Context, folderID string, opts Params) (*Folder, error) {
	var folder Folder
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(basePath, folderID, "trash"), boxapi.Query(opts), nil, nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// RestoreFromTrash restores a folder out of the trash. A "parent_id" option
// is rewritten into the API's parent reference shape; other options are
// forwarded as body fields.
func (c *Client) RestoreFromTrash(ctx context.Context, folderID string, opts Params) (*Folder, error) {
	body := opts.clone()
	if parentID, ok := opts.stringValue("parent_id"); ok {
		body = opts.without("parent_id")
		body["parent"] = map[string]any{"id": parentID}
	}
	var folder Folder
	if err := c.doJSON(ctx, http.MethodPost, boxapi.Path(basePath, folderID), nil, nil, body, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeletePermanently removes a trashed folder for good. When opts carries an
// "etag" entry the request is made conditional via If-Match; no other option
// is forwarded since the endpoint accepts neither query nor body.
func (c *Client) DeletePermanently(ctx context.Context, folderID string, opts Params) error {
	var header http.Header
	if etag, ok := opts.stringValue(optionETag); ok {
		header = http.Header{headerIfMatch: []string{etag}}
	}
	return c.doJSON(ctx, http.MethodDelete, boxapi.Path(basePath, folderID, "trash"), nil, header, nil, nil)
}
