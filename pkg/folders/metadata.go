package folders

import (
	"context"
	"errors"
	"net/http"
	"sort"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
	"github.com/rlyonbox/box_sdk_go/internal/httpx"
)

const contentTypeJSONPatch = "application/json-patch+json"

// GetAllMetadata lists every metadata instance attached to a folder.
func (c *Client) GetAllMetadata(ctx context.Context, folderID string) (*AllMetadata, error) {
	var all AllMetadata
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(basePath, folderID, "metadata"), nil, nil, nil, &all); err != nil {
		return nil, err
	}
	return &all, nil
}

// GetMetadata retrieves the metadata instance for a (scope, template) pair.
func (c *Client) GetMetadata(ctx context.Context, folderID, scope, template string) (Metadata, error) {
	var md Metadata
	if err := c.doJSON(ctx, http.MethodGet, metadataPath(folderID, scope, template), nil, nil, nil, &md); err != nil {
		return nil, err
	}
	return md, nil
}

// AddMetadata creates a new metadata instance on a folder. The API answers
// with a conflict when an instance for the same (scope, template) pair
// already exists.
func (c *Client) AddMetadata(ctx context.Context, folderID, scope, template string, data Metadata) (Metadata, error) {
	var md Metadata
	if err := c.doJSON(ctx, http.MethodPost, metadataPath(folderID, scope, template), nil, nil, data, &md); err != nil {
		return nil, err
	}
	return md, nil
}

// UpdateMetadata applies an ordered sequence of JSON-Patch operations to an
// existing metadata instance.
func (c *Client) UpdateMetadata(ctx context.Context, folderID, scope, template string, patch []MetadataPatch) (Metadata, error) {
	header := http.Header{"Content-Type": []string{contentTypeJSONPatch}}
	var md Metadata
	if err := c.doJSON(ctx, http.MethodPut, metadataPath(folderID, scope, template), nil, header, patch, &md); err != nil {
		return nil, err
	}
	return md, nil
}

// SetMetadata creates the metadata instance, falling back to a patch-style
// update when the instance already exists (HTTP 409). The fallback sends one
// add operation per key, in sorted key order. Any other failure propagates
// unchanged and no second call is made.
func (c *Client) SetMetadata(ctx context.Context, folderID, scope, template string, data Metadata) (Metadata, error) {
	md, err := c.AddMetadata(ctx, folderID, scope, template, data)
	if err == nil {
		return md, nil
	}
	var httpErr *httpx.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusConflict {
		return nil, err
	}
	return c.UpdateMetadata(ctx, folderID, scope, template, metadataAddPatch(data))
}

// DeleteMetadata removes the metadata instance for a (scope, template) pair.
func (c *Client) DeleteMetadata(ctx context.Context, folderID, scope, template string) error {
	return c.doJSON(ctx, http.MethodDelete, metadataPath(folderID, scope, template), nil, nil, nil, nil)
}

func metadataPath(folderID, scope, template string) string {
	return boxapi.Path(basePath, folderID, "metadata", scope, template)
}

func metadataAddPatch(data Metadata) []MetadataPatch {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	patch := make([]MetadataPatch, 0, len(keys))
	for _, k := range keys {
		patch = append(patch, MetadataPatch{
			Op:    MetadataAdd,
			Path:  "/" + k,
			Value: data[k],
		})
	}
	return patch
}
