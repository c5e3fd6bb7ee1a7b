package folders

import (
	"context"
	"net/http"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
)

// Lock places a lock on a folder preventing it from being moved or deleted.
func (c *Client) Lock(ctx context.Context, folderID string) (*FolderLock, error) {
	body := map[string]any{
		"folder": map[string]any{
			"type": "folder",
			"id":   folderID,
		},
		"locked_operations": map[string]any{
			"move":   true,
			"delete": true,
		},
	}
	var lock FolderLock
	if err := c.doJSON(ctx, http.MethodPost, boxapi.Path(lockBasePath), nil, nil, body, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

// GetLocks lists the locks held on a folder.
func (c *Client) GetLocks(ctx context.Context, folderID string) (*FolderLockList, error) {
	var locks FolderLockList
	query := boxapi.Query(Params{"folder_id": folderID})
	if err := c.doJSON(ctx, http.MethodGet, boxapi.Path(lockBasePath), query, nil, nil, &locks); err != nil {
		return nil, err
	}
	return &locks, nil
}

// DeleteLock removes a folder lock by its own ID.
func (c *Client) DeleteLock(ctx context.Context, lockID string) error {
	return c.doJSON(ctx, http.MethodDelete, boxapi.Path(lockBasePath, lockID), nil, nil, nil, nil)
}
