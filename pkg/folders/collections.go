package folders

import "context"

// AddToCollection adds a folder to a collection. The folder's current
// collection memberships are fetched first; the update sends the full list
// with each entry reduced to its ID. Adding a collection the folder already
// belongs to is a no-op on the resulting list.
func (c *Client) AddToCollection(ctx context.Context, folderID, collectionID string) (*Folder, error) {
	folder, err := c.Get(ctx, folderID, Params{"fields": "collections"})
	if err != nil {
		return nil, err
	}
	refs := normalizeCollections(folder.Collections)
	if !containsCollection(refs, collectionID) {
		refs = append(refs, CollectionRef{ID: collectionID})
	}
	return c.Update(ctx, folderID, Params{"collections": refs})
}

// RemoveFromCollection removes a folder from a collection, sending back the
// remaining membership list with each entry reduced to its ID.
func (c *Client) RemoveFromCollection(ctx context.Context, folderID, collectionID string) (*Folder, error) {
	folder, err := c.Get(ctx, folderID, Params{"fields": "collections"})
	if err != nil {
		return nil, err
	}
	refs := make([]CollectionRef, 0, len(folder.Collections))
	for _, entry := range folder.Collections {
		if entry.ID != collectionID {
			refs = append(refs, CollectionRef{ID: entry.ID})
		}
	}
	return c.Update(ctx, folderID, Params{"collections": refs})
}

func normalizeCollections(entries []CollectionRef) []CollectionRef {
	refs := make([]CollectionRef, 0, len(entries))
	for _, entry := range entries {
		refs = append(refs, CollectionRef{ID: entry.ID})
	}
	return refs
}

func containsCollection(refs []CollectionRef, id string) bool {
	for _, ref := range refs {
		if ref.ID == id {
			return true
		}
	}
	return false
}
