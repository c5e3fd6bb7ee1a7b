package folders

// RootID addresses the root container of an account.
const RootID = "0"

// Params is an open bag of request options serialized into query parameters
// or body fields, keys verbatim. Operations never mutate the caller's map;
// etag extraction and parent injection happen on copies.
type Params map[string]any

func (p Params) clone() Params {
	if p == nil {
		return Params{}
	}
	dst := make(Params, len(p))
	for k, v := range p {
		dst[k] = v
	}
	return dst
}

func (p Params) without(key string) Params {
	dst := p.clone()
	delete(dst, key)
	return dst
}

func (p Params) stringValue(key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ItemRef identifies another API object by type and ID.
type ItemRef struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserRef identifies a user attached to a collaboration or lock.
type UserRef struct {
	Type  string `json:"type,omitempty"`
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Login string `json:"login,omitempty"`
}

// Folder describes a folder object returned by the API. Fields not requested
// via the fields query parameter are left at their zero value.
type Folder struct {
	Type           string          `json:"type,omitempty"`
	ID             string          `json:"id"`
	ETag           string          `json:"etag,omitempty"`
	Name           string          `json:"name,omitempty"`
	Description    string          `json:"description,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
	ModifiedAt     string          `json:"modified_at,omitempty"`
	TrashedAt      string          `json:"trashed_at,omitempty"`
	ItemStatus     string          `json:"item_status,omitempty"`
	Parent         *ItemRef        `json:"parent,omitempty"`
	SharedLink     *SharedLink     `json:"shared_link,omitempty"`
	Collections    []CollectionRef `json:"collections,omitempty"`
	ItemCollection *ItemCollection `json:"item_collection,omitempty"`
}

// Item is an entry of a folder listing (file, folder, or web link).
type Item struct {
	Type       string   `json:"type,omitempty"`
	ID         string   `json:"id"`
	ETag       string   `json:"etag,omitempty"`
	Name       string   `json:"name,omitempty"`
	Parent     *ItemRef `json:"parent,omitempty"`
	ItemStatus string   `json:"item_status,omitempty"`
}

// ItemCollection is a paginated listing of folder contents.
type ItemCollection struct {
	TotalCount int    `json:"total_count"`
	Entries    []Item `json:"entries"`
	Offset     int    `json:"offset,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// Collaboration grants a user or group a role on a folder.
type Collaboration struct {
	Type         string   `json:"type,omitempty"`
	ID           string   `json:"id"`
	Role         string   `json:"role,omitempty"`
	Status       string   `json:"status,omitempty"`
	AccessibleBy *UserRef `json:"accessible_by,omitempty"`
	CreatedBy    *UserRef `json:"created_by,omitempty"`
}

// CollaborationList is the envelope returned when listing collaborations.
type CollaborationList struct {
	TotalCount int             `json:"total_count"`
	Entries    []Collaboration `json:"entries"`
}

// CollectionRef links a folder to a collection. When sent back to the API,
// only the ID is forwarded.
type CollectionRef struct {
	ID             string `json:"id"`
	Type           string `json:"type,omitempty"`
	Name           string `json:"name,omitempty"`
	CollectionType string `json:"collection_type,omitempty"`
}

// Shared link access levels.
const (
	SharedLinkAccessOpen          = "open"
	SharedLinkAccessCompany       = "company"
	SharedLinkAccessCollaborators = "collaborators"
)

// SharedLink describes a folder's shared link. Optional fields use pointers
// so that explicit nulls survive the round trip.
type SharedLink struct {
	URL         string                 `json:"url,omitempty"`
	Access      *string                `json:"access,omitempty"`
	Password    *string                `json:"password,omitempty"`
	UnsharedAt  *string                `json:"unshared_at,omitempty"`
	VanityName  *string                `json:"vanity_name,omitempty"`
	Permissions *SharedLinkPermissions `json:"permissions,omitempty"`
}

// SharedLinkPermissions restricts what shared link recipients may do.
// CanView may only ever be set to true by the API.
type SharedLinkPermissions struct {
	CanView     *bool `json:"can_view,omitempty"`
	CanDownload *bool `json:"can_download,omitempty"`
}

// Metadata is a metadata instance scoped by a (scope, template) pair.
type Metadata map[string]any

// AllMetadata is the envelope returned when listing every metadata instance
// attached to a folder.
type AllMetadata struct {
	Entries []Metadata `json:"entries"`
	Limit   int        `json:"limit,omitempty"`
}

// Metadata scopes.
const (
	ScopeGlobal     = "global"
	ScopeEnterprise = "enterprise"
)

// JSON-Patch operation names accepted by UpdateMetadata.
const (
	MetadataAdd     = "add"
	MetadataReplace = "replace"
	MetadataRemove  = "remove"
	MetadataTest    = "test"
)

// MetadataPatch is a single JSON-Patch style metadata update step.
type MetadataPatch struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Watermark describes the watermark applied to a folder.
type Watermark struct {
	CreatedAt  string `json:"created_at,omitempty"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Imprint    string `json:"imprint,omitempty"`
}

// LockedOperations lists the operations prevented by a folder lock.
type LockedOperations struct {
	Move   bool `json:"move"`
	Delete bool `json:"delete"`
}

// FolderLock prevents move and delete operations on a folder.
type FolderLock struct {
	Type             string            `json:"type,omitempty"`
	ID               string            `json:"id"`
	Folder           *ItemRef          `json:"folder,omitempty"`
	CreatedBy        *UserRef          `json:"created_by,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
	LockType         string            `json:"lock_type,omitempty"`
	LockedOperations *LockedOperations `json:"locked_operations,omitempty"`
}

// FolderLockList is the envelope returned when listing folder locks.
type FolderLockList struct {
	TotalCount int          `json:"total_count"`
	Entries    []FolderLock `json:"entries"`
}
