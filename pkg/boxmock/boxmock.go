package boxmock

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rlyonbox/box_sdk_go/pkg/folders"
)

type folderRecord struct {
	id          string
	name        string
	description string
	parentID    string
	etag        int
	trashed     bool
	createdAt   time.Time
	modifiedAt  time.Time
	collections []string
	metadata    map[string]folders.Metadata
	watermark   *watermarkRecord
}

type watermarkRecord struct {
	imprint    string
	createdAt  time.Time
	modifiedAt time.Time
}

type lockRecord struct {
	id         string
	folderID   string
	createdAt  time.Time
	moveLock   bool
	deleteLock bool
}

// Service is an in-memory folder store with the semantics the HTTP handler
// exposes. The zero value is not usable; construct instances with New.
type Service struct {
	mu      sync.RWMutex
	records map[string]*folderRecord
	locks   map[string]*lockRecord
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for timestamps (useful in tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithIDGenerator overrides how new folder and lock IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New returns a Service holding only the root folder.
func New(opts ...Option) *Service {
	s := &Service{
		records: make(map[string]*folderRecord),
		locks:   make(map[string]*lockRecord),
		now: func() time.Time {
			return time.Now().UTC()
		},
		newID: func() string {
			return uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	root := &folderRecord{
		id:        folders.RootID,
		name:      "All Files",
		createdAt: s.now(),
		metadata:  make(map[string]folders.Metadata),
	}
	root.modifiedAt = root.createdAt
	s.records[root.id] = root
	return s
}

// SeedFolder describes one folder in a seed document.
type SeedFolder struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ParentID    string   `json:"parent_id"`
	Description string   `json:"description,omitempty"`
	Collections []string `json:"collections,omitempty"`
}

// Seed inserts the supplied folders. Parents must appear before children.
func (s *Service) Seed(entries []SeedFolder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if strings.TrimSpace(e.ID) == "" || strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("boxmock: seed entry requires id and name")
		}
		parentID := e.ParentID
		if parentID == "" {
			parentID = folders.RootID
		}
		if _, ok := s.records[parentID]; !ok {
			return fmt.Errorf("boxmock: seed entry %q references unknown parent %q", e.ID, parentID)
		}
		rec := &folderRecord{
			id:          e.ID,
			name:        e.Name,
			description: e.Description,
			parentID:    parentID,
			createdAt:   s.now(),
			collections: append([]string(nil), e.Collections...),
			metadata:    make(map[string]folders.Metadata),
		}
		rec.modifiedAt = rec.createdAt
		s.records[e.ID] = rec
	}
	return nil
}

// LoadSeed reads a JSON array of SeedFolder documents from path.
func LoadSeed(path string) ([]SeedFolder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("boxmock: read seed file: %w", err)
	}
	var entries []SeedFolder
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("boxmock: decode seed file: %w", err)
	}
	return entries, nil
}

func (r *folderRecord) touch(now time.Time) {
	r.etag++
	r.modifiedAt = now
}

func (r *folderRecord) etagString() string {
	return strconv.Itoa(r.etag)
}

func (s *Service) renderFolder(rec *folderRecord) *folders.Folder {
	status := "active"
	if rec.trashed {
		status = "trashed"
	}
	f := &folders.Folder{
		Type:        "folder",
		ID:          rec.id,
		ETag:        rec.etagString(),
		Name:        rec.name,
		Description: rec.description,
		CreatedAt:   rec.createdAt.Format(time.RFC3339),
		ModifiedAt:  rec.modifiedAt.Format(time.RFC3339),
		ItemStatus:  status,
	}
	if rec.trashed {
		f.TrashedAt = rec.modifiedAt.Format(time.RFC3339)
	}
	if rec.id != folders.RootID {
		if parent, ok := s.records[rec.parentID]; ok {
			f.Parent = &folders.ItemRef{Type: "folder", ID: parent.id, Name: parent.name}
		}
	}
	for _, cid := range rec.collections {
		f.Collections = append(f.Collections, folders.CollectionRef{
			ID:             cid,
			Type:           "collection",
			CollectionType: "favorites",
		})
	}
	return f
}

func (s *Service) childrenOf(folderID string) []*folderRecord {
	children := make([]*folderRecord, 0)
	for _, rec := range s.records {
		if rec.parentID == folderID && rec.id != folders.RootID && !rec.trashed {
			children = append(children, rec)
		}
	}
	return children
}

func (s *Service) lockFor(folderID string) *lockRecord {
	for _, lock := range s.locks {
		if lock.folderID == folderID {
			return lock
		}
	}
	return nil
}

// copyTree duplicates rec and its active descendants under newParentID.
func (s *Service) copyTree(rec *folderRecord, newParentID, name string) *folderRecord {
	now := s.now()
	dup := &folderRecord{
		id:          s.newID(),
		name:        name,
		description: rec.description,
		parentID:    newParentID,
		createdAt:   now,
		modifiedAt:  now,
		collections: append([]string(nil), rec.collections...),
		metadata:    make(map[string]folders.Metadata),
	}
	for k, v := range rec.metadata {
		md := make(folders.Metadata, len(v))
		for mk, mv := range v {
			md[mk] = mv
		}
		dup.metadata[k] = md
	}
	s.records[dup.id] = dup
	for _, child := range s.childrenOf(rec.id) {
		s.copyTree(child, dup.id, child.name)
	}
	return dup
}

func (s *Service) renderLock(lock *lockRecord) *folders.FolderLock {
	return &folders.FolderLock{
		Type:      "folder_lock",
		ID:        lock.id,
		Folder:    &folders.ItemRef{Type: "folder", ID: lock.folderID},
		CreatedAt: lock.createdAt.Format(time.RFC3339),
		LockType:  "freeze",
		LockedOperations: &folders.LockedOperations{
			Move:   lock.moveLock,
			Delete: lock.deleteLock,
		},
	}
}
