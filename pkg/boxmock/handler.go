package boxmock

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rlyonbox/box_sdk_go/pkg/folders"
)

// Handler returns the HTTP surface of the mock service.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Route("/folders", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{folderID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Post("/", s.handleRestore)
			r.Delete("/", s.handleDelete)
			r.Get("/items", s.handleItems)
			r.Get("/collaborations", s.handleCollaborations)
			r.Post("/copy", s.handleCopy)
			r.Get("/trash", s.handleGetTrashed)
			r.Delete("/trash", s.handlePurge)
			r.Get("/metadata", s.handleAllMetadata)
			r.Route("/metadata/{scope}/{template}", func(r chi.Router) {
				r.Get("/", s.handleGetMetadata)
				r.Post("/", s.handleAddMetadata)
				r.Put("/", s.handleUpdateMetadata)
				r.Delete("/", s.handleDeleteMetadata)
			})
			r.Get("/watermark", s.handleGetWatermark)
			r.Put("/watermark", s.handleApplyWatermark)
			r.Delete("/watermark", s.handleRemoveWatermark)
		})
	})

	r.Route("/folder_locks", func(r chi.Router) {
		r.Post("/", s.handleCreateLock)
		r.Get("/", s.handleListLocks)
		r.Delete("/{lockID}", s.handleDeleteLock)
	})

	return r
}

type apiError struct {
	Type    string `json:"type"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{
		Type:    "error",
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// ifMatchOK verifies the If-Match precondition when the header is present.
func ifMatchOK(w http.ResponseWriter, r *http.Request, rec *folderRecord) bool {
	etag := r.Header.Get("If-Match")
	if etag != "" && etag != rec.etagString() {
		writeError(w, http.StatusPreconditionFailed, "precondition_failed", "etag mismatch")
		return false
	}
	return true
}

func (s *Service) activeFolder(w http.ResponseWriter, r *http.Request) *folderRecord {
	id := chi.URLParam(r, "folderID")
	rec, ok := s.records[id]
	if !ok || rec.trashed {
		writeError(w, http.StatusNotFound, "not_found", "folder not found")
		return nil
	}
	return rec
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.renderFolder(rec))
}

func (s *Service) handleItems(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	children := s.childrenOf(rec.id)
	sort.Slice(children, func(i, j int) bool { return children[i].name < children[j].name })

	offset := intQuery(r, "offset", 0)
	limit := intQuery(r, "limit", 100)
	total := len(children)
	if offset > total {
		offset = total
	}
	end := total
	if offset+limit < end {
		end = offset + limit
	}

	items := make([]folders.Item, 0, end-offset)
	for _, child := range children[offset:end] {
		items = append(items, folders.Item{
			Type: "folder",
			ID:   child.id,
			ETag: child.etagString(),
			Name: child.name,
		})
	}
	writeJSON(w, http.StatusOK, folders.ItemCollection{
		TotalCount: total,
		Entries:    items,
		Offset:     offset,
		Limit:      limit,
	})
}

func (s *Service) handleCollaborations(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	writeJSON(w, http.StatusOK, folders.CollaborationList{
		TotalCount: 0,
		Entries:    []folders.Collaboration{},
	})
}

type folderWrite struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Parent      *folders.ItemRef        `json:"parent"`
	Collections []folders.CollectionRef `json:"collections"`
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var body folderWrite
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	if body.Parent == nil || body.Parent.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "parent is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	parent, ok := s.records[body.Parent.ID]
	if !ok || parent.trashed {
		writeError(w, http.StatusNotFound, "not_found", "parent folder not found")
		return
	}
	if s.nameTaken(parent.id, *body.Name, "") {
		writeError(w, http.StatusConflict, "item_name_in_use", "a folder with that name already exists")
		return
	}

	now := s.now()
	rec := &folderRecord{
		id:        s.newID(),
		name:      *body.Name,
		parentID:  parent.id,
		createdAt: now,
		metadata:  make(map[string]folders.Metadata),
	}
	if body.Description != nil {
		rec.description = *body.Description
	}
	rec.modifiedAt = now
	s.records[rec.id] = rec
	writeJSON(w, http.StatusCreated, s.renderFolder(rec))
}

func (s *Service) handleCopy(w http.ResponseWriter, r *http.Request) {
	var body folderWrite
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}
	if body.Parent == nil || body.Parent.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "parent is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	parent, ok := s.records[body.Parent.ID]
	if !ok || parent.trashed {
		writeError(w, http.StatusNotFound, "not_found", "destination folder not found")
		return
	}
	name := rec.name
	if body.Name != nil && *body.Name != "" {
		name = *body.Name
	}
	if s.nameTaken(parent.id, name, "") {
		writeError(w, http.StatusConflict, "item_name_in_use", "a folder with that name already exists")
		return
	}
	dup := s.copyTree(rec, parent.id, name)
	writeJSON(w, http.StatusCreated, s.renderFolder(dup))
}

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body folderWrite
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	if !ifMatchOK(w, r, rec) {
		return
	}

	if body.Parent != nil && body.Parent.ID != "" && body.Parent.ID != rec.parentID {
		if lock := s.lockFor(rec.id); lock != nil && lock.moveLock {
			writeError(w, http.StatusForbidden, "access_denied_insufficient_permissions", "folder is locked against moves")
			return
		}
		dest, ok := s.records[body.Parent.ID]
		if !ok || dest.trashed {
			writeError(w, http.StatusNotFound, "not_found", "destination folder not found")
			return
		}
		if s.nameTaken(dest.id, rec.name, rec.id) {
			writeError(w, http.StatusConflict, "item_name_in_use", "a folder with that name already exists")
			return
		}
		rec.parentID = dest.id
	}
	if body.Name != nil && *body.Name != "" {
		if s.nameTaken(rec.parentID, *body.Name, rec.id) {
			writeError(w, http.StatusConflict, "item_name_in_use", "a folder with that name already exists")
			return
		}
		rec.name = *body.Name
	}
	if body.Description != nil {
		rec.description = *body.Description
	}
	if body.Collections != nil {
		ids := make([]string, 0, len(body.Collections))
		for _, ref := range body.Collections {
			ids = append(ids, ref.ID)
		}
		rec.collections = ids
	}
	rec.touch(s.now())
	writeJSON(w, http.StatusOK, s.renderFolder(rec))
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	if !ifMatchOK(w, r, rec) {
		return
	}
	if lock := s.lockFor(rec.id); lock != nil && lock.deleteLock {
		writeError(w, http.StatusForbidden, "access_denied_insufficient_permissions", "folder is locked against deletes")
		return
	}
	if len(s.childrenOf(rec.id)) > 0 && r.URL.Query().Get("recursive") != "true" {
		writeError(w, http.StatusConflict, "folder_not_empty", "folder is not empty; pass recursive=true")
		return
	}
	s.trashTree(rec)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) trashTree(rec *folderRecord) {
	for _, child := range s.childrenOf(rec.id) {
		s.trashTree(child)
	}
	rec.trashed = true
	rec.touch(s.now())
}

func (s *Service) handleGetTrashed(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := chi.URLParam(r, "folderID")
	rec, ok := s.records[id]
	if !ok || !rec.trashed {
		writeError(w, http.StatusNotFound, "not_found", "folder not in trash")
		return
	}
	writeJSON(w, http.StatusOK, s.renderFolder(rec))
}

func (s *Service) handleRestore(w http.ResponseWriter, r *http.Request) {
	var body folderWrite
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "folderID")
	rec, ok := s.records[id]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "folder not found")
		return
	}
	if !rec.trashed {
		writeError(w, http.StatusConflict, "item_not_trashed", "folder is not in the trash")
		return
	}

	parentID := rec.parentID
	if body.Parent != nil && body.Parent.ID != "" {
		parentID = body.Parent.ID
	}
	parent, ok := s.records[parentID]
	if !ok || parent.trashed {
		writeError(w, http.StatusNotFound, "not_found", "restore destination not found")
		return
	}
	name := rec.name
	if body.Name != nil && *body.Name != "" {
		name = *body.Name
	}
	if s.nameTaken(parent.id, name, rec.id) {
		writeError(w, http.StatusConflict, "item_name_in_use", "a folder with that name already exists")
		return
	}
	rec.parentID = parent.id
	rec.name = name
	rec.trashed = false
	rec.touch(s.now())
	writeJSON(w, http.StatusCreated, s.renderFolder(rec))
}

func (s *Service) handlePurge(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := chi.URLParam(r, "folderID")
	rec, ok := s.records[id]
	if !ok || !rec.trashed {
		writeError(w, http.StatusNotFound, "not_found", "folder not in trash")
		return
	}
	if !ifMatchOK(w, r, rec) {
		return
	}
	s.purgeTree(rec)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) purgeTree(rec *folderRecord) {
	for _, other := range s.records {
		if other.parentID == rec.id && other.id != folders.RootID {
			s.purgeTree(other)
		}
	}
	delete(s.records, rec.id)
}

func (s *Service) nameTaken(parentID, name, excludeID string) bool {
	for _, rec := range s.records {
		if rec.id != excludeID && rec.parentID == parentID && !rec.trashed && rec.name == name && rec.id != folders.RootID {
			return true
		}
	}
	return false
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
