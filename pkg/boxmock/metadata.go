package boxmock

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rlyonbox/box_sdk_go/pkg/folders"
)

func metadataKey(scope, template string) string {
	return scope + "/" + template
}

func (s *Service) handleAllMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	keys := make([]string, 0, len(rec.metadata))
	for k := range rec.metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]folders.Metadata, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, copyMetadata(rec.metadata[k]))
	}
	writeJSON(w, http.StatusOK, folders.AllMetadata{
		Entries: entries,
		Limit:   100,
	})
}

func (s *Service) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	md, ok := rec.metadata[metadataKey(chi.URLParam(r, "scope"), chi.URLParam(r, "template"))]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no metadata instance for template")
		return
	}
	writeJSON(w, http.StatusOK, md)
}

func (s *Service) handleAddMetadata(w http.ResponseWriter, r *http.Request) {
	var data folders.Metadata
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	scope := chi.URLParam(r, "scope")
	template := chi.URLParam(r, "template")
	key := metadataKey(scope, template)
	if _, exists := rec.metadata[key]; exists {
		writeError(w, http.StatusConflict, "tuple_already_exists", "metadata instance already exists")
		return
	}
	md := copyMetadata(data)
	md["$scope"] = scope
	md["$template"] = template
	md["$parent"] = "folder_" + rec.id
	rec.metadata[key] = md
	writeJSON(w, http.StatusCreated, md)
}

func (s *Service) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json-patch+json") {
		writeError(w, http.StatusBadRequest, "bad_request", "expected application/json-patch+json")
		return
	}
	var patch []folders.MetadataPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed patch")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	key := metadataKey(chi.URLParam(r, "scope"), chi.URLParam(r, "template"))
	md, ok := rec.metadata[key]
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "no metadata instance for template")
		return
	}

	updated := copyMetadata(md)
	for _, op := range patch {
		field := strings.TrimPrefix(op.Path, "/")
		switch op.Op {
		case folders.MetadataAdd, folders.MetadataReplace:
			updated[field] = op.Value
		case folders.MetadataRemove:
			delete(updated, field)
		case folders.MetadataTest:
			if current, ok := updated[field]; !ok || !jsonEqual(current, op.Value) {
				writeError(w, http.StatusBadRequest, "bad_request", "test operation failed")
				return
			}
		default:
			writeError(w, http.StatusBadRequest, "bad_request", "unsupported patch op "+op.Op)
			return
		}
	}
	rec.metadata[key] = updated
	writeJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteMetadata(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	key := metadataKey(chi.URLParam(r, "scope"), chi.URLParam(r, "template"))
	if _, ok := rec.metadata[key]; !ok {
		writeError(w, http.StatusNotFound, "not_found", "no metadata instance for template")
		return
	}
	delete(rec.metadata, key)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGetWatermark(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	if rec.watermark == nil {
		writeError(w, http.StatusNotFound, "not_found", "folder has no watermark")
		return
	}
	writeJSON(w, http.StatusOK, renderWatermark(rec.watermark))
}

func (s *Service) handleApplyWatermark(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Watermark struct {
			Imprint string `json:"imprint"`
		} `json:"watermark"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}
	if body.Watermark.Imprint == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "imprint is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	now := s.now()
	status := http.StatusOK
	if rec.watermark == nil {
		rec.watermark = &watermarkRecord{createdAt: now}
		status = http.StatusCreated
	}
	rec.watermark.imprint = body.Watermark.Imprint
	rec.watermark.modifiedAt = now
	writeJSON(w, status, renderWatermark(rec.watermark))
}

func (s *Service) handleRemoveWatermark(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.activeFolder(w, r)
	if rec == nil {
		return
	}
	if rec.watermark == nil {
		writeError(w, http.StatusNotFound, "not_found", "folder has no watermark")
		return
	}
	rec.watermark = nil
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleCreateLock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Folder struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"folder"`
		LockedOperations struct {
			Move   bool `json:"move"`
			Delete bool `json:"delete"`
		} `json:"locked_operations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "malformed body")
		return
	}
	if body.Folder.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "folder reference is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[body.Folder.ID]
	if !ok || rec.trashed {
		writeError(w, http.StatusNotFound, "not_found", "folder not found")
		return
	}
	if s.lockFor(rec.id) != nil {
		writeError(w, http.StatusConflict, "conflict", "folder already has a lock")
		return
	}
	lock := &lockRecord{
		id:         s.newID(),
		folderID:   rec.id,
		createdAt:  s.now(),
		moveLock:   body.LockedOperations.Move,
		deleteLock: body.LockedOperations.Delete,
	}
	s.locks[lock.id] = lock
	writeJSON(w, http.StatusOK, s.renderLock(lock))
}

func (s *Service) handleListLocks(w http.ResponseWriter, r *http.Request) {
	folderID := r.URL.Query().Get("folder_id")
	if folderID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "folder_id is required")
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]folders.FolderLock, 0, 1)
	if lock := s.lockFor(folderID); lock != nil {
		entries = append(entries, *s.renderLock(lock))
	}
	writeJSON(w, http.StatusOK, folders.FolderLockList{
		TotalCount: len(entries),
		Entries:    entries,
	})
}

func (s *Service) handleDeleteLock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lockID := chi.URLParam(r, "lockID")
	if _, ok := s.locks[lockID]; !ok {
		writeError(w, http.StatusNotFound, "not_found", "lock not found")
		return
	}
	delete(s.locks, lockID)
	w.WriteHeader(http.StatusNoContent)
}

func renderWatermark(wm *watermarkRecord) map[string]any {
	return map[string]any{
		"watermark": folders.Watermark{
			CreatedAt:  wm.createdAt.Format(time.RFC3339),
			ModifiedAt: wm.modifiedAt.Format(time.RFC3339),
			Imprint:    wm.imprint,
		},
	}
}

func copyMetadata(md folders.Metadata) folders.Metadata {
	dst := make(folders.Metadata, len(md))
	for k, v := range md {
		dst[k] = v
	}
	return dst
}

func jsonEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(aj) == string(bj)
}
