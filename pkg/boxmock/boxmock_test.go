package boxmock_test

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlyonbox/box_sdk_go/internal/boxapi"
	"github.com/rlyonbox/box_sdk_go/internal/httpx"
	"github.com/rlyonbox/box_sdk_go/pkg/boxmock"
	"github.com/rlyonbox/box_sdk_go/pkg/folders"
)

func newClient(t *testing.T, svc *boxmock.Service) *folders.Client {
	t.Helper()
	srv := newLocalHTTPServer(t, svc.Handler())
	t.Cleanup(srv.Close)

	client, err := folders.New(srv.URL, httpx.WithRetryPolicy(httpx.RetryPolicy{MaxRetries: 0}))
	require.NoError(t, err)
	return client
}

func TestFolderLifecycle(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	reports, err := client.Create(ctx, folders.RootID, "Reports")
	require.NoError(t, err)
	require.Equal(t, "folder", reports.Type)
	require.Equal(t, "Reports", reports.Name)

	q1, err := client.Create(ctx, reports.ID, "Q1")
	require.NoError(t, err)

	items, err := client.GetItems(ctx, reports.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 1, items.TotalCount)
	require.Equal(t, "Q1", items.Entries[0].Name)

	// Copying into the same parent under the same name conflicts.
	_, err = client.Copy(ctx, q1.ID, reports.ID, nil)
	var httpErr *httpx.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusConflict, httpErr.StatusCode)

	dup, err := client.Copy(ctx, q1.ID, reports.ID, folders.Params{"name": "Q1 copy"})
	require.NoError(t, err)
	require.Equal(t, "Q1 copy", dup.Name)

	archive, err := client.Create(ctx, folders.RootID, "Archive")
	require.NoError(t, err)
	moved, err := client.Move(ctx, dup.ID, archive.ID)
	require.NoError(t, err)
	require.Equal(t, archive.ID, moved.Parent.ID)

	updated, err := client.Update(ctx, q1.ID, folders.Params{
		"description": "first quarter",
		"etag":        q1.ETag,
	})
	require.NoError(t, err)
	require.Equal(t, "first quarter", updated.Description)

	// A stale etag trips the If-Match precondition.
	_, err = client.Update(ctx, q1.ID, folders.Params{"name": "Q1-renamed", "etag": q1.ETag})
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusPreconditionFailed, httpErr.StatusCode)
}

func TestTrashLifecycle(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	folder, err := client.Create(ctx, folders.RootID, "Scratch")
	require.NoError(t, err)

	require.NoError(t, client.Delete(ctx, folder.ID, nil))

	_, err = client.Get(ctx, folder.ID, nil)
	var httpErr *httpx.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)

	trashed, err := client.GetTrashedFolder(ctx, folder.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "trashed", trashed.ItemStatus)

	restored, err := client.RestoreFromTrash(ctx, folder.ID, folders.Params{"name": "Scratch2"})
	require.NoError(t, err)
	require.Equal(t, "Scratch2", restored.Name)
	require.Equal(t, "active", restored.ItemStatus)

	require.NoError(t, client.Delete(ctx, folder.ID, nil))
	require.NoError(t, client.DeletePermanently(ctx, folder.ID, nil))

	_, err = client.GetTrashedFolder(ctx, folder.ID, nil)
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestNonEmptyFolderNeedsRecursiveDelete(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	parent, err := client.Create(ctx, folders.RootID, "Parent")
	require.NoError(t, err)
	_, err = client.Create(ctx, parent.ID, "Child")
	require.NoError(t, err)

	err = client.Delete(ctx, parent.ID, nil)
	var httpErr *httpx.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusConflict, httpErr.StatusCode)

	require.NoError(t, client.Delete(ctx, parent.ID, folders.Params{"recursive": true}))
}

func TestMetadataLifecycle(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	folder, err := client.Create(ctx, folders.RootID, "Tagged")
	require.NoError(t, err)

	md, err := client.AddMetadata(ctx, folder.ID, folders.ScopeEnterprise, "reviewStatus", folders.Metadata{"state": "open"})
	require.NoError(t, err)
	require.Equal(t, "open", md["state"])
	require.Equal(t, "enterprise", md["$scope"])

	// SetMetadata hits the conflict path and falls back to a patch update.
	md, err = client.SetMetadata(ctx, folder.ID, folders.ScopeEnterprise, "reviewStatus", folders.Metadata{"state": "closed", "reviewer": "kim"})
	require.NoError(t, err)
	require.Equal(t, "closed", md["state"])
	require.Equal(t, "kim", md["reviewer"])

	all, err := client.GetAllMetadata(ctx, folder.ID)
	require.NoError(t, err)
	require.Len(t, all.Entries, 1)

	require.NoError(t, client.DeleteMetadata(ctx, folder.ID, folders.ScopeEnterprise, "reviewStatus"))
	_, err = client.GetMetadata(ctx, folder.ID, folders.ScopeEnterprise, "reviewStatus")
	var httpErr *httpx.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusNotFound, httpErr.StatusCode)
}

func TestWatermarkLifecycle(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	folder, err := client.Create(ctx, folders.RootID, "Stamped")
	require.NoError(t, err)

	_, err = client.GetWatermark(ctx, folder.ID, nil)
	var unexpected *boxapi.UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, http.StatusNotFound, unexpected.StatusCode)

	wm, err := client.ApplyWatermark(ctx, folder.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "default", wm.Imprint)

	wm, err = client.GetWatermark(ctx, folder.ID, nil)
	require.NoError(t, err)
	require.Equal(t, "default", wm.Imprint)

	require.NoError(t, client.RemoveWatermark(ctx, folder.ID))
	_, err = client.GetWatermark(ctx, folder.ID, nil)
	require.ErrorAs(t, err, &unexpected)
}

func TestFolderLocksPreventMoveAndDelete(t *testing.T) {
	client := newClient(t, boxmock.New())
	ctx := context.Background()

	folder, err := client.Create(ctx, folders.RootID, "Frozen")
	require.NoError(t, err)
	dest, err := client.Create(ctx, folders.RootID, "Elsewhere")
	require.NoError(t, err)

	lock, err := client.Lock(ctx, folder.ID)
	require.NoError(t, err)
	require.NotEmpty(t, lock.ID)
	require.True(t, lock.LockedOperations.Move)
	require.True(t, lock.LockedOperations.Delete)

	locks, err := client.GetLocks(ctx, folder.ID)
	require.NoError(t, err)
	require.Equal(t, 1, locks.TotalCount)

	var httpErr *httpx.HTTPError
	_, err = client.Move(ctx, folder.ID, dest.ID)
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.StatusCode)

	err = client.Delete(ctx, folder.ID, nil)
	require.ErrorAs(t, err, &httpErr)
	require.Equal(t, http.StatusForbidden, httpErr.StatusCode)

	require.NoError(t, client.DeleteLock(ctx, lock.ID))
	require.NoError(t, client.Delete(ctx, folder.ID, nil))
}

func TestCollectionsRoundTrip(t *testing.T) {
	svc := boxmock.New()
	require.NoError(t, svc.Seed([]boxmock.SeedFolder{
		{ID: "f1", Name: "Pinned", Collections: []string{"1", "2"}},
	}))
	client := newClient(t, svc)
	ctx := context.Background()

	folder, err := client.AddToCollection(ctx, "f1", "3")
	require.NoError(t, err)
	require.Len(t, folder.Collections, 3)

	folder, err = client.RemoveFromCollection(ctx, "f1", "2")
	require.NoError(t, err)
	require.Len(t, folder.Collections, 2)
	for _, ref := range folder.Collections {
		require.NotEqual(t, "2", ref.ID)
	}
}

type testServer struct {
	URL      string
	listener net.Listener
	server   *http.Server
}

func (s *testServer) Close() {
	_ = s.server.Shutdown(context.Background())
	_ = s.listener.Close()
}

func newLocalHTTPServer(t *testing.T, handler http.Handler) *testServer {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("network disabled for tests: %v", err)
	}
	srv := &http.Server{Handler: handler}
	ts := &testServer{
		URL:      "http://" + ln.Addr().String(),
		listener: ln,
		server:   srv,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			t.Logf("test server serve error: %v", err)
		}
	}()
	return ts
}
