package folders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rlyonbox/box_sdk_go/pkg/folders"
)

func TestRestoreFromTrashRewritesParentID(t *testing.T) {
	ft := newFakeTransport(stub{status: http.StatusCreated, body: `{"id":"123"}`})
	client := folders.NewWithTransport(ft)

	opts := folders.Params{"parent_id": "5", "name": "x"}
	_, err := client.RestoreFromTrash(context.Background(), "123", opts)
	require.NoError(t, err)

	call := ft.calls[0]
	require.Equal(t, http.MethodPost, call.Method)
	require.Equal(t, "/folders/123", call.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal(call.Body, &body))
	require.Equal(t, map[string]any{"parent": map[string]any{"id": "5"}, "name": "x"}, body)

	require.Equal(t, "5", opts["parent_id"])
}

func TestRestoreFromTrashWithoutParentID(t *testing.T) {
	ft := newFakeTransport(stub{status: http.StatusCreated, body: `{"id":"123"}`})
	client := folders.NewWithTransport(ft)

	_, err := client.RestoreFromTrash(context.Background(), "123", nil)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(ft.calls[0].Body, &body))
	require.Empty(t, body)
}

func TestDeletePermanently(t *testing.T) {
	ft := newFakeTransport(stub{status: http.StatusNoContent, body: ""})
	client := folders.NewWithTransport(ft)

	require.NoError(t, client.DeletePermanently(context.Background(), "123", folders.Params{"etag": "4"}))

	call := ft.calls[0]
	require.Equal(t, http.MethodDelete, call.Method)
	require.Equal(t, "/folders/123/trash", call.Path)
	require.Equal(t, "4", call.Header.Get("If-Match"))
	require.Empty(t, call.Query)
	require.Empty(t, call.Body)
}

func TestDeletePermanentlyWithoutEtag(t *testing.T) {
	ft := newFakeTransport(stub{status: http.StatusNoContent, body: ""})
	client := folders.NewWithTransport(ft)

	require.NoError(t, client.DeletePermanently(context.Background(), "123", nil))
	require.Empty(t, ft.calls[0].Header.Get("If-Match"))
}
