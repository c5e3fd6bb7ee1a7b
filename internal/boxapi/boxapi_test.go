package boxapi

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathEscapesSegments(t *testing.T) {
	require.Equal(t, "/folders/123", Path("folders", "123"))
	require.Equal(t, "/folders/123/items", Path("folders", "123", "items"))
	require.Equal(t, "/folders/a%2Fb", Path("folders", "a/b"))
	require.Equal(t, "/folders/123/metadata/enterprise/reviewStatus",
		Path("folders", "123", "metadata", "enterprise", "reviewStatus"))
}

func TestPathSkipsEmptySegments(t *testing.T) {
	require.Equal(t, "/folders", Path("folders", ""))
	require.Equal(t, "/", Path())
}

func TestQueryRendersScalarTypes(t *testing.T) {
	q := Query(map[string]any{
		"fields":    "name,etag",
		"limit":     100,
		"recursive": true,
		"ratio":     0.5,
	})
	require.Equal(t, "name,etag", q.Get("fields"))
	require.Equal(t, "100", q.Get("limit"))
	require.Equal(t, "true", q.Get("recursive"))
	require.Equal(t, "0.5", q.Get("ratio"))
}

func TestQueryEmptyParams(t *testing.T) {
	require.Nil(t, Query(nil))
	require.Nil(t, Query(map[string]any{}))
}

func TestNewUnexpectedResponseDrainsBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusAccepted,
		Body:       io.NopCloser(strings.NewReader(`{"pending":true}`)),
	}
	err := NewUnexpectedResponse(resp)

	var unexpected *UnexpectedResponseError
	require.ErrorAs(t, err, &unexpected)
	require.Equal(t, http.StatusAccepted, unexpected.StatusCode)
	require.JSONEq(t, `{"pending":true}`, string(unexpected.Body))
	require.Contains(t, unexpected.Error(), "202")
}

func TestDecodeBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"id":"123"}`)),
	}
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, DecodeBody(resp, &out))
	require.Equal(t, "123", out.ID)
}

func TestDecodeBodyEmpty(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusNoContent,
		Body:       io.NopCloser(strings.NewReader("")),
	}
	var out map[string]any
	require.NoError(t, DecodeBody(resp, &out))
	require.Nil(t, out)
}
