package folders_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rlyonbox/box_sdk_go/internal/httpx"
)

// recordedCall captures one outbound request for later assertions.
type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type stub struct {
	status int
	body   string
	err    error
}

// fakeTransport replays scripted results while recording every request the
// client issues, the way the remote API would see it.
type fakeTransport struct {
	results []stub
	calls   []recordedCall
}

func newFakeTransport(results ...stub) *fakeTransport {
	return &fakeTransport{results: results}
}

func (f *fakeTransport) Do(ctx context.Context, req *httpx.Request) (*http.Response, error) {
	call := recordedCall{
		Method: req.Method,
		Path:   req.Path,
		Query:  req.Query,
		Header: req.Header,
	}
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		call.Body = data
	}
	f.calls = append(f.calls, call)

	idx := len(f.calls) - 1
	res := stub{status: http.StatusOK, body: "{}"}
	if idx < len(f.results) {
		res = f.results[idx]
	}
	if res.err != nil {
		return nil, res.err
	}
	return &http.Response{
		StatusCode: res.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(res.body)),
	}, nil
}
