package folders

import (
	"fmt"
	"os"
	"strings"

	"github.com/rlyonbox/box_sdk_go/internal/httpx"
)

const (
	envAPIURL      = "BOX_API_URL"
	envAccessToken = "BOX_ACCESS_TOKEN"
)

// NewFromEnv initialises a Client from environment variables. BOX_API_URL is
// required; BOX_ACCESS_TOKEN, when set, is sent as a bearer token.
func NewFromEnv() (*Client, error) {
	baseURL := strings.TrimSpace(os.Getenv(envAPIURL))
	if baseURL == "" {
		return nil, fmt.Errorf("folders: %s is required", envAPIURL)
	}
	opts := []httpx.Option{}
	if token := strings.TrimSpace(os.Getenv(envAccessToken)); token != "" {
		opts = append(opts, httpx.WithAuthToken(token))
	}
	client, err := New(baseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("folders: init HTTP client: %w", err)
	}
	return client, nil
}
