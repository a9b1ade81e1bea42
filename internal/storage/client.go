// Package storage is a thin HTTP client for the hosted object storage
// service. Blobs are opaque to this service: put/delete by bucket and path,
// with public URLs derived by convention.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ObjectStore abstracts the object storage operations the service consumes.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, bucket, path string) error
	PublicURL(bucket, path string) string
}

// Client talks to the storage REST API.
type Client struct {
	apiBase    string
	serviceKey string
	httpClient *http.Client
}

var _ ObjectStore = (*Client)(nil)

// NewClient creates a new object storage client.
func NewClient(apiBase, serviceKey string) *Client {
	return &Client{
		apiBase:    strings.TrimRight(apiBase, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload stores a blob and returns its public URL.
func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (string, error) {
	url := fmt.Sprintf("%s/object/%s/%s", c.apiBase, bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return "", fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("storage upload: unexpected status %s", resp.Status)
	}
	return c.PublicURL(bucket, path), nil
}

// Delete removes a blob.
func (c *Client) Delete(ctx context.Context, bucket, path string) error {
	url := fmt.Sprintf("%s/object/%s/%s", c.apiBase, bucket, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("storage delete: unexpected status %s", resp.Status)
	}
	return nil
}

// PublicURL returns the public URL of a blob. The path never carries a
// leading slash or a duplicated bucket prefix.
func (c *Client) PublicURL(bucket, path string) string {
	clean := strings.TrimLeft(path, "/")
	clean = strings.TrimPrefix(clean, bucket+"/")
	return fmt.Sprintf("%s/object/public/%s/%s", c.apiBase, bucket, clean)
}
