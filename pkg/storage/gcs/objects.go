package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Upload writes the payload as a media upload and returns the stored object
// metadata. An empty bucket falls back to the client default.
func (c *Client) Upload(ctx context.Context, bucket, object, contentType string, payload []byte) (*Object, error) {
	if c == nil || c.tokenSource == nil {
		return nil, errors.New("gcs client not initialized")
	}
	if bucket == "" {
		bucket = c.defaultBucket
	}
	if object == "" {
		return nil, errors.New("object name is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	token, err := c.tokenSource.Token(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf(
		"%s/b/%s/o?uploadType=media&name=%s",
		uploadBase,
		url.PathEscape(bucket),
		url.QueryEscape(object),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		if len(b) > 0 {
			return nil, fmt.Errorf("gcs upload failed: %s: %s", resp.Status, strings.TrimSpace(string(b)))
		}
		return nil, fmt.Errorf("gcs upload failed: %s", resp.Status)
	}

	return &Object{
		Bucket:    bucket,
		Name:      object,
		SizeBytes: int64(len(payload)),
	}, nil
}

// Object describes a stored blob.
type Object struct {
	Bucket    string
	Name      string
	SizeBytes int64
}

// PublicURL returns the unauthenticated download URL. The bucket must grant
// allUsers read access for the link to work.
func (o *Object) PublicURL() string {
	if o == nil {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, o.Bucket, escapeObjectPath(o.Name))
}

func escapeObjectPath(name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
