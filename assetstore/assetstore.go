// Package assetstore uploads processed images to the external asset storage
// service and returns their public URLs. Uploads must complete before a
// post references the asset.
package assetstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"media-planner/httpclient"
)

var ErrNotConfigured = errors.New("asset store URL not configured")

// Uploader stores one processed image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// Client talks to the asset store's HTTP upload endpoint.
type Client struct {
	base   *httpclient.BaseClient
	folder string
}

func New(uploadURL, folder string) *Client {
	return &Client{
		base:   httpclient.NewBaseClient(uploadURL),
		folder: folder,
	}
}

// Upload sends the JPEG bytes and returns the secure URL assigned by the
// store.
func (c *Client) Upload(ctx context.Context, data []byte) (string, error) {
	if c.base.BaseURL == "" {
		return "", ErrNotConfigured
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", uuid.NewString()+".jpg")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("folder", c.folder); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "", nil, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("asset store upload: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("asset store upload: decode: %w", err)
	}
	if out.SecureURL == "" {
		return "", errors.New("asset store upload: empty secure_url in response")
	}
	return out.SecureURL, nil
}
