// Package postclient is a thin client for the post-management HTTP API.
//
// It knows nothing about lifecycle rules or calendar composition; it only
// moves payloads. The bearer credential comes from a session.Session passed
// in at construction, and a missing or expired credential surfaces as a
// plain remote error on the next call, never as a separate signal.
package postclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"media-planner/dto"
	"media-planner/httpclient"
	"media-planner/models"
	"media-planner/session"
)

// ErrNotFound is returned when the target post no longer exists remotely.
var ErrNotFound = errors.New("resource not found")

type Client struct {
	base *httpclient.BaseClient
	sess session.Session
}

// New builds a client for the service at baseURL, e.g. http://localhost:8080.
func New(baseURL string, sess session.Session) *Client {
	return &Client{
		base: httpclient.NewBaseClient(baseURL),
		sess: sess,
	}
}

// NewWithHTTPClient uses a caller-supplied http.Client (nil means default).
func NewWithHTTPClient(httpClient *http.Client, baseURL string, sess session.Session) *Client {
	return &Client{
		base: httpclient.NewBaseClientWithClient(httpClient, baseURL),
		sess: sess,
	}
}

// WithSession returns a copy of the client bound to a different credential.
func (c *Client) WithSession(sess session.Session) *Client {
	return &Client{base: c.base, sess: sess}
}

func (c *Client) do(ctx context.Context, method, relPath string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	req, err := c.base.NewRequest(ctx, method, relPath, query, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.sess.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.base.Do(req)
}

// apiError extracts the {"error": "..."} body the service uses for failures.
func apiError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("post-service %s: status=%d: %s", op, resp.StatusCode, payload.Error)
	}
	return fmt.Errorf("post-service %s: status=%d body=%s", op, resp.StatusCode, string(body))
}

// ListPosts fetches the caller's full post collection, in whatever order
// the backend returns it.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	resp, err := c.do(ctx, http.MethodGet, "/posts", nil, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError("ListPosts", resp)
	}
	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("post-service ListPosts: decode: %w", err)
	}
	return posts, nil
}

// CreatePost submits a draft and returns the stored post.
func (c *Client) CreatePost(ctx context.Context, draft dto.PostDraft) (*models.Post, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, "/posts", nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError("CreatePost", resp)
	}
	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("post-service CreatePost: decode: %w", err)
	}
	return &post, nil
}

// UpdatePost replaces the editable fields of an existing post.
func (c *Client) UpdatePost(ctx context.Context, postID string, draft dto.PostDraft) (*models.Post, error) {
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPut, "/posts/"+postID, nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("post-service UpdatePost %s: %w", postID, ErrNotFound)
	default:
		return nil, apiError("UpdatePost", resp)
	}
	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, fmt.Errorf("post-service UpdatePost: decode: %w", err)
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/posts/"+postID, nil, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("post-service DeletePost %s: %w", postID, ErrNotFound)
	default:
		return apiError("DeletePost", resp)
	}
}

// SendNow triggers an immediate delivery attempt. The call acknowledges the
// trigger only; the resulting sent/failed status is observed on the next
// ListPosts.
func (c *Client) SendNow(ctx context.Context, postID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/posts/"+postID+"/send-now", nil, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("post-service SendNow %s: %w", postID, ErrNotFound)
	default:
		return apiError("SendNow", resp)
	}
}

// UploadImage sends image bytes for processing and storage and returns the
// stored asset URL. It must complete before a create/update references the
// asset.
func (c *Client) UploadImage(ctx context.Context, platform models.Platform, filename string, data []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("files", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := mw.WriteField("platform", string(platform)); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, "/posts/upload", nil, &buf, mw.FormDataContentType())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError("UploadImage", resp)
	}
	var out dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("post-service UploadImage: decode: %w", err)
	}
	return out.ImageURL, nil
}
