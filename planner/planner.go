// Package planner owns the post lifecycle rules: what a valid draft is, in
// what order the upload and create calls run, which actions a status allows,
// and how the local working set tracks the authoritative store.
package planner

import (
	"context"
	"errors"
	"strings"

	"media-planner/dto"
	"media-planner/models"
	"media-planner/postclient"
)

// API is the narrow request/response surface of the post-management
// service. *postclient.Client satisfies it; tests supply fakes.
type API interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, draft dto.PostDraft) (*models.Post, error)
	UpdatePost(ctx context.Context, postID string, draft dto.PostDraft) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	SendNow(ctx context.Context, postID string) error
	UploadImage(ctx context.Context, platform models.Platform, filename string, data []byte) (string, error)
}

// ImageAttachment is a newly selected image that has not been uploaded yet.
type ImageAttachment struct {
	Filename string
	Data     []byte
}

// Draft collects the user's input for a create or update.
type Draft struct {
	Title       string
	TextContent string
	Platform    models.Platform
	ScheduledAt models.LocalTime

	// ImageURL carries an already-stored asset reference, e.g. when editing
	// a post whose image is kept.
	ImageURL string

	// Image, when set, is uploaded first and its returned URL replaces
	// ImageURL before the create/update call. The two calls are sequential:
	// the returned asset reference is required input to the second one.
	Image *ImageAttachment
}

// Manager drives post mutations against the external store and keeps a
// local, re-fetchable working set for display. All work is sequential
// request/response; the manager runs no background work of its own.
//
// Callers must re-derive UI state from the latest completed List rather
// than patching incrementally, because responses from distinct user actions carry
// no ordering guarantee. The single exception is the optimistic local
// removal after a committed, successful delete.
type Manager struct {
	api   API
	posts []models.Post
}

func NewManager(api API) *Manager {
	return &Manager{api: api}
}

// List fetches the authoritative post collection and replaces the working
// set. No ordering or filtering beyond what the backend returns.
func (m *Manager) List(ctx context.Context) ([]models.Post, error) {
	posts, err := m.api.ListPosts(ctx)
	if err != nil {
		return nil, &RemoteError{Op: "list posts", Err: err}
	}
	m.posts = posts
	return m.Posts(), nil
}

// Posts returns a copy of the working set from the last completed List.
func (m *Manager) Posts() []models.Post {
	out := make([]models.Post, len(m.posts))
	copy(out, m.posts)
	return out
}

func validate(d Draft) error {
	if strings.TrimSpace(d.TextContent) == "" {
		return &ValidationError{Field: "text_content", Reason: "must not be empty"}
	}
	if !d.Platform.Known() {
		return &ValidationError{Field: "platform", Reason: "unsupported platform " + string(d.Platform)}
	}
	return nil
}

// resolveImage runs the upload step when a new image is attached and
// returns the asset URL the post payload must reference.
func (m *Manager) resolveImage(ctx context.Context, d Draft) (string, error) {
	if d.Image == nil {
		return d.ImageURL, nil
	}
	url, err := m.api.UploadImage(ctx, d.Platform, d.Image.Filename, d.Image.Data)
	if err != nil {
		return "", &UploadError{Err: err}
	}
	return url, nil
}

func toPayload(d Draft, imageURL string) dto.PostDraft {
	return dto.PostDraft{
		Title:       d.Title,
		TextContent: d.TextContent,
		Platform:    d.Platform,
		ScheduledAt: d.ScheduledAt,
		ImageURL:    imageURL,
	}
}

// Create validates the draft, uploads a newly attached image, then submits
// the post. An upload failure blocks the create entirely. The new post is
// returned with status scheduled; the working set is refreshed by the next
// List, not patched here.
func (m *Manager) Create(ctx context.Context, d Draft) (*models.Post, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	imageURL, err := m.resolveImage(ctx, d)
	if err != nil {
		return nil, err
	}
	post, err := m.api.CreatePost(ctx, toPayload(d, imageURL))
	if err != nil {
		return nil, &RemoteError{Op: "create post", Err: err}
	}
	return post, nil
}

// Update applies the same validation and image-first sequencing as Create.
// Whether editing is offered at all is the caller's gate (see CanEdit); the
// manager does not re-check the stored status.
func (m *Manager) Update(ctx context.Context, postID string, d Draft) (*models.Post, error) {
	if err := validate(d); err != nil {
		return nil, err
	}
	imageURL, err := m.resolveImage(ctx, d)
	if err != nil {
		return nil, err
	}
	post, err := m.api.UpdatePost(ctx, postID, toPayload(d, imageURL))
	if err != nil {
		if errors.Is(err, postclient.ErrNotFound) {
			return nil, &NotFoundError{PostID: postID}
		}
		return nil, &RemoteError{Op: "update post", Err: err}
	}
	return post, nil
}

// CanEdit reports whether the edit affordance should be offered. Terminal
// posts are not editable; this is a display gate, not a precondition the
// backend re-checks.
func CanEdit(p models.Post) bool {
	return !p.Status.Terminal()
}

// CanSendNow reports whether the manual send affordance should be offered.
func CanSendNow(p models.Post) bool {
	return p.Status == models.StatusScheduled
}

// DeleteRequest is the first half of the two-step delete protocol: the
// caller obtains a request, gathers the user's confirmation however it
// likes, and then commits. Nothing happens until Commit.
type DeleteRequest struct {
	m      *Manager
	postID string
}

// RequestDelete starts a delete. The protocol replaces a blocking
// confirmation dialog with an explicit confirm-then-commit exchange.
func (m *Manager) RequestDelete(postID string) *DeleteRequest {
	return &DeleteRequest{m: m, postID: postID}
}

func (r *DeleteRequest) PostID() string { return r.postID }

// Commit performs the delete. On success the post is removed from the local
// working set regardless of its prior status; on any failure the working
// set is left untouched.
func (r *DeleteRequest) Commit(ctx context.Context) error {
	if err := r.m.api.DeletePost(ctx, r.postID); err != nil {
		if errors.Is(err, postclient.ErrNotFound) {
			return &NotFoundError{PostID: r.postID}
		}
		return &RemoteError{Op: "delete post", Err: err}
	}
	r.m.removeLocal(r.postID)
	return nil
}

// SendNowRequest is the two-step counterpart for manual delivery.
type SendNowRequest struct {
	m      *Manager
	postID string
}

// RequestSendNow starts a manual delivery trigger for a scheduled post.
func (m *Manager) RequestSendNow(postID string) *SendNowRequest {
	return &SendNowRequest{m: m, postID: postID}
}

func (r *SendNowRequest) PostID() string { return r.postID }

// Commit triggers the delivery attempt. It never mutates local state: the
// resulting sent or failed status is only visible to the manager through a
// subsequent List, because delivery completes out-of-band.
func (r *SendNowRequest) Commit(ctx context.Context) error {
	if err := r.m.api.SendNow(ctx, r.postID); err != nil {
		if errors.Is(err, postclient.ErrNotFound) {
			return &NotFoundError{PostID: r.postID}
		}
		return &RemoteError{Op: "send post now", Err: err}
	}
	return nil
}

func (m *Manager) removeLocal(postID string) {
	kept := m.posts[:0]
	for _, p := range m.posts {
		if p.ID.Hex() != postID {
			kept = append(kept, p)
		}
	}
	m.posts = kept
}
