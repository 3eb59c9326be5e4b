package planner_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"media-planner/dto"
	"media-planner/models"
	"media-planner/planner"
	"media-planner/postclient"
)

// fakeAPI records calls in order and returns scripted results.
type fakeAPI struct {
	calls []string

	posts   []models.Post
	listErr error

	created   []dto.PostDraft
	createErr error

	updatedID string
	updated   dto.PostDraft
	updateErr error

	deletedID string
	deleteErr error

	sentID  string
	sendErr error

	uploadURL string
	uploadErr error
}

func (f *fakeAPI) ListPosts(ctx context.Context) ([]models.Post, error) {
	f.calls = append(f.calls, "list")
	return f.posts, f.listErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, draft dto.PostDraft) (*models.Post, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, draft)
	return &models.Post{
		ID:          primitive.NewObjectID(),
		Platform:    draft.Platform,
		Title:       draft.Title,
		TextContent: draft.TextContent,
		ImageURL:    draft.ImageURL,
		ScheduledAt: draft.ScheduledAt,
		Status:      models.StatusScheduled,
	}, nil
}

func (f *fakeAPI) UpdatePost(ctx context.Context, postID string, draft dto.PostDraft) (*models.Post, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedID = postID
	f.updated = draft
	return &models.Post{TextContent: draft.TextContent, Platform: draft.Platform}, nil
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID string) error {
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = postID
	return nil
}

func (f *fakeAPI) SendNow(ctx context.Context, postID string) error {
	f.calls = append(f.calls, "send")
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sentID = postID
	return nil
}

func (f *fakeAPI) UploadImage(ctx context.Context, platform models.Platform, filename string, data []byte) (string, error) {
	f.calls = append(f.calls, "upload")
	return f.uploadURL, f.uploadErr
}

func validDraft() planner.Draft {
	return planner.Draft{
		Title:       "launch",
		TextContent: "we are live",
		Platform:    models.PlatformLinkedIn,
		ScheduledAt: models.NewLocalTime(2024, time.March, 15, 9, 30, 0),
	}
}

func scheduledPost() models.Post {
	return models.Post{
		ID:          primitive.NewObjectID(),
		Platform:    models.PlatformLinkedIn,
		TextContent: "post",
		ScheduledAt: models.NewLocalTime(2024, time.March, 15, 9, 30, 0),
		Status:      models.StatusScheduled,
	}
}

func TestCreateRejectsEmptyText(t *testing.T) {
	api := &fakeAPI{}
	m := planner.NewManager(api)

	d := validDraft()
	d.TextContent = "   "
	_, err := m.Create(context.Background(), d)

	var vErr *planner.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "text_content", vErr.Field)
	assert.Empty(t, api.calls, "no remote call after validation failure")
}

func TestCreateRejectsUnknownPlatform(t *testing.T) {
	m := planner.NewManager(&fakeAPI{})

	d := validDraft()
	d.Platform = models.Platform("myspace")
	_, err := m.Create(context.Background(), d)

	var vErr *planner.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "platform", vErr.Field)
}

func TestCreateUploadsImageBeforePost(t *testing.T) {
	api := &fakeAPI{uploadURL: "https://assets.example.com/abc.jpg"}
	m := planner.NewManager(api)

	d := validDraft()
	d.Image = &planner.ImageAttachment{Filename: "pic.png", Data: []byte{1, 2, 3}}
	post, err := m.Create(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, []string{"upload", "create"}, api.calls)
	assert.Equal(t, "https://assets.example.com/abc.jpg", post.ImageURL)
	require.Len(t, api.created, 1)
	assert.Equal(t, "https://assets.example.com/abc.jpg", api.created[0].ImageURL)
}

func TestCreateBlockedByUploadFailure(t *testing.T) {
	api := &fakeAPI{uploadErr: errors.New("store unreachable")}
	m := planner.NewManager(api)

	d := validDraft()
	d.Image = &planner.ImageAttachment{Filename: "pic.png", Data: []byte{1}}
	_, err := m.Create(context.Background(), d)

	var upErr *planner.UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, []string{"upload"}, api.calls, "create must not run after a failed upload")
}

func TestCreateWithoutImageSkipsUpload(t *testing.T) {
	api := &fakeAPI{}
	m := planner.NewManager(api)

	d := validDraft()
	d.ImageURL = "https://assets.example.com/kept.jpg"
	_, err := m.Create(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, []string{"create"}, api.calls)
	assert.Equal(t, "https://assets.example.com/kept.jpg", api.created[0].ImageURL)
}

func TestCreateWrapsRemoteError(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("boom")}
	m := planner.NewManager(api)

	_, err := m.Create(context.Background(), validDraft())

	var rErr *planner.RemoteError
	require.ErrorAs(t, err, &rErr)
	assert.Equal(t, "create post", rErr.Op)
}

func TestUpdateMapsNotFound(t *testing.T) {
	api := &fakeAPI{updateErr: postclient.ErrNotFound}
	m := planner.NewManager(api)

	_, err := m.Update(context.Background(), "deadbeef", validDraft())

	var nfErr *planner.NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "deadbeef", nfErr.PostID)
}

func TestListRefreshesWorkingSet(t *testing.T) {
	p1, p2 := scheduledPost(), scheduledPost()
	api := &fakeAPI{posts: []models.Post{p1, p2}}
	m := planner.NewManager(api)

	posts, err := m.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	api.posts = []models.Post{p2}
	posts, err = m.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, p2.ID, posts[0].ID)
}

func TestListWrapsRemoteError(t *testing.T) {
	m := planner.NewManager(&fakeAPI{listErr: errors.New("down")})

	_, err := m.List(context.Background())

	var rErr *planner.RemoteError
	require.ErrorAs(t, err, &rErr)
}

func TestDeleteCommitRemovesFromWorkingSet(t *testing.T) {
	p1, p2 := scheduledPost(), scheduledPost()
	api := &fakeAPI{posts: []models.Post{p1, p2}}
	m := planner.NewManager(api)
	_, err := m.List(context.Background())
	require.NoError(t, err)

	req := m.RequestDelete(p1.ID.Hex())
	// Nothing happens before Commit.
	assert.Equal(t, []string{"list"}, api.calls)

	require.NoError(t, req.Commit(context.Background()))
	assert.Equal(t, p1.ID.Hex(), api.deletedID)

	remaining := m.Posts()
	require.Len(t, remaining, 1)
	assert.Equal(t, p2.ID, remaining[0].ID)
}

func TestDeleteCommitFailureKeepsWorkingSet(t *testing.T) {
	p1 := scheduledPost()
	api := &fakeAPI{posts: []models.Post{p1}}
	m := planner.NewManager(api)
	_, err := m.List(context.Background())
	require.NoError(t, err)

	api.deleteErr = errors.New("backend down")
	err = m.RequestDelete(p1.ID.Hex()).Commit(context.Background())

	var rErr *planner.RemoteError
	require.ErrorAs(t, err, &rErr)
	assert.Len(t, m.Posts(), 1, "failed delete must leave the working set untouched")
}

func TestDeleteCommitMapsNotFound(t *testing.T) {
	api := &fakeAPI{deleteErr: postclient.ErrNotFound}
	m := planner.NewManager(api)

	err := m.RequestDelete("deadbeef").Commit(context.Background())

	var nfErr *planner.NotFoundError
	require.ErrorAs(t, err, &nfErr)
}

func TestSendNowCommitDoesNotMutateWorkingSet(t *testing.T) {
	p1 := scheduledPost()
	api := &fakeAPI{posts: []models.Post{p1}}
	m := planner.NewManager(api)
	_, err := m.List(context.Background())
	require.NoError(t, err)

	require.NoError(t, m.RequestSendNow(p1.ID.Hex()).Commit(context.Background()))
	assert.Equal(t, p1.ID.Hex(), api.sentID)

	// The sent/failed outcome only becomes visible through the next List.
	posts := m.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, models.StatusScheduled, posts[0].Status)
}

func TestCanEditAndCanSendNow(t *testing.T) {
	scheduled := models.Post{Status: models.StatusScheduled}
	sent := models.Post{Status: models.StatusSent}
	failed := models.Post{Status: models.StatusFailed}

	assert.True(t, planner.CanEdit(scheduled))
	assert.False(t, planner.CanEdit(sent))
	assert.False(t, planner.CanEdit(failed))

	assert.True(t, planner.CanSendNow(scheduled))
	assert.False(t, planner.CanSendNow(sent))
	assert.False(t, planner.CanSendNow(failed))
}

func TestPostsReturnsCopy(t *testing.T) {
	p1 := scheduledPost()
	api := &fakeAPI{posts: []models.Post{p1}}
	m := planner.NewManager(api)
	_, err := m.List(context.Background())
	require.NoError(t, err)

	snapshot := m.Posts()
	snapshot[0].TextContent = "mutated"

	assert.Equal(t, "post", m.Posts()[0].TextContent)
}
